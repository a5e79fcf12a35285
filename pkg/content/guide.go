// Package content supplies the guide: the diagrams, detail records,
// question lists and prose that the renderers present. The built-in guide
// covers RAG and agentic application architecture; other guides can be
// loaded from YAML, JSON or TOML files with the same shape.
package content

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/archguide/pkg/catalog"
)

// Guide is a fully validated guide, ready to render.
type Guide struct {
	Title      string
	Subtitle   string
	Intro      string
	Parts      []Part
	Tradeoffs  Tradeoffs
	Principles []Principle
	Footer     string
}

// Part is one numbered section of the guide. Diagram and Questions are
// optional.
type Part struct {
	ID        string
	Kicker    string
	Title     string
	Intro     string
	Hint      string
	Diagram   *catalog.Diagram
	Questions *catalog.QAList
	Callout   string
}

// Dimension is one node of the tradeoff diagram.
type Dimension struct {
	Label string        `json:"label" yaml:"label" toml:"label"`
	Color catalog.Color `json:"color" yaml:"color" toml:"color"`
	Hint  string        `json:"hint" yaml:"hint" toml:"hint"`
}

// TradeoffSide is one half of a tradeoff pair.
type TradeoffSide struct {
	Label string        `json:"label" yaml:"label" toml:"label"`
	Color catalog.Color `json:"color" yaml:"color" toml:"color"`
	Desc  string        `json:"desc" yaml:"desc" toml:"desc"`
}

// TradeoffPair contrasts two competing goals.
type TradeoffPair struct {
	Left    TradeoffSide `json:"left" yaml:"left" toml:"left"`
	Right   TradeoffSide `json:"right" yaml:"right" toml:"right"`
	Tension string       `json:"tension" yaml:"tension" toml:"tension"`
}

// Tradeoffs is the design-tradeoffs section.
type Tradeoffs struct {
	Kicker     string         `json:"kicker,omitempty" yaml:"kicker,omitempty" toml:"kicker"`
	Title      string         `json:"title" yaml:"title" toml:"title"`
	Intro      string         `json:"intro,omitempty" yaml:"intro,omitempty" toml:"intro"`
	Dimensions []Dimension    `json:"dimensions,omitempty" yaml:"dimensions,omitempty" toml:"dimensions"`
	Caption    string         `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption"`
	Pairs      []TradeoffPair `json:"pairs,omitempty" yaml:"pairs,omitempty" toml:"pairs"`
}

// Principle is a titled paragraph of advice.
type Principle struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	Body  string `json:"body" yaml:"body" toml:"body"`
}

// Document is the serialisable form of a guide.
type Document struct {
	Title      string      `json:"title" yaml:"title" toml:"title"`
	Subtitle   string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty" toml:"subtitle"`
	Intro      string      `json:"intro,omitempty" yaml:"intro,omitempty" toml:"intro"`
	Parts      []PartDoc   `json:"parts" yaml:"parts" toml:"parts"`
	Tradeoffs  Tradeoffs   `json:"tradeoffs,omitempty" yaml:"tradeoffs,omitempty" toml:"tradeoffs"`
	Principles []Principle `json:"principles,omitempty" yaml:"principles,omitempty" toml:"principles"`
	Footer     string      `json:"footer,omitempty" yaml:"footer,omitempty" toml:"footer"`
}

// PartDoc is the serialisable form of a Part.
type PartDoc struct {
	ID        string               `json:"id" yaml:"id" toml:"id"`
	Kicker    string               `json:"kicker,omitempty" yaml:"kicker,omitempty" toml:"kicker"`
	Title     string               `json:"title" yaml:"title" toml:"title"`
	Intro     string               `json:"intro,omitempty" yaml:"intro,omitempty" toml:"intro"`
	Hint      string               `json:"hint,omitempty" yaml:"hint,omitempty" toml:"hint"`
	Diagram   *catalog.DiagramSpec `json:"diagram,omitempty" yaml:"diagram,omitempty" toml:"diagram"`
	Questions *QuestionsDoc        `json:"questions,omitempty" yaml:"questions,omitempty" toml:"questions"`
	Callout   string               `json:"callout,omitempty" yaml:"callout,omitempty" toml:"callout"`
}

// QuestionsDoc is the serialisable form of a question list.
type QuestionsDoc struct {
	ID      string            `json:"id" yaml:"id" toml:"id"`
	Title   string            `json:"title" yaml:"title" toml:"title"`
	Entries []catalog.QAEntry `json:"entries" yaml:"entries" toml:"entries"`
}

// Build validates the document and returns the guide. Every problem is
// reported, not just the first.
func (doc Document) Build() (*Guide, error) {
	g := &Guide{
		Title:      doc.Title,
		Subtitle:   doc.Subtitle,
		Intro:      doc.Intro,
		Tradeoffs:  doc.Tradeoffs,
		Principles: append([]Principle(nil), doc.Principles...),
		Footer:     doc.Footer,
	}

	var errs []error
	seenParts := make(map[string]bool, len(doc.Parts))
	seenDiagrams := make(map[string]bool)
	seenLists := make(map[string]bool)
	for i, pd := range doc.Parts {
		if pd.ID == "" {
			errs = append(errs, fmt.Errorf("part %d has no id", i))
			continue
		}
		if seenParts[pd.ID] {
			errs = append(errs, &catalog.DuplicateKeyError{Scope: "parts", Key: pd.ID})
			continue
		}
		seenParts[pd.ID] = true

		p := Part{
			ID:      pd.ID,
			Kicker:  pd.Kicker,
			Title:   pd.Title,
			Intro:   pd.Intro,
			Hint:    pd.Hint,
			Callout: pd.Callout,
		}
		if pd.Diagram != nil {
			if seenDiagrams[pd.Diagram.ID] {
				errs = append(errs, &catalog.DuplicateKeyError{Scope: "diagrams", Key: pd.Diagram.ID})
			}
			seenDiagrams[pd.Diagram.ID] = true
			d, err := catalog.NewDiagram(*pd.Diagram)
			if err != nil {
				errs = append(errs, fmt.Errorf("part %q: %w", pd.ID, err))
			}
			p.Diagram = d
		}
		if pd.Questions != nil {
			if seenLists[pd.Questions.ID] {
				errs = append(errs, &catalog.DuplicateKeyError{Scope: "question lists", Key: pd.Questions.ID})
			}
			seenLists[pd.Questions.ID] = true
			l, err := catalog.NewQAList(pd.Questions.ID, pd.Questions.Title, pd.Questions.Entries...)
			if err != nil {
				errs = append(errs, fmt.Errorf("part %q: %w", pd.ID, err))
			}
			p.Questions = l
		}
		g.Parts = append(g.Parts, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// Document converts the guide back to its serialisable form.
func (g *Guide) Document() Document {
	doc := Document{
		Title:      g.Title,
		Subtitle:   g.Subtitle,
		Intro:      g.Intro,
		Tradeoffs:  g.Tradeoffs,
		Principles: append([]Principle(nil), g.Principles...),
		Footer:     g.Footer,
	}
	for _, p := range g.Parts {
		pd := PartDoc{
			ID:      p.ID,
			Kicker:  p.Kicker,
			Title:   p.Title,
			Intro:   p.Intro,
			Hint:    p.Hint,
			Callout: p.Callout,
		}
		if p.Diagram != nil {
			spec := p.Diagram.Spec()
			pd.Diagram = &spec
		}
		if p.Questions != nil {
			pd.Questions = &QuestionsDoc{
				ID:      p.Questions.ID(),
				Title:   p.Questions.Title(),
				Entries: p.Questions.Entries(),
			}
		}
		doc.Parts = append(doc.Parts, pd)
	}
	return doc
}

// Diagram returns the diagram with the given id.
func (g *Guide) Diagram(id string) (*catalog.Diagram, bool) {
	for _, p := range g.Parts {
		if p.Diagram != nil && p.Diagram.ID() == id {
			return p.Diagram, true
		}
	}
	return nil, false
}

// Diagrams returns all diagrams in part order.
func (g *Guide) Diagrams() []*catalog.Diagram {
	var out []*catalog.Diagram
	for _, p := range g.Parts {
		if p.Diagram != nil {
			out = append(out, p.Diagram)
		}
	}
	return out
}

// PartFor returns the part holding the given diagram.
func (g *Guide) PartFor(diagramID string) (Part, bool) {
	for _, p := range g.Parts {
		if p.Diagram != nil && p.Diagram.ID() == diagramID {
			return p, true
		}
	}
	return Part{}, false
}
