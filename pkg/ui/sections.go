package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/metrics"

	"github.com/charmbracelet/lipgloss"
)

type sectionKind int

const (
	sectionPart sectionKind = iota
	sectionTradeoffs
	sectionPrinciples
)

// section is one page of the guide. Part sections carry their own diagram
// view and accordion, created fresh whenever the guide is (re)loaded.
type section struct {
	kind      sectionKind
	tab       string
	part      content.Part
	diagram   *DiagramView
	accordion *Accordion
}

// sectionLayout records where clickable things ended up in the rendered
// section, in content lines.
type sectionLayout struct {
	canvasTop  int
	canvasLeft int
	canvasRows int
	entryLines map[int]string
}

func buildSections(g *content.Guide, rowPx int, onInvalid func(error)) []section {
	var out []section
	for _, p := range g.Parts {
		s := section{kind: sectionPart, tab: tabName(p.Kicker, p.Title), part: p}
		if p.Diagram != nil {
			s.diagram = NewDiagramView(p.Diagram, rowPx, onInvalid)
		}
		if p.Questions != nil {
			s.accordion = NewAccordion(p.Questions, onInvalid)
		}
		out = append(out, s)
	}
	if g.Tradeoffs.Title != "" {
		out = append(out, section{kind: sectionTradeoffs, tab: tabName(g.Tradeoffs.Kicker, g.Tradeoffs.Title)})
	}
	if len(g.Principles) > 0 {
		out = append(out, section{kind: sectionPrinciples, tab: "Principles"})
	}
	return out
}

func tabName(kicker, title string) string {
	if kicker != "" && !strings.HasPrefix(kicker, "Under") {
		return kicker
	}
	return truncate(title, 18)
}

// renderer holds what section rendering needs from the model.
type renderer struct {
	theme Theme
	md    *markdownRenderer
	width int
	guide *content.Guide
}

const contentMargin = 2

func (r renderer) indent(s string) string {
	pad := strings.Repeat(" ", contentMargin)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func (r renderer) inner() int {
	w := r.width - 2*contentMargin
	if w < 20 {
		w = 20
	}
	return w
}

func (r renderer) paragraph(style lipgloss.Style, s string) []string {
	var out []string
	for _, l := range wrapText(s, r.inner()) {
		out = append(out, r.indent(style.Render(l)))
	}
	return out
}

// render draws section s. focusQuestions selects which widget shows the
// keyboard cursor.
func (r renderer) render(s *section, first, focusQuestions bool) (string, sectionLayout) {
	defer metrics.Timer(metrics.SectionRender)()
	switch s.kind {
	case sectionTradeoffs:
		return r.tradeoffs(), sectionLayout{}
	case sectionPrinciples:
		return r.principles(), sectionLayout{}
	}
	return r.part(s, first, focusQuestions)
}

func (r renderer) heading(kicker, title, intro string) []string {
	var lines []string
	lines = append(lines, "")
	if kicker != "" {
		lines = append(lines, r.indent(r.theme.Kicker.Render(strings.ToUpper(kicker))))
	}
	lines = append(lines, r.indent(r.theme.Title.Render(title)), "")
	if intro != "" {
		lines = append(lines, r.paragraph(r.theme.Body, intro)...)
		lines = append(lines, "")
	}
	return lines
}

func (r renderer) part(s *section, first, focusQuestions bool) (string, sectionLayout) {
	layout := sectionLayout{entryLines: make(map[int]string)}
	var lines []string
	if first && r.guide != nil {
		lines = append(lines, "")
		lines = append(lines, r.indent(r.theme.Title.Render(r.guide.Title)))
		if r.guide.Subtitle != "" {
			lines = append(lines, r.indent(r.theme.Hint.Render(r.guide.Subtitle)))
		}
		if r.guide.Intro != "" {
			lines = append(lines, "")
			lines = append(lines, r.paragraph(r.theme.Caption, r.guide.Intro)...)
		}
	}
	lines = append(lines, r.heading(s.part.Kicker, s.part.Title, s.part.Intro)...)

	if v := s.diagram; v != nil {
		if s.part.Hint != "" && v.Interactive() {
			lines = append(lines, r.indent(r.theme.Hint.Render(s.part.Hint)), "")
		}
		canvas := v.Render(r.theme, r.inner(), !focusQuestions)
		layout.canvasTop = len(lines)
		layout.canvasLeft = contentMargin
		layout.canvasRows = len(canvas)
		for _, l := range canvas {
			lines = append(lines, r.indent(l))
		}
		if c := v.Diagram().Caption(); c != "" {
			lines = append(lines, "")
			lines = append(lines, r.paragraph(r.theme.Caption, c)...)
		}
		if p := v.Panel(); p.Visible {
			body := r.md.render(p.Markdown(), r.inner()-4)
			box := r.theme.Panel.
				BorderForeground(r.theme.TokenColor(p.Color)).
				Width(r.inner() - 2).
				Render(body)
			lines = append(lines, "")
			lines = append(lines, strings.Split(r.indent(box), "\n")...)
		} else if v.Interactive() {
			lines = append(lines, "", r.indent(r.theme.MutedText.Render(v.Diagram().Hint())))
		}
		lines = append(lines, "")
	}

	if s.part.Callout != "" {
		box := r.theme.Callout.Width(r.inner() - 2).Render(strings.Join(wrapText(s.part.Callout, r.inner()-4), "\n"))
		lines = append(lines, strings.Split(r.indent(box), "\n")...)
		lines = append(lines, "")
	}

	if a := s.accordion; a != nil {
		acc, keys := a.Render(r.theme, r.md, r.inner(), focusQuestions)
		for i, l := range acc {
			if keys[i] != "" {
				layout.entryLines[len(lines)] = keys[i]
			}
			lines = append(lines, r.indent(l))
		}
	}
	return strings.Join(lines, "\n"), layout
}

func (r renderer) tradeoffs() string {
	t := r.guide.Tradeoffs
	lines := r.heading(t.Kicker, t.Title, t.Intro)

	if n := len(t.Dimensions); n > 0 {
		cardW := r.inner()/n - 2
		var cards []string
		for _, d := range t.Dimensions {
			cards = append(cards, RenderDimensionCard(r.theme, d.Label, d.Hint, r.theme.TokenColor(d.Color), cardW))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		if cardW < 14 {
			row = lipgloss.JoinVertical(lipgloss.Left, cards...)
		}
		lines = append(lines, strings.Split(r.indent(row), "\n")...)
		if t.Caption != "" {
			lines = append(lines, "")
			lines = append(lines, r.paragraph(r.theme.Caption, t.Caption)...)
		}
		lines = append(lines, "")
	}

	for _, p := range t.Pairs {
		left := r.theme.TokenStyle(p.Left.Color).Bold(true).Render(p.Left.Label)
		right := r.theme.TokenStyle(p.Right.Color).Bold(true).Render(p.Right.Label)
		lines = append(lines, r.indent(left+r.theme.MutedText.Render("  ⟷  ")+right))
		lines = append(lines, r.paragraph(r.theme.Body, "◂ "+p.Left.Desc)...)
		lines = append(lines, r.paragraph(r.theme.Body, "▸ "+p.Right.Desc)...)
		lines = append(lines, r.paragraph(r.theme.Hint, p.Tension)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (r renderer) principles() string {
	lines := r.heading("", "Guiding Principles", "")
	var md strings.Builder
	for i, p := range r.guide.Principles {
		fmt.Fprintf(&md, "%d. **%s**  \n   %s\n\n", i+1, p.Title, p.Body)
	}
	lines = append(lines, strings.Split(r.indent(r.md.render(md.String(), r.inner())), "\n")...)
	if r.guide.Footer != "" {
		lines = append(lines, "", r.indent(r.theme.MutedText.Render(r.guide.Footer)))
	}
	return strings.Join(lines, "\n")
}
