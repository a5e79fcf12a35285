package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// LineStyle selects how a connector is stroked.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
)

// Connector is an arrow between two nodes. It carries no behavior.
type Connector struct {
	From   int       `json:"from" yaml:"from" toml:"from"`
	To     int       `json:"to" yaml:"to" toml:"to"`
	Label  string    `json:"label,omitempty" yaml:"label,omitempty" toml:"label"`
	Style  LineStyle `json:"style,omitempty" yaml:"style,omitempty" toml:"style"`
	Color  Color     `json:"color,omitempty" yaml:"color,omitempty" toml:"color"`
	Curved bool      `json:"curved,omitempty" yaml:"curved,omitempty" toml:"curved"`
}

// Shape is the outline of a decoration.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapePill    Shape = "pill"
	ShapeEllipse Shape = "ellipse"
	ShapeText    Shape = "text"
	ShapeArrow   Shape = "arrow"
	ShapeLine    Shape = "line"
)

// Point is a position in diagram coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Decoration is non-interactive scenery: phase labels, the agent loop,
// the vector database box and so on. Arrows and lines use Points (first to
// last, arrow head at the end) and ignore Rect; text is anchored at Rect.X,
// Rect.Y.
type Decoration struct {
	Shape    Shape   `json:"shape" yaml:"shape" toml:"shape"`
	Rect     Rect    `json:"rect,omitempty" yaml:"rect,omitempty" toml:"rect"`
	Points   []Point `json:"points,omitempty" yaml:"points,omitempty" toml:"points"`
	Label    string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label"`
	SubLabel string  `json:"sub_label,omitempty" yaml:"sub_label,omitempty" toml:"sub_label"`
	Color    Color   `json:"color,omitempty" yaml:"color,omitempty" toml:"color"`
	Dashed   bool    `json:"dashed,omitempty" yaml:"dashed,omitempty" toml:"dashed"`
}

// LabelLines splits the label on newlines.
func (d Decoration) LabelLines() []string {
	if d.Label == "" {
		return nil
	}
	return strings.Split(d.Label, "\n")
}

// DiagramSpec is the raw input for NewDiagram.
type DiagramSpec struct {
	ID          string         `json:"id" yaml:"id" toml:"id"`
	Title       string         `json:"title" yaml:"title" toml:"title"`
	Width       float64        `json:"width" yaml:"width" toml:"width"`
	Height      float64        `json:"height" yaml:"height" toml:"height"`
	Nodes       []DiagramNode  `json:"nodes" yaml:"nodes" toml:"nodes"`
	Details     []DetailRecord `json:"details" yaml:"details" toml:"details"`
	Connectors  []Connector    `json:"connectors,omitempty" yaml:"connectors,omitempty" toml:"connectors"`
	Decorations []Decoration   `json:"decorations,omitempty" yaml:"decorations,omitempty" toml:"decorations"`
	Caption     string         `json:"caption,omitempty" yaml:"caption,omitempty" toml:"caption"`
	Hint        string         `json:"hint,omitempty" yaml:"hint,omitempty" toml:"hint"`
}

// Diagram is a validated node catalog paired with its detail catalog.
type Diagram struct {
	id          string
	title       string
	width       float64
	height      float64
	nodes       NodeCatalog
	details     DetailCatalog
	connectors  []Connector
	decorations []Decoration
	caption     string
	hint        string
}

// NewDiagram validates spec and builds a Diagram. All problems found are
// returned together.
func NewDiagram(spec DiagramSpec) (*Diagram, error) {
	if spec.ID == "" {
		return nil, errors.New("diagram has no id")
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("diagram %q: invalid size %gx%g", spec.ID, spec.Width, spec.Height)
	}

	nodes, err := NewNodeCatalog(spec.ID, spec.Nodes...)
	if err != nil {
		return nil, err
	}
	details, err := NewDetailCatalog(spec.ID, spec.Details...)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, n := range nodes.nodes {
		if _, ok := details.records[n.DetailKey]; !ok {
			errs = append(errs, &BrokenReferenceError{Diagram: spec.ID, Index: n.Index, DetailKey: n.DetailKey})
		}
		if n.Rect.W <= 0 || n.Rect.H <= 0 {
			errs = append(errs, fmt.Errorf("diagram %q: node %d has empty geometry", spec.ID, n.Index))
		}
	}
	for i, dec := range spec.Decorations {
		if (dec.Shape == ShapeArrow || dec.Shape == ShapeLine) && len(dec.Points) < 2 {
			errs = append(errs, fmt.Errorf("diagram %q: decoration %d: %s needs at least two points", spec.ID, i, dec.Shape))
		}
	}
	for i, c := range spec.Connectors {
		for _, end := range []int{c.From, c.To} {
			if _, ok := nodes.byIndex[end]; !ok {
				errs = append(errs, fmt.Errorf("diagram %q: connector %d: %w", spec.ID, i,
					&InvalidIndexError{Diagram: spec.ID, Index: end, Len: nodes.Len()}))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Diagram{
		id:          spec.ID,
		title:       spec.Title,
		width:       spec.Width,
		height:      spec.Height,
		nodes:       nodes,
		details:     details,
		connectors:  append([]Connector(nil), spec.Connectors...),
		decorations: copyDecorations(spec.Decorations),
		caption:     spec.Caption,
		hint:        spec.Hint,
	}, nil
}

func (d *Diagram) ID() string                { return d.id }
func (d *Diagram) Title() string             { return d.title }
func (d *Diagram) Width() float64            { return d.width }
func (d *Diagram) Height() float64           { return d.height }
func (d *Diagram) Nodes() NodeCatalog        { return d.nodes }
func (d *Diagram) Details() DetailCatalog    { return d.details }
func (d *Diagram) Caption() string           { return d.caption }
func (d *Diagram) Hint() string              { return d.hint }
func (d *Diagram) Connectors() []Connector   { return append([]Connector(nil), d.connectors...) }
func (d *Diagram) Decorations() []Decoration { return copyDecorations(d.decorations) }

func copyDecorations(in []Decoration) []Decoration {
	if in == nil {
		return nil
	}
	out := make([]Decoration, len(in))
	for i, dec := range in {
		dec.Points = append([]Point(nil), dec.Points...)
		out[i] = dec
	}
	return out
}

// CheckIndex returns an *InvalidIndexError unless index names a node.
func (d *Diagram) CheckIndex(index int) error {
	if _, ok := d.nodes.byIndex[index]; !ok {
		return &InvalidIndexError{Diagram: d.id, Index: index, Len: d.nodes.Len()}
	}
	return nil
}

// NewSelection returns a selection store bound to this diagram's indices.
// Out-of-range toggles are ignored and reported.
func (d *Diagram) NewSelection(opts ...toggle.Option[int]) *toggle.Store[int] {
	all := append([]toggle.Option[int]{
		toggle.WithName[int]("selection:" + d.id),
		toggle.WithValidator(d.CheckIndex),
	}, opts...)
	return toggle.New(all...)
}

// Spec returns the diagram as a DiagramSpec, suitable for encoding.
func (d *Diagram) Spec() DiagramSpec {
	spec := DiagramSpec{
		ID:          d.id,
		Title:       d.title,
		Width:       d.width,
		Height:      d.height,
		Nodes:       d.nodes.Nodes(),
		Connectors:  d.Connectors(),
		Decorations: d.Decorations(),
		Caption:     d.caption,
		Hint:        d.hint,
	}
	for _, key := range d.details.order {
		r, _ := d.details.Lookup(key)
		spec.Details = append(spec.Details, r)
	}
	return spec
}
