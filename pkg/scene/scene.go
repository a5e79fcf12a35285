// Package scene turns a diagram plus its current selection into a
// declarative scene: the list of (geometry, label, color, selected) tuples
// a renderer draws. Scenes are rebuilt from scratch on every state change;
// renderers never patch a previous scene.
package scene

import (
	"math"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// NodeView is one node as it should be drawn.
type NodeView struct {
	Index    int           `json:"index"`
	Rect     catalog.Rect  `json:"rect"`
	Lines    []string      `json:"lines"`
	SubLabel string        `json:"sub_label,omitempty"`
	Color    catalog.Color `json:"color"`
	Selected bool          `json:"selected"`
}

// EdgeView is a connector with its endpoints resolved to box edges.
type EdgeView struct {
	From   int               `json:"from"`
	To     int               `json:"to"`
	X1     float64           `json:"x1"`
	Y1     float64           `json:"y1"`
	X2     float64           `json:"x2"`
	Y2     float64           `json:"y2"`
	Label  string            `json:"label,omitempty"`
	Style  catalog.LineStyle `json:"style"`
	Color  catalog.Color     `json:"color"`
	Curved bool              `json:"curved,omitempty"`
	// Vertical is set when the edge leaves and enters through top/bottom
	// box edges rather than the sides.
	Vertical bool `json:"vertical,omitempty"`
}

// Scene is the full render description of one diagram instance.
type Scene struct {
	DiagramID   string               `json:"diagram"`
	Title       string               `json:"title,omitempty"`
	Width       float64              `json:"width"`
	Height      float64              `json:"height"`
	Nodes       []NodeView           `json:"nodes"`
	Edges       []EdgeView           `json:"edges,omitempty"`
	Decorations []catalog.Decoration `json:"decorations,omitempty"`
	Caption     string               `json:"caption,omitempty"`
	Hint        string               `json:"hint,omitempty"`
}

// Build computes the scene for d under selection sel.
func Build(d *catalog.Diagram, sel toggle.State[int]) Scene {
	nodes := d.Nodes().Nodes()
	s := Scene{
		DiagramID:   d.ID(),
		Title:       d.Title(),
		Width:       d.Width(),
		Height:      d.Height(),
		Nodes:       make([]NodeView, 0, len(nodes)),
		Decorations: d.Decorations(),
		Caption:     d.Caption(),
		Hint:        d.Hint(),
	}

	for _, n := range nodes {
		s.Nodes = append(s.Nodes, NodeView{
			Index:    n.Index,
			Rect:     n.Rect,
			Lines:    n.LabelLines(),
			SubLabel: n.SubLabel,
			Color:    n.Color,
			Selected: sel.Is(n.Index),
		})
	}

	for _, c := range d.Connectors() {
		from, _ := d.Nodes().Node(c.From)
		to, _ := d.Nodes().Node(c.To)
		x1, y1, x2, y2, vertical := anchors(from.Rect, to.Rect)
		style := c.Style
		if style == "" {
			style = catalog.LineSolid
		}
		color := c.Color
		if color == "" {
			color = catalog.ColorMuted
		}
		s.Edges = append(s.Edges, EdgeView{
			From:     c.From,
			To:       c.To,
			X1:       x1,
			Y1:       y1,
			X2:       x2,
			Y2:       y2,
			Label:    c.Label,
			Style:    style,
			Color:    color,
			Curved:   c.Curved,
			Vertical: vertical,
		})
	}
	return s
}

// anchors picks facing edge midpoints of two boxes: left/right when the
// horizontal gap between them dominates, top/bottom otherwise.
func anchors(a, b catalog.Rect) (x1, y1, x2, y2 float64, vertical bool) {
	acx, acy := a.Center()
	bcx, bcy := b.Center()

	gapX := math.Max(b.X-(a.X+a.W), a.X-(b.X+b.W))
	gapY := math.Max(b.Y-(a.Y+a.H), a.Y-(b.Y+b.H))
	if gapX >= gapY {
		if acx < bcx {
			return a.X + a.W, acy, b.X, bcy, false
		}
		return a.X, acy, b.X + b.W, bcy, false
	}
	if acy < bcy {
		return acx, a.Y + a.H, bcx, b.Y, true
	}
	return acx, a.Y, bcx, b.Y + b.H, true
}

// HitTest returns the index of the node under (x, y). Later nodes are drawn
// on top, so they win when hit regions overlap.
func (s Scene) HitTest(x, y float64) (int, bool) {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Rect.Contains(x, y) {
			return s.Nodes[i].Index, true
		}
	}
	return 0, false
}

// Selected returns the selected node view, if any.
func (s Scene) Selected() (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.Selected {
			return n, true
		}
	}
	return NodeView{}, false
}

// Neighbor returns the node index reached from index by moving one step in
// catalog order (dir > 0 forward, dir < 0 back), wrapping around.
func (s Scene) Neighbor(index, dir int) int {
	if len(s.Nodes) == 0 {
		return index
	}
	pos := 0
	for i, n := range s.Nodes {
		if n.Index == index {
			pos = i
			break
		}
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	pos = (pos + step + len(s.Nodes)) % len(s.Nodes)
	return s.Nodes[pos].Index
}
