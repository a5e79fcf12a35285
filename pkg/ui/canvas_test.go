package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/scene"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// Plain returns the canvas without styling.
func (c *Canvas) Plain() string {
	lines := make([]string, 0, c.rows)
	for _, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			if cl.r != 0 {
				b.WriteRune(cl.r)
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// plainText renders a diagram view without styling.
func plainText(v *DiagramView, maxCols int) string {
	colPx, rowPx := v.scale(maxCols)
	c := newCanvas(v.diagram.Width(), v.diagram.Height(), colPx, rowPx)
	c.Draw(v.Scene(), v.focus, false)
	return c.Plain()
}

func canvasDiagram(t *testing.T) *catalog.Diagram {
	t.Helper()
	d, err := catalog.NewDiagram(catalog.DiagramSpec{
		ID:     "pair",
		Width:  400,
		Height: 200,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 10, Y: 20, W: 100, H: 60}, Label: "Query", Color: catalog.ColorText, DetailKey: "q"},
			{Index: 1, Rect: catalog.Rect{X: 200, Y: 20, W: 100, H: 60}, Label: "Embed", Color: catalog.ColorPurple, DetailKey: "e"},
		},
		Details: []catalog.DetailRecord{
			{Key: "q", Name: "Query", Description: "ask"},
			{Key: "e", Name: "Embed", Description: "vectorize"},
		},
		Connectors: []catalog.Connector{{From: 0, To: 1, Label: "text"}},
		Decorations: []catalog.Decoration{
			{Shape: catalog.ShapeText, Rect: catalog.Rect{X: 10, Y: 180}, Label: "PHASE"},
		},
	})
	if err != nil {
		t.Fatalf("NewDiagram: %v", err)
	}
	return d
}

func drawPlain(d *catalog.Diagram, sel toggle.State[int], focus int, hasFocus bool) (*Canvas, string) {
	c := newCanvas(d.Width(), d.Height(), 10, 20)
	c.Draw(scene.Build(d, sel), focus, hasFocus)
	return c, c.Plain()
}

func TestCanvasDrawsNodesAndEdges(t *testing.T) {
	_, out := drawPlain(canvasDiagram(t), toggle.Absent[int](), 0, false)

	for _, want := range []string{"Query", "Embed", "text", "▶", "PHASE", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("canvas missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "╔") || strings.Contains(out, "┏") {
		t.Errorf("no node should be highlighted:\n%s", out)
	}
}

func TestCanvasSelectedAndFocusedBorders(t *testing.T) {
	d := canvasDiagram(t)

	_, out := drawPlain(d, toggle.Chosen(0), 1, true)
	if !strings.Contains(out, "╔") {
		t.Errorf("selected node should use the double border:\n%s", out)
	}
	if !strings.Contains(out, "┏") {
		t.Errorf("focused node should use the thick border:\n%s", out)
	}

	// Selection wins over focus on the same node.
	_, out = drawPlain(d, toggle.Chosen(1), 1, true)
	if strings.Contains(out, "┏") {
		t.Errorf("selected focused node should not use the thick border:\n%s", out)
	}
}

func TestCanvasIndexAt(t *testing.T) {
	c, _ := drawPlain(canvasDiagram(t), toggle.Absent[int](), 0, false)

	tests := []struct {
		col, row int
		want     int
		ok       bool
	}{
		{col: 5, row: 2, want: 0, ok: true},
		{col: 1, row: 1, want: 0, ok: true}, // border counts
		{col: 25, row: 3, want: 1, ok: true},
		{col: 15, row: 2, ok: false},
		{col: 5, row: 8, ok: false},
		{col: -1, row: -1, ok: false},
	}
	for _, tt := range tests {
		got, ok := c.IndexAt(tt.col, tt.row)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("IndexAt(%d,%d) = %d,%v; want %d,%v", tt.col, tt.row, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanvasIndexAtAgreesWithSceneHitTest(t *testing.T) {
	d := canvasDiagram(t)
	c, _ := drawPlain(d, toggle.Absent[int](), 0, false)
	sc := scene.Build(d, toggle.Absent[int]())

	if x, y := c.Pixel(3, 2); x != 30 || y != 40 {
		t.Errorf("Pixel(3,2) = %v,%v; want 30,40", x, y)
	}
	hits := 0
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			want, ok := sc.HitTest(c.Pixel(col, row))
			if !ok {
				continue
			}
			hits++
			if got, gotOK := c.IndexAt(col, row); !gotOK || got != want {
				t.Errorf("IndexAt(%d,%d) = %d,%v; scene hit %d", col, row, got, gotOK, want)
			}
		}
	}
	if hits == 0 {
		t.Fatal("no cell centre landed inside a node")
	}
	if _, ok := c.IndexAt(c.cols, 0); ok {
		t.Error("cells past the canvas should miss")
	}
}

func TestCanvasLaterNodeWinsOverlap(t *testing.T) {
	d, err := catalog.NewDiagram(catalog.DiagramSpec{
		ID:     "overlap",
		Width:  200,
		Height: 100,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 0, Y: 0, W: 100, H: 80}, Label: "A", DetailKey: "a"},
			{Index: 1, Rect: catalog.Rect{X: 50, Y: 0, W: 100, H: 80}, Label: "B", DetailKey: "b"},
		},
		Details: []catalog.DetailRecord{{Key: "a", Name: "A"}, {Key: "b", Name: "B"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c, _ := drawPlain(d, toggle.Absent[int](), 0, false)
	if got, ok := c.IndexAt(8, 2); !ok || got != 1 {
		t.Errorf("IndexAt in overlap = %d,%v; want 1", got, ok)
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := newCanvas(100, 20, 10, 20)
	used := c.text(0, 0, "日本x", catalog.ColorText, false)
	if used != 5 {
		t.Errorf("used = %d, want 5", used)
	}
	if c.cells[0][1].r != 0 {
		t.Error("right half of a wide rune should be a placeholder")
	}
	if got := c.Plain(); got != "日本x" {
		t.Errorf("Plain = %q", got)
	}
}

func TestCanvasShortDecorationInline(t *testing.T) {
	c := newCanvas(200, 100, 10, 20)
	c.decoration(catalog.Decoration{Shape: catalog.ShapePill, Rect: catalog.Rect{X: 10, Y: 40, W: 120, H: 16}, Label: "loop"})
	if !strings.Contains(c.Plain(), "(loop)") {
		t.Errorf("short pill should render inline:\n%s", c.Plain())
	}
}

func TestCanvasStackedEdgeGoesDown(t *testing.T) {
	d, err := catalog.NewDiagram(catalog.DiagramSpec{
		ID:     "stack",
		Width:  200,
		Height: 300,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 20, Y: 20, W: 100, H: 60}, Label: "Top", DetailKey: "t"},
			{Index: 1, Rect: catalog.Rect{X: 20, Y: 200, W: 100, H: 60}, Label: "Bottom", DetailKey: "b"},
		},
		Details:    []catalog.DetailRecord{{Key: "t", Name: "Top"}, {Key: "b", Name: "Bottom"}},
		Connectors: []catalog.Connector{{From: 0, To: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, out := drawPlain(d, toggle.Absent[int](), 0, false)
	if !strings.Contains(out, "│") || !strings.Contains(out, "▼") {
		t.Errorf("stacked edge should be drawn downwards:\n%s", out)
	}
}

func TestBuiltinDiagramsRender(t *testing.T) {
	theme := TestTheme()
	for _, d := range content.Default().Diagrams() {
		v := NewDiagramView(d, 16, nil)
		lines := v.Render(theme, 100, true)
		if len(lines) == 0 {
			t.Errorf("%s: empty render", d.ID())
		}
		plain := plainText(v, 100)
		for _, l := range strings.Split(plain, "\n") {
			if w := len([]rune(l)); w > 100 {
				t.Errorf("%s: line wider than 100 columns (%d)", d.ID(), w)
			}
		}
		for _, n := range d.Nodes().Nodes() {
			first := n.LabelLines()[0]
			if !strings.Contains(plain, first) {
				t.Errorf("%s: node %d label %q not drawn", d.ID(), n.Index, first)
			}
		}
	}
}

func TestDiagramViewToggleAndFocus(t *testing.T) {
	d := canvasDiagram(t)
	var reported error
	v := NewDiagramView(d, 16, func(err error) { reported = err })

	if i, ok := v.Focused(); !ok || i != 0 {
		t.Fatalf("Focused = %d,%v; want 0", i, ok)
	}
	v.MoveFocus(1)
	if i, _ := v.Focused(); i != 1 {
		t.Errorf("after MoveFocus(1) focus = %d, want 1", i)
	}

	if _, err := v.Toggle(0); err != nil {
		t.Fatal(err)
	}
	if i, _ := v.Focused(); i != 0 {
		t.Errorf("toggle should move focus to the clicked node, got %d", i)
	}
	if !v.Panel().Visible {
		t.Error("panel should be visible after selecting")
	}

	if _, err := v.Toggle(7); err == nil {
		t.Error("expected error for index 7")
	}
	if reported == nil {
		t.Error("onInvalid not called")
	}
	if !v.Selection().Is(0) {
		t.Errorf("invalid toggle changed selection to %v", v.Selection())
	}
}
