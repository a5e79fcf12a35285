package ui

import (
	"math"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/metrics"
	"github.com/vanderheijden86/archguide/pkg/scene"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// NodeClickMsg asks the diagram view with the given id to toggle a node.
// Mouse clicks and the enter key both produce it.
type NodeClickMsg struct {
	Diagram string
	Index   int
}

// DiagramView is one on-screen instance of a diagram. It owns the
// selection store for that instance; a new view starts with nothing
// selected.
type DiagramView struct {
	diagram   *catalog.Diagram
	selection *toggle.Store[int]
	rowPx     float64

	focus    int
	hasFocus bool
	canvas   *Canvas
}

// NewDiagramView creates a view with an empty selection. rowPx is the
// number of diagram pixels per terminal row. Rejected clicks are passed to
// onInvalid.
func NewDiagramView(d *catalog.Diagram, rowPx int, onInvalid func(error)) *DiagramView {
	if rowPx <= 0 {
		rowPx = 16
	}
	opts := []toggle.Option[int]{}
	if onInvalid != nil {
		opts = append(opts, toggle.WithOnInvalid[int](onInvalid))
	}
	v := &DiagramView{
		diagram:   d,
		selection: d.NewSelection(opts...),
		rowPx:     float64(rowPx),
	}
	if idx := d.Nodes().Indices(); len(idx) > 0 {
		v.focus, v.hasFocus = idx[0], true
	}
	return v
}

func (v *DiagramView) ID() string                { return v.diagram.ID() }
func (v *DiagramView) Diagram() *catalog.Diagram { return v.diagram }

// Selection returns the current selection state.
func (v *DiagramView) Selection() toggle.State[int] {
	return v.selection.State()
}

// Interactive reports whether the diagram has clickable nodes.
func (v *DiagramView) Interactive() bool {
	return v.diagram.Nodes().Len() > 0
}

// Toggle applies a click on node index. An index outside the catalog
// leaves the selection unchanged and returns the diagnostic.
func (v *DiagramView) Toggle(index int) (toggle.State[int], error) {
	st, err := v.selection.Toggle(index)
	if err == nil {
		v.focus, v.hasFocus = index, true
	}
	return st, err
}

// Focused returns the node under the keyboard cursor.
func (v *DiagramView) Focused() (int, bool) {
	return v.focus, v.hasFocus
}

// MoveFocus moves the keyboard cursor dir steps through the nodes.
func (v *DiagramView) MoveFocus(dir int) {
	if !v.hasFocus {
		return
	}
	v.focus = v.Scene().Neighbor(v.focus, dir)
}

// Scene builds the scene for the current selection.
func (v *DiagramView) Scene() scene.Scene {
	return scene.Build(v.diagram, v.selection.State())
}

// Panel resolves the current selection into detail panel content.
func (v *DiagramView) Panel() scene.Panel {
	return scene.BuildPanel(v.diagram, v.selection.State())
}

// scale picks pixels per cell so the diagram fits in maxCols columns.
func (v *DiagramView) scale(maxCols int) (colPx, rowPx float64) {
	colPx = v.rowPx * cellAspect
	if maxCols > 1 {
		colPx = math.Max(colPx, v.diagram.Width()/float64(maxCols-1))
	}
	return colPx, colPx / cellAspect
}

// Render draws the diagram into at most maxCols columns. showFocus draws
// the keyboard cursor. The canvas is kept for hit testing.
func (v *DiagramView) Render(t Theme, maxCols int, showFocus bool) []string {
	defer metrics.Timer(metrics.CanvasRender)()
	colPx, rowPx := v.scale(maxCols)
	v.canvas = newCanvas(v.diagram.Width(), v.diagram.Height(), colPx, rowPx)
	v.canvas.Draw(v.Scene(), v.focus, showFocus && v.hasFocus)
	return v.canvas.Lines(t)
}

// IndexAt returns the node under a cell of the last rendered canvas.
func (v *DiagramView) IndexAt(col, row int) (int, bool) {
	if v.canvas == nil {
		return 0, false
	}
	return v.canvas.IndexAt(col, row)
}
