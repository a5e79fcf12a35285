package ui

import (
	"math"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/scene"

	"github.com/mattn/go-runewidth"
)

// cellAspect is the width of a terminal cell relative to its height.
const cellAspect = 0.45

type cell struct {
	r     rune // 0 marks the right half of a wide rune
	color catalog.Color
	bold  bool
	solid bool // part of a shape or text; lines do not overwrite it
}

// region is a node's hit area in cells, bounds inclusive.
type region struct {
	index          int
	c0, r0, c1, r1 int
}

func (r region) contains(col, row int) bool {
	return col >= r.c0 && col <= r.c1 && row >= r.r0 && row <= r.r1
}

type borderSet struct{ h, v, tl, tr, bl, br rune }

var (
	lightBorder  = borderSet{'─', '│', '┌', '┐', '└', '┘'}
	roundBorder  = borderSet{'─', '│', '╭', '╮', '╰', '╯'}
	dashedBorder = borderSet{'╌', '╎', '┌', '┐', '└', '┘'}
	thickBorder  = borderSet{'━', '┃', '┏', '┓', '┗', '┛'}
	doubleBorder = borderSet{'═', '║', '╔', '╗', '╚', '╝'}
)

// Canvas rasterises a scene onto a grid of terminal cells.
type Canvas struct {
	cols, rows   int
	colPx, rowPx float64
	cells        [][]cell
	regions      []region
	scene        scene.Scene
}

func newCanvas(width, height, colPx, rowPx float64) *Canvas {
	c := &Canvas{
		cols:  int(math.Ceil(width/colPx)) + 1,
		rows:  int(math.Ceil(height/rowPx)) + 1,
		colPx: colPx,
		rowPx: rowPx,
	}
	c.cells = make([][]cell, c.rows)
	for i := range c.cells {
		row := make([]cell, c.cols)
		for j := range row {
			row[j].r = ' '
		}
		c.cells[i] = row
	}
	return c
}

func (c *Canvas) col(x float64) int { return int(math.Round(x / c.colPx)) }
func (c *Canvas) row(y float64) int { return int(math.Round(y / c.rowPx)) }

func (c *Canvas) inside(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *Canvas) set(col, row int, r rune, color catalog.Color, bold, solid bool) {
	if !c.inside(col, row) {
		return
	}
	c.cells[row][col] = cell{r: r, color: color, bold: bold, solid: solid}
}

// text writes s starting at (col, row); it returns the number of cells used.
func (c *Canvas) text(col, row int, s string, color catalog.Color, bold bool) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(col+used, row, r, color, bold, true)
		if w == 2 {
			c.set(col+used+1, row, 0, color, bold, true)
		}
		used += w
	}
	return used
}

// centered writes s centred between columns c0 and c1 inclusive.
func (c *Canvas) centered(c0, c1, row int, s string, color catalog.Color, bold bool) {
	width := c1 - c0 + 1
	s = truncate(s, width)
	pad := (width - runewidth.StringWidth(s)) / 2
	c.text(c0+pad, row, s, color, bold)
}

// box draws a border and blanks its interior.
func (c *Canvas) box(c0, r0, c1, r1 int, b borderSet, color catalog.Color, bold bool) {
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			var r rune
			switch {
			case row == r0 && col == c0:
				r = b.tl
			case row == r0 && col == c1:
				r = b.tr
			case row == r1 && col == c0:
				r = b.bl
			case row == r1 && col == c1:
				r = b.br
			case row == r0 || row == r1:
				r = b.h
			case col == c0 || col == c1:
				r = b.v
			default:
				c.set(col, row, ' ', "", false, false)
				continue
			}
			c.set(col, row, r, color, bold, true)
		}
	}
}

// boxContent centres label lines and an optional sub label inside a box,
// dropping lines when the box is too short.
func (c *Canvas) boxContent(c0, r0, c1, r1 int, lines []string, sub string, color catalog.Color, bold bool) {
	rows := r1 - r0 - 1
	if rows <= 0 {
		return
	}
	var out []string
	var subAt = -1
	switch {
	case rows >= len(lines)+1 && sub != "":
		out = append(out, lines...)
		subAt = len(out)
		out = append(out, sub)
	case rows >= len(lines):
		out = lines
	default:
		out = []string{strings.Join(lines, " ")}
	}
	top := r0 + 1 + (rows-len(out))/2
	for i, l := range out {
		if i == subAt {
			c.centered(c0+1, c1-1, top+i, l, catalog.ColorMuted, false)
			continue
		}
		c.centered(c0+1, c1-1, top+i, l, color, bold)
	}
}

// rectCells converts a rectangle to cell bounds at least 3x3.
func (c *Canvas) rectCells(r catalog.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = c.col(r.X), c.row(r.Y)
	c1, r1 = c.col(r.X+r.W), c.row(r.Y+r.H)
	if c1 < c0+2 {
		c1 = c0 + 2
	}
	if r1 < r0+2 {
		r1 = r0 + 2
	}
	return c0, r0, c1, r1
}

type cellPoint struct{ col, row int }

// trace returns the cells on the straight segment between two cells.
func trace(a, b cellPoint) []cellPoint {
	dx, dy := abs(b.col-a.col), -abs(b.row-a.row)
	sx, sy := sign(b.col-a.col), sign(b.row-a.row)
	err := dx + dy
	p := a
	out := []cellPoint{p}
	for p != b {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.col += sx
		}
		if e2 <= dx {
			err += dx
			p.row += sy
		}
		out = append(out, p)
	}
	return out
}

func lineRune(dc, dr int, dashed bool) rune {
	switch {
	case dr == 0:
		if dashed {
			return '╌'
		}
		return '─'
	case dc == 0:
		if dashed {
			return '╎'
		}
		return '│'
	case dc*dr > 0:
		return '╲'
	default:
		return '╱'
	}
}

func headRune(dc, dr int) rune {
	if abs(dc) >= abs(dr)*2 {
		if dc > 0 {
			return '▶'
		}
		return '◀'
	}
	if dr > 0 {
		return '▼'
	}
	return '▲'
}

// path strokes a polyline through cell points. The last cell is left for
// the shape the path ends on; the arrow head goes on the cell before it.
func (c *Canvas) path(pts []cellPoint, dashed, arrow bool, color catalog.Color) {
	var cells []cellPoint
	for i := 0; i+1 < len(pts); i++ {
		seg := trace(pts[i], pts[i+1])
		if i > 0 {
			seg = seg[1:]
		}
		cells = append(cells, seg...)
	}
	if len(cells) == 0 {
		return
	}
	for i, p := range cells {
		var prev, next cellPoint
		if i > 0 {
			prev = cells[i-1]
		} else {
			prev = p
		}
		if i+1 < len(cells) {
			next = cells[i+1]
		} else {
			next = p
		}
		if c.inside(p.col, p.row) && c.cells[p.row][p.col].solid {
			continue
		}
		r := lineRune(next.col-prev.col, next.row-prev.row, dashed)
		if in, out := (cellPoint{p.col - prev.col, p.row - prev.row}), (cellPoint{next.col - p.col, next.row - p.row}); isTurn(in, out) {
			r = cornerRune(in, out)
		}
		if dashed && r != '╌' && r != '╎' && i%2 == 1 {
			continue
		}
		c.set(p.col, p.row, r, color, false, false)
	}
	if arrow && len(cells) >= 2 {
		h := cells[len(cells)-2]
		last := cells[len(cells)-1]
		from := cells[0]
		if len(cells) >= 3 {
			from = cells[len(cells)-3]
		}
		if c.inside(h.col, h.row) && !c.cells[h.row][h.col].solid {
			c.set(h.col, h.row, headRune(last.col-from.col, last.row-from.row), color, true, false)
		}
	}
}

func isTurn(in, out cellPoint) bool {
	return (in.row == 0 && in.col != 0 && out.col == 0 && out.row != 0) ||
		(in.col == 0 && in.row != 0 && out.row == 0 && out.col != 0)
}

func cornerRune(in, out cellPoint) rune {
	switch {
	case in.row > 0 && out.col > 0, in.col < 0 && out.row < 0:
		return '╰'
	case in.row > 0 && out.col < 0, in.col > 0 && out.row < 0:
		return '╯'
	case in.row < 0 && out.col > 0, in.col < 0 && out.row > 0:
		return '╭'
	default:
		return '╮'
	}
}

// route builds an orthogonal path between two anchors: straight when they
// share a row or column, otherwise bending once halfway along the exit
// direction.
func (c *Canvas) route(e scene.EdgeView) []cellPoint {
	a := cellPoint{c.col(e.X1), c.row(e.Y1)}
	b := cellPoint{c.col(e.X2), c.row(e.Y2)}
	if a.col == b.col || a.row == b.row {
		return []cellPoint{a, b}
	}
	if e.Vertical {
		m := (a.row + b.row) / 2
		return []cellPoint{a, {a.col, m}, {b.col, m}, b}
	}
	m := (a.col + b.col) / 2
	return []cellPoint{a, {m, a.row}, {m, b.row}, b}
}

// label writes s next to the middle segment of a path.
func (c *Canvas) label(pts []cellPoint, s string, color catalog.Color) {
	if s == "" || len(pts) < 2 {
		return
	}
	i := (len(pts) - 1) / 2
	a, b := pts[i], pts[i+1]
	s = " " + s + " "
	w := runewidth.StringWidth(s)
	if a.row == b.row {
		mid := (a.col + b.col) / 2
		c.text(mid-w/2, a.row, s, color, false)
		return
	}
	c.text((a.col+b.col)/2+1, (a.row+b.row)/2, s, color, false)
}

func (c *Canvas) decoration(d catalog.Decoration) {
	color := d.Color
	if color == "" {
		color = catalog.ColorMuted
	}
	switch d.Shape {
	case catalog.ShapeText:
		row := int(math.Floor((d.Rect.Y - 4) / c.rowPx))
		for i, l := range d.LabelLines() {
			c.text(c.col(d.Rect.X), row+i, l, color, true)
		}
	case catalog.ShapeLine, catalog.ShapeArrow:
		pts := make([]cellPoint, 0, len(d.Points))
		for _, p := range d.Points {
			pts = append(pts, cellPoint{c.col(p.X), c.row(p.Y)})
		}
		c.path(pts, d.Dashed, d.Shape == catalog.ShapeArrow, color)
		c.label(pts, d.Label, color)
	default:
		c0, r0, c1, r1 := c.rectCells(d.Rect)
		if c.row(d.Rect.Y+d.Rect.H)-c.row(d.Rect.Y) < 2 {
			// Too short for a border: draw it inline.
			open, closing := "[", "]"
			if d.Shape == catalog.ShapePill || d.Shape == catalog.ShapeEllipse {
				open, closing = "(", ")"
			}
			_, cy := d.Rect.Center()
			c.centered(c0, c.col(d.Rect.X+d.Rect.W), c.row(cy), open+d.Label+closing, color, false)
			return
		}
		b := lightBorder
		switch {
		case d.Dashed:
			b = dashedBorder
		case d.Shape == catalog.ShapePill || d.Shape == catalog.ShapeEllipse:
			b = roundBorder
		}
		c.box(c0, r0, c1, r1, b, color, false)
		c.boxContent(c0, r0, c1, r1, d.LabelLines(), d.SubLabel, color, d.Shape == catalog.ShapeEllipse)
	}
}

// Draw rasterises s. focus, when set, marks the keyboard cursor.
func (c *Canvas) Draw(s scene.Scene, focus int, hasFocus bool) {
	for _, d := range s.Decorations {
		c.decoration(d)
	}
	type labelled struct {
		pts   []cellPoint
		label string
		color catalog.Color
	}
	var labels []labelled
	for _, e := range s.Edges {
		pts := c.route(e)
		c.path(pts, e.Style == catalog.LineDashed, true, e.Color)
		labels = append(labels, labelled{pts, e.Label, e.Color})
	}
	for _, l := range labels {
		c.label(l.pts, l.label, l.color)
	}
	c.scene = s
	c.regions = c.regions[:0]
	for _, n := range s.Nodes {
		c0, r0, c1, r1 := c.rectCells(n.Rect)
		b := roundBorder
		switch {
		case n.Selected:
			b = doubleBorder
		case hasFocus && n.Index == focus:
			b = thickBorder
		}
		c.box(c0, r0, c1, r1, b, n.Color, n.Selected)
		c.boxContent(c0, r0, c1, r1, n.Lines, n.SubLabel, n.Color, true)
		c.regions = append(c.regions, region{index: n.Index, c0: c0, r0: r0, c1: c1, r1: r1})
	}
}

// Pixel returns the diagram coordinates at the centre of a cell.
func (c *Canvas) Pixel(col, row int) (x, y float64) {
	return float64(col) * c.colPx, float64(row) * c.rowPx
}

// IndexAt returns the node drawn at (col, row). The cell centre is hit
// tested against the node rectangles first; border cells that rounding
// pushed outside a rectangle fall back to the drawn box. Later nodes win.
func (c *Canvas) IndexAt(col, row int) (int, bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	if i, ok := c.scene.HitTest(c.Pixel(col, row)); ok {
		return i, true
	}
	for i := len(c.regions) - 1; i >= 0; i-- {
		if c.regions[i].contains(col, row) {
			return c.regions[i].index, true
		}
	}
	return 0, false
}

// Lines returns the canvas as styled text, one string per row.
func (c *Canvas) Lines(t Theme) []string {
	out := make([]string, 0, c.rows)
	for _, row := range c.cells {
		end := len(row)
		for end > 0 && row[end-1].r == ' ' {
			end--
		}
		var b strings.Builder
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.color == "" && !cur.bold {
				b.WriteString(run.String())
			} else {
				b.WriteString(t.TokenStyle(cur.color).Bold(cur.bold).Render(run.String()))
			}
			run.Reset()
		}
		for i := 0; i < end; i++ {
			cl := row[i]
			if cl.r == 0 {
				continue
			}
			if cl.r == ' ' {
				cl.color, cl.bold = "", false
			}
			if cl.color != cur.color || cl.bold != cur.bold {
				flush()
				cur = cl
			}
			run.WriteRune(cl.r)
		}
		flush()
		out = append(out, b.String())
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
