// Package export renders diagrams, with their current selection and
// disclosure state, to static files: SVG, PNG, JSON scene descriptions,
// Mermaid flowcharts, Markdown and self-contained HTML pages.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/debug"
	"github.com/vanderheijden86/archguide/pkg/metrics"
	"github.com/vanderheijden86/archguide/pkg/scene"
	"github.com/vanderheijden86/archguide/pkg/toggle"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"
)

// Supported output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatJSON     = "json"
	FormatHTML     = "html"
	FormatMarkdown = "md"
	FormatMermaid  = "mmd"
)

// Formats lists the supported formats in menu order.
var Formats = []string{FormatSVG, FormatPNG, FormatHTML, FormatJSON, FormatMarkdown, FormatMermaid}

// ErrUnsupportedFormat is returned for formats not in Formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options controls a single diagram export.
type Options struct {
	Path      string                          // Output path; format inferred from extension when Format empty
	Format    string                          // One of Formats (case-insensitive). If empty, inferred from Path.
	Title     string                          // Optional heading above the diagram
	Preset    string                          // "compact" (default) or "roomy"; roomy doubles PNG resolution
	Diagram   *catalog.Diagram                // Diagram to render
	Selection toggle.State[int]               // Selected node, drawn highlighted with its detail panel
	Questions []*catalog.QAList               // Question lists included by the HTML and Markdown formats
	Open      map[string]toggle.State[string] // Open entry per question list id
}

// SaveDiagram renders one diagram to opts.Path.
func SaveDiagram(opts Options) error {
	defer metrics.Timer(metrics.Export)()
	if opts.Diagram == nil {
		return fmt.Errorf("no diagram to export")
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format, err := resolveFormat(&opts)
	if err != nil {
		return err
	}
	opts.Format = format

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	if err := Render(file, opts); err != nil {
		_ = file.Close()
		return err
	}
	debug.Log("export: wrote %s (%s)", opts.Path, format)
	return file.Close()
}

// resolveFormat normalises opts.Format, inferring it from the path when
// empty. A path without extension gets ".svg" appended.
func resolveFormat(opts *Options) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(opts.Path), "."))
		switch {
		case ext == "":
			format = FormatSVG
			if opts.Path != "" {
				opts.Path += ".svg"
			}
		case ext == "htm":
			format = FormatHTML
		case ext == "markdown":
			format = FormatMarkdown
		case ext == "mermaid":
			format = FormatMermaid
		default:
			format = ext
		}
	}
	for _, f := range Formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
}

// Render writes the export to w. An empty Format means SVG.
func Render(w io.Writer, opts Options) error {
	if opts.Diagram == nil {
		return fmt.Errorf("no diagram to export")
	}
	format, err := resolveFormat(&Options{Format: opts.Format, Path: "x.svg"})
	if err != nil {
		return err
	}
	layout := buildLayout(opts)

	switch format {
	case FormatSVG:
		return renderSVGToWriter(w, layout)
	case FormatPNG:
		return renderPNGToWriter(w, layout, presetScale(opts.Preset))
	case FormatJSON:
		return renderJSON(w, opts, layout)
	case FormatHTML:
		return renderHTML(w, opts, layout)
	case FormatMarkdown:
		return renderMarkdown(w, opts, layout)
	case FormatMermaid:
		return renderMermaid(w, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

func presetScale(preset string) float64 {
	if strings.EqualFold(preset, "roomy") {
		return 2
	}
	return 1
}

// --- layout computation ----------------------------------------------------

type lineKind int

const (
	lineHeading lineKind = iota
	lineBody
	lineLabel
	lineBullet
	lineGap
)

type panelLine struct {
	Kind lineKind
	Text string
}

type layoutResult struct {
	Title      string
	Scene      scene.Scene
	Panel      scene.Panel
	Width      int
	Height     int
	OffsetX    float64
	OffsetY    float64
	FooterY    float64
	PanelTop   float64
	PanelH     float64
	PanelLines []panelLine
}

const (
	margin        = 20.0
	titleHeight   = 36.0
	footerHeight  = 40.0
	panelLineH    = 16.0
	panelPadding  = 14.0
	panelWrapCols = 88
)

func buildLayout(opts Options) layoutResult {
	sc := scene.Build(opts.Diagram, opts.Selection)
	panel := scene.BuildPanel(opts.Diagram, opts.Selection)

	l := layoutResult{
		Title:   strings.TrimSpace(opts.Title),
		Scene:   sc,
		Panel:   panel,
		OffsetX: margin,
		OffsetY: margin,
	}
	if l.Title != "" {
		l.OffsetY += titleHeight
	}
	l.FooterY = l.OffsetY + sc.Height + 8
	bottom := l.FooterY + footerHeight

	if panel.Visible {
		l.PanelLines = panelLines(panel)
		l.PanelTop = bottom
		l.PanelH = float64(len(l.PanelLines))*panelLineH + 2*panelPadding
		bottom += l.PanelH + margin
	}

	l.Width = int(math.Ceil(sc.Width + 2*margin))
	l.Height = int(math.Ceil(bottom))
	return l
}

func panelLines(p scene.Panel) []panelLine {
	lines := []panelLine{{Kind: lineHeading, Text: p.Name}}
	for _, s := range wrap(p.Description, panelWrapCols) {
		lines = append(lines, panelLine{Kind: lineBody, Text: s})
	}
	if p.HasExample() {
		lines = append(lines, panelLine{Kind: lineGap}, panelLine{Kind: lineLabel, Text: "EXAMPLE"})
		for _, s := range wrap(p.Example, panelWrapCols) {
			lines = append(lines, panelLine{Kind: lineBody, Text: s})
		}
	}
	if len(p.Techniques) > 0 {
		lines = append(lines, panelLine{Kind: lineGap}, panelLine{Kind: lineLabel, Text: "KEY TECHNIQUES"})
		for _, t := range p.Techniques {
			lines = append(lines, panelLine{Kind: lineBullet, Text: "• " + t})
		}
	}
	return lines
}

// wrap breaks s into lines no wider than cols display cells.
func wrap(s string, cols int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) > cols {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}

// arrowHead returns the three corners of an arrow head pointing from
// (x1, y1) towards (x2, y2), with its tip at (x2, y2).
func arrowHead(x1, y1, x2, y2 float64) (xs, ys [3]float64) {
	const length, half = 8.0, 4.0
	theta := math.Atan2(y2-y1, x2-x1)
	cos, sin := math.Cos(theta), math.Sin(theta)
	bx, by := x2-length*cos, y2-length*sin
	return [3]float64{x2, bx + half*sin, bx - half*sin},
		[3]float64{y2, by - half*cos, by + half*cos}
}

// control returns the quadratic control point for a curved edge.
func control(e scene.EdgeView) (float64, float64) {
	return e.X1, e.Y2
}

func midpoint(points []catalog.Point) (float64, float64) {
	first, last := points[0], points[len(points)-1]
	return (first.X + last.X) / 2, (first.Y + last.Y) / 2
}

// --- colors ----------------------------------------------------------------

var (
	colorBackdrop   = hexColor(content.HexBackground)
	colorSurface    = hexColor(content.HexSurface)
	colorSurfaceAlt = hexColor(content.HexSurfaceAlt)
	colorBorder     = hexColor(content.HexBorder)
	colorBody       = hexColor(content.HexTextBody)
	colorSubtle     = hexColor(content.HexTextMuted)
	colorFaint      = hexColor(content.HexTextLight)

	// colorFallback is #999999; hexColor returns it for malformed input.
	colorFallback = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

const (
	fontSerif = "'Libre Baskerville',Georgia,serif"
	fontSans  = "'Source Sans 3','Helvetica Neue',sans-serif"
	fontMono  = "'IBM Plex Mono',Menlo,monospace"
)

func tokenColor(c catalog.Color) color.RGBA {
	return hexColor(content.Hex(c))
}

func hexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return colorFallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// tint mixes c over white at the given opacity.
func tint(c color.RGBA, alpha float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(255 - (255-float64(v))*alpha))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xff}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// --- SVG -------------------------------------------------------------------

func renderSVGToWriter(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, layout.Width, layout.Height))
	canvas.Title(titleOr(layout))
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	if layout.Title != "" {
		canvas.Text(int(margin), int(margin+18), layout.Title,
			fmt.Sprintf("fill:%s;font-size:18px;font-family:%s", css(tokenColor(catalog.ColorText)), fontSerif))
	}

	sc := layout.Scene
	canvas.Roundrect(int(layout.OffsetX), int(layout.OffsetY), int(sc.Width), int(sc.Height), 2, 2,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorSurface), css(colorBorder)))
	canvas.Translate(int(layout.OffsetX), int(layout.OffsetY))
	for _, d := range sc.Decorations {
		drawDecorationSVG(canvas, d)
	}
	for _, e := range sc.Edges {
		drawEdgeSVG(canvas, e)
	}
	for _, n := range sc.Nodes {
		drawNodeSVG(canvas, n)
	}
	canvas.Gend()

	cx := layout.Width / 2
	if sc.Caption != "" {
		canvas.Text(cx, int(layout.FooterY+14), sc.Caption,
			fmt.Sprintf("fill:%s;font-size:11px;font-style:italic;font-family:%s;text-anchor:middle", css(colorSubtle), fontSans))
	}
	if sc.Hint != "" {
		canvas.Text(cx, int(layout.FooterY+30), sc.Hint,
			fmt.Sprintf("fill:%s;font-size:9px;font-family:%s;text-anchor:middle", css(colorFaint), fontMono))
	}

	if layout.Panel.Visible {
		drawPanelSVG(canvas, layout)
	}

	canvas.End()
	return nil
}

func titleOr(layout layoutResult) string {
	if layout.Title != "" {
		return layout.Title
	}
	if layout.Scene.Title != "" {
		return layout.Scene.Title
	}
	return layout.Scene.DiagramID
}

func drawNodeSVG(canvas *svg.SVG, n scene.NodeView) {
	c := tokenColor(n.Color)
	x, y, w, h := int(n.Rect.X), int(n.Rect.Y), int(n.Rect.W), int(n.Rect.H)

	class := "node"
	fill, stroke := colorSurface, 1.2
	if n.Selected {
		class = "node selected"
		fill, stroke = tint(c, 0.08), 2
	}
	canvas.Group(fmt.Sprintf(`id="node-%d"`, n.Index), fmt.Sprintf(`class="%s"`, class),
		fmt.Sprintf(`data-index="%d"`, n.Index))
	canvas.Roundrect(x, y, w, h, 4, 4,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", css(fill), css(c), stroke))
	if n.Selected {
		canvas.Roundrect(x-3, y-3, w+6, h+6, 6, 6,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:5 3", css(c)))
	}

	top := y + 18
	if n.Rect.H >= 55 {
		top = y + 20
	}
	for i, line := range n.Lines {
		canvas.Text(x+w/2, top+i*14, line,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:%s;text-anchor:middle", css(c), fontSerif))
	}
	if n.SubLabel != "" {
		canvas.Text(x+w/2, y+h-6, n.SubLabel,
			fmt.Sprintf("fill:%s;font-size:8px;font-family:%s;text-anchor:middle", css(colorFaint), fontMono))
	}
	canvas.Gend()
}

func strokeStyle(c color.RGBA, width float64, dashed bool) string {
	s := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", css(c), width)
	if dashed {
		s += ";stroke-dasharray:4 3"
	}
	return s
}

func drawArrowSVG(canvas *svg.SVG, x1, y1, x2, y2 float64, c color.RGBA) {
	xs, ys := arrowHead(x1, y1, x2, y2)
	canvas.Polygon(
		[]int{int(xs[0]), int(xs[1]), int(xs[2])},
		[]int{int(ys[0]), int(ys[1]), int(ys[2])},
		fmt.Sprintf("fill:%s", css(c)),
	)
}

func drawEdgeSVG(canvas *svg.SVG, e scene.EdgeView) {
	c := tokenColor(e.Color)
	style := strokeStyle(c, 1.2, e.Style == catalog.LineDashed)
	fromX, fromY := e.X1, e.Y1
	if e.Curved {
		cx, cy := control(e)
		canvas.Qbez(int(e.X1), int(e.Y1), int(cx), int(cy), int(e.X2), int(e.Y2), style)
		fromX, fromY = cx, cy
	} else {
		canvas.Line(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2), style)
	}
	drawArrowSVG(canvas, fromX, fromY, e.X2, e.Y2, c)
	if e.Label != "" {
		canvas.Text(int((e.X1+e.X2)/2)+8, int((e.Y1+e.Y2)/2), e.Label,
			fmt.Sprintf("fill:%s;font-size:8px;font-family:%s", css(c), fontMono))
	}
}

func drawDecorationSVG(canvas *svg.SVG, d catalog.Decoration) {
	c := tokenColor(d.Color)
	r := d.Rect
	switch d.Shape {
	case catalog.ShapeText:
		canvas.Text(int(r.X), int(r.Y), d.Label,
			fmt.Sprintf("fill:%s;font-size:9px;letter-spacing:0.12em;font-family:%s", css(c), fontMono))
		return
	case catalog.ShapeArrow, catalog.ShapeLine:
		xs := make([]int, len(d.Points))
		ys := make([]int, len(d.Points))
		for i, p := range d.Points {
			xs[i], ys[i] = int(p.X), int(p.Y)
		}
		canvas.Polyline(xs, ys, strokeStyle(c, 1, d.Dashed))
		if d.Shape == catalog.ShapeArrow {
			a, b := d.Points[len(d.Points)-2], d.Points[len(d.Points)-1]
			drawArrowSVG(canvas, a.X, a.Y, b.X, b.Y, c)
		}
		if d.Label != "" {
			mx, my := midpoint(d.Points)
			canvas.Text(int(mx)+8, int(my), d.Label,
				fmt.Sprintf("fill:%s;font-size:7px;font-family:%s", css(c), fontMono))
		}
		return
	case catalog.ShapeEllipse:
		canvas.Ellipse(int(r.X+r.W/2), int(r.Y+r.H/2), int(r.W/2), int(r.H/2),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", css(tint(c, 0.03)), css(c)))
	case catalog.ShapePill:
		canvas.Roundrect(int(r.X), int(r.Y), int(r.W), int(r.H), int(r.H/2), int(r.H/2),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.7", css(colorSurfaceAlt), css(c)))
	default:
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.8", css(tint(c, 0.05)), css(c))
		if d.Dashed {
			style += ";stroke-dasharray:3 2"
		}
		canvas.Roundrect(int(r.X), int(r.Y), int(r.W), int(r.H), 3, 3, style)
	}

	lines := d.LabelLines()
	cx := int(r.X + r.W/2)
	y := r.Y + r.H/2 + 3 - float64(len(lines)-1)*7
	if d.SubLabel != "" {
		y -= 6
	}
	textColor := c
	if d.Shape == catalog.ShapePill {
		textColor = colorSubtle
	}
	for i, line := range lines {
		canvas.Text(cx, int(y)+i*14, line,
			fmt.Sprintf("fill:%s;font-size:9px;font-family:%s;text-anchor:middle", css(textColor), fontMono))
	}
	if d.SubLabel != "" {
		canvas.Text(cx, int(y)+len(lines)*14, d.SubLabel,
			fmt.Sprintf("fill:%s;font-size:8px;font-family:%s;text-anchor:middle", css(colorFaint), fontMono))
	}
}

func drawPanelSVG(canvas *svg.SVG, layout layoutResult) {
	c := tokenColor(layout.Panel.Color)
	x, y := int(margin), int(layout.PanelTop)
	w, h := layout.Width-2*int(margin), int(layout.PanelH)
	canvas.Group(`id="detail-panel"`)
	canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorSurface), css(c)))
	canvas.Rect(x, y, 3, h, fmt.Sprintf("fill:%s", css(c)))

	ty := float64(y) + panelPadding + 10
	for _, line := range layout.PanelLines {
		switch line.Kind {
		case lineHeading:
			canvas.Text(x+18, int(ty), line.Text,
				fmt.Sprintf("fill:%s;font-size:15px;font-family:%s", css(tokenColor(catalog.ColorText)), fontSerif))
		case lineLabel:
			canvas.Text(x+18, int(ty), line.Text,
				fmt.Sprintf("fill:%s;font-size:9px;letter-spacing:0.1em;font-family:%s", css(c), fontMono))
		case lineBody, lineBullet:
			canvas.Text(x+18, int(ty), line.Text,
				fmt.Sprintf("fill:%s;font-size:12px;font-family:%s", css(colorBody), fontSans))
		}
		ty += panelLineH
	}
	canvas.Gend()
}

// --- PNG -------------------------------------------------------------------

func renderPNGToWriter(w io.Writer, layout layoutResult, scale float64) error {
	dc := gg.NewContext(int(float64(layout.Width)*scale), int(float64(layout.Height)*scale))
	dc.Scale(scale, scale)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if layout.Title != "" {
		dc.SetColor(tokenColor(catalog.ColorText))
		dc.DrawStringAnchored(layout.Title, margin, margin+12, 0, 0.5)
	}

	sc := layout.Scene
	dc.SetColor(colorSurface)
	dc.DrawRectangle(layout.OffsetX, layout.OffsetY, sc.Width, sc.Height)
	dc.Fill()
	dc.SetColor(colorBorder)
	dc.SetLineWidth(1)
	dc.DrawRectangle(layout.OffsetX, layout.OffsetY, sc.Width, sc.Height)
	dc.Stroke()

	dc.Push()
	dc.Translate(layout.OffsetX, layout.OffsetY)
	for _, d := range sc.Decorations {
		drawDecoration(dc, d)
	}
	for _, e := range sc.Edges {
		drawEdge(dc, e)
	}
	for _, n := range sc.Nodes {
		drawNode(dc, n)
	}
	dc.Pop()

	cx := float64(layout.Width) / 2
	if sc.Caption != "" {
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(sc.Caption, cx, layout.FooterY+12, 0.5, 0.5)
	}
	if sc.Hint != "" {
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(sc.Hint, cx, layout.FooterY+28, 0.5, 0.5)
	}
	if layout.Panel.Visible {
		drawPanel(dc, layout)
	}

	return dc.EncodePNG(w)
}

func drawNode(dc *gg.Context, n scene.NodeView) {
	c := tokenColor(n.Color)
	r := n.Rect
	fill, stroke := colorSurface, 1.2
	if n.Selected {
		fill, stroke = tint(c, 0.08), 2
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 4)
	dc.Fill()
	dc.SetColor(c)
	dc.SetLineWidth(stroke)
	dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 4)
	dc.Stroke()
	if n.Selected {
		dc.SetDash(5, 3)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(r.X-3, r.Y-3, r.W+6, r.H+6, 6)
		dc.Stroke()
		dc.SetDash()
	}

	top := r.Y + 14
	if r.H >= 55 {
		top = r.Y + 16
	}
	dc.SetColor(c)
	for i, line := range n.Lines {
		dc.DrawStringAnchored(line, r.X+r.W/2, top+float64(i)*14, 0.5, 0.5)
	}
	if n.SubLabel != "" {
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(n.SubLabel, r.X+r.W/2, r.Y+r.H-9, 0.5, 0.5)
	}
}

func drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, c color.RGBA) {
	xs, ys := arrowHead(x1, y1, x2, y2)
	dc.SetColor(c)
	dc.NewSubPath()
	dc.MoveTo(xs[0], ys[0])
	dc.LineTo(xs[1], ys[1])
	dc.LineTo(xs[2], ys[2])
	dc.ClosePath()
	dc.Fill()
}

func setStroke(dc *gg.Context, c color.RGBA, width float64, dashed bool) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	if dashed {
		dc.SetDash(4, 3)
	} else {
		dc.SetDash()
	}
}

func drawEdge(dc *gg.Context, e scene.EdgeView) {
	c := tokenColor(e.Color)
	setStroke(dc, c, 1.2, e.Style == catalog.LineDashed)
	fromX, fromY := e.X1, e.Y1
	dc.NewSubPath()
	dc.MoveTo(e.X1, e.Y1)
	if e.Curved {
		cx, cy := control(e)
		dc.QuadraticTo(cx, cy, e.X2, e.Y2)
		fromX, fromY = cx, cy
	} else {
		dc.LineTo(e.X2, e.Y2)
	}
	dc.Stroke()
	dc.SetDash()
	drawArrow(dc, fromX, fromY, e.X2, e.Y2, c)
	if e.Label != "" {
		dc.SetColor(c)
		dc.DrawStringAnchored(e.Label, (e.X1+e.X2)/2+8, (e.Y1+e.Y2)/2, 0, 0.5)
	}
}

func drawDecoration(dc *gg.Context, d catalog.Decoration) {
	c := tokenColor(d.Color)
	r := d.Rect
	switch d.Shape {
	case catalog.ShapeText:
		dc.SetColor(c)
		dc.DrawStringAnchored(d.Label, r.X, r.Y, 0, 0)
		return
	case catalog.ShapeArrow, catalog.ShapeLine:
		setStroke(dc, c, 1, d.Dashed)
		dc.NewSubPath()
		dc.MoveTo(d.Points[0].X, d.Points[0].Y)
		for _, p := range d.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
		dc.SetDash()
		if d.Shape == catalog.ShapeArrow {
			a, b := d.Points[len(d.Points)-2], d.Points[len(d.Points)-1]
			drawArrow(dc, a.X, a.Y, b.X, b.Y, c)
		}
		if d.Label != "" {
			mx, my := midpoint(d.Points)
			dc.SetColor(c)
			dc.DrawStringAnchored(d.Label, mx+8, my, 0, 0.5)
		}
		return
	case catalog.ShapeEllipse:
		dc.SetColor(tint(c, 0.03))
		dc.DrawEllipse(r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2)
		dc.Fill()
		setStroke(dc, c, 1.5, false)
		dc.DrawEllipse(r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2)
		dc.Stroke()
	case catalog.ShapePill:
		dc.SetColor(colorSurfaceAlt)
		dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.H/2)
		dc.Fill()
		setStroke(dc, c, 0.7, false)
		dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, r.H/2)
		dc.Stroke()
	default:
		dc.SetColor(tint(c, 0.05))
		dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 3)
		dc.Fill()
		setStroke(dc, c, 0.8, d.Dashed)
		dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 3)
		dc.Stroke()
		dc.SetDash()
	}

	lines := d.LabelLines()
	n := len(lines)
	if d.SubLabel != "" {
		n++
	}
	y := r.Y + r.H/2 - float64(n-1)*7
	dc.SetColor(c)
	if d.Shape == catalog.ShapePill {
		dc.SetColor(colorSubtle)
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, r.X+r.W/2, y+float64(i)*14, 0.5, 0.5)
	}
	if d.SubLabel != "" {
		dc.SetColor(colorFaint)
		dc.DrawStringAnchored(d.SubLabel, r.X+r.W/2, y+float64(len(lines))*14, 0.5, 0.5)
	}
}

func drawPanel(dc *gg.Context, layout layoutResult) {
	c := tokenColor(layout.Panel.Color)
	x, y := margin, layout.PanelTop
	w, h := float64(layout.Width)-2*margin, layout.PanelH
	dc.SetColor(colorSurface)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()
	setStroke(dc, c, 1, false)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
	dc.SetColor(c)
	dc.DrawRectangle(x, y, 3, h)
	dc.Fill()

	ty := y + panelPadding + 6
	for _, line := range layout.PanelLines {
		switch line.Kind {
		case lineHeading:
			dc.SetColor(tokenColor(catalog.ColorText))
		case lineLabel:
			dc.SetColor(c)
		default:
			dc.SetColor(colorBody)
		}
		if line.Text != "" {
			dc.DrawStringAnchored(line.Text, x+18, ty, 0, 0.5)
		}
		ty += panelLineH
	}
}

// svgString renders the layout to an SVG string for embedding.
func svgString(layout layoutResult) (string, error) {
	var buf bytes.Buffer
	if err := renderSVGToWriter(&buf, layout); err != nil {
		return "", err
	}
	return buf.String(), nil
}
