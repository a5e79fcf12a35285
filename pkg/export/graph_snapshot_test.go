package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

func testDiagram(t *testing.T, id string) *catalog.Diagram {
	t.Helper()
	d, ok := content.Default().Diagram(id)
	if !ok {
		t.Fatalf("built-in diagram %q missing", id)
	}
	return d
}

func renderString(t *testing.T, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, opts); err != nil {
		t.Fatalf("Render(%s): %v", opts.Format, err)
	}
	return buf.String()
}

func TestSVG_ValidXMLStructure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rag.svg")
	err := SaveDiagram(Options{
		Path:      out,
		Diagram:   testDiagram(t, "rag"),
		Selection: toggle.Chosen(3),
		Title:     "Retrieval-Augmented Generation",
	})
	if err != nil {
		t.Fatalf("SaveDiagram: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var root struct {
		XMLName xml.Name `xml:"svg"`
		Width   string   `xml:"width,attr"`
	}
	if err := xml.Unmarshal(data, &root); err != nil {
		t.Fatalf("SVG is not valid XML: %v\n%s", err, data)
	}
	if root.XMLName.Local != "svg" {
		t.Errorf("root element = %q", root.XMLName.Local)
	}
}

func TestSVG_HighlightsOnlySelectedNode(t *testing.T) {
	d := testDiagram(t, "agent")

	s := renderString(t, Options{Format: FormatSVG, Diagram: d, Selection: toggle.Chosen(2)})
	if n := strings.Count(s, `class="node selected"`); n != 1 {
		t.Errorf("expected one selected node, got %d", n)
	}
	if !strings.Contains(s, `id="node-2" class="node selected"`) {
		t.Error("node 2 not marked selected")
	}
	if !strings.Contains(s, `id="detail-panel"`) {
		t.Error("detail panel missing for a selection")
	}
	if !strings.Contains(s, "Tool Use") {
		t.Error("panel should show the detail record name")
	}

	s = renderString(t, Options{Format: FormatSVG, Diagram: d})
	if strings.Contains(s, `class="node selected"`) || strings.Contains(s, `id="detail-panel"`) {
		t.Error("absent selection should render no highlight and no panel")
	}
	if n := strings.Count(s, `class="node"`); n != d.Nodes().Len() {
		t.Errorf("rendered %d nodes, want %d", n, d.Nodes().Len())
	}
}

func TestSVG_EscapesText(t *testing.T) {
	s := renderString(t, Options{Format: FormatSVG, Diagram: testDiagram(t, "agent")})
	if !strings.Contains(s, "Short &amp; long-term") {
		t.Error("ampersand in sub label not escaped")
	}
}

func TestPNG_Dimensions(t *testing.T) {
	d := testDiagram(t, "rag")
	layout := buildLayout(Options{Diagram: d})

	for _, tt := range []struct {
		preset string
		scale  int
	}{
		{preset: "", scale: 1},
		{preset: "roomy", scale: 2},
	} {
		var buf bytes.Buffer
		if err := Render(&buf, Options{Format: FormatPNG, Preset: tt.preset, Diagram: d}); err != nil {
			t.Fatalf("Render png: %v", err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("decode png: %v", err)
		}
		b := img.Bounds()
		if b.Dx() != layout.Width*tt.scale || b.Dy() != layout.Height*tt.scale {
			t.Errorf("preset %q: size %dx%d, want %dx%d", tt.preset, b.Dx(), b.Dy(), layout.Width*tt.scale, layout.Height*tt.scale)
		}
	}
}

func TestLayoutGrowsForPanel(t *testing.T) {
	d := testDiagram(t, "agent")
	plain := buildLayout(Options{Diagram: d})
	selected := buildLayout(Options{Diagram: d, Selection: toggle.Chosen(1)})

	if plain.Panel.Visible || plain.PanelH != 0 {
		t.Errorf("no panel expected: %+v", plain.Panel)
	}
	if selected.Height <= plain.Height {
		t.Errorf("panel should add height: %d <= %d", selected.Height, plain.Height)
	}
	var bullets int
	for _, l := range selected.PanelLines {
		if l.Kind == lineBullet {
			bullets++
		}
	}
	if bullets != 4 {
		t.Errorf("planning panel should list 4 techniques, got %d", bullets)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path, format string
		want         string
		wantPath     string
		wantErr      bool
	}{
		{path: "out.svg", want: FormatSVG, wantPath: "out.svg"},
		{path: "out.PNG", want: FormatPNG, wantPath: "out.PNG"},
		{path: "out", want: FormatSVG, wantPath: "out.svg"},
		{path: "page.htm", want: FormatHTML, wantPath: "page.htm"},
		{path: "notes.markdown", want: FormatMarkdown, wantPath: "notes.markdown"},
		{path: "flow.mmd", want: FormatMermaid, wantPath: "flow.mmd"},
		{path: "scene.txt", format: ".JSON", want: FormatJSON, wantPath: "scene.txt"},
		{path: "out.gif", wantErr: true},
	}
	for _, tt := range tests {
		opts := Options{Path: tt.path, Format: tt.format}
		got, err := resolveFormat(&opts)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("%s: err = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want || opts.Path != tt.wantPath {
			t.Errorf("%s: got %q, path %q, err %v", tt.path, got, opts.Path, err)
		}
	}
}

func TestSaveDiagramValidatesOptions(t *testing.T) {
	if err := SaveDiagram(Options{Path: "x.svg"}); err == nil {
		t.Error("expected error without diagram")
	}
	if err := SaveDiagram(Options{Diagram: testDiagram(t, "rag")}); err == nil {
		t.Error("expected error without path")
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", lines, want)
	}
	if wrap("   ", 10) != nil {
		t.Error("blank text should wrap to nothing")
	}
}

func TestArrowHead(t *testing.T) {
	xs, ys := arrowHead(0, 0, 10, 0)
	if xs != [3]float64{10, 2, 2} || ys != [3]float64{0, -4, 4} {
		t.Errorf("arrowHead = %v %v", xs, ys)
	}
}

func TestTintAndHex(t *testing.T) {
	c := hexColor("#1A6FB5")
	if c != (color.RGBA{R: 0x1a, G: 0x6f, B: 0xb5, A: 0xff}) {
		t.Errorf("hexColor = %v", c)
	}
	if tint(c, 1) != c {
		t.Error("full opacity should keep the color")
	}
	if tint(c, 0) != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Error("zero opacity should be white")
	}
	if hexColor("nope") != colorFallback {
		t.Error("invalid hex should fall back")
	}
	if colorFaint != colorFallback {
		t.Errorf("colorFaint = %v, want the #999999 fallback", colorFaint)
	}
}
