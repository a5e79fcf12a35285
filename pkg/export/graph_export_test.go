package export

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/toggle"

	json "github.com/goccy/go-json"
)

func TestJSONSceneDocument(t *testing.T) {
	out := renderString(t, Options{
		Format:    FormatJSON,
		Diagram:   testDiagram(t, "rag"),
		Selection: toggle.Chosen(4),
		Open:      map[string]toggle.State[string]{"rag": toggle.Chosen("rag-2"), "agent": toggle.Absent[string]()},
	})

	var doc SceneDocument
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if doc.Selection == nil || *doc.Selection != 4 {
		t.Errorf("selection = %v", doc.Selection)
	}
	if !doc.Panel.Visible || doc.Panel.Name != "Augment the Prompt" {
		t.Errorf("panel = %+v", doc.Panel)
	}
	if len(doc.Scene.Nodes) != 7 || len(doc.Scene.Edges) != 7 {
		t.Errorf("scene has %d nodes, %d edges", len(doc.Scene.Nodes), len(doc.Scene.Edges))
	}
	if doc.Open["rag"] != "rag-2" {
		t.Errorf("open = %v", doc.Open)
	}
	if _, ok := doc.Open["agent"]; ok {
		t.Error("absent disclosure should be omitted")
	}
}

func TestJSONAbsentSelection(t *testing.T) {
	out := renderString(t, Options{Format: FormatJSON, Diagram: testDiagram(t, "agent")})
	if !strings.Contains(out, `"selection": null`) {
		t.Errorf("absent selection should encode as null:\n%s", out)
	}
}

func TestMermaidFlowchart(t *testing.T) {
	out := renderString(t, Options{Format: FormatMermaid, Diagram: testDiagram(t, "rag"), Selection: toggle.Chosen(1)})

	for _, want := range []string{
		"flowchart LR",
		"n0 --> n1",
		"n3 -.->|context chunks| n4",
		`n1["Embed<br/>Query<br/>→ vector"]`,
		"style n1 stroke-width:3px",
		"class n5 c_accent",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("mermaid output missing %q:\n%s", want, out)
		}
	}
}

func TestSanitizeMermaidText(t *testing.T) {
	if got := sanitizeMermaidText(`a "b" [c] |d|`); got != "a 'b' (c) /d/" {
		t.Errorf("sanitize = %q", got)
	}
}

func TestMermaidClassNames(t *testing.T) {
	tests := []struct {
		color catalog.Color
		want  string
	}{
		{color: catalog.ColorAccent, want: "c_accent"},
		{color: "brand blue!", want: "c_brand_blue_"},
		{color: "team:ops/α", want: "c_team_ops__"},
		{color: "", want: "c_default"},
	}
	for _, tt := range tests {
		if got := mermaidClassName(tt.color); got != tt.want {
			t.Errorf("mermaidClassName(%q) = %q, want %q", tt.color, got, tt.want)
		}
	}

	d, err := catalog.NewDiagram(catalog.DiagramSpec{
		ID:     "custom",
		Width:  200,
		Height: 100,
		Nodes: []catalog.DiagramNode{
			{Index: 0, Rect: catalog.Rect{X: 0, Y: 0, W: 80, H: 40}, Label: "A", Color: "brand blue!", DetailKey: "a"},
		},
		Details: []catalog.DetailRecord{{Key: "a", Name: "A"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := renderString(t, Options{Format: FormatMermaid, Diagram: d})
	if !strings.Contains(out, "classDef c_brand_blue_ stroke:") || !strings.Contains(out, "class n0 c_brand_blue_") {
		t.Errorf("custom color should map to a valid class name:\n%s", out)
	}
	if strings.Contains(out, "brand blue") {
		t.Errorf("raw color token leaked into mermaid output:\n%s", out)
	}
}

func TestMarkdownReport(t *testing.T) {
	g := content.Default()
	part, _ := g.PartFor("agent")
	out := renderString(t, Options{
		Format:    FormatMarkdown,
		Diagram:   part.Diagram,
		Selection: toggle.Chosen(3),
		Questions: []*catalog.QAList{part.Questions},
		Open:      map[string]toggle.State[string]{"agent": toggle.Chosen("agent-2")},
	})

	if !strings.Contains(out, "| 3 | **Memory** |") {
		t.Errorf("selected row not bold:\n%s", out)
	}
	if !strings.Contains(out, "### Memory") || !strings.Contains(out, "- Episodic memory of past tasks") {
		t.Error("detail panel missing from report")
	}
	if !strings.Contains(out, "- [-] **How to handle errors and loops?**") {
		t.Error("open entry not expanded")
	}
	if strings.Contains(out, "Multi-agent systems assign") {
		t.Error("closed entry should not show its answer")
	}
}
