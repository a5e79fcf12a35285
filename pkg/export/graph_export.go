package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/scene"

	json "github.com/goccy/go-json"
)

// SceneDocument is the JSON export: the declarative scene, the detail
// panel and the open entry of every question list.
type SceneDocument struct {
	Scene     scene.Scene       `json:"scene"`
	Panel     scene.Panel       `json:"panel"`
	Selection *int              `json:"selection"`
	Open      map[string]string `json:"open,omitempty"`
}

func sceneDocument(opts Options, layout layoutResult) SceneDocument {
	doc := SceneDocument{
		Scene: layout.Scene,
		Panel: layout.Panel,
	}
	if i, ok := opts.Selection.Current(); ok {
		doc.Selection = &i
	}
	for id, st := range opts.Open {
		if key, ok := st.Current(); ok {
			if doc.Open == nil {
				doc.Open = make(map[string]string)
			}
			doc.Open[id] = key
		}
	}
	return doc
}

func renderJSON(w io.Writer, opts Options, layout layoutResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sceneDocument(opts, layout))
}

// sanitizeMermaidText prepares text for use in Mermaid node labels.
func sanitizeMermaidText(text string) string {
	replacer := strings.NewReplacer(
		"\"", "'",
		"[", "(",
		"]", ")",
		"{", "(",
		"}", ")",
		"<", "&lt;",
		">", "&gt;",
		"|", "/",
		"`", "'",
		"\n", "<br/>",
		"\r", "",
	)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, replacer.Replace(text))
}

// mermaidClassName turns a color token into a Mermaid class name. Anything
// other than ASCII letters, digits, '_' and '-' becomes '_'.
func mermaidClassName(c catalog.Color) string {
	if c == "" {
		return "c_default"
	}
	return "c_" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, string(c))
}

// renderMermaid writes the diagram as a Mermaid flowchart. Decorations are
// left out; the selected node gets a highlight class.
func renderMermaid(w io.Writer, layout layoutResult) error {
	sc := layout.Scene
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	if sc.Title != "" {
		fmt.Fprintf(&b, "    %%%% %s\n", sanitizeMermaidText(sc.Title))
	}

	colors := make(map[catalog.Color]bool)
	for _, n := range sc.Nodes {
		label := strings.Join(n.Lines, "\n")
		if n.SubLabel != "" {
			label += "\n" + n.SubLabel
		}
		fmt.Fprintf(&b, "    n%d[\"%s\"]\n", n.Index, sanitizeMermaidText(label))
		colors[n.Color] = true
	}
	for _, e := range sc.Edges {
		arrow := "-->"
		if e.Style == catalog.LineDashed {
			arrow = "-.->"
		}
		if e.Label != "" {
			fmt.Fprintf(&b, "    n%d %s|%s| n%d\n", e.From, arrow, sanitizeMermaidText(e.Label), e.To)
		} else {
			fmt.Fprintf(&b, "    n%d %s n%d\n", e.From, arrow, e.To)
		}
	}

	tokens := make([]string, 0, len(colors))
	for c := range colors {
		tokens = append(tokens, string(c))
	}
	sort.Strings(tokens)
	defined := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		class := mermaidClassName(catalog.Color(t))
		if defined[class] {
			continue
		}
		defined[class] = true
		fmt.Fprintf(&b, "    classDef %s stroke:%s,fill:#ffffff\n", class, css(tokenColor(catalog.Color(t))))
	}
	for _, n := range sc.Nodes {
		fmt.Fprintf(&b, "    class n%d %s\n", n.Index, mermaidClassName(n.Color))
	}
	if sel, ok := sc.Selected(); ok {
		fmt.Fprintf(&b, "    style n%d stroke-width:3px,fill:%s\n", sel.Index, css(tint(tokenColor(sel.Color), 0.08)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
