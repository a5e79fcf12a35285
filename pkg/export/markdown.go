package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// renderMarkdown writes a Markdown report: node list with the selection
// marked, the detail panel and the question lists with open answers.
func renderMarkdown(w io.Writer, opts Options, layout layoutResult) error {
	var sb strings.Builder
	sc := layout.Scene

	title := titleOr(layout)
	sb.WriteString("# " + title + "\n\n")
	if sc.Caption != "" {
		sb.WriteString("> " + sc.Caption + "\n\n")
	}

	sb.WriteString("| # | Component | Summary |\n")
	sb.WriteString("|---|-----------|---------|\n")
	for _, n := range sc.Nodes {
		name := strings.Join(n.Lines, " ")
		if n.Selected {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", n.Index, escapeTable(name), escapeTable(n.SubLabel))
	}
	sb.WriteString("\n")

	if md := layout.Panel.Markdown(); md != "" {
		sb.WriteString(md)
		sb.WriteString("\n")
	}

	for _, l := range opts.Questions {
		writeQuestionsMarkdown(&sb, l, opts.Open[l.ID()])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeQuestionsMarkdown(sb *strings.Builder, l *catalog.QAList, open toggle.State[string]) {
	openKey, isOpen := open.Current()
	sb.WriteString("## " + l.Title() + "\n\n")
	for _, e := range l.Entries() {
		if isOpen && e.Key == openKey {
			fmt.Fprintf(sb, "- [-] **%s**\n\n  %s\n", e.Question, e.Answer)
			continue
		}
		fmt.Fprintf(sb, "- [+] %s\n", e.Question)
	}
	sb.WriteString("\n")
}

func escapeTable(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
