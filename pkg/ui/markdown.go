package ui

import (
	"strings"

	"github.com/vanderheijden86/archguide/pkg/debug"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders markdown with glamour, rebuilding the term
// renderer when the wrap width changes.
type markdownRenderer struct {
	width int
	r     *glamour.TermRenderer
}

func (m *markdownRenderer) render(md string, width int) string {
	if width < 20 {
		width = 20
	}
	if m.r == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			debug.Log("markdown renderer: %v", err)
			return md
		}
		m.r, m.width = r, width
	}
	out, err := m.r.Render(md)
	if err != nil {
		debug.Log("markdown render: %v", err)
		return md
	}
	// glamour pads with blank lines above and below.
	return strings.Trim(out, "\n")
}
