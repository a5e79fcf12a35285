package scene

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/debug"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// Panel is the detail panel content for the current selection. A zero
// Panel (Visible false) renders nothing.
type Panel struct {
	Visible     bool          `json:"visible"`
	Index       int           `json:"index"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Example     string        `json:"example,omitempty"`
	Techniques  []string      `json:"techniques,omitempty"`
	Color       catalog.Color `json:"color,omitempty"`
	Err         error         `json:"-"`
}

// BuildPanel resolves the selection into a panel. A resolve failure only
// hides the panel: Err is set and Visible stays false.
func BuildPanel(d *catalog.Diagram, sel toggle.State[int]) Panel {
	rec, err := catalog.Resolve(sel, d)
	if err != nil {
		debug.Log("panel %s: %v", d.ID(), err)
		return Panel{Err: err}
	}
	if rec == nil {
		return Panel{}
	}
	index, _ := sel.Current()
	node, _ := d.Nodes().Node(index)
	return Panel{
		Visible:     true,
		Index:       index,
		Name:        rec.Name,
		Description: rec.Description,
		Example:     rec.Example,
		Techniques:  rec.Techniques,
		Color:       node.Color,
	}
}

// HasExample reports whether the example block should be shown.
func (p Panel) HasExample() bool {
	return strings.TrimSpace(p.Example) != ""
}

// Markdown renders the panel as a markdown snippet. Empty for a hidden panel.
func (p Panel) Markdown() string {
	if !p.Visible {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n%s\n", p.Name, p.Description)
	if p.HasExample() {
		fmt.Fprintf(&b, "\n**Example:** %s\n", p.Example)
	}
	if len(p.Techniques) > 0 {
		b.WriteString("\n**Key techniques:**\n\n")
		for _, t := range p.Techniques {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}
	return b.String()
}
