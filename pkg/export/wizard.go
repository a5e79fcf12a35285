package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/toggle"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// WizardConfig holds the answers collected by the export wizard.
type WizardConfig struct {
	DiagramID string
	Node      string // node index as text, "" for no selection
	Format    string
	Path      string
	Preset    string
}

// WizardResult describes the file written by the wizard.
type WizardResult struct {
	Path      string
	Format    string
	DiagramID string
	Selection toggle.State[int]
}

// Wizard walks the user through exporting one diagram.
type Wizard struct {
	guide  *content.Guide
	dir    string
	config *WizardConfig
}

// NewWizard creates an export wizard writing into dir by default.
func NewWizard(g *content.Guide, dir, format, preset string) *Wizard {
	if format == "" {
		format = FormatSVG
	}
	cfg := &WizardConfig{Format: format, Preset: preset}
	if ds := g.Diagrams(); len(ds) > 0 {
		cfg.DiagramID = ds[0].ID()
	}
	return &Wizard{guide: g, dir: dir, config: cfg}
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// GetConfig returns the answers collected so far.
func (w *Wizard) GetConfig() *WizardConfig {
	return w.config
}

// Run asks for diagram, highlighted node, format and path, then exports.
func (w *Wizard) Run() (*WizardResult, error) {
	if len(w.guide.Diagrams()) == 0 {
		return nil, fmt.Errorf("guide has no diagrams to export")
	}
	w.printBanner()

	if err := w.collectDiagram(); err != nil {
		return nil, err
	}
	if err := w.collectNodeAndFormat(); err != nil {
		return nil, err
	}
	if err := w.collectPath(); err != nil {
		return nil, err
	}
	return w.PerformExport()
}

func (w *Wizard) printBanner() {
	fmt.Println("")
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║           ag → Diagram Export Wizard             ║")
	fmt.Println("╠══════════════════════════════════════════════════╣")
	fmt.Println("║  Pick a diagram, an optional highlighted step,   ║")
	fmt.Println("║  an output format and a destination file.        ║")
	fmt.Println("║                                                  ║")
	fmt.Println("║  Press Ctrl+C anytime to cancel                  ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println("")
}

func (w *Wizard) collectDiagram() error {
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which diagram?").
				Options(w.diagramOptions()...).
				Value(&w.config.DiagramID),
		),
	)
	return form.Run()
}

func (w *Wizard) collectNodeAndFormat() error {
	d, ok := w.guide.Diagram(w.config.DiagramID)
	if !ok {
		return fmt.Errorf("unknown diagram %q", w.config.DiagramID)
	}
	fields := []huh.Field{}
	if d.Nodes().Len() > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Highlight a step?").
			Description("The selected step is drawn highlighted with its detail panel").
			Options(nodeOptions(d)...).
			Value(&w.config.Node))
	}
	fields = append(fields, huh.NewSelect[string]().
		Title("Output format").
		Options(formatOptions()...).
		Value(&w.config.Format))
	return newForm(huh.NewGroup(fields...)).Run()
}

func (w *Wizard) collectPath() error {
	def := DefaultPath(w.dir, w.config.DiagramID, w.config.Format)
	path := def
	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Value(&path).
				Placeholder(def),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		path = def
	}
	w.config.Path = path
	return nil
}

// PerformExport writes the file described by the current config.
func (w *Wizard) PerformExport() (*WizardResult, error) {
	part, ok := w.guide.PartFor(w.config.DiagramID)
	if !ok {
		return nil, fmt.Errorf("unknown diagram %q", w.config.DiagramID)
	}
	sel, err := ParseSelection(part.Diagram, w.config.Node)
	if err != nil {
		return nil, err
	}
	var lists []*catalog.QAList
	if part.Questions != nil {
		lists = append(lists, part.Questions)
	}
	opts := Options{
		Path:      w.config.Path,
		Format:    w.config.Format,
		Title:     part.Title,
		Preset:    w.config.Preset,
		Diagram:   part.Diagram,
		Selection: sel,
		Questions: lists,
	}
	if err := SaveDiagram(opts); err != nil {
		return nil, err
	}
	return &WizardResult{
		Path:      w.config.Path,
		Format:    w.config.Format,
		DiagramID: w.config.DiagramID,
		Selection: sel,
	}, nil
}

func (w *Wizard) diagramOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range w.guide.Parts {
		if p.Diagram == nil {
			continue
		}
		label := p.Diagram.Title()
		if p.Kicker != "" {
			label = p.Kicker + ": " + label
		}
		opts = append(opts, huh.NewOption(label, p.Diagram.ID()))
	}
	return opts
}

func nodeOptions(d *catalog.Diagram) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, n := range d.Nodes().Nodes() {
		label := strings.Join(n.LabelLines(), " ")
		opts = append(opts, huh.NewOption(label, strconv.Itoa(n.Index)))
	}
	return opts
}

func formatOptions() []huh.Option[string] {
	labels := map[string]string{
		FormatSVG:      "SVG image",
		FormatPNG:      "PNG image",
		FormatHTML:     "HTML page (diagram, details, questions)",
		FormatJSON:     "JSON scene description",
		FormatMarkdown: "Markdown report",
		FormatMermaid:  "Mermaid flowchart",
	}
	opts := make([]huh.Option[string], 0, len(Formats))
	for _, f := range Formats {
		opts = append(opts, huh.NewOption(labels[f], f))
	}
	return opts
}

// ParseSelection turns a node index given as text into a selection of d.
// An empty string means no selection.
func ParseSelection(d *catalog.Diagram, node string) (toggle.State[int], error) {
	node = strings.TrimSpace(node)
	if node == "" {
		return toggle.Absent[int](), nil
	}
	i, err := strconv.Atoi(node)
	if err != nil {
		return toggle.Absent[int](), fmt.Errorf("invalid node %q: %w", node, err)
	}
	if err := d.CheckIndex(i); err != nil {
		return toggle.Absent[int](), err
	}
	return toggle.Chosen(i), nil
}
