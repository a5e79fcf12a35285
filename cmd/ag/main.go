package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/config"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/debug"
	"github.com/vanderheijden86/archguide/pkg/export"
	"github.com/vanderheijden86/archguide/pkg/metrics"
	"github.com/vanderheijden86/archguide/pkg/toggle"
	_ "github.com/vanderheijden86/archguide/pkg/ttyguard"
	"github.com/vanderheijden86/archguide/pkg/ui"
	"github.com/vanderheijden86/archguide/pkg/version"
	"github.com/vanderheijden86/archguide/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.FgHiBlack)
	headColor = color.New(color.FgHiCyan, color.Bold)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole command. It returns the process exit code so deferred
// cleanup (CPU profile, metrics, watcher) runs on every path.
func run(args []string, stdout, stderr io.Writer) int {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnColor.Fprintf(stderr, "Warning: .env: %v\n", err)
	}

	fs := flag.NewFlagSet("ag", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cpuProfile := fs.String("cpu-profile", "", "Write CPU profile to file")
	help := fs.Bool("help", false, "Show help")
	versionFlag := fs.Bool("version", false, "Show version")
	configPath := fs.String("config", "", "Config file (default: ~/.config/archguide/config.yaml)")
	contentPath := fs.String("content", "", "Guide file (.yaml, .json, .toml); overrides $"+content.PathEnvVar)
	watchFlag := fs.Bool("watch", false, "Reload the guide file when it changes")
	listFlag := fs.Bool("list", false, "List diagrams, nodes and questions, then exit")
	initConfig := fs.Bool("init-config", false, "Write the effective config to the config file (or -config path), then exit")
	initContent := fs.String("init-content", "", "Write the current guide to this file (.yaml, .json, .toml) for editing, then exit")
	exportPath := fs.String("export", "", "Export a diagram to this file (with -all: to this directory)")
	diagramFlag := fs.String("diagram", "", "Diagram id to export (default: the first diagram)")
	formatFlag := fs.String("format", "", "Export format: "+strings.Join(export.Formats, ", "))
	selectFlag := fs.String("select", "", "Node index to show as selected in the export")
	openFlag := fs.String("open", "", "Question key to show expanded in the export")
	allFlag := fs.Bool("all", false, "Export every diagram (use with -export DIR)")
	wizardFlag := fs.Bool("wizard", false, "Run the interactive export wizard")
	metricsFlag := fs.Bool("metrics", false, "Print timing metrics as JSON to stderr on exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *metricsFlag {
		metrics.SetEnabled(true)
		defer printMetrics(stderr)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Fprintln(stdout, "Usage: ag [options]")
		fmt.Fprintln(stdout, "\nAn interactive terminal guide to RAG and agentic AI application architecture.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "ag %s\n", version.String())
		return 0
	}

	debug.Section("ag " + version.String())

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Non-fatal: continue with defaults
		warnColor.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	debug.Dump("config", cfg)

	if *initConfig {
		path, err := saveConfig(cfg, *configPath)
		if err != nil {
			return fail(stderr, err)
		}
		okColor.Fprintf(stdout, "✓ Wrote %s\n", path)
		return 0
	}

	guidePath := resolveGuidePath(cfg, *contentPath)
	g, err := content.LoadOrDefault(guidePath)
	if err != nil {
		return fail(stderr, err)
	}

	switch {
	case *listFlag:
		printGuide(stdout, g)
		return 0

	case *initContent != "":
		if err := content.Save(*initContent, g.Document()); err != nil {
			return fail(stderr, err)
		}
		okColor.Fprintf(stdout, "✓ Wrote %s (edit it, then run ag -content %s)\n", *initContent, *initContent)
		return 0

	case *wizardFlag:
		w := export.NewWizard(g, cfg.Export.Dir, cfg.Export.Format, cfg.Export.Preset)
		res, err := w.Run()
		debug.Dump("wizard", w.GetConfig())
		if err != nil {
			return fail(stderr, err)
		}
		okColor.Fprintf(stdout, "✓ Exported %s (%s)\n", res.Path, res.Format)
		return 0

	case *allFlag:
		dir := *exportPath
		if dir == "" {
			dir = cfg.Export.Dir
		}
		paths, err := exportAll(g, cfg, dir, *formatFlag, *diagramFlag, *selectFlag, *openFlag)
		if err != nil {
			return fail(stderr, err)
		}
		for _, p := range paths {
			okColor.Fprintf(stdout, "✓ %s\n", p)
		}
		return 0

	case *exportPath != "":
		opts, err := exportOptions(g, cfg, *diagramFlag, *selectFlag, *openFlag)
		if err != nil {
			return usage(stderr, err)
		}
		// An empty format is inferred from the file extension.
		opts.Path, opts.Format = *exportPath, *formatFlag
		if err := export.SaveDiagram(opts); err != nil {
			return fail(stderr, err)
		}
		okColor.Fprintf(stdout, "✓ Exported %s\n", opts.Path)
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return usage(stderr, errors.New("stdout is not a terminal; use -export, -all or -list"))
	}

	m := ui.NewModel(g, cfg)
	if guidePath != "" {
		m = m.WithContentPath(guidePath)
		if *watchFlag || cfg.Content.Watch {
			gw, err := watcher.WatchGuide(guidePath, watcherOptions(cfg.Content)...)
			if err != nil {
				warnColor.Fprintf(stderr, "Warning: live reload disabled: %v\n", err)
			} else {
				debug.LogIf(gw.IsPolling(), "watch: %s falls back to polling", guidePath)
				m = m.WithWatcher(gw)
			}
		}
	}
	defer m.Stop()

	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running archguide: %v\n", err)
		return 1
	}
	return 0
}

// watcherOptions turns the content config into watcher tuning. Zero
// values keep the watcher defaults.
func watcherOptions(c config.ContentConfig) []watcher.WatcherOption {
	var opts []watcher.WatcherOption
	if c.DebounceMs > 0 {
		opts = append(opts, watcher.WithDebounceDuration(time.Duration(c.DebounceMs)*time.Millisecond))
	}
	if c.PollMs > 0 {
		opts = append(opts, watcher.WithPollInterval(time.Duration(c.PollMs)*time.Millisecond))
	}
	if c.ForcePoll {
		opts = append(opts, watcher.WithForcePoll(true))
	}
	return opts
}

func printMetrics(w io.Writer) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics.AllTimingStats()); err != nil {
		debug.Log("metrics: %v", err)
	}
}

func fail(w io.Writer, err error) int {
	errColor.Fprintf(w, "Error: %v\n", err)
	return 1
}

func usage(w io.Writer, err error) int {
	errColor.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintln(w, "Run 'ag -help' for usage.")
	return 2
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// saveConfig writes cfg to path, or to the XDG config file when path is
// empty, and returns where it went.
func saveConfig(cfg config.Config, path string) (string, error) {
	if path != "" {
		return path, config.SaveTo(cfg, path)
	}
	if err := config.Save(cfg); err != nil {
		return "", err
	}
	return config.ConfigPath(), nil
}

// resolveGuidePath applies flag > $AG_CONTENT > config file. An empty result
// selects the built-in guide.
func resolveGuidePath(cfg config.Config, flagPath string) string {
	return cfg.ContentPath(content.ResolvePath(flagPath))
}

// findPart returns the part showing diagram id, or the first part with a
// diagram when id is empty.
func findPart(g *content.Guide, id string) (content.Part, error) {
	if id != "" {
		p, ok := g.PartFor(id)
		if !ok {
			return content.Part{}, fmt.Errorf("unknown diagram %q (try -list)", id)
		}
		return p, nil
	}
	for _, p := range g.Parts {
		if p.Diagram != nil {
			return p, nil
		}
	}
	return content.Part{}, errors.New("guide has no diagrams")
}

// openState validates key against the part's question list.
func openState(p content.Part, key string) (map[string]toggle.State[string], error) {
	if key == "" {
		return nil, nil
	}
	if p.Questions == nil {
		return nil, fmt.Errorf("part %q has no questions", p.ID)
	}
	if _, ok := p.Questions.Entry(key); !ok {
		return nil, fmt.Errorf("unknown question %q in %q (have %s)", key, p.Questions.ID(), strings.Join(p.Questions.Keys(), ", "))
	}
	return map[string]toggle.State[string]{p.Questions.ID(): toggle.Chosen(key)}, nil
}

// exportOptions builds the export of one diagram with the selection and
// open question given on the command line. Path and format are left to
// the caller.
func exportOptions(g *content.Guide, cfg config.Config, diagram, node, open string) (export.Options, error) {
	p, err := findPart(g, diagram)
	if err != nil {
		return export.Options{}, err
	}
	sel, err := export.ParseSelection(p.Diagram, node)
	if err != nil {
		return export.Options{}, err
	}
	openMap, err := openState(p, open)
	if err != nil {
		return export.Options{}, err
	}
	opts := export.Options{
		Title:     p.Title,
		Preset:    cfg.Export.Preset,
		Diagram:   p.Diagram,
		Selection: sel,
		Open:      openMap,
	}
	if p.Questions != nil {
		opts.Questions = []*catalog.QAList{p.Questions}
	}
	return opts, nil
}

// exportAll writes every diagram into dir. -select and -open, when given,
// apply to the diagram named by -diagram.
func exportAll(g *content.Guide, cfg config.Config, dir, format, diagram, node, open string) ([]string, error) {
	if format == "" {
		format = cfg.Export.Format
	}
	batch := export.BatchOptions{Dir: dir, Format: format, Preset: cfg.Export.Preset}
	if node != "" || open != "" {
		opts, err := exportOptions(g, cfg, diagram, node, open)
		if err != nil {
			return nil, err
		}
		batch.Selections = map[string]toggle.State[int]{opts.Diagram.ID(): opts.Selection}
		batch.Open = opts.Open
	}

	defer debug.LogEnterExit("export all")()
	return export.SaveAll(context.Background(), g, batch)
}

// printGuide lists what can be exported and selected.
func printGuide(w io.Writer, g *content.Guide) {
	headColor.Fprintln(w, g.Title)
	for _, p := range g.Parts {
		fmt.Fprintf(w, "\n%s  %s\n", headColor.Sprint(p.ID), p.Title)
		if d := p.Diagram; d != nil {
			fmt.Fprintf(w, "  diagram %s (%gx%g)\n", d.ID(), d.Width(), d.Height())
			for _, n := range d.Nodes().Nodes() {
				rec, _ := d.Details().Lookup(n.DetailKey)
				fmt.Fprintf(w, "    %s  %s %s\n",
					okColor.Sprint(strconv.Itoa(n.Index)),
					strings.Join(n.LabelLines(), " "),
					dimColor.Sprintf("(%s)", rec.Name))
			}
		}
		if l := p.Questions; l != nil {
			fmt.Fprintf(w, "  questions %s\n", l.ID())
			for _, e := range l.Entries() {
				fmt.Fprintf(w, "    %s  %s\n", okColor.Sprint(e.Key), e.Question)
			}
		}
	}
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set AG_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("AG_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
