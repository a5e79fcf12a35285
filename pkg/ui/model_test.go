package ui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/archguide/pkg/config"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/debug"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	m := NewModel(content.Default(), cfg)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and runs the command it returns (reload, export),
// feeding the resulting message back into the model.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	m = next.(Model)
	return run(t, m, cmd)
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if _, quit := msg.(tea.QuitMsg); quit {
		return m
	}
	return update(t, m, msg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelStartsEmpty(t *testing.T) {
	m := newTestModel(t)

	if m.SectionCount() != 5 {
		t.Fatalf("SectionCount = %d, want 5", m.SectionCount())
	}
	if m.CurrentSection() != 0 {
		t.Errorf("CurrentSection = %d, want 0", m.CurrentSection())
	}
	for _, id := range []string{"rag", "agent"} {
		sel, ok := m.Selection(id)
		if !ok || !sel.IsAbsent() {
			t.Errorf("Selection(%q) = %v, %v; want absent", id, sel, ok)
		}
		open, ok := m.Disclosure(id)
		if !ok || !open.IsAbsent() {
			t.Errorf("Disclosure(%q) = %v, %v; want absent", id, open, ok)
		}
	}
	if !strings.Contains(m.View(), "Retrieval-Augmented Generation") {
		t.Error("first section should show the RAG part")
	}
}

func TestStartSectionClamped(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.StartSection = 42
	m := NewModel(content.Default(), cfg)
	if m.CurrentSection() != m.SectionCount()-1 {
		t.Errorf("CurrentSection = %d, want last (%d)", m.CurrentSection(), m.SectionCount()-1)
	}
}

func TestNodeClickTogglesSelection(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 2})
	if sel, _ := m.Selection("rag"); !sel.Is(2) {
		t.Fatalf("after first click selection = %v, want 2", sel)
	}
	if p := m.sections[0].diagram.Panel(); !p.Visible || p.Name != "Vector Search" {
		t.Errorf("panel = %q (visible %v), want Vector Search", p.Name, p.Visible)
	}

	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 4})
	if sel, _ := m.Selection("rag"); !sel.Is(4) {
		t.Fatalf("clicking another node should replace the selection, got %v", sel)
	}

	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 4})
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Fatalf("clicking the selected node should close it, got %v", sel)
	}
}

func TestNodeClickInvalidIndexKeepsState(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 3})

	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 99})
	if sel, _ := m.Selection("rag"); !sel.Is(3) {
		t.Errorf("invalid click changed selection to %v", sel)
	}
	msg, isErr := m.Status()
	if !isErr || !strings.Contains(msg, "99") {
		t.Errorf("Status = %q, %v; want an error naming index 99", msg, isErr)
	}
}

func TestRejectedToggleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	debug.SetEnabled(true)
	debug.SetOutput(&buf)
	defer func() {
		debug.SetEnabled(false)
		debug.SetOutput(os.Stderr)
	}()

	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 42})
	m = update(t, m, EntryToggleMsg{List: "agent", Key: "nope"})

	out := buf.String()
	if strings.Count(out, "rejected toggle") != 2 {
		t.Errorf("want both rejected toggles logged, got:\n%s", out)
	}
	if _, isErr := m.Status(); !isErr {
		t.Error("rejected toggle should also show in the status line")
	}
}

func TestSelectionsAreIndependentPerDiagram(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 1})
	m = update(t, m, NodeClickMsg{Diagram: "agent", Index: 1})

	if sel, _ := m.Selection("rag"); !sel.Is(1) {
		t.Errorf("rag selection = %v, want 1", sel)
	}
	if sel, _ := m.Selection("agent"); !sel.Is(1) {
		t.Errorf("agent selection = %v, want 1", sel)
	}

	m = update(t, m, NodeClickMsg{Diagram: "agent", Index: 1})
	if sel, _ := m.Selection("rag"); !sel.Is(1) {
		t.Errorf("closing agent node changed rag selection to %v", sel)
	}
}

func TestEntryToggle(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m, EntryToggleMsg{List: "rag", Key: "rag-0"})
	if open, _ := m.Disclosure("rag"); !open.Is("rag-0") {
		t.Fatalf("disclosure = %v, want rag-0", open)
	}
	m = update(t, m, EntryToggleMsg{List: "rag", Key: "rag-1"})
	if open, _ := m.Disclosure("rag"); !open.Is("rag-1") {
		t.Fatalf("opening another entry should close the first, got %v", open)
	}
	m = update(t, m, EntryToggleMsg{List: "rag", Key: "rag-1"})
	if open, _ := m.Disclosure("rag"); !open.IsAbsent() {
		t.Fatalf("toggling the open entry should close it, got %v", open)
	}

	m = update(t, m, EntryToggleMsg{List: "rag", Key: "nope"})
	if open, _ := m.Disclosure("rag"); !open.IsAbsent() {
		t.Errorf("unknown key changed disclosure to %v", open)
	}
	if _, isErr := m.Status(); !isErr {
		t.Error("unknown key should report an error")
	}
}

func TestKeyboardSelectAndClear(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("l"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel, _ := m.Selection("rag")
	if sel.IsAbsent() {
		t.Fatal("enter should select the focused node")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Errorf("esc should clear the selection, got %v", sel)
	}
}

func TestKeyboardQuestions(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusState() != "questions" {
		t.Fatalf("FocusState = %q, want questions", m.FocusState())
	}
	m = press(t, m, runes("j"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if open, _ := m.Disclosure("rag"); !open.Is("rag-1") {
		t.Fatalf("disclosure = %v, want rag-1", open)
	}
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Errorf("question keys must not touch the diagram selection, got %v", sel)
	}
}

func TestSectionNavigation(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("]"))
	if m.CurrentSection() != 1 {
		t.Errorf("after ] CurrentSection = %d, want 1", m.CurrentSection())
	}
	m = press(t, m, runes("4"))
	if m.CurrentSection() != 3 {
		t.Errorf("after 4 CurrentSection = %d, want 3", m.CurrentSection())
	}
	if !strings.Contains(m.View(), "Design Tradeoffs") {
		t.Error("tradeoffs section not shown")
	}
	m = press(t, m, runes("9"))
	if m.CurrentSection() != m.SectionCount()-1 {
		t.Errorf("jump past end should clamp, got %d", m.CurrentSection())
	}
	m = press(t, m, runes("["))
	m = press(t, m, runes("["))
	m = press(t, m, runes("["))
	m = press(t, m, runes("["))
	m = press(t, m, runes("["))
	if m.CurrentSection() != 0 {
		t.Errorf("[ should stop at the first section, got %d", m.CurrentSection())
	}
}

func TestSectionChangeKeepsSelection(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 5})
	m = press(t, m, runes("]"))
	m = press(t, m, runes("["))
	if sel, _ := m.Selection("rag"); !sel.Is(5) {
		t.Errorf("selection lost after navigating away and back: %v", sel)
	}
}

// nodeClick returns a left press on the middle of node index as drawn in
// the current section.
func nodeClick(t *testing.T, m Model, index int) tea.MouseMsg {
	t.Helper()
	v := m.currentSection().diagram
	for _, r := range v.canvas.regions {
		if r.index != index {
			continue
		}
		return tea.MouseMsg{
			X:      m.layout.canvasLeft + (r.c0+r.c1)/2,
			Y:      1 + m.layout.canvasTop + (r.r0+r.r1)/2 - m.viewport.YOffset,
			Button: tea.MouseButtonLeft,
			Action: tea.MouseActionPress,
		}
	}
	t.Fatalf("node %d not drawn", index)
	return tea.MouseMsg{}
}

func TestMouseClickOnNode(t *testing.T) {
	m := newTestModel(t)

	click := nodeClick(t, m, 3)
	next, cmd := m.Update(click)
	m = next.(Model)
	if cmd != nil {
		t.Error("a click should be applied directly, not through a command")
	}
	if sel, _ := m.Selection("rag"); !sel.Is(3) {
		t.Errorf("selection = %v, want 3", sel)
	}

	// Release events are ignored.
	release := click
	release.Action = tea.MouseActionRelease
	m = update(t, m, release)
	if sel, _ := m.Selection("rag"); !sel.Is(3) {
		t.Errorf("mouse release changed selection to %v", sel)
	}

	// A second press on the same node deselects it.
	m = update(t, m, click)
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Errorf("second click should deselect, got %v", sel)
	}
}

func TestRapidClicksApplyInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		m := newTestModel(t)
		first, second := nodeClick(t, m, 1), nodeClick(t, m, 2)

		p := tea.NewProgram(m,
			tea.WithInput(nil),
			tea.WithOutput(io.Discard),
			tea.WithoutRenderer(),
			tea.WithoutSignalHandler(),
		)
		done := make(chan tea.Model, 1)
		go func() {
			final, err := p.Run()
			if err != nil {
				t.Errorf("Run: %v", err)
			}
			done <- final
		}()
		p.Send(first)
		p.Send(second)
		p.Quit()

		final := (<-done).(Model)
		if sel, _ := final.Selection("rag"); !sel.Is(2) {
			t.Fatalf("run %d: selection = %v after clicking 1 then 2, want 2", i, sel)
		}
	}
}

func TestMouseClickOnBackground(t *testing.T) {
	m := newTestModel(t)
	click := tea.MouseMsg{X: 1, Y: 1 + m.layout.canvasTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	m = update(t, m, click)
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Errorf("click outside any node should do nothing, got %v", sel)
	}
}

func TestMouseClickOnQuestion(t *testing.T) {
	m := newTestModel(t)

	line := -1
	for l, k := range m.layout.entryLines {
		if k == "rag-2" {
			line = l
		}
	}
	if line < 0 {
		t.Fatal("rag-2 not laid out")
	}
	m.viewport.SetYOffset(line - 2)
	click := tea.MouseMsg{X: 6, Y: 1 + line - m.viewport.YOffset, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	next, cmd := m.Update(click)
	m = run(t, next.(Model), cmd)
	if open, _ := m.Disclosure("rag"); !open.Is("rag-2") {
		t.Errorf("disclosure = %v, want rag-2", open)
	}
}

func TestReloadResetsStores(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 1})
	m = update(t, m, EntryToggleMsg{List: "agent", Key: "agent-0"})

	g := content.Default()
	g.Title = "Edited"
	m = update(t, m, GuideReloadedMsg{Path: "guide.yaml", Guide: g})

	if m.Guide().Title != "Edited" {
		t.Errorf("guide not replaced")
	}
	if sel, _ := m.Selection("rag"); !sel.IsAbsent() {
		t.Errorf("reload should reset selection, got %v", sel)
	}
	if open, _ := m.Disclosure("agent"); !open.IsAbsent() {
		t.Errorf("reload should reset disclosure, got %v", open)
	}
}

func TestReloadErrorKeepsGuide(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 1})
	before := m.Guide()

	m = update(t, m, GuideReloadedMsg{Path: "guide.yaml", Err: errors.New("bad yaml")})
	if m.Guide() != before {
		t.Error("failed reload replaced the guide")
	}
	if sel, _ := m.Selection("rag"); !sel.Is(1) {
		t.Errorf("failed reload lost selection: %v", sel)
	}
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "bad yaml") {
		t.Errorf("Status = %q, %v", msg, isErr)
	}
}

func TestReloadKeyFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guide.yaml")
	doc := content.Builtin()
	doc.Title = "From disk"
	if err := content.Save(path, doc); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t).WithContentPath(path)
	m = press(t, m, runes("r"))
	if m.Guide().Title != "From disk" {
		t.Errorf("Title = %q, want From disk", m.Guide().Title)
	}
}

func TestReloadKeyBuiltin(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("r"))
	if cmd != nil {
		t.Error("built-in guide should not reload")
	}
	if msg, _ := next.(Model).Status(); msg == "" {
		t.Error("expected a status message")
	}
}

func TestExportKey(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 2})
	m = update(t, m, EntryToggleMsg{List: "rag", Key: "rag-0"})

	opts, ok := m.ExportOptions()
	if !ok {
		t.Fatal("RAG section should be exportable")
	}
	if !opts.Selection.Is(2) || !opts.Open["rag"].Is("rag-0") {
		t.Errorf("export options do not carry live state: %v %v", opts.Selection, opts.Open)
	}

	m = press(t, m, runes("e"))
	msg, isErr := m.Status()
	if isErr {
		t.Fatalf("export failed: %s", msg)
	}
	if _, err := os.Stat(opts.Path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestExportKeyWithoutDiagram(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("4"))
	next, cmd := m.Update(runes("e"))
	if cmd != nil {
		t.Error("tradeoffs section has nothing to export")
	}
	if msg, _ := next.(Model).Status(); msg == "" {
		t.Error("expected a status message")
	}
}

func TestCopyKey(t *testing.T) {
	var got string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error { got = s; return nil }
	defer func() { clipboardWriteAll = orig }()

	m := newTestModel(t)
	m = press(t, m, runes("y"))
	if got != "" {
		t.Error("nothing selected, nothing should be copied")
	}

	m = update(t, m, NodeClickMsg{Diagram: "rag", Index: 1})
	m = press(t, m, runes("y"))
	if !strings.Contains(got, "Embed") {
		t.Errorf("copied %q, want the Embed Query detail", got)
	}
	if _, isErr := m.Status(); isErr {
		t.Error("copy should succeed")
	}

	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, runes("y"))
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "no clipboard") {
		t.Errorf("Status = %q, %v", msg, isErr)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	short := m.viewport.Height
	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("? should expand help")
	}
	if m.viewport.Height >= short {
		t.Errorf("full help should shrink the body: %d >= %d", m.viewport.Height, short)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestNarrowHeader(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 20})
	header := strings.SplitN(m.View(), "\n", 2)[0]
	if !strings.Contains(header, "1/5") {
		t.Errorf("narrow header should use the compact form, got %q", header)
	}
}
