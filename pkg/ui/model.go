// Package ui is the terminal viewer: a bubbletea program that shows the
// guide one section at a time, draws each diagram as a character canvas,
// and toggles node selection and question disclosure from mouse clicks or
// the keyboard.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/config"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/debug"
	"github.com/vanderheijden86/archguide/pkg/export"
	"github.com/vanderheijden86/archguide/pkg/toggle"
	"github.com/vanderheijden86/archguide/pkg/watcher"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusArea is the widget that receives navigation keys.
type focusArea int

const (
	focusDiagram focusArea = iota
	focusQuestions
)

// GuideReloadedMsg carries a re-read guide, or the error that prevented it.
type GuideReloadedMsg struct {
	Path  string
	Guide *content.Guide
	Err   error
}

// exportDoneMsg reports the outcome of an export started with "e".
type exportDoneMsg struct {
	path string
	err  error
}

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// Model is the bubbletea model of the viewer.
type Model struct {
	guide *content.Guide
	cfg   config.Config
	theme Theme
	keys  keyMap
	help  help.Model
	md    *markdownRenderer

	viewport viewport.Model
	sections []section
	current  int
	focus    focusArea
	layout   sectionLayout

	width, height int
	ready         bool

	contentPath string
	watcher     *watcher.GuideWatcher

	statusMsg     string
	statusIsError bool
}

// NewModel creates the viewer for g. Every diagram and question list gets a
// fresh store with nothing selected or open.
func NewModel(g *content.Guide, cfg config.Config) Model {
	m := Model{
		guide: g,
		cfg:   cfg,
		theme: DefaultTheme(lipgloss.NewRenderer(os.Stdout)),
		keys:  defaultKeyMap(),
		help:  help.New(),
		md:    &markdownRenderer{},
		// Usable before the first WindowSizeMsg arrives.
		width:  100,
		height: 40,
	}
	m.sections = buildSections(g, cfg.UI.RowPx, logRejected)
	m.current = clamp(cfg.UI.StartSection, 0, len(m.sections)-1)
	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.focus = m.defaultFocus()
	m.refresh()
	return m
}

// WithContentPath records the file the guide came from, enabling "r".
func (m Model) WithContentPath(path string) Model {
	m.contentPath = path
	return m
}

// WithWatcher makes the model apply reloads published by gw.
func (m Model) WithWatcher(gw *watcher.GuideWatcher) Model {
	m.watcher = gw
	if gw != nil {
		m.contentPath = gw.Path()
	}
	return m
}

// Stop releases the file watcher.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// WaitForReloadCmd blocks until the watcher publishes a reload.
func WaitForReloadCmd(gw *watcher.GuideWatcher) tea.Cmd {
	return func() tea.Msg {
		r := <-gw.Reloads()
		return GuideReloadedMsg{Path: r.Path, Guide: r.Guide, Err: r.Err}
	}
}

// ReloadCmd re-reads the guide file once.
func ReloadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		g, err := content.Load(path)
		return GuideReloadedMsg{Path: path, Guide: g, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WaitForReloadCmd(m.watcher)
	}
	return nil
}

func (m Model) footerHeight() int {
	switch {
	case m.statusMsg != "":
		return 1
	case !m.cfg.UI.ShowHelp:
		return 0
	case m.help.ShowAll:
		return 4
	}
	return 1
}

func (m Model) bodyHeight() int {
	h := m.height - 1 - m.footerHeight()
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) defaultFocus() focusArea {
	s := m.currentSection()
	if s != nil && (s.diagram == nil || !s.diagram.Interactive()) && s.accordion != nil {
		return focusQuestions
	}
	return focusDiagram
}

func (m Model) currentSection() *section {
	if m.current < 0 || m.current >= len(m.sections) {
		return nil
	}
	return &m.sections[m.current]
}

// refresh re-renders the current section into the viewport.
func (m *Model) refresh() {
	s := m.currentSection()
	if s == nil {
		m.viewport.SetContent("")
		return
	}
	r := renderer{theme: m.theme, md: m.md, width: m.width, guide: m.guide}
	body, layout := r.render(s, m.current == 0, m.focus == focusQuestions)
	m.layout = layout
	m.viewport.SetContent(body)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg, m.statusIsError = msg, isErr
	m.viewport.Height = m.bodyHeight()
}

func (m *Model) gotoSection(i int) {
	i = clamp(i, 0, len(m.sections)-1)
	if i == m.current {
		return
	}
	m.current = i
	m.focus = m.defaultFocus()
	m.viewport.GotoTop()
	m.refresh()
}

// setGuide swaps in a reloaded guide. Catalogs are never patched: every
// view is rebuilt, so all selections and disclosures start empty.
func (m *Model) setGuide(g *content.Guide) {
	m.guide = g
	m.sections = buildSections(g, m.cfg.UI.RowPx, logRejected)
	m.current = clamp(m.current, 0, len(m.sections)-1)
	m.focus = m.defaultFocus()
	m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case NodeClickMsg:
		m.applyNodeClick(msg)
		return m, nil

	case EntryToggleMsg:
		m.applyEntryToggle(msg)
		return m, nil

	case GuideReloadedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Reload failed, keeping current guide: %v", msg.Err), true)
		} else if msg.Guide != nil {
			m.setGuide(msg.Guide)
			m.setStatus("Reloaded "+msg.Path, false)
		}
		if m.watcher != nil {
			cmd = WaitForReloadCmd(m.watcher)
		}
		return m, cmd

	case exportDoneMsg:
		if msg.err != nil {
			m.setStatus("Export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("Exported "+msg.path, false)
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// logRejected records a toggle a store refused. applyNodeClick and
// applyEntryToggle put the same error in the status line.
func logRejected(err error) {
	debug.Log("ui: rejected toggle: %v", err)
}

func (m *Model) applyNodeClick(msg NodeClickMsg) {
	for i := range m.sections {
		v := m.sections[i].diagram
		if v == nil || v.ID() != msg.Diagram {
			continue
		}
		st, err := v.Toggle(msg.Index)
		if err != nil {
			m.setStatus(err.Error(), true)
		} else if m.statusIsError {
			m.setStatus("", false)
		}
		debug.Log("ui: %s selection -> %s", msg.Diagram, st)
		if i == m.current {
			m.refresh()
		}
		return
	}
	debug.Log("ui: click for unknown diagram %q", msg.Diagram)
}

func (m *Model) applyEntryToggle(msg EntryToggleMsg) {
	for i := range m.sections {
		a := m.sections[i].accordion
		if a == nil || a.ID() != msg.List {
			continue
		}
		if _, err := a.Toggle(msg.Key); err != nil {
			m.setStatus(err.Error(), true)
		}
		if i == m.current {
			m.refresh()
		}
		return
	}
	debug.Log("ui: toggle for unknown list %q", msg.List)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.currentSection()
	// A key press dismisses the previous status.
	if m.statusMsg != "" {
		m.setStatus("", false)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.gotoSection(m.current + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.gotoSection(m.current - 1)
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		m.gotoSection(int(msg.Runes[0] - '1'))
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if s != nil && s.accordion != nil && s.diagram != nil && s.diagram.Interactive() {
			if m.focus == focusDiagram {
				m.focus = focusQuestions
			} else {
				m.focus = focusDiagram
			}
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyDetail()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Reload):
		if m.contentPath == "" {
			m.setStatus("Built-in guide: nothing to reload", false)
			return m, nil
		}
		return m, ReloadCmd(m.contentPath)

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.LineDown(m.viewport.Height)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.LineUp(m.viewport.Height)
		return m, nil
	}

	if s == nil {
		return m, nil
	}
	if m.focus == focusQuestions && s.accordion != nil {
		return m.handleQuestionKeys(msg, s.accordion)
	}
	if s.diagram != nil && s.diagram.Interactive() {
		return m.handleDiagramKeys(msg, s.diagram)
	}
	return m.scrollKeys(msg)
}

func (m Model) handleDiagramKeys(msg tea.KeyMsg, v *DiagramView) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		v.MoveFocus(-1)
		m.refresh()
	case key.Matches(msg, m.keys.Right):
		v.MoveFocus(1)
		m.refresh()
	case key.Matches(msg, m.keys.Select):
		if i, ok := v.Focused(); ok {
			m.applyNodeClick(NodeClickMsg{Diagram: v.ID(), Index: i})
		}
	case key.Matches(msg, m.keys.Clear):
		// Clicking the selected node again deselects it.
		if i, ok := v.Selection().Current(); ok {
			m.applyNodeClick(NodeClickMsg{Diagram: v.ID(), Index: i})
		}
	default:
		return m.scrollKeys(msg)
	}
	return m, nil
}

func (m Model) handleQuestionKeys(msg tea.KeyMsg, a *Accordion) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		a.MoveCursor(-1)
		m.refresh()
		m.scrollToEntry(a)
	case key.Matches(msg, m.keys.Down):
		a.MoveCursor(1)
		m.refresh()
		m.scrollToEntry(a)
	case key.Matches(msg, m.keys.Select):
		if k, ok := a.Cursor(); ok {
			m.applyEntryToggle(EntryToggleMsg{List: a.ID(), Key: k})
		}
	case key.Matches(msg, m.keys.Clear):
		if k, ok := a.State().Current(); ok {
			m.applyEntryToggle(EntryToggleMsg{List: a.ID(), Key: k})
		}
	default:
		return m.scrollKeys(msg)
	}
	return m, nil
}

// scrollToEntry keeps the accordion cursor inside the viewport.
func (m *Model) scrollToEntry(a *Accordion) {
	k, ok := a.Cursor()
	if !ok {
		return
	}
	for line, entry := range m.layout.entryLines {
		if entry != k {
			continue
		}
		switch {
		case line < m.viewport.YOffset:
			m.viewport.SetYOffset(line)
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

func (m Model) scrollKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	}
	return m, nil
}

// handleMouse maps a left click to the node or question under it and
// applies the toggle before returning, so clicks take effect in the order
// they arrive.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(3)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	s := m.currentSection()
	if s == nil {
		return m, nil
	}
	line := msg.Y - 1 + m.viewport.YOffset // header row
	if v := s.diagram; v != nil {
		row := line - m.layout.canvasTop
		if row >= 0 && row < m.layout.canvasRows {
			if i, ok := v.IndexAt(msg.X-m.layout.canvasLeft, row); ok {
				m.focus = focusDiagram
				m.applyNodeClick(NodeClickMsg{Diagram: v.ID(), Index: i})
			}
			return m, nil
		}
	}
	if a := s.accordion; a != nil {
		if k, ok := m.layout.entryLines[line]; ok {
			m.focus = focusQuestions
			m.applyEntryToggle(EntryToggleMsg{List: a.ID(), Key: k})
		}
	}
	return m, nil
}

func (m *Model) copyDetail() {
	s := m.currentSection()
	var md string
	if s != nil && s.diagram != nil {
		md = s.diagram.Panel().Markdown()
	}
	if md == "" && s != nil && s.accordion != nil {
		if k, ok := s.accordion.State().Current(); ok {
			e, _ := s.accordion.List().Entry(k)
			md = fmt.Sprintf("**%s**\n\n%s\n", e.Question, e.Answer)
		}
	}
	if md == "" {
		m.setStatus("Nothing selected to copy", false)
		return
	}
	if err := clipboardWriteAll(md); err != nil {
		m.setStatus("Clipboard error: "+err.Error(), true)
		return
	}
	m.setStatus("📋 Copied detail to clipboard", false)
}

// ExportOptions describes an export of the current diagram with its live
// selection and the open question of its list.
func (m Model) ExportOptions() (export.Options, bool) {
	s := m.currentSection()
	if s == nil || s.diagram == nil {
		return export.Options{}, false
	}
	opts := export.Options{
		Path:      export.DefaultPath(m.cfg.Export.Dir, s.diagram.ID(), m.cfg.Export.Format),
		Format:    m.cfg.Export.Format,
		Title:     s.part.Title,
		Preset:    m.cfg.Export.Preset,
		Diagram:   s.diagram.Diagram(),
		Selection: s.diagram.Selection(),
	}
	if a := s.accordion; a != nil {
		opts.Questions = []*catalog.QAList{a.List()}
		opts.Open = map[string]toggle.State[string]{a.ID(): a.State()}
	}
	return opts, true
}

func (m *Model) exportCmd() tea.Cmd {
	opts, ok := m.ExportOptions()
	if !ok {
		m.setStatus("This section has no diagram to export", false)
		return nil
	}
	return func() tea.Msg {
		start := time.Now()
		err := export.SaveDiagram(opts)
		debug.LogTiming("export "+opts.Path, time.Since(start))
		return exportDoneMsg{path: opts.Path, err: err}
	}
}

func (m Model) View() string {
	header := m.renderHeader()
	body := m.viewport.View()
	footer := m.renderFooter()
	if footer == "" {
		return header + "\n" + body
	}
	return header + "\n" + body + "\n" + footer
}

func (m Model) renderHeader() string {
	var tabs []string
	for i, s := range m.sections {
		label := fmt.Sprintf("%d %s", i+1, s.tab)
		if i == m.current {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}
	title := m.theme.Header.Render("archguide")
	line := title + " " + strings.Join(tabs, "")
	if lipgloss.Width(line) > m.width && m.width > 0 {
		s := m.currentSection()
		cur := ""
		if s != nil {
			cur = s.tab
		}
		line = title + " " + m.theme.ActiveTab.Render(fmt.Sprintf("%d/%d %s", m.current+1, len(m.sections), cur))
	}
	return line
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := m.theme.StatusOK
		if m.statusIsError {
			style = m.theme.StatusErr
		}
		return style.Render(truncate(m.statusMsg, m.width))
	}
	if !m.cfg.UI.ShowHelp {
		return ""
	}
	return m.help.View(m.keys)
}

// Accessors used by tests and the command.

// CurrentSection returns the index of the visible section.
func (m Model) CurrentSection() int { return m.current }

// SectionCount returns the number of sections.
func (m Model) SectionCount() int { return len(m.sections) }

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

// FocusState names the widget with keyboard focus.
func (m Model) FocusState() string {
	if m.focus == focusQuestions {
		return "questions"
	}
	return "diagram"
}

// Selection returns the selection of the diagram with the given id.
func (m Model) Selection(diagram string) (toggle.State[int], bool) {
	for _, s := range m.sections {
		if s.diagram != nil && s.diagram.ID() == diagram {
			return s.diagram.Selection(), true
		}
	}
	return toggle.Absent[int](), false
}

// Disclosure returns the disclosure state of the question list with the
// given id.
func (m Model) Disclosure(list string) (toggle.State[string], bool) {
	for _, s := range m.sections {
		if s.accordion != nil && s.accordion.ID() == list {
			return s.accordion.State(), true
		}
	}
	return toggle.Absent[string](), false
}

// Guide returns the guide being shown.
func (m Model) Guide() *content.Guide { return m.guide }

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
