package ui

import (
	"strings"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// EntryToggleMsg asks the accordion for list List to toggle entry Key.
type EntryToggleMsg struct {
	List string
	Key  string
}

// Accordion shows a question list with at most one answer expanded. It
// owns the disclosure store of its list; lists never share one.
type Accordion struct {
	list       *catalog.QAList
	disclosure *toggle.Store[string]
	cursor     int
}

// NewAccordion creates an accordion with every entry closed.
func NewAccordion(l *catalog.QAList, onInvalid func(error)) *Accordion {
	var opts []toggle.Option[string]
	if onInvalid != nil {
		opts = append(opts, toggle.WithOnInvalid[string](onInvalid))
	}
	return &Accordion{list: l, disclosure: l.NewDisclosure(opts...)}
}

func (a *Accordion) ID() string            { return a.list.ID() }
func (a *Accordion) List() *catalog.QAList { return a.list }

// State returns the disclosure state.
func (a *Accordion) State() toggle.State[string] {
	return a.disclosure.State()
}

// IsOpen reports whether the entry with key is expanded.
func (a *Accordion) IsOpen(key string) bool {
	return a.disclosure.IsOpen(key)
}

// Toggle opens key, or closes it when it is already open.
func (a *Accordion) Toggle(key string) (toggle.State[string], error) {
	st, err := a.disclosure.Toggle(key)
	if err == nil {
		for i, k := range a.list.Keys() {
			if k == key {
				a.cursor = i
			}
		}
	}
	return st, err
}

// Cursor returns the key under the keyboard cursor.
func (a *Accordion) Cursor() (string, bool) {
	keys := a.list.Keys()
	if a.cursor < 0 || a.cursor >= len(keys) {
		return "", false
	}
	return keys[a.cursor], true
}

// MoveCursor moves the cursor by dir entries, clamped to the list.
func (a *Accordion) MoveCursor(dir int) {
	a.cursor += dir
	if a.cursor >= a.list.Len() {
		a.cursor = a.list.Len() - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Render draws the list. keys[i] is the entry key shown on line i, or ""
// for lines that are not a question.
func (a *Accordion) Render(t Theme, md *markdownRenderer, width int, focused bool) (lines []string, keys []string) {
	add := func(s, key string) {
		for _, l := range strings.Split(s, "\n") {
			lines = append(lines, l)
			keys = append(keys, key)
		}
	}
	add(t.Title.Render(a.list.Title()), "")
	add("", "")
	for i, e := range a.list.Entries() {
		marker := "+"
		if a.IsOpen(e.Key) {
			marker = "−"
		}
		prefix := "  "
		if focused && i == a.cursor {
			prefix = t.Cursor.Render("▸ ")
		}
		q := truncate(e.Question, width-6)
		add(prefix+t.Cursor.Render(marker)+" "+t.Question.Render(q), e.Key)
		if a.IsOpen(e.Key) {
			body := md.render(e.Answer, width-4)
			for _, l := range strings.Split(body, "\n") {
				add("    "+l, "")
			}
			add("", "")
		}
	}
	return lines, keys
}
