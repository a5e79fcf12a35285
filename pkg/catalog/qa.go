package catalog

import (
	"fmt"

	"github.com/vanderheijden86/archguide/pkg/toggle"
)

// QAEntry is one question/answer pair of an accordion list.
type QAEntry struct {
	Key      string `json:"key,omitempty" yaml:"key,omitempty" toml:"key"`
	Question string `json:"question" yaml:"question" toml:"question"`
	Answer   string `json:"answer" yaml:"answer" toml:"answer"`
}

// QAList is an ordered accordion list. Entry keys are unique within the
// list; entries without a key get "<list id>-<position>".
type QAList struct {
	id      string
	title   string
	entries []QAEntry
}

// NewQAList validates and builds a list.
func NewQAList(id, title string, entries ...QAEntry) (*QAList, error) {
	if id == "" {
		return nil, fmt.Errorf("question list %q has no id", title)
	}
	l := &QAList{id: id, title: title, entries: make([]QAEntry, 0, len(entries))}
	seen := make(map[string]bool, len(entries))
	for j, e := range entries {
		if e.Key == "" {
			e.Key = fmt.Sprintf("%s-%d", id, j)
		}
		if seen[e.Key] {
			return nil, &DuplicateKeyError{Scope: "question list " + id, Key: e.Key}
		}
		seen[e.Key] = true
		l.entries = append(l.entries, e)
	}
	return l, nil
}

func (l *QAList) ID() string    { return l.id }
func (l *QAList) Title() string { return l.title }
func (l *QAList) Len() int      { return len(l.entries) }

// Entries returns a copy of the entries in order.
func (l *QAList) Entries() []QAEntry {
	return append([]QAEntry(nil), l.entries...)
}

// Keys returns entry keys in order.
func (l *QAList) Keys() []string {
	keys := make([]string, len(l.entries))
	for i, e := range l.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entry returns the entry with the given key.
func (l *QAList) Entry(key string) (QAEntry, bool) {
	for _, e := range l.entries {
		if e.Key == key {
			return e, true
		}
	}
	return QAEntry{}, false
}

// NewDisclosure returns a disclosure store restricted to this list's keys.
func (l *QAList) NewDisclosure(opts ...toggle.Option[string]) *toggle.Store[string] {
	all := append([]toggle.Option[string]{
		toggle.WithName[string]("disclosure:" + l.id),
		toggle.WithKeys(l.Keys()...),
	}, opts...)
	return toggle.New(all...)
}
