// Package toggle implements an exclusive single-choice toggle.
//
// A Store holds at most one chosen key. Toggling the chosen key clears the
// choice (toggle-to-close); toggling any other key replaces it. The same
// component backs diagram node selection (int keys) and accordion
// disclosure (string keys).
//
// Stores are owned by the view that created them and are not safe for
// concurrent use; all transitions happen inside a single event loop.
package toggle

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/archguide/pkg/debug"
)

// ErrUnknownKey is returned (wrapped) when a validator rejects a key and the
// validator did not supply a more specific error.
var ErrUnknownKey = errors.New("unknown toggle key")

// State is the value of an exclusive choice: either absent or exactly one key.
// States are comparable, so two states can be checked with ==.
type State[K comparable] struct {
	key K
	set bool
}

// Absent returns the empty state.
func Absent[K comparable]() State[K] {
	return State[K]{}
}

// Chosen returns a state with k chosen.
func Chosen[K comparable](k K) State[K] {
	return State[K]{key: k, set: true}
}

// Current returns the chosen key and whether one is set.
func (s State[K]) Current() (K, bool) {
	return s.key, s.set
}

// IsAbsent reports whether nothing is chosen.
func (s State[K]) IsAbsent() bool {
	return !s.set
}

// Is reports whether k is the chosen key.
func (s State[K]) Is(k K) bool {
	return s.set && s.key == k
}

func (s State[K]) String() string {
	if !s.set {
		return "absent"
	}
	return fmt.Sprintf("%v", s.key)
}

// Next is the transition function: toggling the chosen key clears it,
// toggling any other key chooses it.
func Next[K comparable](s State[K], k K) State[K] {
	if s.Is(k) {
		return Absent[K]()
	}
	return Chosen(k)
}

// Option configures a Store.
type Option[K comparable] func(*Store[K])

// WithValidator rejects keys for which fn returns an error. A rejected
// toggle leaves the state unchanged.
func WithValidator[K comparable](fn func(K) error) Option[K] {
	return func(s *Store[K]) {
		s.validate = fn
	}
}

// WithKeys restricts the store to the given keys.
func WithKeys[K comparable](keys ...K) Option[K] {
	allowed := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}
	return WithValidator(func(k K) error {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%w: %v", ErrUnknownKey, k)
		}
		return nil
	})
}

// WithOnInvalid sets a callback invoked with the diagnostic for every
// rejected toggle.
func WithOnInvalid[K comparable](fn func(error)) Option[K] {
	return func(s *Store[K]) {
		s.onInvalid = fn
	}
}

// WithName labels the store in debug output.
func WithName[K comparable](name string) Option[K] {
	return func(s *Store[K]) {
		s.name = name
	}
}

// Store holds one exclusive choice.
type Store[K comparable] struct {
	name      string
	state     State[K]
	validate  func(K) error
	onInvalid func(error)
}

// New creates a store with nothing chosen.
func New[K comparable](opts ...Option[K]) *Store[K] {
	s := &Store[K]{
		name:      "toggle",
		onInvalid: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle applies Next to the current state and returns the new state.
// A key rejected by the validator is a no-op: the unchanged state is
// returned together with the diagnostic.
func (s *Store[K]) Toggle(k K) (State[K], error) {
	if s.validate != nil {
		if err := s.validate(k); err != nil {
			debug.Log("%s: ignoring toggle(%v): %v", s.name, k, err)
			s.onInvalid(err)
			return s.state, err
		}
	}
	s.state = Next(s.state, k)
	debug.Log("%s: toggle(%v) -> %s", s.name, k, s.state)
	return s.state, nil
}

// Current returns the chosen key and whether one is set.
func (s *Store[K]) Current() (K, bool) {
	return s.state.Current()
}

// IsOpen reports whether k is the chosen key.
func (s *Store[K]) IsOpen(k K) bool {
	return s.state.Is(k)
}

// State returns the current state value.
func (s *Store[K]) State() State[K] {
	return s.state
}
