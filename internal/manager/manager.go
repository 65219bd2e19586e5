// Package manager holds the per-content-type editing state machine and the
// in-memory list cache each admin screen works against. The list is a cache
// of the backing store (except in local-file mode, where the store itself is
// the durable copy); it is reconciled by id after every operation resolves,
// so concurrent operations on different ids settle last-resolved-wins.
package manager

import (
	"errors"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	ErrSubmitting = errors.New("a submission is already in progress")
	ErrNoDraft    = errors.New("nothing is being edited")
)

// Session is the edit/cancel/submit state machine:
//
//	Idle -> Editing(draft) -> Submitting -> Idle          on success
//	                          Submitting -> Idle(+error)  on failure, draft kept
//	        Editing -> Idle                               on explicit cancel
//
// On failure the draft survives so the user can retry without re-entering
// data.
type Session[D any] struct {
	mu       sync.Mutex
	state    State
	draft    D
	hasDraft bool
	lastErr  error
}

func NewSession[D any]() *Session[D] {
	return &Session[D]{}
}

// Edit stores a draft and moves to Editing. Re-editing while already in
// Editing replaces the draft; editing during a submission is refused.
func (s *Session[D]) Edit(draft D) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmitting
	}
	s.state = StateEditing
	s.draft = draft
	s.hasDraft = true
	s.lastErr = nil
	return nil
}

// Submit moves Editing -> Submitting and hands the draft back for the
// repository call.
func (s *Session[D]) Submit() (D, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero D
	if s.state == StateSubmitting {
		return zero, ErrSubmitting
	}
	if !s.hasDraft {
		return zero, ErrNoDraft
	}
	s.state = StateSubmitting
	return s.draft, nil
}

// Complete ends a successful submission: back to Idle, draft discarded.
func (s *Session[D]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	var zero D
	s.draft = zero
	s.hasDraft = false
	s.lastErr = nil
}

// Fail ends a failed submission: back to Editing with the draft preserved
// and the error recorded for the retry affordance.
func (s *Session[D]) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateEditing
	s.lastErr = err
}

// Cancel discards the draft from Editing. Cancelling mid-submission is
// refused: a submitted operation runs to completion or failure.
func (s *Session[D]) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return ErrSubmitting
	}
	s.state = StateIdle
	var zero D
	s.draft = zero
	s.hasDraft = false
	s.lastErr = nil
	return nil
}

func (s *Session[D]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the preserved draft, if any.
func (s *Session[D]) Draft() (D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.hasDraft
}

// LastErr is the error of the most recent failed submission.
func (s *Session[D]) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// List is the in-memory list cache, reconciled by id.
type List[T any] struct {
	mu    sync.Mutex
	items []T
	id    func(T) string
}

func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// Replace swaps the whole cache for a freshly listed collection.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.mu.Unlock()
}

// Upsert replaces the item with the same id, or appends it.
func (l *List[T]) Upsert(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.id(item)
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items[i] = item
			return
		}
	}
	l.items = append(l.items, item)
}

// Remove filters out the item with the given id. Removing an absent id is
// a no-op.
func (l *List[T]) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, item := range l.items {
		if l.id(item) != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

// Items returns a copy of the cached list.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}
