// ABOUTME: Per-operator edit session with the ReadOnly/Editing/DialogOpen state machine.
// ABOUTME: At most one active edit exists per session; commit is the only path that writes the store.

package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/miravalle/website/content"
)

// State is the edit session's position in its lifecycle.
type State int

const (
	// StateReadOnly is the default: edit mode off, no affordances shown.
	StateReadOnly State = iota
	// StateEditing means edit mode is on but no dialog is open.
	StateEditing
	// StateDialogOpen means a single slot is open in the editor dialog.
	StateDialogOpen
)

var (
	// ErrNotEditing is returned when a dialog open is attempted while edit
	// mode is off. The precondition lives here, not in caller discipline.
	ErrNotEditing = errors.New("edit mode is off")

	// ErrNoActiveEdit is returned when a commit arrives with no open dialog.
	ErrNoActiveEdit = errors.New("no active edit")
)

// ActiveEdit is the single in-flight edit: the slot being changed, the value
// the dialog was seeded with, and the generation that stamps async uploads.
type ActiveEdit struct {
	Key        string
	Value      string
	Kind       content.Kind
	Generation uint64
}

// Session tracks one operator's edit mode and active edit. The zero state is
// read-only with no active edit. LastAccess is maintained by the session
// store under its own lock.
type Session struct {
	mu         sync.Mutex
	ID         string
	CreatedAt  time.Time
	LastAccess time.Time

	editMode   bool
	active     *ActiveEdit
	generation uint64
}

// EditMode reports whether edit mode is on.
func (s *Session) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case !s.editMode:
		return StateReadOnly
	case s.active != nil:
		return StateDialogOpen
	default:
		return StateEditing
	}
}

// ToggleEditMode flips edit mode and returns the new value. Turning edit
// mode off force-closes any open dialog, discarding its scratch value, so a
// dialog can never be open outside edit mode.
func (s *Session) ToggleEditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editMode = !s.editMode
	if !s.editMode && s.active != nil {
		s.active = nil
		s.generation++
	}
	return s.editMode
}

// OpenEditor creates the session's ActiveEdit, seeded with the slot's
// current resolved value. It fails with ErrNotEditing when edit mode is off.
// Opening while a dialog is already open replaces the ActiveEdit entirely,
// discarding the previous one without saving; each open bumps the generation
// so stale uploads from the superseded dialog are rejected.
func (s *Session) OpenEditor(key, value string, kind content.Kind) (ActiveEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editMode {
		return ActiveEdit{}, ErrNotEditing
	}

	s.generation++
	s.active = &ActiveEdit{
		Key:        key,
		Value:      value,
		Kind:       kind,
		Generation: s.generation,
	}
	return *s.active, nil
}

// Active returns a copy of the current ActiveEdit, if any.
func (s *Session) Active() (ActiveEdit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ActiveEdit{}, false
	}
	return *s.active, true
}

// CloseEditor discards the ActiveEdit without touching the content store.
// Cancel, overlay dismissal, and escape all land here.
func (s *Session) CloseEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.active = nil
		s.generation++
	}
}

// CommitEditor writes value to the content store under the active edit's key
// and clears the ActiveEdit. Returns the committed key.
func (s *Session) CommitEditor(store *content.Store, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return "", ErrNoActiveEdit
	}

	key := s.active.Key
	store.Set(key, value)
	s.active = nil
	s.generation++
	return key, nil
}

// AcceptsUpload reports whether an async upload stamped with generation still
// targets the current ActiveEdit. A result arriving after the dialog closed
// or was superseded must be discarded, not applied.
func (s *Session) AcceptsUpload(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active != nil && s.active.Generation == generation
}
