package session

import (
	"errors"

	"github.com/goliatone/go-paramform/pkg/model"
)

// ErrDiscarded is returned when a discarded state is written to.
var ErrDiscarded = errors.New("session: state discarded")

// State is the live, editable copy of a form's values. It is seeded from a
// value record at construction and owned by exactly one form instance; the
// caller's record is never written back.
type State struct {
	values    model.ValueRecord
	edits     int
	discarded bool
}

// NewState clones the initial record into a fresh state.
func NewState(initial model.ValueRecord) *State {
	return &State{values: initial.Clone()}
}

// NewStateFromPairs normalises the pair representation before seeding.
func NewStateFromPairs(pairs []model.ValuePair) *State {
	return &State{values: model.RecordFromPairs(pairs)}
}

// Value returns the stored value for id. Missing ids resolve to "".
func (s *State) Value(id int) string {
	if s == nil || s.discarded {
		return ""
	}
	return s.values[id]
}

// Lookup reports whether id has a stored value.
func (s *State) Lookup(id int) (string, bool) {
	if s == nil || s.discarded {
		return "", false
	}
	value, ok := s.values[id]
	return value, ok
}

// Set replaces the value stored for id. No other entry is touched.
func (s *State) Set(id int, value string) error {
	if s == nil {
		return errors.New("session: state is nil")
	}
	if s.discarded {
		return ErrDiscarded
	}
	if s.values == nil {
		s.values = make(model.ValueRecord)
	}
	s.values[id] = value
	s.edits++
	return nil
}

// Snapshot returns a copy of every stored entry, including ids that no longer
// have a descriptor.
func (s *State) Snapshot() model.ValueRecord {
	if s == nil || s.discarded {
		return nil
	}
	return s.values.Clone()
}

// Edits reports how many Set calls have been applied.
func (s *State) Edits() int {
	if s == nil {
		return 0
	}
	return s.edits
}

// Discard drops all values. The state cannot be written afterwards.
func (s *State) Discard() {
	if s == nil {
		return
	}
	s.values = nil
	s.discarded = true
}

// Discarded reports whether Discard has been called.
func (s *State) Discarded() bool {
	return s != nil && s.discarded
}
