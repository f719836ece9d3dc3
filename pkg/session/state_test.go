package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/model"
)

func TestNewStateClonesInitialRecord(t *testing.T) {
	initial := model.ValueRecord{1: "повседневное"}
	state := NewState(initial)

	if err := state.Set(1, "вечернее"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if initial[1] != "повседневное" {
		t.Fatalf("caller record mutated: %q", initial[1])
	}
	if got := state.Value(1); got != "вечернее" {
		t.Fatalf("expected edited value, got %q", got)
	}
}

func TestStateMissingValueIsEmpty(t *testing.T) {
	state := NewState(nil)
	if got := state.Value(7); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if _, ok := state.Lookup(7); ok {
		t.Fatalf("expected lookup miss")
	}
}

func TestStateSetIsolatesKeys(t *testing.T) {
	state := NewStateFromPairs([]model.ValuePair{{ParamID: 1, Value: "a"}, {ParamID: 2, Value: "b"}})
	if err := state.Set(1, "changed"); err != nil {
		t.Fatalf("set: %v", err)
	}

	want := model.ValueRecord{1: "changed", 2: "b"}
	if diff := cmp.Diff(want, state.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if state.Edits() != 1 {
		t.Fatalf("expected one edit, got %d", state.Edits())
	}
}

func TestStateDiscard(t *testing.T) {
	state := NewState(model.ValueRecord{1: "a"})
	state.Discard()

	if !state.Discarded() {
		t.Fatalf("expected discarded state")
	}
	if got := state.Value(1); got != "" {
		t.Fatalf("expected no value after discard, got %q", got)
	}
	if err := state.Set(1, "b"); !errors.Is(err, ErrDiscarded) {
		t.Fatalf("expected ErrDiscarded, got %v", err)
	}
	if state.Snapshot() != nil {
		t.Fatalf("expected nil snapshot after discard")
	}
}
