package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParamKind(t *testing.T) {
	cases := map[ParamType]ParamType{
		"":         ParamTypeText,
		"text":     ParamTypeText,
		"string":   ParamTypeText,
		"date":     ParamTypeText,
		"number":   ParamTypeNumber,
		" Number ": ParamTypeNumber,
		"select":   ParamTypeSelect,
	}
	for declared, want := range cases {
		if got := (Param{Type: declared}).Kind(); got != want {
			t.Fatalf("kind for %q: want %q, got %q", declared, want, got)
		}
	}
}

func TestRecordFromPairsLaterWins(t *testing.T) {
	record := RecordFromPairs([]ValuePair{
		{ParamID: 1, Value: "first"},
		{ParamID: 2, Value: "макси"},
		{ParamID: 1, Value: "second"},
	})

	want := ValueRecord{1: "second", 2: "макси"}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ValuePair{{1, "second"}, {2, "макси"}}, record.Pairs()); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestValueRecordCloneIsIndependent(t *testing.T) {
	original := ValueRecord{1: "a"}
	clone := original.Clone()
	clone[1] = "b"
	if original[1] != "a" {
		t.Fatalf("clone mutated original")
	}
	if got := ValueRecord(nil).Clone(); got == nil {
		t.Fatalf("expected nil record to clone into empty map")
	}
}

func TestValueRecordUnmarshalJSONShapes(t *testing.T) {
	want := ValueRecord{1: "повседневное", 2: "42"}
	payloads := []string{
		`{"1": "повседневное", "2": 42}`,
		`[{"paramId": 1, "value": "повседневное"}, {"paramId": 2, "value": "42"}]`,
		`[[1, "повседневное"], [2, 42]]`,
	}
	for _, payload := range payloads {
		var got ValueRecord
		if err := json.Unmarshal([]byte(payload), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", payload, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("record mismatch for %s (-want +got):\n%s", payload, diff)
		}
	}
}

func TestValueRecordUnmarshalJSONRejectsBadIDs(t *testing.T) {
	var got ValueRecord
	if err := json.Unmarshal([]byte(`{"colour": "red"}`), &got); err == nil {
		t.Fatalf("expected error for non-numeric id")
	}
}

func TestValueRecordUnmarshalYAML(t *testing.T) {
	const doc = `
values:
  1: повседневное
  2: макси
pairs:
  - paramId: 3
    value: "1.5"
`
	var payload struct {
		Values ValueRecord `yaml:"values"`
		Pairs  ValueRecord `yaml:"pairs"`
	}
	if err := yaml.Unmarshal([]byte(doc), &payload); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if diff := cmp.Diff(ValueRecord{1: "повседневное", 2: "макси"}, payload.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ValueRecord{3: "1.5"}, payload.Pairs); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"page_size": "Page Size",
		"sortBy":    "Sort By",
		"limit2":    "Limit 2",
		"x-trace":   "X Trace",
		"":          "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("label for %q: want %q, got %q", input, want, got)
		}
	}
}

func TestValidateParams(t *testing.T) {
	if err := ValidateParams([]Param{{ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateParams([]Param{{ID: 1}, {ID: 1}}); !errors.Is(err, ErrDuplicateParamID) {
		t.Fatalf("expected ErrDuplicateParamID, got %v", err)
	}
}
