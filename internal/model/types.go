package model

import "strings"

// ParamType is the simplified enum for parameter control kinds.
type ParamType string

const (
	ParamTypeText   ParamType = "text"
	ParamTypeNumber ParamType = "number"
	ParamTypeSelect ParamType = "select"

	// ParamTypeString is accepted as an alias of ParamTypeText. Parameter
	// catalogues exported from older tooling label free-text params "string".
	ParamTypeString ParamType = "string"
)

// Param describes a single form field. Struct fields are annotated so
// descriptor documents and renderers can serialise them directly.
type Param struct {
	ID      int       `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Type    ParamType `json:"type,omitempty" yaml:"type,omitempty"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Kind resolves the declared type into one of the three supported kinds.
// Absent and unrecognised types resolve to ParamTypeText.
func (p Param) Kind() ParamType {
	switch ParamType(strings.ToLower(strings.TrimSpace(string(p.Type)))) {
	case ParamTypeNumber:
		return ParamTypeNumber
	case ParamTypeSelect:
		return ParamTypeSelect
	default:
		return ParamTypeText
	}
}

// KnownType reports whether the declared type is one of the supported kinds
// (or absent). Unrecognised values still resolve to text through Kind.
func (p Param) KnownType() bool {
	switch ParamType(strings.ToLower(strings.TrimSpace(string(p.Type)))) {
	case "", ParamTypeText, ParamTypeString, ParamTypeNumber, ParamTypeSelect:
		return true
	default:
		return false
	}
}

// ValuePair associates a param id with its value. It is the list shape of a
// ValueRecord.
type ValuePair struct {
	ParamID int    `json:"paramId" yaml:"paramId"`
	Value   string `json:"value" yaml:"value"`
}

// ValueRecord maps param ids to their current string values. A missing key
// means "no value" and renders as the empty string.
type ValueRecord map[int]string

// Clone returns an independent copy of the record. A nil record clones to an
// empty, non-nil map.
func (r ValueRecord) Clone() ValueRecord {
	out := make(ValueRecord, len(r))
	for id, value := range r {
		out[id] = value
	}
	return out
}

// Pairs returns the record as a pair list ordered by param id.
func (r ValueRecord) Pairs() []ValuePair {
	if len(r) == 0 {
		return nil
	}
	ids := sortedIDs(r)
	out := make([]ValuePair, 0, len(ids))
	for _, id := range ids {
		out = append(out, ValuePair{ParamID: id, Value: r[id]})
	}
	return out
}

// RecordFromPairs normalises the pair representation into a ValueRecord.
// Later pairs win when an id repeats.
func RecordFromPairs(pairs []ValuePair) ValueRecord {
	out := make(ValueRecord, len(pairs))
	for _, pair := range pairs {
		out[pair.ParamID] = pair.Value
	}
	return out
}

// Form groups a descriptor list with the initial values it should be
// rendered with. Descriptor documents declare named forms of this shape.
type Form struct {
	ID     string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string      `json:"title,omitempty" yaml:"title,omitempty"`
	Params []Param     `json:"params" yaml:"params"`
	Values ValueRecord `json:"values,omitempty" yaml:"values,omitempty"`
}
