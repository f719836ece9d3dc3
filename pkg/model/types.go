package model

import internalmodel "github.com/goliatone/go-paramform/internal/model"

// ParamType re-exports the internal ParamType enumeration.
type ParamType = internalmodel.ParamType

const (
	ParamTypeText   = internalmodel.ParamTypeText
	ParamTypeNumber = internalmodel.ParamTypeNumber
	ParamTypeSelect = internalmodel.ParamTypeSelect
	ParamTypeString = internalmodel.ParamTypeString
)

type Param = internalmodel.Param
type ValuePair = internalmodel.ValuePair
type ValueRecord = internalmodel.ValueRecord
type Form = internalmodel.Form

// RecordFromPairs normalises a pair list into a ValueRecord; later pairs win.
func RecordFromPairs(pairs []ValuePair) ValueRecord {
	return internalmodel.RecordFromPairs(pairs)
}

// RecordFromAny converts decoded JSON/YAML/HCL payloads into a ValueRecord.
func RecordFromAny(raw any) (ValueRecord, error) {
	return internalmodel.RecordFromAny(raw)
}

// DefaultLabeler turns machine names such as "page_size" into display labels.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

// ScalarString renders a decoded scalar as a ValueRecord value.
func ScalarString(value any) string {
	return internalmodel.ScalarString(value)
}

// ErrDuplicateParamID is returned by ValidateParams.
var ErrDuplicateParamID = internalmodel.ErrDuplicateParamID

// ValidateParams checks that descriptor ids are unique.
func ValidateParams(params []Param) error {
	return internalmodel.ValidateParams(params)
}
