// Package paramform renders typed parameter descriptors paired with a record
// of initial values as an editable form. Each descriptor becomes one labelled
// control (text, number or select) whose edits update the form's own session
// state, never the caller's record.
//
// Descriptors come from memory, from JSON/YAML/HCL documents
// (pkg/paramschema) or from the parameters of an OpenAPI operation
// (pkg/openapi). The orchestrator in pkg/orchestrator wires these sources to
// the renderers in pkg/renderers: vanilla for HTML and tui for terminal
// sessions.
package paramform
