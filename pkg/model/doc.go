// Package model defines the parameter descriptors and value records consumed
// by the form renderer. Types live in internal/model and are re-exported here
// so callers depend on a stable public surface. A Param carries an integer id,
// a display name, an optional type (text, number or select; "string" is read
// as text) and the ordered options of a select. A ValueRecord maps param ids
// to string values and decodes from either the keyed-object or the pair-list
// shape in JSON and YAML documents.
package model
