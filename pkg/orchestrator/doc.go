// Package orchestrator wires descriptor resolution, form construction, theme
// selection and rendering behind a single Generate call.
package orchestrator
