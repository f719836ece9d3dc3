package components

// Canonical component names used by the vanilla renderer and default registry.
// They match form.Kind values so a control resolves to its component by kind.
const (
	NameText   = "text"
	NameNumber = "number"
	NameSelect = "select"
)

// Theme partial keys consulted before the built-in component templates.
const (
	PartialText   = "forms.input"
	PartialNumber = "forms.number"
	PartialSelect = "forms.select"
)
