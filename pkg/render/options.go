package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the form instance.
type RenderOptions struct {
	// FormID is emitted as the form element id (HTML) and used as a prefix
	// for control ids. Defaults to "paramform".
	FormID string
	// Title is rendered above the controls when non-empty.
	Title string
	// Theme carries the resolved go-theme selection. The vanilla renderer
	// maps Tokens/CSSVars onto inline custom properties and Partials onto
	// template overrides.
	Theme *theme.RendererConfig
}

// ControlIDPrefix returns the prefix used for control element ids.
func (o RenderOptions) ControlIDPrefix() string {
	if o.FormID == "" {
		return DefaultFormID
	}
	return o.FormID
}

// DefaultFormID is used when RenderOptions.FormID is empty.
const DefaultFormID = "paramform"
