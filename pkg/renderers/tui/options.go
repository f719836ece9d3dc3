package tui

import "github.com/goliatone/go-paramform/pkg/model"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the value record as a JSON object keyed by id.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits params[<id>]=<value> pairs.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "label: value" line per control.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultSkipLabel is the leading choice offered for a select with no value.
const DefaultSkipLabel = "(no selection)"

// Theme captures optional message prefixes applied by the renderer.
// SkipLabel overrides DefaultSkipLabel.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	SkipLabel    string
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(model.ValueRecord) (model.ValueRecord, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
