package openapi

import (
	"context"
	"strings"
)

// Parser extracts operations, keyed by operation id, from a document.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs kin-openapi document validation before extraction.
	Validate bool

	// Locations restricts parameters to the listed "in" values (query, path,
	// header, cookie). Empty keeps every location.
	Locations []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithLocations keeps only parameters declared in the given locations.
func WithLocations(locations ...string) ParserOption {
	return func(opts *ParserOptions) {
		for _, location := range locations {
			if location = strings.ToLower(strings.TrimSpace(location)); location != "" {
				opts.Locations = append(opts.Locations, location)
			}
		}
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
