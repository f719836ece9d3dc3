package paramform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramform/pkg/model"
	pkgopenapi "github.com/goliatone/go-paramform/pkg/openapi"
	"github.com/goliatone/go-paramform/pkg/orchestrator"
	"github.com/goliatone/go-paramform/pkg/render"
)

// Param describes a single form field.
type Param = model.Param

// ValueRecord maps param ids to their string values.
type ValueRecord = model.ValueRecord

// RenderOptions describes per-request rendering data such as the form id and
// title.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders params with their initial values using the default
// vanilla renderer. It is the simplest entry point for callers that already
// hold descriptors in memory.
func GenerateHTML(ctx context.Context, params []Param, values ValueRecord, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Form: &model.Form{Params: params, Values: values},
	})
}

// GenerateHTMLFromDocument renders the parameters of an OpenAPI operation from
// a pre-loaded document.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateFromFS renders the form formID declared in the descriptor documents
// found in fsys.
func GenerateFromFS(ctx context.Context, fsys fs.FS, formID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithSchemaFS(fsys)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		FormID:   formID,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider builds a go-theme selector over provider so renderers
// receive resolved partials, tokens and assets.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
