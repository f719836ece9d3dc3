package render

import (
	"context"

	"github.com/goliatone/go-paramform/pkg/form"
)

// Renderer draws a form instance onto an output surface (HTML, terminal).
// Interactive renderers may apply edits to the form through form.Change;
// static renderers only read its controls.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
