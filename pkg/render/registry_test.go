package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/form"
)

type namedRenderer struct{ name string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(context.Context, *form.Form, RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(namedRenderer{name: "vanilla"})
	registry.MustRegister(namedRenderer{name: "tui"})

	if err := registry.Register(namedRenderer{name: "tui"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") {
		t.Fatalf("expected vanilla registered")
	}
	if _, err := registry.Get("preact"); !errors.Is(err, ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistryReplace(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(namedRenderer{name: "vanilla"})
	if err := registry.Replace(namedRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(registry.List()) != 1 {
		t.Fatalf("expected single renderer after replace")
	}
}

func TestRenderOptionsControlIDPrefix(t *testing.T) {
	if got := (RenderOptions{}).ControlIDPrefix(); got != DefaultFormID {
		t.Fatalf("expected default prefix, got %q", got)
	}
	if got := (RenderOptions{FormID: "dress"}).ControlIDPrefix(); got != "dress" {
		t.Fatalf("expected custom prefix, got %q", got)
	}
}
