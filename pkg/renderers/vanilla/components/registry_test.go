package components

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noopRenderer(*bytes.Buffer, Control, ComponentData) error { return nil }

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()
	if err := reg.Register("Text", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor(" text ")
	if !ok {
		t.Fatalf("descriptor not found")
	}
	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("text")
	if diff := cmp.Diff([]string{"/a.css"}, original.Stylesheets); diff != "" {
		t.Fatalf("registry descriptor mutated (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register("", Descriptor{Renderer: noopRenderer}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("text", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
}

func TestRegistryStylesheetsDeduplicates(t *testing.T) {
	reg := New()
	reg.MustRegister("text", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/shared.css", "/text.css"}})
	reg.MustRegister("select", Descriptor{Renderer: noopRenderer, Stylesheets: []string{"/shared.css", "/select.css"}})

	got := reg.Stylesheets([]string{"text", "select", "missing"})
	if diff := cmp.Diff([]string{"/shared.css", "/text.css", "/select.css"}, got); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistryNames(t *testing.T) {
	if diff := cmp.Diff([]string{NameNumber, NameSelect, NameText}, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateComponentUsesThemePartial(t *testing.T) {
	stub := &recordingTemplates{}
	desc, _ := NewDefaultRegistry().Descriptor(NameSelect)

	var buf bytes.Buffer
	err := desc.Renderer(&buf, Control{ParamID: 1, Kind: NameSelect}, ComponentData{
		Template:      stub,
		ThemePartials: map[string]string{PartialSelect: "themes/acme/select.tmpl"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stub.last != "themes/acme/select.tmpl" {
		t.Fatalf("expected theme partial, got %q", stub.last)
	}
	if buf.String() != "rendered" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

type recordingTemplates struct{ last string }

func (r *recordingTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.last = name
	return "rendered", nil
}

func (r *recordingTemplates) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return strings.TrimSpace(content), nil
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingTemplates) GlobalContext(any) error { return nil }
