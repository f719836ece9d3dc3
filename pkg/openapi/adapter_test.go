package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramform/pkg/model"
)

func TestFormFromOperation(t *testing.T) {
	op := MustNewOperation("listDresses", "GET", "/dresses", []Parameter{
		{Name: "length", In: "query", Type: "string", Enum: []string{"mini", "maxi"}, Default: "maxi"},
		{Name: "page_size", In: "query", Type: "integer", Default: float64(20)},
		{Name: "sortBy", In: "query", Type: "string"},
		{Name: "price", In: "query", Type: "number", Default: 9.5},
	})
	op.Summary = "List dresses"

	got := FormFromOperation(op, nil)
	want := model.Form{
		ID:    "listDresses",
		Title: "List dresses",
		Params: []model.Param{
			{ID: 1, Name: "Length", Type: model.ParamTypeSelect, Options: []string{"mini", "maxi"}},
			{ID: 2, Name: "Page Size", Type: model.ParamTypeNumber},
			{ID: 3, Name: "Sort By", Type: model.ParamTypeText},
			{ID: 4, Name: "Price", Type: model.ParamTypeNumber},
		},
		Values: model.ValueRecord{1: "maxi", 2: "20", 4: "9.5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestFormFromOperationCustomLabeler(t *testing.T) {
	op := MustNewOperation("op", "GET", "/", []Parameter{{Name: "q"}})
	got := FormFromOperation(op, func(name string) string { return "Field " + name })
	if got.Params[0].Name != "Field q" {
		t.Fatalf("unexpected label %q", got.Params[0].Name)
	}
}

func TestAdapterFormsOrderedByID(t *testing.T) {
	parser := stubParser{operations: map[string]Operation{
		"b": MustNewOperation("b", "GET", "/b", nil),
		"a": MustNewOperation("a", "GET", "/a", []Parameter{{Name: "q"}}),
	}}
	adapter := NewAdapter(nil, parser, nil)
	doc := MustNewDocument(SourceFromFile("api.json"), []byte("{}"))

	forms, err := adapter.Forms(context.Background(), doc)
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if len(forms) != 2 || forms[0].ID != "a" || forms[1].ID != "b" {
		t.Fatalf("unexpected forms %+v", forms)
	}
	if _, err := adapter.Form(context.Background(), doc, "missing"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
	if _, err := adapter.Load(context.Background(), SourceFromFile("api.json")); err == nil {
		t.Fatalf("expected error without loader")
	}
}

func TestDetect(t *testing.T) {
	cases := map[string]bool{
		`{"openapi":"3.0.0"}`:                     true,
		`{"swagger":"2.0"}`:                       true,
		"openapi: 3.1.0\n":                        true,
		"# api\nswagger: \"2.0\"\n":               true,
		"forms:\n  - title: \"openapi: notes\"\n": false,
		`{"forms":[]}`:                            false,
		"":                                        false,
	}
	for input, want := range cases {
		if got := Detect([]byte(input)); got != want {
			t.Fatalf("detect %q = %v, want %v", input, got, want)
		}
	}
}

type stubParser struct {
	operations map[string]Operation
}

func (s stubParser) Operations(context.Context, Document) (map[string]Operation, error) {
	return s.operations, nil
}
