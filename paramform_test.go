package paramform

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	pkgopenapi "github.com/goliatone/go-paramform/pkg/openapi"
)

func TestGenerateHTML(t *testing.T) {
	params := []Param{{ID: 1, Name: "Назначение", Type: "string"}}
	output, err := GenerateHTML(context.Background(), params, ValueRecord{1: "повседневное"})
	if err != nil {
		t.Fatalf("generate html: %v", err)
	}
	html := string(output)
	for _, fragment := range []string{
		`<label for="paramform-1">Назначение:</label>`,
		`name="params[1]"`,
		`value="повседневное"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, html)
		}
	}
}

func TestGenerateHTMLWithThemeProvider(t *testing.T) {
	provider := theme.NewRegistry()
	if err := provider.Register(&theme.Manifest{
		Name:    "atelier",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#8a3b12"},
	}); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	params := []Param{{ID: 1, Name: "Назначение", Type: "string"}}
	output, err := GenerateHTML(context.Background(), params, nil, WithThemeProvider(provider, "atelier", ""))
	if err != nil {
		t.Fatalf("generate html: %v", err)
	}
	if !strings.Contains(string(output), `style="--brand: #8a3b12"`) {
		t.Fatalf("expected theme css vars in output:\n%s", output)
	}
}

func TestGenerateHTMLFromDocument(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("search.yaml"), []byte(`openapi: 3.0.0
info: {title: Search, version: 1.0.0}
paths:
  /search:
    get:
      operationId: search
      parameters:
        - {name: q, in: query, schema: {type: string}}
      responses:
        "200": {description: ok}
`))
	output, err := GenerateHTMLFromDocument(context.Background(), doc, "search", "")
	if err != nil {
		t.Fatalf("generate html: %v", err)
	}
	if !strings.Contains(string(output), `<label for="paramform-1">Q:</label>`) {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestGenerateFromFS(t *testing.T) {
	files := fstest.MapFS{
		"forms/dress.json": {Data: []byte(`{"forms":{"dress":{"params":[{"id":1,"name":"Длина","type":"select","options":["мини","макси"]}],"values":{"1":"макси"}}}}`)},
	}
	output, err := GenerateFromFS(context.Background(), files, "dress", "vanilla")
	if err != nil {
		t.Fatalf("generate from fs: %v", err)
	}
	if !strings.Contains(string(output), `<option value="макси" selected>макси</option>`) {
		t.Fatalf("expected selected option, got:\n%s", output)
	}
}

func TestEmbeddedAssets(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "paramform.css")
	if err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	if !strings.Contains(string(data), ".paramform") {
		t.Fatalf("stylesheet missing form rules")
	}
}

func TestNewLoaderAndParser(t *testing.T) {
	if NewLoader() == nil || NewParser(pkgopenapi.WithValidation(false)) == nil {
		t.Fatalf("expected loader and parser")
	}
}
