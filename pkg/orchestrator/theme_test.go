package orchestrator_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramform/pkg/orchestrator"
	"github.com/goliatone/go-paramform/pkg/testsupport"
)

func TestGeneratePassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.select": "themes/acme/dark/select.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.stylesheet": "theme.dark.css",
					},
				},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}
	renderer := &captureRenderer{}
	orch := newCaptureOrchestrator(renderer,
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithThemeDefaults("acme", "light"),
	)

	definition := testsupport.SampleForm()
	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{Form: &definition, ThemeVariant: "dark"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("expected manifest template override, got %s", cfg.Partials["forms.input"])
	}
	if cfg.Partials["forms.select"] != "themes/acme/dark/select.tmpl" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials["forms.select"])
	}
	if cfg.Partials["forms.number"] != "templates/components/number.tmpl" {
		t.Fatalf("fallback partial not applied, got %s", cfg.Partials["forms.number"])
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not applied: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %s", got)
	}
}

func TestWithThemeProviderUsesDefaults(t *testing.T) {
	provider := theme.NewRegistry()
	if err := provider.Register(&theme.Manifest{
		Name:      "atelier",
		Version:   "1.0.0",
		Tokens:    map[string]string{"brand": "#8a3b12", "surface": "#fffaf5"},
		Templates: map[string]string{"forms.number": "themes/atelier/number.tmpl"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/atelier",
			Files:  map[string]string{"vanilla.stylesheet": "atelier.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"surface": "#1d1410"}},
		},
	}); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	renderer := &captureRenderer{}
	orch := newCaptureOrchestrator(renderer, orchestrator.WithThemeProvider(provider, "atelier", "dark"))

	definition := testsupport.SampleForm()
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Form: &definition}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "atelier" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials["forms.number"] != "themes/atelier/number.tmpl" || cfg.Partials["forms.input"] != "templates/components/input.tmpl" {
		t.Fatalf("unexpected partials %v", cfg.Partials)
	}
	if cfg.CSSVars["--surface"] != "#1d1410" || cfg.CSSVars["--brand"] != "#8a3b12" {
		t.Fatalf("unexpected css vars %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/atelier/atelier.css" {
		t.Fatalf("unexpected stylesheet url %s", got)
	}

	// Unknown theme names fall back to the provider default.
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Form: &definition, ThemeName: "missing"}); err != nil {
		t.Fatalf("generate with unknown theme: %v", err)
	}
	if renderer.options.Theme == nil || renderer.options.Theme.Tokens["brand"] != "#8a3b12" {
		t.Fatalf("expected default manifest for unknown theme, got %+v", renderer.options.Theme)
	}
}

func TestGenerateKeepsExplicitTheme(t *testing.T) {
	selector := &stubThemeSelector{}
	renderer := &captureRenderer{}
	orch := newCaptureOrchestrator(renderer, orchestrator.WithThemeSelector(selector))

	definition := testsupport.SampleForm()
	explicit := &theme.RendererConfig{Theme: "inline"}
	req := orchestrator.Request{Form: &definition}
	req.RenderOptions.Theme = explicit
	if _, err := orch.Generate(testsupport.Context(), req); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 0 || renderer.options.Theme != explicit {
		t.Fatalf("explicit theme should bypass the selector")
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
