package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-paramform/pkg/render"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla/components"
)

type themeConfig struct {
	selector       theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	fallbacks      map[string]string
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.theme.selector = selector
	}
}

// WithThemeProvider builds a go-theme selector over provider. defaultTheme and
// defaultVariant apply when a request names neither, and the selector falls
// back to defaultTheme when the requested theme is unknown.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		defaultTheme = strings.TrimSpace(defaultTheme)
		defaultVariant = strings.TrimSpace(defaultVariant)
		o.theme.selector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
		o.theme.defaultTheme = defaultTheme
		o.theme.defaultVariant = defaultVariant
	}
}

// WithThemeDefaults sets the theme and variant used when a request omits them.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.theme.defaultTheme = strings.TrimSpace(name)
		o.theme.defaultVariant = strings.TrimSpace(variant)
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// provide its own template for a key.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.theme.fallbacks = copyStringMap(fallbacks)
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		components.PartialText:   "templates/components/input.tmpl",
		components.PartialNumber: "templates/components/number.tmpl",
		components.PartialSelect: "templates/components/select.tmpl",
	}
}

func (o *Orchestrator) applyTheme(req Request, options *render.RenderOptions) error {
	if o.theme.selector == nil || options.Theme != nil {
		return nil
	}
	name := firstNonEmpty(req.ThemeName, o.theme.defaultTheme)
	variant := firstNonEmpty(req.ThemeVariant, o.theme.defaultVariant)

	selection, err := o.theme.selector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil
	}

	fallbacks := o.theme.fallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	cfg := selection.RendererTheme(fallbacks)
	options.Theme = &cfg
	o.logger.Debug().
		Str("theme", options.Theme.Theme).
		Str("variant", options.Theme.Variant).
		Msg("theme selected")
	return nil
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
