package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/goliatone/go-paramform/pkg/form"
	"github.com/goliatone/go-paramform/pkg/render"
	rendertemplate "github.com/goliatone/go-paramform/pkg/render/template"
	gotemplate "github.com/goliatone/go-paramform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla/components"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

// DefaultLabelSuffix is appended to every label.
const DefaultLabelSuffix = ":"

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	overrides        map[int]string
	labelSuffix      string
	richLabels       bool
	inlineStylesheet bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default text/number/select components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithComponentOverrides renders the listed param ids with a named component
// instead of the one matching their kind.
func WithComponentOverrides(overrides map[int]string) Option {
	return func(cfg *config) {
		if len(overrides) == 0 {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[int]string, len(overrides))
		}
		for id, name := range overrides {
			cfg.overrides[id] = strings.TrimSpace(name)
		}
	}
}

// WithLabelSuffix changes the text appended to labels. Pass "" to drop it.
func WithLabelSuffix(suffix string) Option {
	return func(cfg *config) {
		cfg.labelSuffix = suffix
	}
}

// WithRichLabels allows inline formatting tags in param names.
func WithRichLabels() Option {
	return func(cfg *config) {
		cfg.richLabels = true
	}
}

// WithInlineStylesheet toggles the embedded <style> block. It is on by
// default.
func WithInlineStylesheet(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStylesheet = enabled
	}
}

// Renderer emits a plain HTML form: one labelled control per param.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	registry   *components.Registry
	overrides  map[int]string
	suffix     string
	richLabels bool
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:       TemplatesFS(),
		labelSuffix:      DefaultLabelSuffix,
		inlineStylesheet: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	renderer := &Renderer{
		templates:  templates,
		registry:   cfg.registry,
		overrides:  cfg.overrides,
		suffix:     cfg.labelSuffix,
		richLabels: cfg.richLabels,
	}
	if cfg.inlineStylesheet {
		renderer.stylesheet = defaultStylesheet()
	}
	return renderer, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form markup. Values come from the form's session state;
// the caller's initial record is never consulted directly.
func (r *Renderer) Render(ctx context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch f.Phase() {
	case form.PhaseUninitialized:
		return nil, fmt.Errorf("vanilla renderer: %w", form.ErrUninitialized)
	case form.PhaseDiscarded:
		return nil, fmt.Errorf("vanilla renderer: %w", form.ErrDiscarded)
	}
	controls := f.Controls()

	data := components.ComponentData{Template: r.templates}
	if options.Theme != nil {
		data.ThemePartials = options.Theme.Partials
	}

	prefix := options.ControlIDPrefix()
	fields := make([]string, 0, len(controls))
	used := make([]string, 0, 3)
	for _, control := range controls {
		view := toComponentControl(prefix, control)
		name := r.componentFor(control)

		descriptor, ok := r.registry.Descriptor(name)
		if !ok {
			return nil, fmt.Errorf("vanilla renderer: component %q not registered for param %d", name, control.ID)
		}

		var markup bytes.Buffer
		if err := descriptor.Renderer(&markup, view, data); err != nil {
			return nil, fmt.Errorf("vanilla renderer: render component %q for param %d: %w", name, control.ID, err)
		}
		if !slices.Contains(used, name) {
			used = append(used, name)
		}

		label := renderLabel(control.Label, r.richLabels) + r.suffix
		fields = append(fields, buildFieldMarkup(view, name, label, markup.String()))
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form": map[string]any{
			"id":    prefix,
			"title": options.Title,
			"style": themeStyle(options),
		},
		"fields":      fields,
		"stylesheet":  r.stylesheet,
		"stylesheets": r.stylesheets(used, options),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) componentFor(control form.Control) string {
	if name := r.overrides[control.ID]; name != "" {
		return name
	}
	return string(control.Kind)
}

func (r *Renderer) stylesheets(used []string, options render.RenderOptions) []string {
	links := r.registry.Stylesheets(used)
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL(ThemeStylesheetKey); href != "" && !slices.Contains(links, href) {
			links = append(links, href)
		}
	}
	return links
}

func themeStyle(options render.RenderOptions) string {
	if options.Theme == nil {
		return ""
	}
	return cssVarsStyle(options.Theme.CSSVars)
}
