package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/rs/zerolog"

	internalLoader "github.com/goliatone/go-paramform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-paramform/internal/openapi/parser"
	"github.com/goliatone/go-paramform/pkg/form"
	"github.com/goliatone/go-paramform/pkg/model"
	pkgopenapi "github.com/goliatone/go-paramform/pkg/openapi"
	"github.com/goliatone/go-paramform/pkg/paramschema"
	"github.com/goliatone/go-paramform/pkg/render"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithLabeler overrides how OpenAPI parameter names become labels.
func WithLabeler(labeler pkgopenapi.Labeler) Option {
	return func(o *Orchestrator) {
		o.labeler = labeler
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate the resolved
// form before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against the resolved form
// before it is bound to session state.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithSchemaFS loads descriptor documents from fsys so requests can select
// forms by id.
func WithSchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.schemaFS = fsys
	}
}

// WithStore supplies an already loaded descriptor store.
func WithStore(store *paramschema.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the pipeline from descriptor source to rendered
// output. It applies defaults (vanilla renderer, kin-openapi parser) while
// remaining open to dependency injection.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	labeler         pkgopenapi.Labeler
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
	decorators      []model.Decorator
	transformer     Transformer
	schemaFS        fs.FS
	store           *paramschema.Store
	theme           themeConfig
	logger          zerolog.Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes where descriptors come from and how to render them.
// Exactly one of Form, FormID or OperationID selects the descriptors.
type Request struct {
	// Form supplies descriptors and initial values inline.
	Form *model.Form

	// FormID selects a form declared in the descriptor store.
	FormID string

	// OperationID selects an OpenAPI operation whose parameters become the
	// descriptors. Source or Document locates the OpenAPI document.
	OperationID string
	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document

	// Values are merged over the initial values of the resolved form.
	Values model.ValueRecord

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant are passed to the theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request rendering data. An empty Title is
	// filled from the resolved form.
	RenderOptions render.RenderOptions

	// FormOptions are applied when binding the descriptors to session state.
	FormOptions []form.Option
}

// Generate resolves descriptors, binds them to session state and renders the
// result (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	f, definition, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Title == "" {
		options.Title = definition.Title
	}
	if err := o.applyTheme(req, &options); err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, f, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug().
		Str("form", definition.ID).
		Str("renderer", renderer.Name()).
		Int("bytes", len(output)).
		Msg("form rendered")
	return output, nil
}

// Build resolves the descriptors for req and returns the bound form along
// with the resolved definition.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*form.Form, model.Form, error) {
	if ctx == nil {
		return nil, model.Form{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, model.Form{}, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return nil, model.Form{}, err
	}

	definition, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, model.Form{}, err
	}

	if len(req.Values) > 0 {
		if definition.Values == nil {
			definition.Values = make(model.ValueRecord, len(req.Values))
		}
		for id, value := range req.Values {
			definition.Values[id] = value
		}
	}

	if err := o.applyTransformer(ctx, &definition); err != nil {
		return nil, model.Form{}, err
	}
	if err := o.applyDecorators(&definition); err != nil {
		return nil, model.Form{}, err
	}
	if err := model.ValidateParams(definition.Params); err != nil {
		return nil, model.Form{}, fmt.Errorf("orchestrator: form %q: %w", definition.ID, err)
	}

	o.logger.Debug().
		Str("form", definition.ID).
		Int("params", len(definition.Params)).
		Int("values", len(definition.Values)).
		Msg("form resolved")

	return form.New(definition.Params, definition.Values, req.FormOptions...), definition, nil
}

// Resolve returns the form definition selected by req without binding it.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (model.Form, error) {
	switch {
	case req.Form != nil:
		return cloneForm(*req.Form), nil
	case req.FormID != "":
		if o.store.Empty() {
			return model.Form{}, errors.New("orchestrator: no descriptor documents configured")
		}
		definition, ok := o.store.Form(req.FormID)
		if !ok {
			return model.Form{}, fmt.Errorf("orchestrator: form %q not found", req.FormID)
		}
		return definition, nil
	case req.OperationID != "":
		doc, err := o.resolveDocument(ctx, req.Source, req.Document)
		if err != nil {
			return model.Form{}, err
		}
		definition, err := o.adapter().Form(ctx, doc, req.OperationID)
		if err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: %w", err)
		}
		return definition, nil
	default:
		return model.Form{}, errors.New("orchestrator: form, form id or operation id is required")
	}
}

// Forms lists the ids of forms available from the descriptor store.
func (o *Orchestrator) Forms() []string {
	return o.store.IDs()
}

// Operations lists the ids of the operations in the OpenAPI document at src,
// each of which can be requested through Request.OperationID.
func (o *Orchestrator) Operations(ctx context.Context, src pkgopenapi.Source) ([]string, error) {
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, src, nil)
	if err != nil {
		return nil, err
	}
	forms, err := o.adapter().Forms(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	ids := make([]string, 0, len(forms))
	for _, definition := range forms {
		ids = append(ids, definition.ID)
	}
	return ids, nil
}

func (o *Orchestrator) adapter() *pkgopenapi.Adapter {
	return pkgopenapi.NewAdapter(o.loader, o.parser, o.labeler)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, src pkgopenapi.Source, doc *pkgopenapi.Document) (pkgopenapi.Document, error) {
	if doc != nil {
		return *doc, nil
	}
	if src == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	loaded, err := o.adapter().Load(ctx, src)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return loaded, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(definition *model.Form) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(definition); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, definition *model.Form) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, definition); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}
	o.defaultsApplied = true

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.store == nil && o.schemaFS != nil {
		store, err := paramschema.LoadFS(o.schemaFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load descriptor documents: %w", err)
			return
		}
		o.store = store
		o.logger.Debug().Strs("forms", store.IDs()).Msg("descriptor documents loaded")
	}
}

func cloneForm(src model.Form) model.Form {
	out := src
	if src.Params != nil {
		out.Params = make([]model.Param, len(src.Params))
		for i, param := range src.Params {
			param.Options = slices.Clone(param.Options)
			out.Params[i] = param
		}
	}
	if src.Values != nil {
		out.Values = src.Values.Clone()
	}
	return out
}
