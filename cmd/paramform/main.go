package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-paramform/internal/observability"
	"github.com/goliatone/go-paramform/pkg/form"
	"github.com/goliatone/go-paramform/pkg/model"
	pkgopenapi "github.com/goliatone/go-paramform/pkg/openapi"
	"github.com/goliatone/go-paramform/pkg/orchestrator"
	"github.com/goliatone/go-paramform/pkg/paramschema"
	"github.com/goliatone/go-paramform/pkg/render"
	"github.com/goliatone/go-paramform/pkg/renderers/tui"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "paramform: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected form and writes the result to stdout
// or the configured output file. driver replaces the survey prompts when set.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	flags := flag.NewFlagSet("paramform", flag.ContinueOnError)
	flags.SetOutput(stderr)

	configPath := flags.String("config", "", "TOML config file")
	source := flags.String("source", "", "descriptor document or directory (.json, .yaml, .hcl), or an OpenAPI document")
	formID := flags.String("form", "", "form id declared in the descriptor documents")
	openapiPath := flags.String("openapi", "", "OpenAPI document path")
	operation := flags.String("operation", "", "OpenAPI operation id to render")
	rendererName := flags.String("renderer", "", "renderer to use (vanilla, tui)")
	output := flags.String("output", "", "output file (stdout if empty)")
	format := flags.String("format", "", "tui output format (json, form, pretty)")
	logLevel := flags.String("log-level", "", "log level (debug, info, warn, error)")
	themeManifest := flags.String("theme-manifest", "", "go-theme manifest file (.json, .yaml)")
	themeName := flags.String("theme", "", "theme name (defaults to the manifest name)")
	themeVariant := flags.String("theme-variant", "", "theme variant")
	list := flags.Bool("list", false, "list form and operation ids and exit")
	var values valueFlags
	flags.Var(&values, "value", "initial value as <id>=<value>; repeatable")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath, cfg)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "form":
			cfg.Form = *formID
		case "openapi":
			cfg.OpenAPI = *openapiPath
		case "operation":
			cfg.Operation = *operation
		case "renderer":
			cfg.Renderer = *rendererName
		case "output":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "log-level":
			cfg.LogLevel = *logLevel
		case "theme-manifest":
			cfg.ThemeManifest = *themeManifest
		case "theme":
			cfg.ThemeName = *themeName
		case "theme-variant":
			cfg.ThemeVariant = *themeVariant
		}
	})
	cfg.Values = mergeValues(cfg.Values, values.record)

	logger := observability.InitLogger(stderr, "paramform", cfg.LogLevel)

	cfg, err := detectSource(cfg)
	if err != nil {
		return err
	}
	if cfg.OpenAPI != "" && cfg.Source == "" {
		logger.Debug().Str("path", cfg.OpenAPI).Msg("using OpenAPI source")
	}

	orch, err := newOrchestrator(cfg, logger, driver)
	if err != nil {
		return err
	}

	if *list {
		ids := orch.Forms()
		if cfg.OpenAPI != "" {
			operations, err := orch.Operations(ctx, pkgopenapi.SourceFromFile(cfg.OpenAPI))
			if err != nil {
				return err
			}
			ids = append(ids, operations...)
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
		return nil
	}

	req, err := buildRequest(cfg, logger)
	if err != nil {
		return err
	}

	result, err := orch.Generate(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, result, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info().Str("path", cfg.Output).Int("bytes", len(result)).Msg("form written")
		return nil
	}
	if _, err := stdout.Write(result); err != nil {
		return err
	}
	if len(result) > 0 && result[len(result)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return nil
}

func newOrchestrator(cfg cliConfig, logger zerolog.Logger, driver tui.PromptDriver) (*orchestrator.Orchestrator, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)

	terminal, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(tui.OutputFormat(cfg.Format)),
	)
	if err != nil {
		return nil, err
	}
	registry.MustRegister(terminal)

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(vanilla.Name),
		orchestrator.WithLogger(logger),
	}
	if cfg.Source != "" {
		store, err := loadStore(cfg.Source)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithStore(store))
	}

	switch {
	case cfg.ThemeManifest != "":
		provider, manifest, err := loadTheme(cfg.ThemeManifest)
		if err != nil {
			return nil, err
		}
		name := cfg.ThemeName
		if name == "" {
			name = manifest.Name
		}
		options = append(options, orchestrator.WithThemeProvider(provider, name, cfg.ThemeVariant))
	case cfg.ThemeName != "" || cfg.ThemeVariant != "":
		return nil, errors.New("-theme and -theme-variant require -theme-manifest")
	}
	return orchestrator.New(options...), nil
}

// detectSource moves a -source file that holds an OpenAPI document over to
// the OpenAPI path. -form then names the operation unless -operation is set.
func detectSource(cfg cliConfig) (cliConfig, error) {
	if cfg.Source == "" {
		return cfg, nil
	}
	info, err := os.Stat(cfg.Source)
	if err != nil {
		return cfg, fmt.Errorf("open source: %w", err)
	}
	if info.IsDir() {
		return cfg, nil
	}
	raw, err := os.ReadFile(cfg.Source)
	if err != nil {
		return cfg, fmt.Errorf("read source: %w", err)
	}
	if !pkgopenapi.Detect(raw) {
		return cfg, nil
	}
	if cfg.OpenAPI != "" && cfg.OpenAPI != cfg.Source {
		return cfg, fmt.Errorf("-source %s is an OpenAPI document and -openapi is also set", cfg.Source)
	}
	cfg.OpenAPI, cfg.Source = cfg.Source, ""
	if cfg.Operation == "" {
		cfg.Operation, cfg.Form = cfg.Form, ""
	}
	return cfg, nil
}

// loadTheme reads a single go-theme manifest into an in-memory registry.
func loadTheme(path string) (theme.ThemeProvider, *theme.Manifest, error) {
	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, nil, fmt.Errorf("load theme: %w", err)
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, nil, fmt.Errorf("register theme %q: %w", manifest.Name, err)
	}
	return registry, manifest, nil
}

func loadStore(source string) (*paramschema.Store, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	if info.IsDir() {
		return paramschema.LoadFS(os.DirFS(source))
	}
	return paramschema.LoadFile(source)
}

func buildRequest(cfg cliConfig, logger zerolog.Logger) (orchestrator.Request, error) {
	req := orchestrator.Request{
		Values:       cfg.Values,
		Renderer:     cfg.Renderer,
		ThemeName:    cfg.ThemeName,
		ThemeVariant: cfg.ThemeVariant,
		FormOptions: []form.Option{form.WithChangeHook(func(event form.ChangeEvent) {
			logger.Info().
				Int("param", event.ParamID).
				Str("previous", event.Previous).
				Str("value", event.Value).
				Msg("param changed")
		})},
	}

	switch {
	case cfg.Operation != "":
		if cfg.OpenAPI == "" {
			return orchestrator.Request{}, errors.New("-operation requires -openapi")
		}
		req.OperationID = cfg.Operation
		req.Source = pkgopenapi.SourceFromFile(cfg.OpenAPI)
	case cfg.Form != "":
		if cfg.Source == "" {
			return orchestrator.Request{}, errors.New("-form requires -source")
		}
		req.FormID = cfg.Form
	default:
		return orchestrator.Request{}, errors.New("either -form or -operation is required")
	}
	return req, nil
}

// valueFlags collects repeated -value id=value flags.
type valueFlags struct {
	record model.ValueRecord
}

func (v *valueFlags) String() string {
	if v == nil || len(v.record) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.record))
	for _, pair := range v.record.Pairs() {
		parts = append(parts, strconv.Itoa(pair.ParamID)+"="+pair.Value)
	}
	return strings.Join(parts, ",")
}

func (v *valueFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected <id>=<value>, got %q", raw)
	}
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("invalid param id %q", key)
	}
	if v.record == nil {
		v.record = model.ValueRecord{}
	}
	v.record[id] = value
	return nil
}
