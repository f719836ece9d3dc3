package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/goliatone/go-paramform/pkg/model"
)

type cliConfig struct {
	Source       string
	Form         string
	OpenAPI      string
	Operation    string
	Renderer     string
	Output       string
	Format       string
	LogLevel     string
	ThemeName     string
	ThemeVariant  string
	ThemeManifest string
	Values        model.ValueRecord
}

type fileConfig struct {
	Source    string            `toml:"source"`
	Form      string            `toml:"form"`
	OpenAPI   string            `toml:"openapi"`
	Operation string            `toml:"operation"`
	Renderer  string            `toml:"renderer"`
	Output    string            `toml:"output"`
	Format    string            `toml:"format"`
	LogLevel  string            `toml:"log_level"`
	Values    map[string]string `toml:"values"`
	Theme     struct {
		Name     string `toml:"name"`
		Variant  string `toml:"variant"`
		Manifest string `toml:"manifest"`
	} `toml:"theme"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Renderer: "vanilla",
		Format:   "json",
		LogLevel: "info",
	}
}

// loadConfig overlays the keys defined in the TOML file at path onto base.
func loadConfig(path string, base cliConfig) (cliConfig, error) {
	cfg := base

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load paramform config: %w", err)
	}

	setString := func(dst *string, value string, key ...string) {
		if meta.IsDefined(key...) {
			*dst = strings.TrimSpace(value)
		}
	}
	setString(&cfg.Source, raw.Source, "source")
	setString(&cfg.Form, raw.Form, "form")
	setString(&cfg.OpenAPI, raw.OpenAPI, "openapi")
	setString(&cfg.Operation, raw.Operation, "operation")
	setString(&cfg.Renderer, raw.Renderer, "renderer")
	setString(&cfg.Output, raw.Output, "output")
	setString(&cfg.Format, raw.Format, "format")
	setString(&cfg.LogLevel, raw.LogLevel, "log_level")
	setString(&cfg.ThemeName, raw.Theme.Name, "theme", "name")
	setString(&cfg.ThemeVariant, raw.Theme.Variant, "theme", "variant")
	setString(&cfg.ThemeManifest, raw.Theme.Manifest, "theme", "manifest")

	if meta.IsDefined("values") {
		values, err := model.RecordFromAny(raw.Values)
		if err != nil {
			return cliConfig{}, fmt.Errorf("parse values: %w", err)
		}
		cfg.Values = mergeValues(cfg.Values, values)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cliConfig{}, fmt.Errorf("load paramform config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

func mergeValues(dst, src model.ValueRecord) model.ValueRecord {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(model.ValueRecord, len(src))
	}
	for id, value := range src {
		dst[id] = value
	}
	return dst
}
