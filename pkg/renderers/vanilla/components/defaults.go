package components

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry with the text, number and select
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameText, Descriptor{
		Renderer: templateComponentRenderer(PartialText, templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameNumber, Descriptor{
		Renderer: templateComponentRenderer(PartialNumber, templatePrefix+"number.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, templatePrefix+"select.tmpl"),
	})
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"control": controlContext(control),
			"config":  data.Config,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// controlContext flattens a control into plain strings and bools; template data
// is converted through JSON, which would turn integers into floats.
func controlContext(control Control) map[string]any {
	options := make([]map[string]any, 0, len(control.Options))
	for _, option := range control.Options {
		options = append(options, map[string]any{
			"value":    option.Value,
			"selected": option.Selected,
		})
	}
	return map[string]any{
		"id":         strconv.Itoa(control.ParamID),
		"htmlId":     control.HTMLID,
		"name":       control.InputName,
		"label":      control.Label,
		"kind":       control.Kind,
		"value":      control.Value,
		"options":    options,
		"unselected": control.Unselected,
	}
}
