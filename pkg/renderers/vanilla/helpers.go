package vanilla

import (
	"html"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-paramform/pkg/form"
	"github.com/goliatone/go-paramform/pkg/renderers/vanilla/components"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// controlHTMLID returns the element id of a control, e.g. "paramform-3".
func controlHTMLID(prefix string, id int) string {
	return prefix + "-" + strconv.Itoa(id)
}

// controlInputName is the submission name used for a control.
func controlInputName(id int) string {
	return "params[" + strconv.Itoa(id) + "]"
}

func toComponentControl(prefix string, control form.Control) components.Control {
	out := components.Control{
		ParamID:   control.ID,
		HTMLID:    controlHTMLID(prefix, control.ID),
		InputName: controlInputName(control.ID),
		Label:     control.Label,
		Kind:      string(control.Kind),
		Value:     control.Value,
	}
	if control.Kind != form.KindSelect {
		return out
	}
	out.Options = make([]components.Option, 0, len(control.Options))
	for idx, option := range control.Options {
		out.Options = append(out.Options, components.Option{
			Value:    option,
			Selected: idx == control.Selected,
		})
	}
	out.Unselected = control.Selected < 0
	return out
}

// renderLabel escapes the label text. Rich labels keep a small set of inline
// formatting tags and drop everything else.
func renderLabel(label string, rich bool) string {
	if !rich {
		return html.EscapeString(label)
	}
	return strings.TrimSpace(labelSanitizer().Sanitize(label))
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "sub", "sup", "small")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowElements("abbr")
		labelPolicy = policy
	})
	return labelPolicy
}

func buildFieldMarkup(control components.Control, componentName, label, markup string) string {
	var builder strings.Builder
	builder.Grow(len(markup) + 160)

	builder.WriteString(`<div class="paramform-field" data-component="`)
	builder.WriteString(html.EscapeString(componentName))
	builder.WriteString(`" data-param-id="`)
	builder.WriteString(strconv.Itoa(control.ParamID))
	builder.WriteString(`">`)
	builder.WriteString(`<label for="`)
	builder.WriteString(html.EscapeString(control.HTMLID))
	builder.WriteString(`">`)
	builder.WriteString(label)
	builder.WriteString(`</label>`)
	builder.WriteString(strings.TrimSpace(markup))
	builder.WriteString(`</div>`)
	return builder.String()
}

// cssVarsStyle renders custom properties as an inline style attribute value
// with keys sorted for stable output.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.TrimSpace(key) != "" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+strings.TrimSpace(vars[key]))
	}
	return strings.Join(parts, "; ")
}
