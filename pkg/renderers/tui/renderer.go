package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramform/pkg/form"
	"github.com/goliatone/go-paramform/pkg/model"
	"github.com/goliatone/go-paramform/pkg/render"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions: every
// control becomes a prompt and answers flow into the form's session state.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every control in descriptor order, applies the answers
// to f and serializes the resulting values.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if f == nil {
		return nil, errors.New("tui: form is nil")
	}

	controls := f.Controls()
	if controls == nil {
		return nil, fmt.Errorf("tui: form is %s", f.Phase())
	}
	if opts.Title != "" {
		if err := r.info(ctx, opts.Title); err != nil {
			return nil, err
		}
	}

	for _, control := range controls {
		if err := r.promptControl(ctx, f, control); err != nil {
			return nil, err
		}
	}

	values := f.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(controls, values)
}

func (r *Renderer) promptControl(ctx context.Context, f *form.Form, control form.Control) error {
	switch control.Kind {
	case form.KindSelect:
		return r.promptSelect(ctx, f, control)
	case form.KindNumber:
		return r.promptNumber(ctx, f, control)
	default:
		return r.promptText(ctx, f, control)
	}
}

func (r *Renderer) promptText(ctx context.Context, f *form.Form, control form.Control) error {
	input, err := r.driver.Input(ctx, InputConfig{
		Message: r.message(control),
		Default: control.Value,
	})
	if err != nil {
		return err
	}
	return r.apply(f, control, input)
}

func (r *Renderer) promptNumber(ctx context.Context, f *form.Form, control form.Control) error {
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message:   r.message(control),
			Default:   control.Value,
			Validator: validateNumber,
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if err := validateNumber(input); err != nil {
			if err := r.info(ctx, fmt.Sprintf("Invalid %s: %v", control.Label, err)); err != nil {
				return err
			}
			continue
		}
		return r.apply(f, control, input)
	}
}

// promptSelect offers a leading skip choice while nothing is selected, so
// accepting the highlighted default leaves the select unset instead of
// choosing the first option.
func (r *Renderer) promptSelect(ctx context.Context, f *form.Form, control form.Control) error {
	if len(control.Options) == 0 {
		return r.info(ctx, fmt.Sprintf("%s: no options available", control.Label))
	}
	choices, offset, defaultIndex := control.Options, 0, control.Selected
	if control.Selected < 0 {
		choices = append([]string{r.skipLabel()}, control.Options...)
		offset, defaultIndex = 1, 0
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.message(control),
			Options:      choices,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return err
		}
		if idx == defaultIndex {
			return nil
		}
		err = f.SelectOption(control.ID, idx-offset)
		if errors.Is(err, form.ErrOptionOutOfRange) {
			if err := r.info(ctx, fmt.Sprintf("Invalid %s selection", control.Label)); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("tui: select %d: %w", control.ID, err)
		}
		return nil
	}
}

func (r *Renderer) skipLabel() string {
	if r.theme.SkipLabel != "" {
		return r.theme.SkipLabel
	}
	return DefaultSkipLabel
}

// apply skips unchanged answers so accepting a default leaves the phase as is.
func (r *Renderer) apply(f *form.Form, control form.Control, value string) error {
	if value == control.Value {
		return nil
	}
	if err := f.Change(control.ID, value); err != nil {
		return fmt.Errorf("tui: change %d: %w", control.ID, err)
	}
	return nil
}

func (r *Renderer) message(control form.Control) string {
	return r.theme.PromptPrefix + control.Label
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) serialize(controls []form.Control, values model.ValueRecord) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(controls, values)), nil
	default:
		return json.Marshal(values)
	}
}

// validateNumber accepts empty answers so a number control can be cleared.
func validateNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}

func encodeForm(values model.ValueRecord) string {
	out := url.Values{}
	for _, pair := range values.Pairs() {
		out.Set("params["+strconv.Itoa(pair.ParamID)+"]", pair.Value)
	}
	return out.Encode()
}

func prettyPrint(controls []form.Control, values model.ValueRecord) string {
	var b strings.Builder
	for _, control := range controls {
		value, ok := values[control.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", control.Label, value)
	}
	return b.String()
}
