package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramform/pkg/model"
)

// Transformer mutates a resolved form before decorators run. Implementations
// can relabel params, retype them or seed values.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// Params are patched by id; values fill ids that have no value yet:
//
//	{
//	  "title": "Search",
//	  "params": {"2": {"name": "Length", "type": "select", "options": ["mini", "maxi"]}},
//	  "values": {"2": "maxi"}
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title  string                    `json:"title"`
	Params map[string]jsonParamPatch `json:"params"`
	Values model.ValueRecord         `json:"values"`
}

type jsonParamPatch struct {
	Name    string          `json:"name"`
	Type    model.ParamType `json:"type"`
	Options []string        `json:"options"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for key := range document.Params {
		if _, err := strconv.Atoi(strings.TrimSpace(key)); err != nil {
			return nil, fmt.Errorf("json preset transformer: param key %q is not an id", key)
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		form.Title = t.document.Title
	}

	for key, patch := range t.document.Params {
		id, _ := strconv.Atoi(strings.TrimSpace(key))
		idx := slices.IndexFunc(form.Params, func(param model.Param) bool { return param.ID == id })
		if idx < 0 {
			return fmt.Errorf("json preset transformer: param %d not found", id)
		}
		applyParamPatch(&form.Params[idx], patch)
	}

	for id, value := range t.document.Values {
		if form.Values == nil {
			form.Values = make(model.ValueRecord, len(t.document.Values))
		}
		if _, exists := form.Values[id]; !exists {
			form.Values[id] = value
		}
	}
	return nil
}

func applyParamPatch(param *model.Param, patch jsonParamPatch) {
	if name := strings.TrimSpace(patch.Name); name != "" {
		param.Name = name
	}
	if patch.Type != "" {
		param.Type = patch.Type
	}
	if patch.Options != nil {
		param.Options = slices.Clone(patch.Options)
	}
}
