package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-paramform/pkg/model"
)

// Labeler turns a parameter name into a display label.
type Labeler func(name string) string

// Adapter wraps the loader/parser flow and exposes operations as forms.
type Adapter struct {
	loader  Loader
	parser  Parser
	labeler Labeler
}

// NewAdapter constructs an OpenAPI adapter with the supplied loader and parser.
// A nil labeler falls back to model.DefaultLabeler.
func NewAdapter(loader Loader, parser Parser, labeler Labeler) *Adapter {
	if labeler == nil {
		labeler = model.DefaultLabeler
	}
	return &Adapter{
		loader:  loader,
		parser:  parser,
		labeler: labeler,
	}
}

// Load fetches the raw OpenAPI document.
func (a *Adapter) Load(ctx context.Context, src Source) (Document, error) {
	if a == nil || a.loader == nil {
		return Document{}, errors.New("openapi adapter: loader is nil")
	}
	return a.loader.Load(ctx, src)
}

// Forms converts every operation into a form, ordered by operation id.
func (a *Adapter) Forms(ctx context.Context, doc Document) ([]model.Form, error) {
	operations, err := a.operations(ctx, doc)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	forms := make([]model.Form, 0, len(ids))
	for _, id := range ids {
		forms = append(forms, FormFromOperation(operations[id], a.labeler))
	}
	return forms, nil
}

// Form converts a single operation into a form.
func (a *Adapter) Form(ctx context.Context, doc Document, operationID string) (model.Form, error) {
	operations, err := a.operations(ctx, doc)
	if err != nil {
		return model.Form{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return model.Form{}, fmt.Errorf("openapi adapter: operation %q not found", operationID)
	}
	return FormFromOperation(op, a.labeler), nil
}

func (a *Adapter) operations(ctx context.Context, doc Document) (map[string]Operation, error) {
	if a == nil || a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}
	operations, err := a.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("openapi adapter: parse %s: %w", doc.Location(), err)
	}
	return operations, nil
}

// FormFromOperation turns operation parameters into descriptors. Ids are
// assigned 1..n in declaration order; enums become selects, integer and
// number schemas become number controls, everything else text. Schema
// defaults seed the initial values.
func FormFromOperation(op Operation, labeler Labeler) model.Form {
	if labeler == nil {
		labeler = model.DefaultLabeler
	}
	form := model.Form{
		ID:     op.ID,
		Title:  op.Summary,
		Params: make([]model.Param, 0, len(op.Parameters)),
		Values: model.ValueRecord{},
	}
	for idx, parameter := range op.Parameters {
		param := model.Param{
			ID:   idx + 1,
			Name: labeler(parameter.Name),
			Type: paramType(parameter),
		}
		if param.Type == model.ParamTypeSelect {
			param.Options = slices.Clone(parameter.Enum)
		}
		if param.Name == "" {
			param.Name = parameter.Name
		}
		form.Params = append(form.Params, param)

		if parameter.Default != nil {
			form.Values[param.ID] = model.ScalarString(parameter.Default)
		}
	}
	return form
}

func paramType(parameter Parameter) model.ParamType {
	if len(parameter.Enum) > 0 {
		return model.ParamTypeSelect
	}
	switch strings.ToLower(parameter.Type) {
	case "integer", "number":
		return model.ParamTypeNumber
	default:
		return model.ParamTypeText
	}
}

// Detect reports whether raw looks like an OpenAPI or Swagger document: a JSON
// object with an openapi or swagger key, or YAML declaring either at the top
// level.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		if strings.HasPrefix(line, "openapi:") || strings.HasPrefix(line, "swagger:") {
			return true
		}
	}
	return false
}
