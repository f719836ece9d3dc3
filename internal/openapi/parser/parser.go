package parser

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramform/pkg/model"
	pkgopenapi "github.com/goliatone/go-paramform/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if api.Paths == nil || api.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.Validate {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		p.collectOperation(operations, "GET", path, item, item.Get)
		p.collectOperation(operations, "PUT", path, item, item.Put)
		p.collectOperation(operations, "POST", path, item, item.Post)
		p.collectOperation(operations, "DELETE", path, item, item.Delete)
		p.collectOperation(operations, "PATCH", path, item, item.Patch)
		p.collectOperation(operations, "HEAD", path, item, item.Head)
		p.collectOperation(operations, "OPTIONS", path, item, item.Options)
		p.collectOperation(operations, "TRACE", path, item, item.Trace)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func (p *Parser) collectOperation(target map[string]pkgopenapi.Operation, method, path string, item *openapi3.PathItem, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	op, err := pkgopenapi.NewOperation(opID, method, path, p.parameters(item.Parameters, operation.Parameters))
	if err != nil {
		return
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	target[opID] = op
}

// parameters merges path-level and operation-level parameters. An operation
// parameter replaces a path parameter with the same name and location while
// keeping its position.
func (p *Parser) parameters(pathLevel, opLevel openapi3.Parameters) []pkgopenapi.Parameter {
	var out []pkgopenapi.Parameter
	index := make(map[string]int)
	for _, refs := range []openapi3.Parameters{pathLevel, opLevel} {
		for _, ref := range refs {
			if ref == nil || ref.Value == nil {
				continue
			}
			param := convertParameter(ref.Value)
			if !p.keep(param.In) {
				continue
			}
			key := param.In + ":" + param.Name
			if pos, ok := index[key]; ok {
				out[pos] = param
				continue
			}
			index[key] = len(out)
			out = append(out, param)
		}
	}
	return out
}

func (p *Parser) keep(location string) bool {
	if len(p.options.Locations) == 0 {
		return true
	}
	return slices.Contains(p.options.Locations, strings.ToLower(location))
}

func convertParameter(src *openapi3.Parameter) pkgopenapi.Parameter {
	param := pkgopenapi.Parameter{
		Name:        src.Name,
		In:          src.In,
		Description: src.Description,
		Required:    src.Required,
	}
	if src.Schema == nil || src.Schema.Value == nil {
		return param
	}
	schema := src.Schema.Value
	param.Type = firstSchemaType(schema.Type)
	param.Default = schema.Default
	if len(schema.Enum) > 0 {
		param.Enum = make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			param.Enum = append(param.Enum, model.ScalarString(value))
		}
	}
	return param
}

// firstSchemaType picks the first non-null entry of a schema type list, so
// OpenAPI 3.1 nullable types such as [integer, "null"] resolve to integer.
func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value = strings.TrimSpace(value); value != "" && value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}
