package paramschema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/goliatone/go-paramform/pkg/model"
)

type hclFile struct {
	Forms []*hclForm `hcl:"form,block"`
}

type hclForm struct {
	ID     string            `hcl:"id,label"`
	Title  string            `hcl:"title,optional"`
	Params []*hclParam       `hcl:"param,block"`
	Values map[string]string `hcl:"values,optional"`
}

type hclParam struct {
	ID      int      `hcl:"id"`
	Name    string   `hcl:"name"`
	Type    string   `hcl:"type,optional"`
	Options []string `hcl:"options,optional"`
}

func parseHCL(data []byte, source string) ([]model.Form, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("paramschema: parse %s: %w", source, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("paramschema: decode %s: %w", source, diags)
	}

	forms := make([]model.Form, 0, len(parsed.Forms))
	for _, block := range parsed.Forms {
		form := model.Form{
			ID:     block.ID,
			Title:  block.Title,
			Params: make([]model.Param, 0, len(block.Params)),
		}
		for _, param := range block.Params {
			form.Params = append(form.Params, model.Param{
				ID:      param.ID,
				Name:    param.Name,
				Type:    model.ParamType(param.Type),
				Options: param.Options,
			})
		}
		if len(block.Values) > 0 {
			values, err := model.RecordFromAny(block.Values)
			if err != nil {
				return nil, fmt.Errorf("paramschema: form %q (file %s) values: %w", block.ID, source, err)
			}
			form.Values = values
		}
		forms = append(forms, form)
	}
	return forms, nil
}
