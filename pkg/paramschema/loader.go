package paramschema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramform/pkg/model"
)

// Store holds the forms declared by a set of descriptor documents.
type Store struct {
	forms map[string]Entry
}

// Entry is a form together with the file that declared it.
type Entry struct {
	Form   model.Form
	Source string
}

// LoadFS walks fsys and parses .json, .yaml, .yml and .hcl descriptor files.
// When fsys is nil or holds no descriptor files the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Entry)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("paramschema: read %s: %w", name, err)
		}
		forms, err := ParseDocument(data, name)
		if err != nil {
			return err
		}
		return store.add(forms, name)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single descriptor document from disk.
func LoadFile(filename string) (*Store, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("paramschema: read %s: %w", filename, err)
	}
	forms, err := ParseDocument(data, filename)
	if err != nil {
		return nil, err
	}
	store := &Store{forms: make(map[string]Entry)}
	if err := store.add(forms, filename); err != nil {
		return nil, err
	}
	return store, nil
}

// ParseDocument decodes a single descriptor document. The file extension of
// source selects HCL; anything else is tried as JSON, then YAML.
func ParseDocument(data []byte, source string) ([]model.Form, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("paramschema: file %s is empty", source)
	}

	var (
		forms []model.Form
		err   error
	)
	if strings.EqualFold(path.Ext(source), ".hcl") {
		forms, err = parseHCL(data, source)
	} else {
		forms, err = parseStructured(data, source)
	}
	if err != nil {
		return nil, err
	}

	for _, form := range forms {
		if err := model.ValidateParams(form.Params); err != nil {
			return nil, fmt.Errorf("paramschema: form %q (file %s): %w", form.ID, source, err)
		}
	}
	return forms, nil
}

// Form returns the form declared under id.
func (s *Store) Form(id string) (model.Form, bool) {
	entry, ok := s.Entry(id)
	return entry.Form, ok
}

// Entry returns the form declared under id with its source file.
func (s *Store) Entry(id string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	entry, ok := s.forms[strings.TrimSpace(id)]
	if !ok {
		return Entry{}, false
	}
	entry.Form = cloneForm(entry.Form)
	return entry, true
}

// IDs lists the declared form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) add(forms []model.Form, source string) error {
	for _, form := range forms {
		id := strings.TrimSpace(form.ID)
		if id == "" {
			return fmt.Errorf("paramschema: file %s defines an empty form id", source)
		}
		if existing, exists := s.forms[id]; exists {
			return fmt.Errorf("paramschema: duplicate form %q (files %s and %s)", id, existing.Source, source)
		}
		form.ID = id
		s.forms[id] = Entry{Form: form, Source: source}
	}
	return nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title  string            `json:"title" yaml:"title"`
	Params []model.Param     `json:"params" yaml:"params"`
	Values model.ValueRecord `json:"values" yaml:"values"`
}

func parseStructured(data []byte, source string) ([]model.Form, error) {
	var doc documentFile
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr != nil {
		doc = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("paramschema: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	forms := make([]model.Form, 0, len(ids))
	for _, id := range ids {
		raw := doc.Forms[id]
		forms = append(forms, model.Form{
			ID:     id,
			Title:  raw.Title,
			Params: raw.Params,
			Values: raw.Values,
		})
	}
	return forms, nil
}

func isDescriptorFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".hcl":
		return true
	default:
		return false
	}
}

func cloneForm(form model.Form) model.Form {
	out := form
	if form.Params != nil {
		out.Params = make([]model.Param, len(form.Params))
		for i, param := range form.Params {
			param.Options = slices.Clone(param.Options)
			out.Params[i] = param
		}
	}
	if form.Values != nil {
		out.Values = form.Values.Clone()
	}
	return out
}
