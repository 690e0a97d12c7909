package formdef

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/model"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

var (
	// ErrDuplicateForm is returned when two definitions share an id.
	ErrDuplicateForm = errors.New("formdef: duplicate form id")
	// ErrInvalidDefinition wraps parse and shape errors.
	ErrInvalidDefinition = errors.New("formdef: invalid definition")
	// ErrFormNotFound is returned by Store.Require.
	ErrFormNotFound = errors.New("formdef: form not found")
)

// Option configures loading.
type Option func(*config)

type config struct {
	decorators []model.Decorator
}

// WithDecorators runs decorators on every loaded form.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(cfg *config) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// Store holds loaded forms keyed by id.
type Store struct {
	forms   map[string]model.FormModel
	sources map[string]string
}

// EmbeddedFS returns the bundled definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		panic(err)
	}
	return sub
}

// Builtin loads the embedded definitions.
func Builtin(options ...Option) (*Store, error) {
	return LoadFS(EmbeddedFS(), options...)
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	store := &Store{
		forms:   make(map[string]model.FormModel),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if err := model.ApplyDecorators(&form, cfg.decorators...); err != nil {
				return fmt.Errorf("formdef: decorate %q (file %s): %w", form.ID, path, err)
			}
			if err := store.add(form, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes one definition file. source names the file in errors.
func Parse(data []byte, source string) ([]model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: file %s is empty", ErrInvalidDefinition, source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("%w: parse %s: invalid JSON or YAML: %v", ErrInvalidDefinition, source, yamlErr)
		}
	}

	forms := doc.Forms
	if strings.TrimSpace(doc.ID) != "" || len(doc.Fields) > 0 {
		forms = append([]model.FormModel{doc.FormModel}, forms...)
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("%w: file %s defines no forms", ErrInvalidDefinition, source)
	}

	out := make([]model.FormModel, 0, len(forms))
	for _, form := range forms {
		normalised, err := normaliseForm(form, source)
		if err != nil {
			return nil, err
		}
		out = append(out, normalised)
	}
	return out, nil
}

// Form returns the form with id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Require is Form with an error naming the known ids.
func (s *Store) Require(id string) (model.FormModel, error) {
	if form, ok := s.Form(id); ok {
		return form, nil
	}
	return model.FormModel{}, fmt.Errorf("%w: %q (known: %s)", ErrFormNotFound, id, strings.Join(s.IDs(), ", "))
}

// IDs returns the loaded form ids sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Source reports the file a form was loaded from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// Merge adds every form of other. Duplicate ids are an error and leave s
// unchanged.
func (s *Store) Merge(other *Store) error {
	if other == nil {
		return nil
	}
	for id := range other.forms {
		if _, exists := s.forms[id]; exists {
			return fmt.Errorf("%w: %q (files %s and %s)", ErrDuplicateForm, id, s.sources[id], other.sources[id])
		}
	}
	for id, form := range other.forms {
		s.forms[id] = form
		s.sources[id] = other.sources[id]
	}
	return nil
}

func (s *Store) add(form model.FormModel, source string) error {
	if existing, exists := s.sources[form.ID]; exists {
		return fmt.Errorf("%w: %q (files %s and %s)", ErrDuplicateForm, form.ID, existing, source)
	}
	s.forms[form.ID] = form
	s.sources[form.ID] = source
	return nil
}

type documentFile struct {
	Forms           []model.FormModel `json:"forms" yaml:"forms"`
	model.FormModel `yaml:",inline"`
}

func normaliseForm(form model.FormModel, source string) (model.FormModel, error) {
	form.ID = strings.TrimSpace(form.ID)
	if form.ID == "" {
		return model.FormModel{}, fmt.Errorf("%w: file %s defines a form without an id", ErrInvalidDefinition, source)
	}
	if len(form.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: form %q (file %s) has no fields", ErrInvalidDefinition, form.ID, source)
	}

	seen := make(map[string]struct{}, len(form.Fields))
	fields := make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return model.FormModel{}, fmt.Errorf("%w: form %q (file %s) has a field without a name", ErrInvalidDefinition, form.ID, source)
		}
		if _, dup := seen[field.Name]; dup {
			return model.FormModel{}, fmt.Errorf("%w: form %q (file %s) defines field %q twice", ErrInvalidDefinition, form.ID, source, field.Name)
		}
		seen[field.Name] = struct{}{}
		field.Kind = model.FieldKind(strings.TrimSpace(string(field.Kind)))
		fields = append(fields, field)
	}
	form.Fields = fields
	return form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
