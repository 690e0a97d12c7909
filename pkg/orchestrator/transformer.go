package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Transformer mutates a FormModel before decorators run.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a YAML or JSON
// document, keyed by form id:
//
//	register:
//	  metadata: {submitLabel: Join}
//	  fields:
//	    email: {label: Work email, placeholder: you@company.com}
//	    phone: {required: true, pattern: "\\+44[0-9 ]+"}
//
// Forms without an entry are left untouched.
type PresetTransformer struct {
	presets map[string]formPreset
}

type formPreset struct {
	Title    string                 `yaml:"title"`
	Metadata map[string]string      `yaml:"metadata"`
	Fields   map[string]fieldPreset `yaml:"fields"`
}

type fieldPreset struct {
	Label          string            `yaml:"label"`
	Description    string            `yaml:"description"`
	Placeholder    string            `yaml:"placeholder"`
	Pattern        string            `yaml:"pattern"`
	PatternMessage string            `yaml:"patternMessage"`
	Required       *bool             `yaml:"required"`
	MinLength      *int              `yaml:"minLength"`
	MaxLength      *int              `yaml:"maxLength"`
	Metadata       map[string]string `yaml:"metadata"`
}

// NewPresetTransformer parses a preset document. JSON is accepted since it is
// valid YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var presets map[string]formPreset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{presets: presets}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset for form.ID. A preset naming a field the form
// does not have is an error.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	preset, ok := t.presets[form.ID]
	if !ok {
		return nil
	}

	if preset.Title != "" {
		form.Title = preset.Title
	}
	form.Metadata = mergeStringMap(form.Metadata, preset.Metadata)

	for name, patch := range preset.Fields {
		field := findField(form.Fields, name)
		if field == nil {
			return fmt.Errorf("preset transformer: form %q has no field %q", form.ID, name)
		}
		applyFieldPreset(field, patch)
	}
	return nil
}

func applyFieldPreset(field *model.Field, patch fieldPreset) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Pattern != "" {
		field.Pattern = patch.Pattern
	}
	if patch.PatternMessage != "" {
		field.PatternMessage = patch.PatternMessage
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.MinLength != nil {
		field.MinLength = *patch.MinLength
	}
	if patch.MaxLength != nil {
		field.MaxLength = *patch.MaxLength
	}
	field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
}

func findField(fields []model.Field, name string) *model.Field {
	for idx := range fields {
		if fields[idx].Name == name {
			return &fields[idx]
		}
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	out := make(map[string]string, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		out[key] = value
	}
	return out
}
