package model

import "strings"

// FieldKind is the validation tag attached to a field. It selects the rule
// set the validator applies when no rule is registered for the field name.
type FieldKind string

const (
	FieldKindText            FieldKind = "text"
	FieldKindEmail           FieldKind = "email"
	FieldKindPassword        FieldKind = "password"
	FieldKindConfirmPassword FieldKind = "confirmPassword"
	FieldKindName            FieldKind = "name"
	FieldKindPhone           FieldKind = "phone"
)

// DefaultPasswordField is the related field a confirmPassword field reads when
// Related is not set.
const DefaultPasswordField = "password"

// Field models one named input on a form. Baseline constraints (Required,
// MinLength, MaxLength, Pattern) stand in for browser constraint validation
// and always run before the kind specific rules.
type Field struct {
	Name           string            `json:"name" yaml:"name"`
	Kind           FieldKind         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label          string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder    string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Required       bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern        string            `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PatternMessage string            `json:"patternMessage,omitempty" yaml:"patternMessage,omitempty"`
	MinLength      int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength      int               `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Default        string            `json:"default,omitempty" yaml:"default,omitempty"`
	Related        string            `json:"related,omitempty" yaml:"related,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// RelatedField reports the name of the field this field depends on. Only
// confirmPassword fields (or fields with an explicit Related) have one.
func (f Field) RelatedField() string {
	if related := strings.TrimSpace(f.Related); related != "" {
		return related
	}
	if f.Kind == FieldKindConfirmPassword || f.Name == string(FieldKindConfirmPassword) {
		return DefaultPasswordField
	}
	return ""
}

// DisplayLabel returns the label or a label derived from the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// FormModel is the form definition sessions and renderers consume.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (m FormModel) Names() []string {
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}

// InitialValues returns the field defaults keyed by name. Every field gets an
// entry so sessions know the full field set up front.
func (m FormModel) InitialValues() map[string]string {
	out := make(map[string]string, len(m.Fields))
	for _, field := range m.Fields {
		if field.Name == "" {
			continue
		}
		out[field.Name] = field.Default
	}
	return out
}

// Dependents returns the names of fields whose related field is name.
func (m FormModel) Dependents(name string) []string {
	var out []string
	for _, field := range m.Fields {
		if field.RelatedField() == name && field.Name != name {
			out = append(out, field.Name)
		}
	}
	return out
}
