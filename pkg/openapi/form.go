package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Vendor extensions read from request body schemas.
const (
	// KindExtension on a property forces the field kind.
	KindExtension = "x-formcheck-kind"
	// RelatedExtension on a property names the field it depends on.
	RelatedExtension = "x-formcheck-related"
	// MetadataExtension on a property is copied into Field.Metadata.
	MetadataExtension = "x-formcheck-metadata"
	// OrderExtension on the body schema lists property names in form order.
	OrderExtension = "x-formcheck-order"
)

// Form metadata keys describing the source operation.
const (
	MetadataOperationID = "operationId"
	MetadataMethod      = "method"
	MetadataPath        = "path"
	MetadataMediaType   = "mediaType"
)

// FormFromOperation converts op's request body into a form. Properties are
// ordered by x-formcheck-order, then the required list, then name. Object and
// array properties are skipped.
func FormFromOperation(op Operation) (model.FormModel, error) {
	body := op.RequestBody
	if !body.HasProperties() {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrNoFormBody, op.ID)
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	form := model.FormModel{
		ID:          op.ID,
		Title:       op.Summary,
		Description: op.Description,
		Metadata: map[string]string{
			MetadataOperationID: op.ID,
			MetadataMethod:      op.Method,
			MetadataPath:        op.Path,
		},
	}
	if op.MediaType != "" {
		form.Metadata[MetadataMediaType] = op.MediaType
	}
	if form.Title == "" {
		form.Title = body.Title
	}

	for _, name := range propertyOrder(body) {
		property := body.Properties[name]
		switch property.Type {
		case "object", "array":
			continue
		}
		form.Fields = append(form.Fields, fieldFromProperty(name, property, required[name]))
	}
	if len(form.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %q has no scalar properties", ErrNoFormBody, op.ID)
	}
	return form, nil
}

func fieldFromProperty(name string, property Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Kind:        kindFor(name, property),
		Label:       property.Title,
		Description: property.Description,
		Required:    required,
		Pattern:     property.Pattern,
		MinLength:   property.MinLength,
		MaxLength:   property.MaxLength,
		Related:     extensionString(property.Extensions, RelatedExtension),
	}
	if property.Default != nil {
		field.Default = fmt.Sprint(property.Default)
	}
	if example, ok := property.Example.(string); ok {
		field.Placeholder = example
	}
	if raw, ok := property.Extensions[MetadataExtension].(map[string]any); ok && len(raw) > 0 {
		field.Metadata = make(map[string]string, len(raw))
		for key, value := range raw {
			field.Metadata[key] = fmt.Sprint(value)
		}
	}
	return field
}

func kindFor(name string, property Schema) model.FieldKind {
	if kind := extensionString(property.Extensions, KindExtension); kind != "" {
		return model.FieldKind(kind)
	}
	if name == string(model.FieldKindConfirmPassword) {
		return model.FieldKindConfirmPassword
	}
	switch strings.ToLower(property.Format) {
	case "email":
		return model.FieldKindEmail
	case "password":
		return model.FieldKindPassword
	case "tel", "phone":
		return model.FieldKindPhone
	}
	switch model.FieldKind(name) {
	case model.FieldKindEmail, model.FieldKindPassword, model.FieldKindName, model.FieldKindPhone:
		return model.FieldKind(name)
	}
	return model.FieldKindText
}

func propertyOrder(body Schema) []string {
	seen := make(map[string]bool, len(body.Properties))
	var out []string
	add := func(name string) {
		if _, ok := body.Properties[name]; !ok || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	if raw, ok := body.Extensions[OrderExtension].([]any); ok {
		for _, entry := range raw {
			if name, ok := entry.(string); ok {
				add(name)
			}
		}
	}
	for _, name := range body.Required {
		add(name)
	}
	rest := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return out
}

func extensionString(extensions map[string]any, key string) string {
	value, ok := extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
