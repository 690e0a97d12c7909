package render

import (
	"strings"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Metadata keys that name translation keys for form and field text.
const (
	TitleKeyMetadata       = "titleKey"
	DescriptionKeyMetadata = "descriptionKey"
	LabelKeyMetadata       = "labelKey"
	PlaceholderKeyMetadata = "placeholderKey"
)

// ErrMissingTranslator is passed to OnMissing when no translator is set.
var ErrMissingTranslator = validation.ErrMissingTranslator

// MissingTranslationHandler decides the text used when a key cannot be
// translated. fallback is the untranslated text already on the model.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// LocalizeForm returns a copy of form with titles, labels, descriptions and
// placeholders translated through the *Key metadata entries. Best effort:
// missing keys go through opts.OnMissing.
func LocalizeForm(form model.FormModel, opts RenderOptions) model.FormModel {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	tr := func(key, fallback string) string {
		return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
	}

	out := form
	if key := mapString(form.Metadata, TitleKeyMetadata); key != "" {
		out.Title = tr(key, form.Title)
	}
	if key := mapString(form.Metadata, DescriptionKeyMetadata); key != "" {
		out.Description = tr(key, form.Description)
	}

	out.Fields = make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		if key := mapString(field.Metadata, LabelKeyMetadata); key != "" {
			field.Label = tr(key, field.DisplayLabel())
		}
		if key := mapString(field.Metadata, DescriptionKeyMetadata); key != "" {
			field.Description = tr(key, field.Description)
		}
		if key := mapString(field.Metadata, PlaceholderKeyMetadata); key != "" {
			field.Placeholder = tr(key, field.Placeholder)
		}
		out.Fields[i] = field
	}
	return out
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

func mapString(values map[string]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(values[key])
}
