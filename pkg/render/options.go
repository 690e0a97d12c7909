package render

import "github.com/goliatone/go-formcheck/pkg/validation"

// RenderOptions describe per-request data renderers use to show a form in its
// current state without mutating the form model.
type RenderOptions struct {
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Values pre-populates inputs keyed by field name.
	Values map[string]string
	// Feedback carries per-field presentation state, usually built with
	// FeedbackFor from a session. Fields without feedback render neutral.
	Feedback map[string]Feedback
	// FormErrors are messages that could not be attached to a field.
	FormErrors []string
	// Locale and Translator localise labels through metadata keys.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Translator is the message lookup shared with the validator.
type Translator = validation.Translator
