package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Message codes emitted by the built-in rules and baseline checks.
const (
	CodeRequired       = "validation.required"
	CodeMinLength      = "validation.minLength"
	CodeMaxLength      = "validation.maxLength"
	CodePattern        = "validation.pattern"
	CodePatternCustom  = "validation.pattern.custom"
	CodeEmail          = "validation.email"
	CodePasswordLength = "validation.password.length"
	CodePasswordLower  = "validation.password.lowercase"
	CodePasswordUpper  = "validation.password.uppercase"
	CodePasswordDigit  = "validation.password.digit"
	CodePasswordMatch  = "validation.confirmPassword.mismatch"
	CodeNameLength     = "validation.name.length"
	CodeNamePattern    = "validation.name.pattern"
	CodePhone          = "validation.phone"
	CodeServer         = "validation.server"

	// Codes reported by CheckForm.
	CodeMissingRelated = "config.related.missing"
	CodeDuplicateField = "config.field.duplicate"
	CodeInvalidPattern = "config.pattern.invalid"
	CodeEmptyFieldName = "config.field.emptyName"
	CodeLengthBounds   = "config.length.bounds"
)

var defaultMessages = map[string]string{
	CodeRequired:       "This field is required",
	CodeMinLength:      "Must be at least %d characters",
	CodeMaxLength:      "Must be at most %d characters",
	CodePattern:        "Please match the requested format",
	CodeEmail:          "Please enter a valid email address",
	CodePasswordLength: "Password must be at least %d characters long",
	CodePasswordLower:  "Password must contain at least one lowercase letter",
	CodePasswordUpper:  "Password must contain at least one uppercase letter",
	CodePasswordDigit:  "Password must contain at least one number",
	CodePasswordMatch:  "Passwords do not match",
	CodeNameLength:     "Name must be at least %d characters long",
	CodeNamePattern:    "Name can only contain letters and spaces",
	CodePhone:          "Please enter a valid phone number",
}

// ErrMissingTranslator is passed to a MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("validation: translator not configured")

// Translator resolves a message key for a locale. Implementations return an
// error when the key is unknown.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// DefaultMessage renders the built-in English message for code. Unknown codes
// render as the code itself.
func DefaultMessage(code string, args ...any) string {
	format, ok := defaultMessages[code]
	if !ok {
		return code
	}
	if len(args) == 0 || !strings.Contains(format, "%") {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// DefaultMessages returns a copy of the built-in English message formats keyed
// by code.
func DefaultMessages() map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for code, format := range defaultMessages {
		out[code] = format
	}
	return out
}

// Localize rewrites an invalid result's message for locale. The original
// message is kept when no translator is set, the locale is empty, or the
// translator does not know the code.
func Localize(result Result, locale string, t Translator) Result {
	if result.Valid || t == nil || strings.TrimSpace(locale) == "" || result.Code == "" {
		return result
	}
	translated, err := t.Translate(locale, result.Code, result.Args...)
	if err != nil || strings.TrimSpace(translated) == "" {
		return result
	}
	result.Message = translated
	return result
}
