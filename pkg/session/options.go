package session

import "github.com/goliatone/go-formcheck/pkg/validation"

// Option configures a Session.
type Option func(*Session)

// WithValidator overrides the validator (validation.Default when omitted).
func WithValidator(v *validation.Validator) Option {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithInitialValues seeds values on top of the field defaults. Keys that are
// not form fields become generic fields of their own.
func WithInitialValues(values map[string]string) Option {
	return func(s *Session) {
		for name, value := range values {
			s.initial[name] = value
		}
	}
}

// WithLocale selects the message locale passed to the validator.
func WithLocale(locale string) Option {
	return func(s *Session) {
		s.locale = locale
	}
}

// WithCascade revalidates touched dependent fields whenever the field they
// read changes or blurs.
func WithCascade() Option {
	return func(s *Session) {
		s.cascade = true
	}
}

// WithClearOnChange clears a touched field's result on change instead of
// revalidating it; the next blur validates again.
func WithClearOnChange() Option {
	return func(s *Session) {
		s.clearOnChange = true
	}
}
