package render

import (
	"github.com/goliatone/go-formcheck/pkg/session"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// CSS classes applied to inputs and their message element.
const (
	InputErrorClass   = "input-error"
	InputSuccessClass = "input-success"
	MessageClass      = "field-message"
	ErrorMessageClass = "error-message"
)

// Feedback is the presentation state of one field. It is derived from the
// session and never fed back into validation.
type Feedback struct {
	Field        string         `json:"field"`
	Status       session.Status `json:"status"`
	InputClass   string         `json:"inputClass,omitempty"`
	MessageClass string         `json:"messageClass,omitempty"`
	Message      string         `json:"message,omitempty"`
}

// HasMessage reports whether a message element should be shown.
func (f Feedback) HasMessage() bool {
	return f.Message != ""
}

// FeedbackFromResult maps a validation result onto classes: invalid fields
// get the error class and a message element, valid fields only the success
// class.
func FeedbackFromResult(name string, result validation.Result) Feedback {
	if result.Valid {
		return Feedback{
			Field:      name,
			Status:     session.StatusValid,
			InputClass: InputSuccessClass,
		}
	}
	return Feedback{
		Field:        name,
		Status:       session.StatusInvalid,
		InputClass:   InputErrorClass,
		MessageClass: MessageClass + " " + ErrorMessageClass,
		Message:      result.Message,
	}
}

// FeedbackFor builds feedback for every known field of a session. Untouched
// and pending fields carry no classes.
func FeedbackFor(s *session.Session) map[string]Feedback {
	out := make(map[string]Feedback)
	for _, name := range s.Fields() {
		if result, ok := s.Result(name); ok {
			out[name] = FeedbackFromResult(name, result)
			continue
		}
		out[name] = Feedback{Field: name, Status: s.Status(name)}
	}
	return out
}

// OptionsFromSession fills Values and Feedback from a session.
func OptionsFromSession(s *session.Session, base RenderOptions) RenderOptions {
	opts := base
	opts.Values = s.Values()
	opts.Feedback = FeedbackFor(s)
	if opts.Locale == "" {
		opts.Locale = s.Locale()
	}
	return opts
}
