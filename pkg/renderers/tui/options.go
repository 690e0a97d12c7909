package tui

import (
	"github.com/goliatone/go-formcheck/pkg/session"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat accepts the names used on the command line.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch OutputFormat(raw) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(raw), true
	case "":
		return OutputFormatJSON, true
	default:
		return "", false
	}
}

// Theme holds optional prefixes for printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]string) (map[string]string, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithValidator sets the validator for sessions created by Render.
func WithValidator(v *validation.Validator) Option {
	return func(r *Renderer) {
		if v != nil {
			r.sessionOptions = append(r.sessionOptions, session.WithValidator(v))
		}
	}
}

// WithSessionOptions forwards extra options to sessions created by Render.
func WithSessionOptions(options ...session.Option) Option {
	return func(r *Renderer) {
		r.sessionOptions = append(r.sessionOptions, options...)
	}
}

// WithMaxAttempts bounds how often one field is prompted. Zero means no
// limit.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithConfirmSubmit asks for a final confirmation once every field is valid.
func WithConfirmSubmit(enabled bool) Option {
	return func(r *Renderer) {
		r.confirmSubmit = enabled
	}
}
