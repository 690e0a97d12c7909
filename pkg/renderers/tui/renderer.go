package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/session"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

const maskedValue = "********"

// Renderer implements render.Renderer for terminal driven sessions: every
// field is prompted, validated on blur and re-prompted until valid.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	sessionOptions    []session.Option
	maxAttempts       int
	confirmSubmit     bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render creates a session seeded with opts.Values, runs it and serializes
// the collected values.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	sessionOptions := []session.Option{
		session.WithInitialValues(opts.Values),
		session.WithLocale(opts.Locale),
	}
	sessionOptions = append(sessionOptions, r.sessionOptions...)
	s := session.New(form, sessionOptions...)

	if err := r.Run(ctx, s, opts); err != nil {
		return nil, err
	}
	return r.Serialize(s)
}

// Run prompts every form field of s until the whole session validates.
// Labels are localised through opts; opts.FormErrors are printed first.
func (r *Renderer) Run(ctx context.Context, s *session.Session, opts render.RenderOptions) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}

	form := render.LocalizeForm(s.Form(), opts)
	if form.Title != "" {
		r.info(ctx, r.theme.InfoPrefix+form.Title)
	}
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		r.info(ctx, r.theme.ErrorPrefix+message)
	}

	for _, field := range form.Fields {
		if field.Name == "" {
			continue
		}
		if err := r.promptField(ctx, s, field); err != nil {
			return err
		}
	}

	// A later answer can invalidate an earlier one (a new password makes the
	// confirmation stale), so loop until the whole form agrees.
	for !s.ValidateAll() {
		for _, name := range s.Fields() {
			result, _ := s.Result(name)
			if result.Valid {
				continue
			}
			field := fieldOrGeneric(form, name)
			r.info(ctx, r.theme.ErrorPrefix+field.DisplayLabel()+": "+result.Message)
			if err := r.promptField(ctx, s, field); err != nil {
				return err
			}
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			return err
		}
		if !ok {
			return ErrSubmitDeclined
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, s *session.Session, field model.Field) error {
	label := field.DisplayLabel()
	secret := isSecret(field)

	for attempt := 1; ; attempt++ {
		cfg := InputConfig{Message: label, Help: field.Description}
		var (
			response string
			err      error
		)
		if secret {
			response, err = r.driver.Password(ctx, cfg)
		} else {
			cfg.Default, _ = s.Value(field.Name)
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		s.OnChange(field.Name, response)
		result := s.OnBlur(field.Name)
		if result.Valid {
			return nil
		}
		r.info(ctx, r.theme.ErrorPrefix+label+": "+result.Message)
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, msg)
}

// Serialize encodes the session values in the configured output format.
func (r *Renderer) Serialize(s *session.Session) ([]byte, error) {
	values := s.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(s, values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

// prettyPrint lists values in session field order, then any keys the
// transformer added. Secret values are masked.
func prettyPrint(s *session.Session, values map[string]string) string {
	form := s.Form()
	seen := make(map[string]bool, len(values))
	var b strings.Builder
	write := func(name string) {
		value, ok := values[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		field := fieldOrGeneric(form, name)
		if isSecret(field) && value != "" {
			value = maskedValue
		}
		fmt.Fprintf(&b, "%s: %s\n", field.DisplayLabel(), value)
	}

	for _, name := range s.Fields() {
		write(name)
	}
	extra := make([]string, 0, len(values))
	for name := range values {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		write(name)
	}
	return b.String()
}

func isSecret(field model.Field) bool {
	switch field.Kind {
	case model.FieldKindPassword, model.FieldKindConfirmPassword:
		return true
	}
	return strings.EqualFold(field.Metadata["cli.secret"], "true")
}

func fieldOrGeneric(form model.FormModel, name string) model.Field {
	if field, ok := form.Field(name); ok {
		return field
	}
	return model.Field{Name: name, Kind: model.FieldKind(name)}
}
