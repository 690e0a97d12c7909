package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/render"
	rendertemplate "github.com/goliatone/go-formcheck/pkg/render/template"
	"github.com/goliatone/go-formcheck/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

// ErrTemplate wraps template load and execution failures.
var ErrTemplate = errors.New("vanilla: template")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	template         string
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// FormTemplate unless WithTemplate names another entry.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplate overrides the entry template name.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.template = trimmed
		}
	}
}

// WithTemplateRenderer injects a template engine. The templates FS options
// are ignored when one is supplied.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSubmitLabel sets the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer produces HTML fragments.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	template    string
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New configures the template engine. Engines that support preloading parse
// the entry template here so a missing template fails early.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		template:    FormTemplate,
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: configure engine: %v", ErrTemplate, err)
		}
		engine = built
	}
	if preloader, ok := engine.(rendertemplate.Preloader); ok {
		if err := preloader.Preload(cfg.template); err != nil {
			return nil, fmt.Errorf("%w: load %q: %v", ErrTemplate, cfg.template, err)
		}
	}
	return &Renderer{templates: engine, template: cfg.template, submitLabel: cfg.submitLabel}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the template for form. Labels are localised through
// render.LocalizeForm; values and feedback come from options.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("%w: renderer is not initialised", ErrTemplate)
	}
	if ctx == nil {
		return nil, errors.New("vanilla: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	localized := render.LocalizeForm(form, options)
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = "POST"
	}

	formErrors := make([]string, 0, len(options.FormErrors))
	for _, message := range render.MergeFormErrors(options.FormErrors) {
		if cleaned := sanitizeMessage(message); cleaned != "" {
			formErrors = append(formErrors, cleaned)
		}
	}

	output, err := r.templates.RenderTemplate(r.template, map[string]any{
		"form":         localized,
		"fields":       buildFieldViews(localized, options),
		"action":       options.Action,
		"method":       method,
		"form_errors":  formErrors,
		"submit_label": submitLabel(localized, r.submitLabel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: execute: %v", ErrTemplate, err)
	}
	return []byte(output), nil
}

// fieldView is the per-field data handed to the template. Message is already
// sanitised and is emitted without further escaping.
type fieldView struct {
	ID           string
	Name         string
	Label        string
	Placeholder  string
	Description  string
	InputType    string
	Value        string
	Required     bool
	InputClass   string
	MessageClass string
	Message      string
}

func buildFieldViews(form model.FormModel, options render.RenderOptions) []fieldView {
	views := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		if field.Name == "" {
			continue
		}
		view := fieldView{
			ID:          controlID(field.Name),
			Name:        field.Name,
			Label:       field.DisplayLabel(),
			Placeholder: field.Placeholder,
			Description: field.Description,
			InputType:   InputType(field),
			Required:    field.Required,
		}
		// password values are never echoed back into the page
		if view.InputType != "password" {
			if value, ok := options.Values[field.Name]; ok {
				view.Value = value
			} else {
				view.Value = field.Default
			}
		}
		if feedback, ok := options.Feedback[field.Name]; ok {
			view.InputClass = feedback.InputClass
			if feedback.HasMessage() {
				view.Message = sanitizeMessage(feedback.Message)
				view.MessageClass = feedback.MessageClass
			}
		}
		views = append(views, view)
	}
	return views
}

// InputType maps a field kind to the HTML input type.
func InputType(field model.Field) string {
	switch field.Kind {
	case model.FieldKindEmail:
		return "email"
	case model.FieldKindPassword, model.FieldKindConfirmPassword:
		return "password"
	case model.FieldKindPhone:
		return "tel"
	default:
		return "text"
	}
}

func controlID(name string) string {
	return "fc-" + strings.TrimSpace(name)
}

func submitLabel(form model.FormModel, fallback string) string {
	if label := strings.TrimSpace(form.Metadata["submitLabel"]); label != "" {
		return label
	}
	return fallback
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(messagePolicy.Sanitize(trimmed))
}
