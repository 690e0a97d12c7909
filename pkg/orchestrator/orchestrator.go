package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcheck/pkg/session"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

const defaultRendererName = vanilla.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithFormStore replaces the built-in form definitions.
func WithFormStore(store *formdef.Store) Option {
	return func(o *Orchestrator) {
		o.forms = store
	}
}

// WithImporter injects the OpenAPI importer used for Request.Source.
func WithImporter(importer *openapi.Importer) Option {
	return func(o *Orchestrator) {
		o.importer = importer
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithBundle sets the message bundle used for locale matching and
// translation.
func WithBundle(bundle *i18n.Bundle) Option {
	return func(o *Orchestrator) {
		o.bundle = bundle
	}
}

// WithValidator overrides the validator. By default one is built around the
// bundle so messages are localised.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithTransformer registers a Transformer run after the form is resolved and
// before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators run against every resolved form.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithSessionOptions forwards options to every session the orchestrator
// creates.
func WithSessionOptions(options ...session.Option) Option {
	return func(o *Orchestrator) {
		o.sessionOptions = append(o.sessionOptions, options...)
	}
}

// Orchestrator coordinates form resolution, validation and rendering. Missing
// dependencies default to the built-in definitions, the embedded message
// bundle and the HTML renderer.
type Orchestrator struct {
	forms           *formdef.Store
	importer        *openapi.Importer
	registry        *render.Registry
	defaultRenderer string
	bundle          *i18n.Bundle
	validator       *validation.Validator
	transformer     Transformer
	decorators      []model.Decorator
	sessionOptions  []session.Option
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one form interaction.
type Request struct {
	// FormID names a form in the store, or an operation id when Source is set.
	FormID string
	// Source points at an OpenAPI document to build the form from.
	Source *openapi.Source
	// Renderer names the renderer; empty uses the default.
	Renderer string
	// Locale is a locale or Accept-Language value matched against the bundle.
	Locale string
	// Values are the submitted or prefilled values.
	Values map[string]string
	// ValidateAll validates every field before rendering, as after a submit.
	ValidateAll bool
	// ServerErrors is an error payload keyed by field path.
	ServerErrors map[string][]string
	// RenderOptions carries Action, Method and extra form errors.
	RenderOptions render.RenderOptions
}

// Result is what Prepare hands to a renderer.
type Result struct {
	Form    model.FormModel
	Session *session.Session
	Options render.RenderOptions
}

// Generate resolves the form, prepares its session and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	prepared, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, prepared.Form, prepared.Options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Prepare resolves the form and builds a session with the request values,
// validation state and server errors applied.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	form, err := o.ResolveForm(ctx, req)
	if err != nil {
		return Result{}, err
	}

	locale := o.bundle.Match(req.Locale)
	s := o.NewSession(form, locale, req.Values)
	if req.ValidateAll {
		s.ValidateAll()
	}
	var formErrors []string
	if len(req.ServerErrors) > 0 {
		formErrors = render.ApplyErrorPayload(s, req.ServerErrors)
	}

	opts := render.OptionsFromSession(s, req.RenderOptions)
	opts.Locale = locale
	opts.FormErrors = render.MergeFormErrors(opts.FormErrors, formErrors...)
	if opts.Translator == nil {
		opts.Translator = o.bundle
	}
	if opts.Action == "" {
		opts.Action = form.Metadata[openapi.MetadataPath]
	}
	if opts.Method == "" {
		opts.Method = form.Metadata[openapi.MetadataMethod]
	}
	return Result{Form: form, Session: s, Options: opts}, nil
}

// ResolveForm loads the requested form and runs the transformer and
// decorators on it.
func (o *Orchestrator) ResolveForm(ctx context.Context, req Request) (model.FormModel, error) {
	if req.FormID == "" {
		return model.FormModel{}, errors.New("orchestrator: form id is required")
	}

	var (
		form model.FormModel
		err  error
	)
	if req.Source != nil {
		var catalog *openapi.Catalog
		catalog, err = o.importer.Load(ctx, *req.Source)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: load document: %w", err)
		}
		form, err = catalog.Form(req.FormID)
	} else {
		form, err = o.forms.Require(req.FormID)
	}
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: resolve form: %w", err)
	}
	// the store hands out shared slices
	form.Fields = append([]model.Field(nil), form.Fields...)

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	if err := model.ApplyDecorators(&form, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return form, nil
}

// NewSession creates a session for form using the orchestrator's validator.
func (o *Orchestrator) NewSession(form model.FormModel, locale string, values map[string]string) *session.Session {
	options := []session.Option{
		session.WithValidator(o.validator),
		session.WithLocale(locale),
		session.WithInitialValues(values),
	}
	options = append(options, o.sessionOptions...)
	return session.New(form, options...)
}

// Validator returns the validator sessions use.
func (o *Orchestrator) Validator() *validation.Validator {
	return o.validator
}

// Forms returns the definition store.
func (o *Orchestrator) Forms() *formdef.Store {
	return o.forms
}

// Bundle returns the message bundle.
func (o *Orchestrator) Bundle() *i18n.Bundle {
	return o.bundle
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.bundle == nil {
		o.bundle = i18n.Default()
	}
	if o.validator == nil {
		o.validator = validation.New(validation.WithTranslator(o.bundle))
	}
	if o.importer == nil {
		o.importer = openapi.NewImporter()
	}
	if o.forms == nil {
		store, err := formdef.Builtin()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load builtin forms: %w", err)
			return
		}
		o.forms = store
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry, o.initialiseErr = render.NewRegistryWith(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
