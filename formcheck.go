// Package formcheck is the quick start entry point for the form validation
// engine. It re-exports the orchestrator constructor and a few one-call
// helpers; the pkg/ packages hold the full API.
package formcheck

import (
	"context"

	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders a built-in or registered form as an HTML fragment.
// Submitted values are validated in full before rendering so the fragment
// carries feedback for every field.
func GenerateHTML(ctx context.Context, formID string, values map[string]string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		FormID:      formID,
		Renderer:    "html",
		Values:      values,
		ValidateAll: len(values) > 0,
	})
}

// GenerateHTMLFromOpenAPI renders the request body of operationID in source.
func GenerateHTMLFromOpenAPI(ctx context.Context, source openapi.Source, operationID string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		FormID:   operationID,
		Source:   &source,
		Renderer: "html",
	})
}

// Validate runs the built-in rule table for a single named field. related
// supplies the values dependent fields read, e.g. password for
// confirmPassword; it may be nil.
func Validate(name, value string, related map[string]string) validation.Result {
	return validation.Validate(name, value, validation.Context{Related: validation.Values(related)})
}

// NewImporter constructs an OpenAPI importer.
func NewImporter(options ...openapi.Option) *openapi.Importer {
	return openapi.NewImporter(options...)
}
