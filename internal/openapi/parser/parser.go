package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	internalopenapi "github.com/goliatone/go-formcheck/internal/openapi"
)

// DefaultMediaTypes lists the request body content types tried in order.
var DefaultMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Options configures a Parser.
type Options struct {
	// Validate runs kin-openapi document validation before extraction.
	Validate bool
	// MediaTypes overrides DefaultMediaTypes.
	MediaTypes []string
}

// Parser extracts operations from OpenAPI 3 documents using kin-openapi.
type Parser struct {
	options Options
}

// New constructs a Parser.
func New(options Options) *Parser {
	if len(options.MediaTypes) == 0 {
		options.MediaTypes = DefaultMediaTypes
	}
	return &Parser{options: options}
}

// Operations converts a document into operations keyed by operationId.
// Operations without an id are keyed "method:path" in lower case method.
func (p *Parser) Operations(ctx context.Context, doc internalopenapi.Document) (map[string]internalopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]internalopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			op := p.convertOperation(strings.ToUpper(method), path, operation)
			operations[op.ID] = op
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func (p *Parser) convertOperation(method, path string, operation *openapi3.Operation) internalopenapi.Operation {
	id := strings.TrimSpace(operation.OperationID)
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op := internalopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
	}
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return op
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range p.options.MediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			op.MediaType = mediaType
			op.RequestBody = convertSchema(mt.Schema, 0)
			return op
		}
	}
	return op
}

// convertSchema flattens ref. Nested objects keep their scalar keywords but
// not their own properties, since forms are one level deep.
func convertSchema(ref *openapi3.SchemaRef, depth int) internalopenapi.Schema {
	if ref == nil {
		return internalopenapi.Schema{}
	}
	if ref.Value == nil {
		return internalopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := internalopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Pattern:     src.Pattern,
		MinLength:   int(src.MinLength),
		Default:     src.Default,
		Example:     src.Example,
		Extensions:  cloneExtensions(src.Extensions),
	}
	if src.MaxLength != nil {
		schema.MaxLength = int(*src.MaxLength)
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if depth == 0 {
		schema.Properties = make(map[string]internalopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, depth+1)
		}
		mergeAllOf(&schema, src.AllOf, depth)
	}
	return schema
}

// mergeAllOf folds allOf members into target so composed request bodies
// still produce one flat field list.
func mergeAllOf(target *internalopenapi.Schema, refs openapi3.SchemaRefs, depth int) {
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		part := convertSchema(ref, depth)
		if target.Type == "" {
			target.Type = part.Type
		}
		for name, property := range part.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
		target.Required = appendMissing(target.Required, part.Required...)
		for key, value := range part.Extensions {
			if target.Extensions == nil {
				target.Extensions = make(map[string]any)
			}
			if _, exists := target.Extensions[key]; !exists {
				target.Extensions[key] = value
			}
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func cloneExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		out[key] = value
	}
	return out
}

func appendMissing(list []string, values ...string) []string {
	for _, value := range values {
		found := false
		for _, existing := range list {
			if existing == value {
				found = true
				break
			}
		}
		if !found {
			list = append(list, value)
		}
	}
	return list
}
