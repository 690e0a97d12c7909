package openapi

import "errors"

// SourceKind enumerates the places a document can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source identifies where an OpenAPI document comes from.
type Source struct {
	Kind     SourceKind
	Location string
}

// Document is a raw OpenAPI payload and its origin.
type Document struct {
	Source Source
	Raw    []byte
}

// NewDocument copies raw and rejects empty payloads.
func NewDocument(src Source, raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{Source: src, Raw: append([]byte(nil), raw...)}, nil
}

// Operation is the subset of an OpenAPI operation a form is built from.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// MediaType is the request body content type RequestBody came from.
	MediaType   string
	RequestBody Schema
}

// Schema is a flattened JSON schema node. Only the keywords that map onto
// form fields are kept.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Pattern     string
	MinLength   int
	MaxLength   int
	Default     any
	Example     any
	Required    []string
	Properties  map[string]Schema
	Extensions  map[string]any
}

// HasProperties reports whether the schema describes an object with fields.
func (s Schema) HasProperties() bool {
	return len(s.Properties) > 0
}
