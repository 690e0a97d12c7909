// Package openapi builds form models from OpenAPI 3 request bodies.
//
// Each property of an operation's object request body becomes a field. The
// kind comes from the x-formcheck-kind extension, then from format (email,
// password, tel), then from the property name. required, pattern,
// minLength, maxLength, default, title, description and a string example
// (used as placeholder) map onto the field. Parsing uses kin-openapi behind
// internal/openapi so callers never see its types.
package openapi
