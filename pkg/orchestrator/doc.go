// Package orchestrator wires form resolution, session setup and rendering
// into one call. A Request names a form from the definition store (or an
// operation in an OpenAPI document), optional submitted values and server
// errors, and a renderer; Generate returns the rendered bytes.
package orchestrator
