// Package render turns validation state into presentation data. Feedback
// maps a field's result onto the input-error/input-success classes and the
// message element shown next to the field; the validator never touches
// presentation. The package also normalises server error payloads onto form
// fields, localises labels through metadata keys, and defines the Renderer
// contract implemented under pkg/renderers.
package render
