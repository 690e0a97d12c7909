// Package session owns the state of one form while a user fills it in:
// current values, touched flags and the last validation result per field.
//
// A field starts Untouched. A blur validates it and marks it touched; later
// changes revalidate it immediately. ValidateAll touches and validates every
// field and is the call to make before trusting Valid for submission. Reset
// returns every field to Untouched with its initial value.
//
// Dependent fields (confirmPassword) are not revalidated when the field they
// read changes unless the session is built WithCascade. Sessions are not safe
// for concurrent use; each form owns its own session.
package session
