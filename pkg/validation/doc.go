// Package validation implements the field validation engine: a stateless rule
// table that maps a field name or kind to a rule function, preceded by the
// baseline constraints (required, length bounds, pattern) configured on the
// field. The first failing rule wins and its message is returned as data;
// validation failure is never reported as an error.
//
// Dependent fields (confirmPassword) read their sibling's value through the
// Lookup passed in Context rather than from shared state. When the related
// value is absent the rule passes; use CheckForm to surface that situation as
// a configuration issue ahead of time.
package validation
