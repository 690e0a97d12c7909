// Package model defines the form definitions consumed by the validator,
// sessions and renderers. A Field carries a kind tag (email, password,
// confirmPassword, name, phone or generic text) that selects the rule set,
// plus baseline constraints (required, length bounds, pattern) that replace
// browser constraint validation. Dependent fields name the field they read
// through Related; confirmPassword fields default to "password".
package model
