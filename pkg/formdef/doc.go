// Package formdef loads form definitions from JSON or YAML files.
//
// A file holds either a single form (id, title, fields at the top level) or a
// list under "forms". Form ids are unique across everything a Store loads.
// Builtin returns the embedded login, register, profile and checkout forms.
package formdef
