// Package template defines the template engine contract HTML renderers
// render through. Adapters live in subpackages.
package template
