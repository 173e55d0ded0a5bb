// Package template defines the renderer-agnostic template engine contract the
// HTML renderers build on, keeping the concrete engine swappable.
package template
