// Package registry provides a generic, thread-safe name to item registry.
// The rules file decoder keeps its per-kind decoders in one.
package registry
