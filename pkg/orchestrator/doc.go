// Package orchestrator wires the load → collect → assemble → render pipeline
// behind a single entry point. Every dependency has a built-in default and can
// be replaced through options.
package orchestrator
