// Package orchestrator wires the load, parse, build, and render stages into
// a single entry point. Callers hand it a source (or an already loaded
// document) and get rendered bytes back; every stage can be swapped through
// options.
package orchestrator
