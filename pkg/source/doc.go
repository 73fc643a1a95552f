// Package source exposes the public contracts for the loader and parser
// stages: where an input file comes from, the Document wrapper that carries
// its bytes, and the Parser that turns it into a loop model.
// Implementations live under internal/source to keep scanning details hidden
// from consumers.
package source
