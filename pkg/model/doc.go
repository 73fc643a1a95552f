// Package model defines the typed loop model consumed by renderers. A parsed
// input is a File of ordered Segments: Raw text that passes through the
// rewrite untouched, and Loop values describing each recognised do-while
// statement (its body block, condition expression, optional secondary block,
// and the indentation context the rewrite splices into). Every segment
// carries the span of the source text it came from so renderers and
// diagnostics can point back at the original file. The Builder lives in
// internal/model but returns the types defined here.
package model
