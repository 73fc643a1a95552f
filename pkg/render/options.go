package render

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the loop model pipeline.
type RenderOptions struct {
	// DisableHeader suppresses the generated-code header line. The zero
	// value keeps the header on, which is what go:generate workflows want.
	DisableHeader bool
	// HeaderText overrides the default header template. It is rendered as a
	// template string with "tool" and "source" in scope, so custom headers
	// can keep the DO NOT EDIT convention while naming their own generator.
	HeaderText string
	// SourceName names the input in headers, line directives, and reports.
	// When empty, renderers fall back to the model's file name.
	SourceName string
	// LineDirectives emits //line directives mapping rewritten output back
	// to the input file, in the style of goyacc. Off by default because most
	// callers prefer stack traces pointing at the generated file they can
	// actually open.
	LineDirectives bool
	// Title labels report output. Ignored by the source renderer.
	Title string
	// Notes carries free-form commentary into report output. The HTML
	// report sanitises this fragment before embedding it.
	Notes string
}
