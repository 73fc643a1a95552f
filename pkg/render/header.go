package render

import (
	"bytes"
	"regexp"
)

// DefaultTool names the generator in headers when callers do not override
// it.
const DefaultTool = "dowhile"

// generatedPattern matches the conventional generated-code marker defined
// by the Go tool: ^// Code generated .* DO NOT EDIT\.$ on any of the first
// lines of a file.
var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// IsGeneratedHeader reports whether a single line carries the generated-code
// marker.
func IsGeneratedHeader(line string) bool {
	return generatedPattern.MatchString(line)
}

// HasGeneratedHeader reports whether the payload starts with a generated
// code marker. The CLI uses this to refuse overwriting files a human wrote,
// and renderers use it to keep rewriting idempotent instead of stacking
// headers.
func HasGeneratedHeader(data []byte) bool {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	return IsGeneratedHeader(string(bytes.TrimRight(line, "\r")))
}
