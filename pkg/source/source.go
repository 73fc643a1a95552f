package source

import "path/filepath"

// fileSource identifies on-disk inputs.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// stdinSource reads the process standard input.
type stdinSource struct{}

func (stdinSource) Location() string {
	return "<stdin>"
}

func (stdinSource) Kind() SourceKind {
	return SourceKindStdin
}

// SourceFromStdin returns a Source that loads from standard input. The
// loader reads the stream once; callers piping multiple files should invoke
// the pipeline per file.
func SourceFromStdin() Source {
	return stdinSource{}
}

// MemoryName labels unnamed in-memory sources. Diagnostics print it as the
// file name; renderers leave it out of generated headers.
const MemoryName = "<memory>"

// memorySource names an in-memory document. Loaders reject it; it exists so
// Documents built directly from bytes still carry a location for headers and
// diagnostics.
type memorySource struct {
	name string
}

func (s memorySource) Location() string {
	return s.name
}

func (s memorySource) Kind() SourceKind {
	return SourceKindMemory
}

// SourceFromMemory returns a Source labelling bytes that never touched a
// filesystem. An empty name defaults to MemoryName.
func SourceFromMemory(name string) Source {
	if name == "" {
		name = MemoryName
	}
	return memorySource{name: name}
}
