package source

import (
	"bytes"
	"errors"
	"strings"
)

// Source identifies where an input file originated so loaders can operate on
// paths, fs.FS entries, or standard input without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindStdin  SourceKind = "stdin"
	SourceKindMemory SourceKind = "memory"
)

// Document wraps raw input bytes and their origin. Inputs are ordinary Go
// source that may additionally contain do-while statements, so an empty file
// is a valid document; binary payloads are rejected.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("source: source is required")
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return Document{}, errors.New("source: input contains NUL bytes; expected Go source text")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the input bytes. Mutating the returned slice does
// not change the document.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Name returns the base name of the origin, which renderers embed in the
// generated header. Sources without a path-like location fall back to the
// location verbatim.
func (d Document) Name() string {
	loc := d.Location()
	if idx := strings.LastIndexAny(loc, `/\`); idx >= 0 {
		return loc[idx+1:]
	}
	return loc
}

// Len returns the input size in bytes.
func (d Document) Len() int {
	return len(d.raw)
}
