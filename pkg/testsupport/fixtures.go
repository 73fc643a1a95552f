package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dowhile/internal/source/parser"
	"github.com/goliatone/go-dowhile/pkg/model"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

// LoadDocument reads a fixture and builds a source.Document using a file
// source. Testing helpers fail fast to keep contract tests concise.
func LoadDocument(t *testing.T, path string) pkgsource.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgsource.Document, error) {
	if path == "" {
		return pkgsource.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgsource.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgsource.NewDocument(pkgsource.SourceFromFile(path), data)
	if err != nil {
		return pkgsource.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustParseFile reads a fixture and runs it through the parser and builder,
// returning the loop model renderer tests consume.
func MustParseFile(t *testing.T, path string) model.File {
	t.Helper()
	return buildFile(t, LoadDocument(t, path))
}

// MustParseSource parses in-memory source text into a loop model. The name
// becomes the model's file name, which renderers embed in headers.
func MustParseSource(t *testing.T, name, src string) model.File {
	t.Helper()

	doc, err := pkgsource.NewDocument(pkgsource.SourceFromMemory(name), []byte(src))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return buildFile(t, doc)
}

func buildFile(t *testing.T, doc pkgsource.Document) model.File {
	t.Helper()

	p := parser.New(pkgsource.ParserOptions{})
	file, err := p.Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	built, err := model.NewBuilder().Build(file)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return built
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
// Tests can assert the renderer returns and writes the same payload without
// duplicating buffer setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
