// Package manifest loads batch configuration for the rewrite CLI. A
// manifest lists input files with optional output overrides plus the render
// settings shared by every input, so projects can run one command instead
// of wiring a go:generate line per file.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultNames are the manifest file names the CLI discovers when no
// explicit path is given, in preference order.
var DefaultNames = []string{"dowhile.yaml", "dowhile.yml", "dowhile.json"}

// Manifest is a parsed batch configuration.
type Manifest struct {
	// Renderer names the registry renderer used for outputs. Empty uses
	// the orchestrator default.
	Renderer string `json:"renderer" yaml:"renderer"`
	// HeaderText overrides the generated-code header template.
	HeaderText string `json:"headerText" yaml:"headerText"`
	// LineDirectives turns on //line directives in rewritten output.
	LineDirectives bool `json:"lineDirectives" yaml:"lineDirectives"`
	// Report names a directory that receives a Markdown report per input.
	// Empty disables reports.
	Report string `json:"report" yaml:"report"`
	// Inputs lists the files to rewrite.
	Inputs []Input `json:"inputs" yaml:"inputs"`

	// Dir is the directory the manifest was loaded from. Relative input
	// and output paths resolve against it.
	Dir string `json:"-" yaml:"-"`
}

// Input pairs one source file with its output destination.
type Input struct {
	Source string `json:"source" yaml:"source"`
	// Output is the file to write. Empty derives it from Source.
	Output string `json:"output" yaml:"output"`
}

// Load reads and validates a manifest from disk.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// LoadFS reads and validates a manifest from a filesystem, mainly for
// tests and embedded configurations.
func LoadFS(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Discover looks for a default manifest name inside dir and reports the
// first match.
func Discover(dir string) (string, bool) {
	for _, name := range DefaultNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// DeriveOutput maps a source path to its output path: a .dw suffix is
// replaced with .go, anything else gets .go appended.
func DeriveOutput(source string) string {
	if strings.HasSuffix(source, ".dw") {
		return strings.TrimSuffix(source, ".dw") + ".go"
	}
	return source + ".go"
}

func parse(data []byte, source string) (*Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("manifest: file %s is empty", source)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err == nil {
		return normalise(&m, source)
	}

	m = Manifest{}
	if err := yaml.Unmarshal(data, &m); err == nil {
		return normalise(&m, source)
	}

	return nil, fmt.Errorf("manifest: parse %s: invalid JSON or YAML", source)
}

func normalise(m *Manifest, source string) (*Manifest, error) {
	m.Renderer = strings.TrimSpace(m.Renderer)
	m.Report = strings.TrimSpace(m.Report)

	if len(m.Inputs) == 0 {
		return nil, fmt.Errorf("manifest: file %s lists no inputs", source)
	}

	seenSource := make(map[string]struct{}, len(m.Inputs))
	seenOutput := make(map[string]struct{}, len(m.Inputs))
	for i := range m.Inputs {
		in := &m.Inputs[i]
		in.Source = strings.TrimSpace(in.Source)
		in.Output = strings.TrimSpace(in.Output)

		if in.Source == "" {
			return nil, fmt.Errorf("manifest: file %s input %d has an empty source", source, i)
		}
		if _, dup := seenSource[in.Source]; dup {
			return nil, fmt.Errorf("manifest: file %s lists source %q twice", source, in.Source)
		}
		seenSource[in.Source] = struct{}{}

		if in.Output == "" {
			in.Output = DeriveOutput(in.Source)
		}
		if in.Output == in.Source {
			return nil, fmt.Errorf("manifest: file %s input %q would overwrite its own source", source, in.Source)
		}
		if _, dup := seenOutput[in.Output]; dup {
			return nil, fmt.Errorf("manifest: file %s routes two inputs to output %q", source, in.Output)
		}
		seenOutput[in.Output] = struct{}{}
	}

	return m, nil
}

// Resolve joins a manifest-relative path against the manifest directory.
// Absolute paths pass through untouched.
func (m *Manifest) Resolve(path string) string {
	if m == nil || m.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir, path)
}
