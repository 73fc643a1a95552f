package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dowhile/pkg/manifest"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "dowhile.yaml", `renderer: gofile
headerText: "// Code generated by {{ tool }}; DO NOT EDIT."
lineDirectives: true
report: reports
inputs:
  - source: loops/counter.dw
  - source: loops/join.dw
    output: generated/join.go
`)

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := manifest.Manifest{
		Renderer:       "gofile",
		HeaderText:     "// Code generated by {{ tool }}; DO NOT EDIT.",
		LineDirectives: true,
		Report:         "reports",
		Inputs: []manifest.Input{
			{Source: "loops/counter.dw", Output: "loops/counter.go"},
			{Source: "loops/join.dw", Output: "generated/join.go"},
		},
		Dir: dir,
	}
	if diff := cmp.Diff(want, *m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSJSON(t *testing.T) {
	files := fstest.MapFS{
		"cfg/dowhile.json": &fstest.MapFile{Data: []byte(`{
			"renderer": "report-markdown",
			"inputs": [{"source": "a.dw"}]
		}`)},
	}

	m, err := manifest.LoadFS(files, "cfg/dowhile.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Renderer != "report-markdown" {
		t.Errorf("renderer mismatch: %q", m.Renderer)
	}
	if len(m.Inputs) != 1 || m.Inputs[0].Output != "a.go" {
		t.Errorf("derived output mismatch: %+v", m.Inputs)
	}
	if m.Dir != "cfg" {
		t.Errorf("dir mismatch: %q", m.Dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "dowhile.yaml"))
	if err == nil || !strings.Contains(err.Error(), "manifest: read") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoadRejectsInvalidManifests(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			"empty file",
			"\n\t \n",
			"is empty",
		},
		{
			"no inputs",
			"inputs: []\n",
			"lists no inputs",
		},
		{
			"empty source",
			"inputs:\n  - source: \"\"\n",
			"input 0 has an empty source",
		},
		{
			"duplicate source",
			"inputs:\n  - source: a.dw\n  - source: a.dw\n",
			`lists source "a.dw" twice`,
		},
		{
			"output overwrites source",
			"inputs:\n  - source: a.go\n    output: a.go\n",
			`input "a.go" would overwrite its own source`,
		},
		{
			"colliding outputs",
			"inputs:\n  - source: a.dw\n  - source: a\n",
			`routes two inputs to output "a.go"`,
		},
		{
			"unparseable",
			"renderer: [oops\n",
			"invalid JSON or YAML",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files := fstest.MapFS{
				"dowhile.yaml": &fstest.MapFile{Data: []byte(tc.content)},
			}
			_, err := manifest.LoadFS(files, "dowhile.yaml")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	if _, ok := manifest.Discover(dir); ok {
		t.Fatalf("expected no manifest in empty dir")
	}

	jsonPath := writeManifest(t, dir, "dowhile.json", "{}")
	if got, ok := manifest.Discover(dir); !ok || got != jsonPath {
		t.Fatalf("expected %q, got %q (%v)", jsonPath, got, ok)
	}

	ymlPath := writeManifest(t, dir, "dowhile.yml", "")
	if got, ok := manifest.Discover(dir); !ok || got != ymlPath {
		t.Fatalf("expected %q to win over json, got %q (%v)", ymlPath, got, ok)
	}

	yamlPath := writeManifest(t, dir, "dowhile.yaml", "")
	if got, ok := manifest.Discover(dir); !ok || got != yamlPath {
		t.Fatalf("expected %q to win, got %q (%v)", yamlPath, got, ok)
	}
}

func TestDiscoverSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "dowhile.yaml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	jsonPath := writeManifest(t, dir, "dowhile.json", "{}")

	if got, ok := manifest.Discover(dir); !ok || got != jsonPath {
		t.Fatalf("expected %q, got %q (%v)", jsonPath, got, ok)
	}
}

func TestDeriveOutput(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"loops/counter.dw", "loops/counter.go"},
		{"script", "script.go"},
		{"already.go", "already.go.go"},
		{".dw", ".go"},
	}
	for _, tc := range cases {
		if got := manifest.DeriveOutput(tc.source); got != tc.want {
			t.Errorf("DeriveOutput(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	m := &manifest.Manifest{Dir: "/cfg"}

	if got := m.Resolve("in.dw"); got != filepath.Join("/cfg", "in.dw") {
		t.Errorf("relative resolve mismatch: %q", got)
	}
	abs := filepath.Join(string(filepath.Separator), "abs", "in.dw")
	if got := m.Resolve(abs); got != abs {
		t.Errorf("absolute resolve mismatch: %q", got)
	}

	bare := &manifest.Manifest{}
	if got := bare.Resolve("in.dw"); got != "in.dw" {
		t.Errorf("dirless resolve mismatch: %q", got)
	}

	var nilManifest *manifest.Manifest
	if got := nilManifest.Resolve("in.dw"); got != "in.dw" {
		t.Errorf("nil resolve mismatch: %q", got)
	}
}
