package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveJobsSingleSource(t *testing.T) {
	a := &app{}

	jobs, err := a.resolveJobs("loops/counter.dw", "", "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []job{{source: "loops/counter.dw", output: "loops/counter.go"}}
	if diff := cmp.Diff(want, jobs, cmp.AllowUnexported(job{})); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveJobsExplicitOutput(t *testing.T) {
	a := &app{}

	jobs, err := a.resolveJobs("in.dw", "gen/out.go", "report.md", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []job{{source: "in.dw", output: "gen/out.go", report: "report.md"}}
	if diff := cmp.Diff(want, jobs, cmp.AllowUnexported(job{})); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveJobsStdin(t *testing.T) {
	a := &app{}

	jobs, err := a.resolveJobs("-", "", "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(jobs) != 1 || !jobs[0].stdin || jobs[0].output != "" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
	if got := sourceLabel(jobs[0]); got != "" {
		t.Errorf("stdin jobs must not name a source, got %q", got)
	}
}

func TestResolveJobsFromManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dowhile.yaml")
	content := `renderer: gofile
headerText: "// Code generated by {{ tool }}; DO NOT EDIT."
lineDirectives: true
report: reports
inputs:
  - source: loops/a.dw
  - source: loops/b.dw
    output: gen/b.go
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	a := &app{}
	jobs, err := a.resolveJobs("", "", "", path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []job{
		{
			source: filepath.Join(dir, "loops/a.dw"),
			output: filepath.Join(dir, "loops/a.go"),
			report: filepath.Join(dir, "reports", "a.go.report.md"),
		},
		{
			source: filepath.Join(dir, "loops/b.dw"),
			output: filepath.Join(dir, "gen/b.go"),
			report: filepath.Join(dir, "reports", "b.go.report.md"),
		},
	}
	if diff := cmp.Diff(want, jobs, cmp.AllowUnexported(job{})); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}

	if a.renderer != "gofile" {
		t.Errorf("renderer not adopted from manifest: %q", a.renderer)
	}
	if a.headerText == "" {
		t.Errorf("header text not adopted from manifest")
	}
	if !a.lineDirectives {
		t.Errorf("line directives not adopted from manifest")
	}
}

func TestResolveJobsFlagsWinOverManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dowhile.yaml")
	content := "renderer: report-markdown\ninputs:\n  - source: a.dw\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	a := &app{renderer: "gofile"}
	if _, err := a.resolveJobs("", "", "", path); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if a.renderer != "gofile" {
		t.Errorf("flag renderer overridden: %q", a.renderer)
	}
}

func TestResolveJobsWithoutInputs(t *testing.T) {
	a := &app{}
	_, err := a.resolveJobs("", "", "", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}

func TestConfirmOverwrite(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	generated := filepath.Join(dir, "generated.go")
	if err := os.WriteFile(generated, []byte("// Code generated by dowhile; DO NOT EDIT.\n\npackage x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	handWritten := filepath.Join(dir, "hand.go")
	if err := os.WriteFile(handWritten, []byte("package x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	a := &app{prompts: denyDriver{}}

	if err := a.confirmOverwrite(ctx, filepath.Join(dir, "new.go")); err != nil {
		t.Errorf("missing target should not need confirmation: %v", err)
	}
	if err := a.confirmOverwrite(ctx, generated); err != nil {
		t.Errorf("generated target should not need confirmation: %v", err)
	}

	err := a.confirmOverwrite(ctx, handWritten)
	if err == nil || !strings.Contains(err.Error(), "refusing to overwrite") {
		t.Errorf("expected refusal for hand-written target, got %v", err)
	}

	forced := &app{force: true}
	if err := forced.confirmOverwrite(ctx, handWritten); err != nil {
		t.Errorf("force should skip confirmation: %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("-"); got != "standard input" {
		t.Errorf("displayName(\"-\") = %q", got)
	}
	if got := displayName("a.dw"); got != "a.dw" {
		t.Errorf("displayName(\"a.dw\") = %q", got)
	}
}
