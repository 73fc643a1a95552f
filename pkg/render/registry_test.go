package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dowhile/pkg/model"
	"github.com/goliatone/go-dowhile/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.File, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(stubRenderer{name: "gofile"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !reg.Has("gofile") {
		t.Fatalf("expected registry to report the renderer")
	}

	renderer, err := reg.Get("gofile")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "gofile" {
		t.Fatalf("name mismatch: got %q", renderer.Name())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := render.NewRegistry()
	if err := reg.Register(stubRenderer{name: "gofile"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := reg.Register(stubRenderer{name: "gofile"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryRejectsInvalidRenderers(t *testing.T) {
	reg := render.NewRegistry()

	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for empty renderer name")
	}
}

func TestRegistryGetMissing(t *testing.T) {
	reg := render.NewRegistry()

	_, err := reg.Get("nope")
	if err == nil || !strings.Contains(err.Error(), `renderer "nope" not found`) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	reg := render.NewRegistry()
	for _, name := range []string{"report-markdown", "gofile", "report-html"} {
		if err := reg.Register(stubRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	want := []string{"gofile", "report-html", "report-markdown"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryMustHelpers(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "gofile"})

	if got := reg.MustGet("gofile").Name(); got != "gofile" {
		t.Fatalf("must get mismatch: got %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for missing renderer")
		}
	}()
	reg.MustGet("nope")
}
