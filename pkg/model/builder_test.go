package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-dowhile/pkg/model"
)

func undetectableLoop() model.Loop {
	return model.Loop{
		Form: model.FormDoWhile,
		Body: model.Block{Raw: "i++"},
		Cond: model.Cond{Expr: "i < 2"},
	}
}

func TestNewBuilderDefaultUnit(t *testing.T) {
	b := model.NewBuilder()

	file, err := b.Build(model.File{Segments: []model.Segment{undetectableLoop()}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	loop := file.Segments[0].(model.Loop)
	if loop.Unit != "\t" {
		t.Fatalf("default unit mismatch: got %q", loop.Unit)
	}
}

func TestNewBuilderWithIndentUnit(t *testing.T) {
	b := model.NewBuilder(model.WithIndentUnit("    "))

	file, err := b.Build(model.File{Segments: []model.Segment{undetectableLoop()}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	loop := file.Segments[0].(model.Loop)
	if loop.Unit != "    " {
		t.Fatalf("configured unit mismatch: got %q", loop.Unit)
	}
}

func TestDecoratorFunc(t *testing.T) {
	called := false
	dec := model.DecoratorFunc(func(f *model.File) error {
		called = true
		f.Name = "decorated"
		return nil
	})

	file := model.File{Name: "plain"}
	if err := dec.Decorate(&file); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if !called || file.Name != "decorated" {
		t.Fatalf("decorator did not run against the file")
	}

	boom := errors.New("boom")
	dec = model.DecoratorFunc(func(*model.File) error { return boom })
	if err := dec.Decorate(&file); !errors.Is(err, boom) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
}
