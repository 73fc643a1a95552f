package testsupport

import (
	"testing"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Interp evaluates rewritten Go source in a yaegi interpreter so tests can
// run the code an expansion produced instead of only diffing text. The
// source must be a complete file in package main using stdlib imports only.
func Interp(t *testing.T, src string) *interp.Interpreter {
	t.Helper()

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		t.Fatalf("load stdlib symbols: %v", err)
	}
	if _, err := i.Eval(src); err != nil {
		t.Fatalf("evaluate source: %v", err)
	}
	return i
}

// CallInt resolves a zero-argument function by symbol, main.count for
// example, and returns its int result.
func CallInt(t *testing.T, i *interp.Interpreter, symbol string) int {
	t.Helper()

	v, err := i.Eval(symbol)
	if err != nil {
		t.Fatalf("resolve %s: %v", symbol, err)
	}
	fn, ok := v.Interface().(func() int)
	if !ok {
		t.Fatalf("%s is not a func() int", symbol)
	}
	return fn()
}

// CallString resolves a zero-argument function by symbol and returns its
// string result.
func CallString(t *testing.T, i *interp.Interpreter, symbol string) string {
	t.Helper()

	v, err := i.Eval(symbol)
	if err != nil {
		t.Fatalf("resolve %s: %v", symbol, err)
	}
	fn, ok := v.Interface().(func() string)
	if !ok {
		t.Fatalf("%s is not a func() string", symbol)
	}
	return fn()
}
