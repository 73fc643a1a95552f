package render_test

import (
	"testing"

	"github.com/goliatone/go-dowhile/pkg/render"
)

func TestIsGeneratedHeader(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"// Code generated by dowhile from input.dw; DO NOT EDIT.", true},
		{"// Code generated by protoc-gen-go. DO NOT EDIT.", true},
		{"// Code generated by dowhile; DO NOT EDIT.", true},
		{"// Code generated DO NOT EDIT.", false},
		{"// code generated by dowhile; DO NOT EDIT.", false},
		{"// Code generated by dowhile; DO NOT EDIT. Really.", false},
		{"package main", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := render.IsGeneratedHeader(tc.line); got != tc.want {
			t.Errorf("IsGeneratedHeader(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestHasGeneratedHeader(t *testing.T) {
	cases := []struct {
		name string
		data string
		want bool
	}{
		{"header then body", "// Code generated by dowhile; DO NOT EDIT.\n\npackage main\n", true},
		{"header only", "// Code generated by dowhile; DO NOT EDIT.", true},
		{"crlf line ending", "// Code generated by dowhile; DO NOT EDIT.\r\npackage main\n", true},
		{"header on second line", "package main\n// Code generated by dowhile; DO NOT EDIT.\n", false},
		{"plain source", "package main\n", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render.HasGeneratedHeader([]byte(tc.data)); got != tc.want {
				t.Fatalf("HasGeneratedHeader = %v, want %v", got, tc.want)
			}
		})
	}
}
