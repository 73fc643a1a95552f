// Command dowhile-vet checks do-while statements for patterns that are
// legal but suspicious: conditions that can never fail, empty bodies, and
// break or continue statements whose meaning changes under the rewrite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-dowhile"
	"github.com/goliatone/go-dowhile/pkg/analyze"
	"github.com/goliatone/go-dowhile/pkg/manifest"
	pkgsource "github.com/goliatone/go-dowhile/pkg/source"
)

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [files...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck do-while statements for suspicious patterns before rewriting.\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	manifestPath := flag.String("manifest", "", "take the file list from a manifest")
	flag.Parse()

	paths := flag.Args()
	if *manifestPath != "" {
		m, err := manifest.Load(*manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		for _, in := range m.Inputs {
			paths = append(paths, m.Resolve(in.Source))
		}
	}
	if len(paths) == 0 {
		if found, ok := manifest.Discover("."); ok {
			m, err := manifest.Load(found)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			for _, in := range m.Inputs {
				paths = append(paths, m.Resolve(in.Source))
			}
		}
	}
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	parser := dowhile.NewParser()

	var findings []analyze.Finding
	for _, path := range paths {
		checked, err := vetFile(ctx, parser, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vet %s: %v\n", path, err)
			os.Exit(1)
		}
		findings = append(findings, checked...)
	}

	if len(findings) > 0 {
		sort.Slice(findings, func(i, j int) bool {
			a, b := findings[i], findings[j]
			if a.Source != b.Source {
				return a.Source < b.Source
			}
			if a.Span.StartLine != b.Span.StartLine {
				return a.Span.StartLine < b.Span.StartLine
			}
			if a.Span.StartCol != b.Span.StartCol {
				return a.Span.StartCol < b.Span.StartCol
			}
			return a.Rule < b.Rule
		})
		for _, f := range findings {
			fmt.Fprintln(os.Stderr, f.String())
		}
		os.Exit(1)
	}
}

func vetFile(ctx context.Context, parser pkgsource.Parser, path string) ([]analyze.Finding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := pkgsource.NewDocument(pkgsource.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}

	file, err := parser.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}

	checked := analyze.File(file)
	for i := range checked {
		// Findings carry the document's base name; report the path the
		// caller gave us so output stays clickable.
		checked[i].Source = path
	}
	return checked, nil
}
