package gotemplate

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filterSetup sync.Once

// registerDefaultFilters installs the filters every bundled template relies
// on. Registration is global in pongo2, so it runs once per process.
func registerDefaultFilters() {
	filterSetup.Do(func() {
		register := func(name string, filter pongo2.FilterFunction) {
			if pongo2.FilterExists(name) {
				return
			}
			_ = pongo2.RegisterFilter(name, filter)
		}

		register("trim", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.TrimSpace(in.String())), nil
		})

		register("indent", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			prefix := "\t"
			if param != nil && param.String() != "" {
				prefix = param.String()
			}
			lines := strings.Split(in.String(), "\n")
			for i, line := range lines {
				if line == "" {
					continue
				}
				lines[i] = prefix + line
			}
			return pongo2.AsValue(strings.Join(lines, "\n")), nil
		})

		register("codefence", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			lang := "go"
			if param != nil && param.String() != "" {
				lang = param.String()
			}
			body := strings.TrimRight(in.String(), "\n")
			return pongo2.AsSafeValue("```" + lang + "\n" + body + "\n```"), nil
		})
	})
}
