// Package template defines renderer-agnostic template interfaces and
// adapters. Renderers depend on the TemplateRenderer seam rather than a
// concrete engine so template backends can be swapped or faked in tests.
package template
