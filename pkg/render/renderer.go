package render

import (
	"context"

	"github.com/goliatone/go-dowhile/pkg/model"
)

// Renderer converts a loop model into a byte representation: rewritten Go
// source for the primary renderer, markdown or HTML for the report
// renderers.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, file model.File, options RenderOptions) ([]byte, error)
}
