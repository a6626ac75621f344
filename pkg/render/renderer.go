package render

import (
	"context"

	"github.com/goliatone/go-compattable/pkg/table"
)

// Renderer converts an assembled compat table into a byte representation
// (HTML, Markdown, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tbl table.Table, options RenderOptions) ([]byte, error)
}
