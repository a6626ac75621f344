package orchestrator

import (
	"context"

	"github.com/goliatone/go-compattable/pkg/table"
)

// Transformer adjusts an assembled table before it is rendered, e.g. to
// rewrite link targets for a different site.
type Transformer interface {
	Transform(ctx context.Context, tbl *table.Table) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, tbl *table.Table) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, tbl *table.Table) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, tbl)
}
