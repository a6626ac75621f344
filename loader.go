package compattable

import (
	bcdloader "github.com/goliatone/go-compattable/internal/bcd/loader"
	"github.com/goliatone/go-compattable/pkg/bcd"
)

// NewLoader constructs a dataset loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...bcd.LoaderOption) bcd.Loader {
	cfg := bcd.NewLoaderOptions(options...)
	return bcdloader.New(cfg)
}
