package compattable

import (
	"io/fs"

	"github.com/goliatone/go-compattable/pkg/renderers/html"
)

// AssetsFS exposes the default table stylesheet so Go applications can serve
// it next to rendered fragments.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(compattable.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
