package render

import "github.com/goliatone/go-compattable/pkg/l10n"

// RenderOptions describe per-request presentation choices. They never change
// the table contents, only how it is wrapped.
type RenderOptions struct {
	// Standalone wraps the fragment in a complete document with a head and the
	// renderer's default styles.
	Standalone bool
	// Stylesheet adds a <link rel="stylesheet"> to standalone documents.
	Stylesheet string
	// Locale is written to the lang attribute of standalone documents.
	Locale string
	// Title overrides the document title of standalone documents; the query is
	// used when empty.
	Title string
	// Strings backs the template "translate" helper. The orchestrator sets it
	// to the table the render was resolved with; renderers fall back to the
	// embedded English table when it is zero.
	Strings l10n.Strings
}
