package compattable

import (
	"context"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/orchestrator"
	"github.com/goliatone/go-compattable/pkg/render"
)

// RenderOptions describes per-request presentation choices for renderers.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers driving the full pipeline.
type Request = orchestrator.Request

// Config is the configuration of a single table render.
type Config struct {
	// Query is the dotted path of the rendered feature, e.g.
	// "html.elements.blink". It selects the browser columns and names the basic
	// support row. Required.
	Query string
	// Depth is how many levels below the feature are listed; 1 when nil.
	Depth *int
	// Strings overrides individual strings of the English table.
	Strings map[string]string
	// ForMDNURL is the MDN page the table is embedded on; links to MDN become
	// relative to it.
	ForMDNURL string
}

// Depth returns a pointer to n for use in Config.Depth.
func Depth(n int) *int {
	return &n
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render turns the compat subtree data (the node the query points at) into
// the HTML compatibility table. When data holds no compat entries within
// depth the localized no-data message is returned instead.
func Render(data *bcd.Node, cfg Config) (string, error) {
	return RenderContext(context.Background(), data, cfg)
}

// RenderContext is Render with a caller supplied context and orchestrator
// options, e.g. orchestrator.WithDefaultRenderer("markdown").
func RenderContext(ctx context.Context, data *bcd.Node, cfg Config, options ...orchestrator.Option) (string, error) {
	output, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Root:      rootOrEmpty(data),
		Query:     cfg.Query,
		Depth:     cfg.Depth,
		Strings:   cfg.Strings,
		ForMDNURL: cfg.ForMDNURL,
	})
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// GenerateFromSource loads the dataset behind source, looks up the query in
// it and renders the table with the named renderer ("" for HTML).
func GenerateFromSource(ctx context.Context, source bcd.Source, cfg Config, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:    source,
		Query:     cfg.Query,
		Depth:     cfg.Depth,
		Strings:   cfg.Strings,
		ForMDNURL: cfg.ForMDNURL,
		Renderer:  rendererName,
	})
}

// rootOrEmpty maps a missing subtree to an empty node so the no-data message
// is produced instead of a missing-source error.
func rootOrEmpty(data *bcd.Node) *bcd.Node {
	if data == nil {
		return bcd.NewNode(nil)
	}
	return data
}
