package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	bcdloader "github.com/goliatone/go-compattable/internal/bcd/loader"
	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/collect"
	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/profile"
	"github.com/goliatone/go-compattable/pkg/render"
	"github.com/goliatone/go-compattable/pkg/renderers/html"
	"github.com/goliatone/go-compattable/pkg/renderers/markdown"
	"github.com/goliatone/go-compattable/pkg/table"
)

// DefaultDepth is the number of levels collected below the query root when a
// request does not set one.
const DefaultDepth = 1

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom dataset loader.
func WithLoader(loader bcd.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithStrings replaces the base string table used when a request does not
// select a catalog locale. Request overrides are merged on top of it.
func WithStrings(strs l10n.Strings) Option {
	return func(o *Orchestrator) {
		o.strings = strs
		o.stringsSet = true
	}
}

// WithCatalog enables Request.Locale. Locales missing from the catalog fall
// back to its default table.
func WithCatalog(catalog *l10n.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSanitizer replaces the policy applied to descriptions and notes.
func WithSanitizer(sanitizer table.Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitizer = sanitizer
	}
}

// WithTransformer registers a Transformer that runs after the table is
// assembled and before it is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the pipeline from compat dataset to rendered table.
// It is safe for concurrent use once constructed: every Generate call builds
// its own rows, legend and table.
type Orchestrator struct {
	loader          bcd.Loader
	registry        *render.Registry
	defaultRenderer string
	strings         l10n.Strings
	stringsSet      bool
	catalog         *l10n.Catalog
	logger          zerolog.Logger
	sanitizer       table.Sanitizer
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations: a file
// loader, the HTML and Markdown renderers and the English strings.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one table render.
type Request struct {
	// Source identifies where the dataset lives. Optional when Dataset or Root
	// is supplied.
	Source bcd.Source

	// Dataset is an already decoded dataset; Query is looked up in it.
	Dataset *bcd.Node

	// Root is the node the query resolves to. When set, Dataset and Source are
	// ignored and Query only selects the profile and labels.
	Root *bcd.Node

	// Query is the dotted path of the feature, e.g. "html.elements.blink".
	Query string

	// Depth is the number of levels collected below the root; DefaultDepth
	// when nil.
	Depth *int

	// Locale selects a string table from the catalog, if one is configured.
	Locale string

	// Strings overrides individual strings for this request.
	Strings map[string]string

	// ForMDNURL is the MDN page the table is embedded on.
	ForMDNURL string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries presentation choices for the renderer.
	RenderOptions render.RenderOptions
}

// Result is the outcome of a render.
type Result struct {
	Output      []byte
	ContentType string
	// NoData is set when the query matched no compat data. Output then holds
	// the localized no_data_found message.
	NoData bool
	// Rows is the number of feature rows in the table.
	Rows int
}

// Generate runs the pipeline and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Render runs the pipeline and reports how the output was produced.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Result{}, errors.New("orchestrator: query is required")
	}
	depth := DefaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	root, err := o.resolveRoot(ctx, req, query)
	if err != nil {
		return Result{}, err
	}

	strs := o.stringsFor(req)
	logger := o.logger.With().Str("query", query).Int("depth", depth).Logger()

	rows := collect.Features(root, depth, query, strs.Get("feature_basicsupport"))
	if len(rows) == 0 {
		logger.Debug().Msg("no compat data found")
		message := strs.Format("no_data_found", map[string]string{
			"query": query,
			"depth": strconv.Itoa(depth),
		})
		return Result{
			Output:      []byte(message),
			ContentType: renderer.ContentType(),
			NoData:      true,
		}, nil
	}

	tbl, err := table.Build(rows, table.Options{
		Profile:   profile.ForQuery(query),
		Strings:   strs,
		Query:     query,
		ForMDNURL: req.ForMDNURL,
		Sanitizer: o.sanitizer,
	})
	if err != nil {
		logger.Error().Err(err).Msg("table assembly failed")
		return Result{}, fmt.Errorf("orchestrator: build table: %w", err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &tbl); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform table: %w", err)
		}
	}

	options := req.RenderOptions
	options.Strings = strs
	output, err := renderer.Render(ctx, tbl, options)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	logger.Debug().
		Str("renderer", renderer.Name()).
		Int("rows", len(tbl.Rows)).
		Int("legend", len(tbl.Legend)).
		Msg("rendered compat table")

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Rows:        len(tbl.Rows),
	}, nil
}

// Load reads and decodes the dataset behind src with the configured loader.
func (o *Orchestrator) Load(ctx context.Context, src bcd.Source) (*bcd.Node, error) {
	if src == nil {
		return nil, errors.New("orchestrator: source is required")
	}
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load dataset: %w", err)
	}
	dataset, err := doc.Decode()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode dataset %s: %w", doc.Location(), err)
	}
	o.logger.Debug().Str("source", doc.Location()).Int("categories", dataset.Len()).Msg("dataset loaded")
	return dataset, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveRoot(ctx context.Context, req Request, query string) (*bcd.Node, error) {
	if req.Root != nil {
		return req.Root, nil
	}
	dataset := req.Dataset
	if dataset == nil {
		if req.Source == nil {
			return nil, errors.New("orchestrator: source, dataset or root is required")
		}
		loaded, err := o.Load(ctx, req.Source)
		if err != nil {
			return nil, err
		}
		dataset = loaded
	}
	return dataset.Lookup(query), nil
}

func (o *Orchestrator) stringsFor(req Request) l10n.Strings {
	base := o.strings
	if o.catalog != nil && strings.TrimSpace(req.Locale) != "" {
		base = o.catalog.Strings(req.Locale)
	}
	if len(req.Strings) == 0 {
		return base
	}
	return base.Merge(req.Strings)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = bcdloader.New(bcd.NewLoaderOptions())
	}
	if !o.stringsSet {
		o.strings = l10n.Default()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(markdown.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
