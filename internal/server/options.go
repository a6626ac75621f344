package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-compattable/pkg/orchestrator"
	"github.com/goliatone/go-compattable/pkg/render"
)

// EmptySearchMode controls what /features returns for a blank query.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// GuardFunc may reject a request before any work is done.
type GuardFunc func(r *http.Request) error

// Options configures a Server.
type Options struct {
	Logger       zerolog.Logger
	Orchestrator *orchestrator.Orchestrator

	DefaultDepth    int
	MaxDepth        int
	DefaultRenderer string
	Locale          string
	ForMDNURL       string
	Strings         map[string]string
	RenderOptions   render.RenderOptions

	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode

	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	ShutdownGrace time.Duration

	Guard GuardFunc
}

// OptionFn mutates Options.
type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Logger:          zerolog.Nop(),
		DefaultDepth:    orchestrator.DefaultDepth,
		MaxDepth:        10,
		DefaultRenderer: "html",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownGrace:   5 * time.Second,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 10
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.DefaultRenderer == "" {
		opts.DefaultRenderer = "html"
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = 5 * time.Second
	}
	if opts.Strings != nil {
		strs := make(map[string]string, len(opts.Strings))
		for k, v := range opts.Strings {
			strs[k] = v
		}
		opts.Strings = strs
	}
	return opts
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithOrchestrator replaces the default orchestrator, e.g. to register extra
// renderers or a different catalog.
func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		o.Orchestrator = orch
	}
}

func WithDefaultDepth(depth int) OptionFn {
	return func(o *Options) {
		o.DefaultDepth = depth
	}
}

func WithMaxDepth(depth int) OptionFn {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

func WithDefaultRenderer(name string) OptionFn {
	return func(o *Options) {
		o.DefaultRenderer = name
	}
}

func WithLocale(locale string) OptionFn {
	return func(o *Options) {
		o.Locale = locale
	}
}

func WithForMDNURL(url string) OptionFn {
	return func(o *Options) {
		o.ForMDNURL = url
	}
}

// WithStrings sets string overrides applied to every table.
func WithStrings(strs map[string]string) OptionFn {
	return func(o *Options) {
		o.Strings = strs
	}
}

func WithRenderOptions(options render.RenderOptions) OptionFn {
	return func(o *Options) {
		o.RenderOptions = options
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		o.EmptySearchMode = mode
	}
}

// WithTimeouts sets the http.Server read and write timeouts.
func WithTimeouts(read, write time.Duration) OptionFn {
	return func(o *Options) {
		o.ReadTimeout = read
		o.WriteTimeout = write
	}
}

func WithShutdownGrace(grace time.Duration) OptionFn {
	return func(o *Options) {
		o.ShutdownGrace = grace
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
