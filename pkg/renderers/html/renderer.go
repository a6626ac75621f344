// Package html renders compat tables as the MDN "bc-table" markup using the
// embedded pongo2 templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/render"
	rendertemplate "github.com/goliatone/go-compattable/pkg/render/template"
	gotemplate "github.com/goliatone/go-compattable/pkg/render/template/gotemplate"
	"github.com/goliatone/go-compattable/pkg/table"
)

// Name is the registry name of the renderer.
const Name = "html"

const (
	tableTemplate = "templates/table"
	pageTemplate  = "templates/page"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/table.tmpl and templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithoutInlineStyles stops standalone documents from embedding the default
// stylesheet. RenderOptions.Stylesheet is still linked.
func WithoutInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineStyles: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(l10n.Default().TemplateFuncs()); err != nil {
		return nil, fmt.Errorf("html renderer: install template helpers: %w", err)
	}

	return &Renderer{templates: renderer, inlineStyles: cfg.inlineStyles}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, tbl table.Table, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fragment, err := r.templates.RenderTemplate(tableTemplate, withHelpers(map[string]any{
		"table": tbl,
	}, options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render table: %w", err)
	}
	fragment = strings.TrimSpace(fragment) + "\n"
	if !options.Standalone {
		return []byte(fragment), nil
	}

	page, err := r.templates.RenderTemplate(pageTemplate, withHelpers(r.pageData(tbl, fragment, options), options))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func (r *Renderer) pageData(tbl table.Table, fragment string, options render.RenderOptions) map[string]any {
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = tbl.Query
	}
	lang := strings.TrimSpace(options.Locale)
	if lang == "" {
		lang = l10n.DefaultLocale
	}

	data := map[string]any{
		"title":      title,
		"lang":       lang,
		"content":    fragment,
		"stylesheet": strings.TrimSpace(options.Stylesheet),
	}
	if r.inlineStyles {
		data["styles"] = defaultStylesheet()
	}
	return data
}

// withHelpers binds the template helpers to the strings of this render. The
// engine globals carry the English defaults otherwise.
func withHelpers(data map[string]any, options render.RenderOptions) map[string]any {
	if options.Strings.IsZero() {
		return data
	}
	for name, fn := range options.Strings.TemplateFuncs() {
		data[name] = fn
	}
	return data
}
