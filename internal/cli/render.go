package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-compattable/pkg/orchestrator"
	"github.com/goliatone/go-compattable/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	data       string
	query      string
	depth      int
	renderer   string
	forMDNURL  string
	strings    string
	locale     string
	standalone bool
	stylesheet string
	output     string
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the compatibility table for a feature",
		Example: `  compattable render --data bcd.json --query html.elements.blink
  compattable render --data bcd.json --query api.Document --depth 2 --renderer markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.data, "data", "", "compat dataset file or URL (default data.source)")
	flags.StringVarP(&opts.query, "query", "q", "", "dotted feature path, e.g. html.elements.blink")
	flags.IntVar(&opts.depth, "depth", orchestrator.DefaultDepth, "levels of sub-features to list")
	flags.StringVarP(&opts.renderer, "renderer", "r", "", "output renderer: html or markdown (default render.renderer)")
	flags.StringVar(&opts.forMDNURL, "for", "", "MDN page URL the table is embedded on")
	flags.StringVar(&opts.strings, "strings", "", "YAML or JSON file of string overrides")
	flags.StringVar(&opts.locale, "locale", "", "string table locale (default render.locale)")
	flags.BoolVar(&opts.standalone, "standalone", false, "wrap HTML output in a full page")
	flags.StringVar(&opts.stylesheet, "stylesheet", "", "stylesheet URL linked from standalone pages")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	cfg := c.cfg
	flags := cmd.Flags()

	depth := cfg.Render.Depth
	if flags.Changed("depth") {
		depth = opts.depth
	}
	standalone := cfg.Render.Standalone
	if flags.Changed("standalone") {
		standalone = opts.standalone
	}

	orch, err := c.newOrchestrator()
	if err != nil {
		return err
	}
	overrides, err := stringOverrides(firstNonEmpty(opts.strings, cfg.Render.Strings))
	if err != nil {
		return err
	}
	dataset, err := c.loadDataset(cmd.Context(), orch, opts.data)
	if err != nil {
		return err
	}

	locale := firstNonEmpty(opts.locale, cfg.Render.Locale)
	result, err := orch.Render(cmd.Context(), orchestrator.Request{
		Dataset:   dataset,
		Query:     opts.query,
		Depth:     &depth,
		Locale:    locale,
		Strings:   overrides,
		ForMDNURL: firstNonEmpty(opts.forMDNURL, cfg.Render.ForMDNURL),
		Renderer:  firstNonEmpty(opts.renderer, cfg.Render.Renderer),
		RenderOptions: render.RenderOptions{
			Standalone: standalone,
			Stylesheet: firstNonEmpty(opts.stylesheet, cfg.Render.Stylesheet),
			Locale:     locale,
		},
	})
	if err != nil {
		return err
	}
	if result.NoData {
		c.Logger.Warn().Str("query", opts.query).Int("depth", depth).Msg("no compat data found")
	}
	return c.writeOutput(opts.output, result.Output)
}
