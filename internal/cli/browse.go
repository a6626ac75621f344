package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-compattable/internal/browse"
	"github.com/goliatone/go-compattable/pkg/orchestrator"
	"github.com/goliatone/go-compattable/pkg/render"
)

func (c *CLI) browseCommand() *cobra.Command {
	var (
		data   string
		start  string
		output string
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a feature interactively and render its table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg

			orch, err := c.newOrchestrator()
			if err != nil {
				return err
			}
			dataset, err := c.loadDataset(cmd.Context(), orch, data)
			if err != nil {
				return err
			}

			browser := browse.New(c.Prompter,
				browse.WithRenderers(orch.Renderers()...),
				browse.WithDefaultDepth(cfg.Render.Depth),
			)
			selection, err := browser.Run(cmd.Context(), dataset, start)
			if errors.Is(err, browse.ErrAborted) {
				c.Logger.Info().Msg("browse aborted")
				return nil
			}
			if err != nil {
				return err
			}

			overrides, err := stringOverrides(cfg.Render.Strings)
			if err != nil {
				return err
			}
			rendered, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Dataset:   dataset,
				Query:     selection.Query,
				Depth:     &selection.Depth,
				Locale:    cfg.Render.Locale,
				Strings:   overrides,
				ForMDNURL: cfg.Render.ForMDNURL,
				Renderer:  selection.Renderer,
				RenderOptions: render.RenderOptions{
					Standalone: cfg.Render.Standalone,
					Stylesheet: cfg.Render.Stylesheet,
					Locale:     cfg.Render.Locale,
				},
			})
			if err != nil {
				return err
			}
			return c.writeOutput(output, rendered)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "compat dataset file or URL (default data.source)")
	cmd.Flags().StringVar(&start, "start", "", "dotted path to start browsing from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
