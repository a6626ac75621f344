package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-compattable/internal/logging"
	"github.com/goliatone/go-compattable/internal/server"
	"github.com/goliatone/go-compattable/pkg/render"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		data string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compatibility tables over HTTP",
		Long: `serve loads the dataset once and answers
  GET /tables/{query}?depth=&renderer=&for=
  GET /features?q=
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg

			orch, err := c.newOrchestrator()
			if err != nil {
				return err
			}
			overrides, err := stringOverrides(cfg.Render.Strings)
			if err != nil {
				return err
			}
			dataset, err := c.loadDataset(cmd.Context(), orch, data)
			if err != nil {
				return err
			}

			srv, err := server.New(dataset,
				server.WithLogger(logging.Component(c.Logger, "server")),
				server.WithOrchestrator(orch),
				server.WithDefaultDepth(cfg.Render.Depth),
				server.WithDefaultRenderer(cfg.Render.Renderer),
				server.WithLocale(cfg.Render.Locale),
				server.WithForMDNURL(cfg.Render.ForMDNURL),
				server.WithStrings(overrides),
				server.WithRenderOptions(render.RenderOptions{
					Standalone: cfg.Render.Standalone,
					Stylesheet: cfg.Render.Stylesheet,
				}),
				server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
			)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), firstNonEmpty(addr, cfg.Server.Addr))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr, :8080)")
	cmd.Flags().StringVar(&data, "data", "", "compat dataset file or URL (default data.source)")
	return cmd
}
