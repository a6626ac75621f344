// Package cli implements the compattable command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	compattable "github.com/goliatone/go-compattable"
	"github.com/goliatone/go-compattable/internal/browse"
	"github.com/goliatone/go-compattable/internal/config"
	"github.com/goliatone/go-compattable/internal/logging"
	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/orchestrator"
)

const appName = "compattable"

// CLI holds shared state for all commands.
type CLI struct {
	Out    io.Writer
	Err    io.Writer
	Logger zerolog.Logger

	// Prompter answers the browse command's prompts; nil uses the terminal.
	Prompter browse.PromptDriver

	verbosity  int
	configFile string
	cfg        *config.Config
	loadOpts   []config.Option
}

// New creates a CLI writing command output to out and logs to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		Out:    out,
		Err:    errOut,
		Logger: zerolog.Nop(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Render MDN browser compatibility tables",
		Long: `compattable turns browser-compat-data into the compatibility tables shown
on MDN: one row per feature, one column per browser, with version history,
notes, flags and a legend.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.Out)
	root.SetErr(c.Err)
	root.SetVersionTemplate(versionTemplate())

	root.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ./compattable.toml or $XDG_CONFIG_HOME/compattable/)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.versionCommand())
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	opts := append([]config.Option(nil), c.loadOpts...)
	if c.configFile != "" {
		opts = append(opts, config.WithFile(c.configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	c.cfg = cfg

	verbosity := c.verbosity
	if verbosity == 0 {
		verbosity = cfg.Log.Verbosity
	}
	if logging.ParseFormat(cfg.Log.Format) == logging.FormatJSON {
		c.Logger = logging.New(verbosity, logging.FormatJSON, c.Err)
	} else {
		c.Logger = logging.Setup(verbosity, c.Err)
	}
	c.Logger.Debug().Str("command", cmd.Name()).Str("config", cfg.File).Msg("Command started")
	return nil
}

// newOrchestrator builds an orchestrator wired to the configured loader, locales
// and logger.
func (c *CLI) newOrchestrator() (*orchestrator.Orchestrator, error) {
	cfg := c.cfg
	loader := compattable.NewLoader(bcd.WithHTTPFallback(cfg.Data.Timeout))

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithLogger(logging.Component(c.Logger, "orchestrator")),
		orchestrator.WithDefaultRenderer(cfg.Render.Renderer),
	}
	if dir := strings.TrimSpace(cfg.Render.Locales); dir != "" {
		catalog := l10n.NewCatalog()
		if err := catalog.LoadDir(os.DirFS(dir), "."); err != nil {
			return nil, err
		}
		c.Logger.Debug().Str("dir", dir).Strs("locales", catalog.Locales()).Msg("Locale catalog loaded")
		options = append(options, orchestrator.WithCatalog(catalog))
	}
	return orchestrator.New(options...), nil
}

// loadDataset resolves raw (falling back to data.source) and decodes it.
func (c *CLI) loadDataset(ctx context.Context, orch *orchestrator.Orchestrator, raw string) (*bcd.Node, error) {
	src, err := sourceFor(firstNonEmpty(raw, c.cfg.Data.Source))
	if err != nil {
		return nil, err
	}
	done := logging.LogOperationStart(c.Logger, "load dataset")
	defer done()
	return orch.Load(ctx, src)
}

func sourceFor(raw string) (bcd.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, fmt.Errorf("a dataset is required: pass --data or set data.source")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return bcd.SourceFromURL(path), nil
	}
	return bcd.SourceFromFile(path), nil
}

// stringOverrides reads a YAML or JSON file of string overrides.
func stringOverrides(path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strings: %w", err)
	}
	return l10n.Parse(data)
}

// writeOutput writes to path, or to the command output when path is empty.
func (c *CLI) writeOutput(path string, output []byte) error {
	if strings.TrimSpace(path) == "" {
		if _, err := c.Out.Write(output); err != nil {
			return err
		}
		if len(output) > 0 && output[len(output)-1] != '\n' {
			_, err := io.WriteString(c.Out, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(c.Out, "Table written to %s\n", path)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
