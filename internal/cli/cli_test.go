package cli

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-compattable/internal/browse"
	"github.com/goliatone/go-compattable/internal/config"
	"github.com/goliatone/go-compattable/pkg/testsupport"
)

type harness struct {
	cli     *CLI
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	dataset string
	dir     string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	previousLogger, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})

	raw, err := fs.ReadFile(testsupport.FixturesFS(), testsupport.DatasetPath)
	require.NoError(t, err)
	dataset := filepath.Join(dir, "compat.json")
	require.NoError(t, os.WriteFile(dataset, raw, 0o644))

	var out, errOut bytes.Buffer
	c := New(&out, &errOut)
	c.loadOpts = []config.Option{config.WithSearchDirs(dir), config.WithoutEnv()}
	return &harness{cli: c, out: &out, errOut: &errOut, dataset: dataset, dir: dir}
}

func (h *harness) run(args ...string) error {
	root := h.cli.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRender_HTMLToStdout(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("render", "--data", h.dataset, "--query", "api.bareFeature"))

	out := h.out.String()
	assert.Contains(t, out, `<table class="bc-table bc-table-web">`)
	assert.Contains(t, out, "<code>bareSubFeature</code>")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRender_MarkdownToFile(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "table.md")

	require.NoError(t, h.run("render", "--data", h.dataset, "-q", "api.bareFeature",
		"--renderer", "markdown", "--depth", "0", "-o", target))

	assert.Equal(t, "Table written to "+target+"\n", h.out.String())
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "|  | Chrome |"))
	assert.NotContains(t, string(written), "bareSubFeature")
}

func TestRender_NoDataWithOverrides(t *testing.T) {
	h := newHarness(t)
	overrides := h.write(t, "strings.yaml", "no_data_found: \"Nothing for ${query} (${depth})\"\n")

	require.NoError(t, h.run("render", "--data", h.dataset, "--query", "foo.bar", "--strings", overrides))

	assert.Equal(t, "Nothing for foo.bar (1)\n", h.out.String())
}

func TestRender_ConfigFileDefaults(t *testing.T) {
	h := newHarness(t)
	cfg := h.write(t, "custom.toml", `
[data]
source = "`+filepath.ToSlash(h.dataset)+`"

[render]
renderer = "markdown"
depth = 0
`)

	require.NoError(t, h.run("--config", cfg, "render", "--query", "api.bareFeature"))

	assert.True(t, strings.HasPrefix(h.out.String(), "|  | Chrome |"), h.out.String())
	assert.NotContains(t, h.out.String(), "bareSubFeature")
}

func TestRender_StandalonePage(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("render", "--data", h.dataset, "--query", "api.bareFeature",
		"--standalone", "--stylesheet", "/assets/compattable.css"))

	out := h.out.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `href="/assets/compattable.css"`)
}

func TestRender_LocaleCatalog(t *testing.T) {
	h := newHarness(t)
	locales := filepath.Join(h.dir, "locales")
	require.NoError(t, os.MkdirAll(locales, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locales, "de.yaml"), []byte("page_title: Kompatibilität\nlegend: Legende\n"), 0o644))
	cfg := h.write(t, "custom.toml", `
[render]
locales = "`+filepath.ToSlash(locales)+`"
`)

	require.NoError(t, h.run("-vv", "--config", cfg, "render", "--data", h.dataset,
		"--query", "api.bareFeature", "--locale", "de-AT", "--standalone"))

	out := h.out.String()
	assert.Contains(t, out, `<html lang="de-AT">`)
	assert.Contains(t, out, "<title>api.bareFeature | Kompatibilität</title>")
	assert.Contains(t, out, `<h3 class="offscreen">Legende</h3>`)
	assert.Contains(t, h.errOut.String(), "Locale catalog loaded")
}

func TestRender_Errors(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("render", "--data", h.dataset)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"query"`)
	})

	t.Run("missing dataset", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("render", "--query", "api.feature")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--data")
	})

	t.Run("unknown renderer", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("render", "--data", h.dataset, "--query", "api.feature", "--renderer", "pdf")
		require.Error(t, err)
	})

	t.Run("invalid support record", func(t *testing.T) {
		h := newHarness(t)
		err := h.run("render", "--data", h.dataset, "--query", "invalid.empty_flags")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid.empty_flags")
	})
}

func TestVerbosityLogsToErr(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("-vv", "render", "--data", h.dataset, "--query", "api.feature"))

	assert.Contains(t, h.errOut.String(), "Command started")
	assert.NotContains(t, h.out.String(), "Command started")
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	h := newHarness(t)
	require.NoError(t, h.run("version"))

	assert.Equal(t, "compattable version 1.2.3\n  commit: abc123\n  built:  2026-01-01\n", h.out.String())
}

// scriptedPrompter picks options by label; an empty label picks the first
// option.
type scriptedPrompter struct {
	picks  []string
	inputs []string
}

func (s *scriptedPrompter) Select(_ context.Context, cfg browse.SelectConfig) (int, error) {
	if len(s.picks) == 0 {
		return -1, errors.New("no select scripted")
	}
	pick := s.picks[0]
	s.picks = s.picks[1:]
	if pick == "" {
		return 0, nil
	}
	for i, option := range cfg.Options {
		if option == pick {
			return i, nil
		}
	}
	return -1, errors.New("option not offered: " + pick)
}

func (s *scriptedPrompter) Input(context.Context, browse.InputConfig) (string, error) {
	if len(s.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[0]
	s.inputs = s.inputs[1:]
	return val, nil
}

func (s *scriptedPrompter) Info(context.Context, string) error { return nil }

func TestBrowse(t *testing.T) {
	h := newHarness(t)
	h.cli.Prompter = &scriptedPrompter{picks: []string{"", "markdown"}, inputs: []string{"0"}}

	require.NoError(t, h.run("browse", "--data", h.dataset, "--start", "api.bareFeature"))

	assert.True(t, strings.HasPrefix(h.out.String(), "|  | Chrome |"), h.out.String())
}

func TestBrowse_Aborted(t *testing.T) {
	h := newHarness(t)
	h.cli.Prompter = abortingPrompter{}

	require.NoError(t, h.run("browse", "--data", h.dataset))
	assert.Empty(t, h.out.String())
}

type abortingPrompter struct{}

func (abortingPrompter) Select(context.Context, browse.SelectConfig) (int, error) {
	return 0, browse.ErrAborted
}

func (abortingPrompter) Input(context.Context, browse.InputConfig) (string, error) {
	return "", browse.ErrAborted
}

func (abortingPrompter) Info(context.Context, string) error { return nil }

func TestSourceFor(t *testing.T) {
	src, err := sourceFor(" https://example.com/data.json ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/data.json", src.Location())

	src, err = sourceFor("data/compat.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("data/compat.json"), src.Location())

	_, err = sourceFor("  ")
	require.Error(t, err)
}
