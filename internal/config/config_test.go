package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(WithSearchDirs(t.TempDir()), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Render.Depth)
	assert.Equal(t, "html", cfg.Render.Renderer)
	assert.Equal(t, "en-US", cfg.Render.Locale)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Data.Timeout)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.File)
}

func TestLoad_DiscoversTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "compattable.toml", `
[data]
source = "data/bcd.json"

[render]
depth = 3
renderer = "markdown"
for_mdn_url = "https://developer.mozilla.org/en-US/docs/Web/API/Foo"

[server]
read_timeout = "2s"
`)

	cfg, err := Load(WithSearchDirs(dir), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "data/bcd.json", cfg.Data.Source)
	assert.Equal(t, 3, cfg.Render.Depth)
	assert.Equal(t, "markdown", cfg.Render.Renderer)
	assert.Equal(t, "https://developer.mozilla.org/en-US/docs/Web/API/Foo", cfg.Render.ForMDNURL)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "settings.yaml", `
render:
  locale: de
  standalone: true
log:
  verbosity: 2
  format: json
`)

	cfg, err := Load(WithFile(path), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Render.Locale)
	assert.True(t, cfg.Render.Standalone)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "compattable.toml", `
[render]
depth = 3
[server]
addr = ":9000"
`)
	t.Setenv("COMPATTABLE_RENDER_DEPTH", "5")
	t.Setenv("COMPATTABLE_RENDER_FOR_MDN_URL", "https://developer.mozilla.org/x")
	t.Setenv("COMPATTABLE_SERVER_WRITE_TIMEOUT", "1m")

	cfg, err := Load(WithSearchDirs(dir))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Render.Depth)
	assert.Equal(t, "https://developer.mozilla.org/x", cfg.Render.ForMDNURL)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
}

func TestLoad_SearchOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, second, "compattable.toml", "[render]\nrenderer = \"markdown\"\n")
	want := writeFile(t, first, "compattable.yaml", "render:\n  renderer: html\n  depth: 0\n")

	cfg, err := Load(WithSearchDirs(first, second), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, want, cfg.File)
	assert.Equal(t, "html", cfg.Render.Renderer)
	assert.Equal(t, 0, cfg.Render.Depth)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(WithFile(filepath.Join(dir, "nope.toml")), WithoutEnv())
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, dir, "compattable.ini", "x=1")
		_, err := Load(WithFile(path), WithoutEnv())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, dir, "bad.toml", "[server]\naddr = \"\"\n[render]\nrenderer = \" \"\n")
		_, err := Load(WithFile(path), WithoutEnv())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.addr is required")
		assert.Contains(t, err.Error(), "render.renderer is required")
	})

	t.Run("malformed duration", func(t *testing.T) {
		path := writeFile(t, dir, "dur.toml", "[data]\ntimeout = \"soon\"\n")
		_, err := Load(WithFile(path), WithoutEnv())
		require.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.addr", envKey("COMPATTABLE_SERVER_ADDR"))
	assert.Equal(t, "render.for_mdn_url", envKey("COMPATTABLE_RENDER_FOR_MDN_URL"))
	assert.Equal(t, "debug", envKey("COMPATTABLE_DEBUG"))
}

func TestDefaultSearchDirs(t *testing.T) {
	dirs := DefaultSearchDirs()
	require.Len(t, dirs, 2)
	assert.Equal(t, ".", dirs[0])
	assert.Equal(t, AppName, filepath.Base(dirs[1]))
}
