// Package config loads CLI and server settings. Values are layered: built-in
// defaults, then the first compattable.{toml,yaml,yml} found (or an explicit
// file), then COMPATTABLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. COMPATTABLE_SERVER_ADDR.
const EnvPrefix = "COMPATTABLE_"

// AppName names the directory searched below the XDG config home.
const AppName = "compattable"

var fileNames = []string{"compattable.toml", "compattable.yaml", "compattable.yml", ".compattable.toml"}

// Config is the resolved configuration.
type Config struct {
	Data   DataConfig   `koanf:"data"`
	Render RenderConfig `koanf:"render"`
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-"`
}

// DataConfig locates the compat dataset.
type DataConfig struct {
	// Source is a file path or an http(s) URL.
	Source  string        `koanf:"source"`
	Timeout time.Duration `koanf:"timeout"`
}

// RenderConfig holds per-table defaults. Locales names a directory of
// <locale>.yaml string tables; Strings names a single override file.
type RenderConfig struct {
	Depth      int    `koanf:"depth"`
	Renderer   string `koanf:"renderer"`
	Locale     string `koanf:"locale"`
	Locales    string `koanf:"locales"`
	ForMDNURL  string `koanf:"for_mdn_url"`
	Strings    string `koanf:"strings"`
	Standalone bool   `koanf:"standalone"`
	Stylesheet string `koanf:"stylesheet"`
}

// ServerConfig configures `compattable serve`.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// LogConfig configures the zerolog output.
type LogConfig struct {
	Verbosity int    `koanf:"verbosity"`
	Format    string `koanf:"format"`
}

// Defaults returns the built-in values as flat koanf keys.
func Defaults() map[string]any {
	return map[string]any{
		"data.source":          "",
		"data.timeout":         "30s",
		"render.depth":         1,
		"render.renderer":      "html",
		"render.locale":        "en-US",
		"render.locales":       "",
		"render.for_mdn_url":   "",
		"render.strings":       "",
		"render.standalone":    false,
		"render.stylesheet":    "",
		"server.addr":          ":8080",
		"server.read_timeout":  "10s",
		"server.write_timeout": "30s",
		"log.verbosity":        0,
		"log.format":           "console",
	}
}

type options struct {
	file       string
	searchDirs []string
	environ    bool
}

// Option customises Load.
type Option func(*options)

// WithFile loads exactly path; a missing file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithSearchDirs replaces the directories probed for a configuration file.
func WithSearchDirs(dirs ...string) Option {
	return func(o *options) {
		o.searchDirs = append([]string(nil), dirs...)
	}
}

// WithoutEnv skips the environment layer.
func WithoutEnv() Option {
	return func(o *options) {
		o.environ = false
	}
}

// DefaultSearchDirs returns the working directory and the XDG config
// directory for the application.
func DefaultSearchDirs() []string {
	return []string{".", filepath.Join(xdg.ConfigHome, AppName)}
}

// Load resolves the configuration layers.
func Load(opts ...Option) (*Config, error) {
	o := options{searchDirs: DefaultSearchDirs(), environ: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	// 2. Configuration file
	path := o.file
	if path == "" {
		path = discover(o.searchDirs)
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// 3. Environment
	if o.environ {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("config: load env vars: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Render.Renderer) == "" {
		errs = append(errs, errors.New("render.renderer is required"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Data.Timeout < 0 {
		errs = append(errs, errors.New("data.timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// envKey maps COMPATTABLE_SECTION_SOME_KEY to section.some_key.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return section
	}
	return section + "." + rest
}

func discover(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", path)
	}
}
