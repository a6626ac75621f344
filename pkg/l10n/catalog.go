package l10n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Catalog groups string tables by locale. Locale tables are layered over the
// default English table so partial translations still render every key.
type Catalog struct {
	mu       sync.RWMutex
	fallback Strings
	locales  map[string]Strings
}

// NewCatalog returns a catalog seeded with the embedded English table.
func NewCatalog() *Catalog {
	return &Catalog{
		fallback: Default(),
		locales:  map[string]Strings{DefaultLocale: Default()},
	}
}

// Add layers values over the default table and stores them under locale.
func (c *Catalog) Add(locale string, values map[string]string) {
	locale = normalizeLocale(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locales[locale] = c.fallback.Merge(values)
}

// LoadDir reads every *.yaml, *.yml and *.json file in dir, naming each
// locale after the file name without its extension.
func (c *Catalog) LoadDir(files fs.FS, dir string) error {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return fmt.Errorf("l10n: read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		switch ext {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		values, err := LoadFS(files, path.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		c.Add(strings.TrimSuffix(entry.Name(), ext), values)
	}
	return nil
}

// Strings returns the table for locale, falling back to the language part
// ("de" for "de-AT") and then to English.
func (c *Catalog) Strings(locale string) Strings {
	locale = normalizeLocale(locale)
	c.mu.RLock()
	defer c.mu.RUnlock()

	if table, ok := c.locales[locale]; ok {
		return table
	}
	if lang, _, found := strings.Cut(locale, "-"); found {
		if table, ok := c.locales[lang]; ok {
			return table
		}
	}
	return c.fallback
}

// Locales returns the registered locale names.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return DefaultLocale
	}
	return locale
}
