package l10n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLocale names the locale embedded in the binary.
const DefaultLocale = "en-US"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Strings is an immutable key to string table.
type Strings struct {
	values map[string]string
}

// New copies values into a fresh table.
func New(values map[string]string) Strings {
	clone := make(map[string]string, len(values))
	for key, value := range values {
		clone[key] = value
	}
	return Strings{values: clone}
}

var (
	defaultOnce    sync.Once
	defaultStrings Strings
	defaultErr     error
)

// Default returns the embedded English table.
func Default() Strings {
	defaultOnce.Do(func() {
		var values map[string]string
		values, defaultErr = LoadFS(embeddedLocales, "locales/"+DefaultLocale+".yaml")
		defaultStrings = Strings{values: values}
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("l10n: embedded locale: %v", defaultErr))
	}
	return defaultStrings
}

// Merge returns a new table where overrides replace existing keys. The
// receiver is left untouched.
func (s Strings) Merge(overrides map[string]string) Strings {
	if len(overrides) == 0 {
		return s
	}
	merged := make(map[string]string, len(s.values)+len(overrides))
	for key, value := range s.values {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return Strings{values: merged}
}

// Get returns the string stored under key, or the key itself when it is
// missing. An explicit empty string is returned as-is.
func (s Strings) Get(key string) string {
	if value, ok := s.values[key]; ok {
		return value
	}
	return key
}

// IsZero reports whether s is the zero table, which defines no keys.
func (s Strings) IsZero() bool {
	return s.values == nil
}

// TemplateHelper is the name templates call to look up a string.
const TemplateHelper = "translate"

// TemplateFuncs exposes Get as the "translate" helper, e.g.
// {{ translate("legend") }}.
func (s Strings) TemplateFuncs() map[string]any {
	return map[string]any{TemplateHelper: s.Get}
}

// Lookup returns the string stored under key and whether the table defines it.
func (s Strings) Lookup(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Has reports whether the table defines key, even as an empty string.
func (s Strings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Format resolves key and substitutes every ${name} placeholder with the
// matching entry from vars. Unknown placeholders are left as-is.
func (s Strings) Format(key string, vars map[string]string) string {
	return Expand(s.Get(key), vars)
}

// Replace resolves key and replaces every occurrence of placeholder with
// value, as used by the "$1$" icon strings.
func (s Strings) Replace(key, placeholder, value string) string {
	return strings.ReplaceAll(s.Get(key), placeholder, value)
}

// Keys returns the sorted key set.
func (s Strings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the underlying values.
func (s Strings) Map() map[string]string {
	return New(s.values).values
}

// Expand substitutes ${name} placeholders in text.
func Expand(text string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(text, "${") {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "${"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Parse decodes a flat YAML (or JSON) mapping of keys to strings.
func Parse(data []byte) (map[string]string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("l10n: parse: %w", err)
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool, int, int64, float64:
			out[key] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("l10n: key %q must map to a string, got %T", key, value)
		}
	}
	return out, nil
}

// LoadFS reads and parses a string table from files.
func LoadFS(files fs.FS, name string) (map[string]string, error) {
	if files == nil {
		return nil, fmt.Errorf("l10n: filesystem is required")
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("l10n: read %s: %w", name, err)
	}
	values, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("l10n: %s: %w", path.Base(name), err)
	}
	return values, nil
}
