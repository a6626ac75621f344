package resolve

import (
	"strings"

	"github.com/goliatone/go-compattable/pkg/l10n"
)

// Icon slugs used for status and annotation icons.
const (
	IconExperimental = "experimental"
	IconDeprecated   = "deprecated"
	IconNonStandard  = "non-standard"
	IconFootnote     = "footnote"
	IconDisabled     = "disabled"
	IconAltName      = "altname"
	IconPrefix       = "prefix"
)

const replacePlaceholder = "$1$"

// Icon is an icon with its localized name and tooltip.
type Icon struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// NewIcon looks up the bc_icon_name_<slug> and bc_icon_title_<slug> strings,
// substituting replacer for "$1$". Icon names fall back to their key when
// missing or empty; a missing or empty title falls back to the name.
func NewIcon(strs l10n.Strings, slug, replacer string) Icon {
	name := strings.ReplaceAll(stringOrKey(strs, "bc_icon_name_"+slug), replacePlaceholder, replacer)
	title := name
	if value, ok := strs.Lookup("bc_icon_title_" + slug); ok && value != "" {
		title = strings.ReplaceAll(value, replacePlaceholder, replacer)
	}
	return Icon{Slug: slug, Name: name, Title: title}
}

// stringOrKey is Get with empty values treated as missing. Icon text must
// never be blank.
func stringOrKey(strs l10n.Strings, key string) string {
	if value, ok := strs.Lookup(key); ok && value != "" {
		return value
	}
	return key
}

// LegendIcon returns the icon as shown in the legend, named and titled by
// legend_<slug>.
func LegendIcon(strs l10n.Strings, slug string) Icon {
	name := strs.Get("legend_" + slug)
	return Icon{Slug: slug, Name: name, Title: name}
}
