package resolve

import (
	"html"
	"strings"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/l10n"
)

// FlagTypePreference is the flag type that gets a settings hint.
const FlagTypePreference = "preference"

// settingsPages maps runtimes with a known preferences page to the runtime
// whose name is shown and the page URL.
var settingsPages = map[string]struct{ browser, url string }{
	"firefox":         {"firefox", "about:config"},
	"firefox_android": {"firefox", "about:config"},
	"chrome":          {"chrome", "chrome://flags"},
	"chrome_android":  {"chrome", "chrome://flags"},
}

// FlagsNote builds the HTML sentence describing the flags a statement is
// gated behind, e.g. "From version 5: this feature is behind the
// <code>x.enabled</code> preference. To change preferences in Firefox, visit
// about:config."
func FlagsNote(strs l10n.Strings, record bcd.SupportRecord, runtime string) string {
	var support string
	if record.VersionAdded.IsRelease() {
		support = strs.Format("flag_support_start", map[string]string{
			"versionAdded": record.VersionAdded.Label(),
		})
	}
	if record.VersionRemoved.IsRelease() {
		key := "flag_support_end"
		if support != "" {
			key = "flag_support_range"
		}
		support = strs.Format(key, map[string]string{
			"versionAdded":   record.VersionAdded.Label(),
			"versionRemoved": record.VersionRemoved.Label(),
		})
	}

	start := strs.Get("flag_start")
	if support != "" {
		start = strs.Format("flag_start_cont", map[string]string{"support": support})
	}

	var (
		text     strings.Builder
		settings string
	)
	for i, flag := range record.Flags {
		var valueToSet string
		if flag.ValueToSet != "" {
			valueToSet = strs.Format("flag_valueToSet", map[string]string{
				"valueToSet": html.EscapeString(flag.ValueToSet),
			})
		}

		text.WriteString("<code>")
		text.WriteString(html.EscapeString(flag.Name))
		text.WriteString("</code>")
		text.WriteString(strs.Format(flagTypeKey(strs, flag.Type), map[string]string{"valueToSet": valueToSet}))

		if flag.Type == FlagTypePreference {
			settings = preferencesHint(strs, runtime)
		}

		if i < len(record.Flags)-1 {
			text.WriteString(strs.Get("flag_misc_joiner"))
		} else {
			text.WriteString(strs.Get("flag_misc_end"))
		}
	}

	return start + text.String() + settings
}

// flagTypeKey prefers a table entry named after the raw type ("flag_type_compile
// flag") and otherwise uses the underscored form shipped in the default locale.
func flagTypeKey(strs l10n.Strings, flagType string) string {
	flagType = strings.TrimSpace(flagType)
	if raw := "flag_type_" + flagType; strs.Has(raw) {
		return raw
	}
	return "flag_type_" + strings.ReplaceAll(flagType, " ", "_")
}

func preferencesHint(strs l10n.Strings, runtime string) string {
	page, ok := settingsPages[runtime]
	if !ok {
		return ""
	}
	return strs.Format("flag_browser", map[string]string{
		"browser": stringOrKey(strs, "bc_icon_name_"+page.browser),
		"url":     page.url,
	})
}
