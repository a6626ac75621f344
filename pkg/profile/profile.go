// Package profile selects the platform and runtime columns of a table from
// the first segment of the query.
package profile

import "strings"

// Platform groups runtimes under one header column.
type Platform struct {
	// ID is the platform key, e.g. "webextensions-desktop".
	ID string
	// Runtimes lists the runtime ids shown under the platform, in order.
	Runtimes []string
}

// DisplayID strips the "webextensions-" prefix used by extension platforms.
func (p Platform) DisplayID() string {
	return strings.TrimPrefix(p.ID, "webextensions-")
}

// Profile is the column layout for one data category.
type Profile struct {
	// Category is the css suffix: "web", "js" or "ext".
	Category  string
	Platforms []Platform
}

// Runtimes flattens the platform runtimes in column order.
func (p Profile) Runtimes() []string {
	var out []string
	for _, platform := range p.Platforms {
		out = append(out, platform.Runtimes...)
	}
	return out
}

// IsExtension reports whether the profile describes WebExtensions data.
func (p Profile) IsExtension() bool {
	return p.Category == CategoryExtensions
}

const (
	CategoryWeb        = "web"
	CategoryJavaScript = "js"
	CategoryExtensions = "ext"
)

var (
	desktop = []string{"chrome", "edge", "firefox", "ie", "opera", "safari"}
	mobile  = []string{"webview_android", "chrome_android", "edge_mobile", "firefox_android", "opera_android", "safari_ios", "samsunginternet_android"}
	server  = []string{"nodejs"}

	extensionsDesktop = []string{"chrome", "edge", "firefox", "opera"}
	extensionsMobile  = []string{"firefox_android"}
)

// ForQuery returns the profile selected by the first dot segment of query.
func ForQuery(query string) Profile {
	category, _, _ := strings.Cut(query, ".")
	switch category {
	case "javascript":
		return Profile{
			Category: CategoryJavaScript,
			Platforms: []Platform{
				platform("desktop", desktop),
				platform("mobile", mobile),
				platform("server", server),
			},
		}
	case "webextensions":
		return Profile{
			Category: CategoryExtensions,
			Platforms: []Platform{
				platform("webextensions-desktop", extensionsDesktop),
				platform("webextensions-mobile", extensionsMobile),
			},
		}
	default:
		return Profile{
			Category: CategoryWeb,
			Platforms: []Platform{
				platform("desktop", desktop),
				platform("mobile", mobile),
			},
		}
	}
}

func platform(id string, runtimes []string) Platform {
	return Platform{ID: id, Runtimes: append([]string(nil), runtimes...)}
}
