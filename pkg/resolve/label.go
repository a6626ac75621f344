package resolve

import (
	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/l10n"
)

// RangeSeparator joins the endpoints of a removed support range.
const RangeSeparator = " — "

// Label is the text shown in a cell.
type Label struct {
	// Class selects the bc-level-* marker.
	Class Class `json:"class"`
	// Title is the long support text used for the marker tooltip.
	Title string `json:"title"`
	// Short is the short support text ("Yes", "No", "?"), empty when a
	// version is shown instead.
	Short string `json:"short,omitempty"`
	// Version is the version or version range, if any.
	Version string `json:"version,omitempty"`
}

// Text returns the visible cell text.
func (l Label) Text() string {
	if l.Version != "" {
		return l.Version
	}
	return l.Short
}

// CellLabel selects the label of a statement from its added and removed
// versions and its partial flag.
func CellLabel(strs l10n.Strings, added, removed bcd.Version, partial bool) Label {
	var label Label
	switch added.Kind() {
	case bcd.VersionUnknown:
		label = Label{
			Class: ClassUnknown,
			Title: strs.Get("supportsShort_unknown_title"),
			Short: strs.Get("supportsShort_unknown"),
		}
	case bcd.VersionUnversioned:
		label = Label{
			Class: ClassYes,
			Title: strs.Get("supportsLong_yes"),
			Short: strs.Get("supportsShort_yes"),
		}
	case bcd.VersionNone:
		label = Label{
			Class: ClassNo,
			Title: strs.Get("supportsLong_no"),
			Short: strs.Get("supportsShort_no"),
		}
	case bcd.VersionRelease:
		label = Label{
			Class:   ClassYes,
			Title:   strs.Get("supportsLong_yes"),
			Version: added.Label(),
		}
	}

	switch {
	case removed.Truthy():
		label = Label{
			Class:   ClassNo,
			Title:   strs.Get("supportsLong_no"),
			Version: endpoint(added) + RangeSeparator + endpoint(removed),
		}
	case partial:
		version := strs.Get("supportsShort_partial")
		if added.IsRelease() {
			version = added.Label()
		}
		label = Label{
			Class:   ClassPartial,
			Title:   strs.Get("supportsLong_partial"),
			Version: version,
		}
	}
	return label
}

// RecordLabel is CellLabel applied to a statement.
func RecordLabel(strs l10n.Strings, record bcd.SupportRecord) Label {
	return CellLabel(strs, record.VersionAdded, record.VersionRemoved, record.PartialImplementation)
}

func endpoint(v bcd.Version) string {
	if v.IsRelease() {
		return v.Label()
	}
	return "?"
}
