package resolve

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/l10n"
)

// Annotation is one history note: the icon it is marked with and its HTML
// text.
type Annotation struct {
	Icon Icon   `json:"icon"`
	Note string `json:"note"`
}

// Validate rejects statements whose notes or flags cannot be rendered.
func Validate(record bcd.SupportRecord) error {
	if reason := record.Notes.Malformed(); reason != "" {
		return &InvalidSupportRecordError{Reason: reason}
	}
	if record.Notes.Present() && len(record.Notes.Items()) == 0 {
		return &InvalidSupportRecordError{Reason: "notes must not be empty"}
	}
	if record.Flags != nil && len(record.Flags) == 0 {
		return &InvalidSupportRecordError{Reason: "flags must not be empty"}
	}
	for i, flag := range record.Flags {
		if strings.TrimSpace(flag.Name) == "" {
			return &InvalidSupportRecordError{Reason: fmt.Sprintf("flag %d has no name", i)}
		}
	}
	return nil
}

// NeedsHistory reports whether a cell gets a history panel: the runtime has
// more than one statement, or any statement carries a prefix, notes, an
// alternative name or flags.
func NeedsHistory(support *bcd.Support) bool {
	if support == nil {
		return false
	}
	if support.Len() > 1 {
		return true
	}
	for _, record := range support.History() {
		if record.HasAnnotations() {
			return true
		}
	}
	return false
}

// CellIcons returns the icons summarising a statement's annotations and adds
// them to legend.
func CellIcons(strs l10n.Strings, record bcd.SupportRecord, legend *Legend) []Icon {
	var icons []Icon
	add := func(slug, replacer string) {
		icons = append(icons, NewIcon(strs, slug, replacer))
		legend.Add(slug)
	}

	if record.Prefix != "" {
		add(IconPrefix, record.Prefix)
	}
	if record.Notes.Present() {
		add(IconFootnote, "")
	}
	if record.AlternativeName != "" {
		add(IconAltName, record.AlternativeName)
	}
	if len(record.Flags) > 0 {
		add(IconDisabled, "")
	}
	return icons
}

// Annotate returns the history notes of one statement in display order:
// prefix, each note, alternative name, then flags. The icons used are added
// to legend.
func Annotate(strs l10n.Strings, record bcd.SupportRecord, runtime string, legend *Legend) ([]Annotation, error) {
	if err := Validate(record); err != nil {
		if invalid, ok := err.(*InvalidSupportRecordError); ok {
			invalid.Runtime = runtime
		}
		return nil, err
	}

	var notes []Annotation
	add := func(slug, replacer, note string) {
		notes = append(notes, Annotation{Icon: NewIcon(strs, slug, replacer), Note: note})
		legend.Add(slug)
	}

	if record.Prefix != "" {
		add(IconPrefix, record.Prefix, strs.Replace("bc_icon_title_prefix", replacePlaceholder, record.Prefix))
	}
	for _, note := range record.Notes.Items() {
		add(IconFootnote, "", note)
	}
	if record.AlternativeName != "" {
		add(IconAltName, record.AlternativeName, strs.Replace("bc_icon_title_altname", replacePlaceholder, record.AlternativeName))
	}
	if len(record.Flags) > 0 {
		add(IconDisabled, "", FlagsNote(strs, record, runtime))
	}
	return notes, nil
}
