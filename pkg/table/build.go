package table

import (
	"errors"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/collect"
	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/profile"
	"github.com/goliatone/go-compattable/pkg/resolve"
)

const mdnOrigin = "https://developer.mozilla.org"

// Options configures Build.
type Options struct {
	Profile profile.Profile
	Strings l10n.Strings
	// Query is attached to errors and copied onto the table.
	Query string
	// ForMDNURL is the page the table is embedded on. When set, MDN links are
	// made relative and links to that page collapse to their anchor.
	ForMDNURL string
	// Sanitizer cleans descriptions and notes; DefaultSanitizer when nil.
	Sanitizer Sanitizer
}

// Build resolves every row against the profile runtimes. A fresh legend is
// collected for each call. Invalid support statements abort the build with a
// *resolve.InvalidSupportRecordError.
func Build(rows []collect.Row, opts Options) (Table, error) {
	b := builder{opts: opts, legend: resolve.NewLegend()}

	table := Table{
		Category: opts.Profile.Category,
		Query:    opts.Query,
		Header:   b.header(),
		Rows:     make([]Row, 0, len(rows)),
	}

	for _, row := range rows {
		built, err := b.row(row)
		if err != nil {
			var invalid *resolve.InvalidSupportRecordError
			if errors.As(err, &invalid) {
				invalid.Query = opts.Query
				invalid.Feature = row.Name
			}
			return Table{}, err
		}
		table.Rows = append(table.Rows, built)
	}

	table.Legend = b.legendItems()
	table.LegendTitle = opts.Strings.Get("legend")
	return table, nil
}

type builder struct {
	opts   Options
	legend *resolve.Legend
}

func (b builder) header() Header {
	strs := b.opts.Strings
	var header Header
	for _, platform := range b.opts.Profile.Platforms {
		id := platform.DisplayID()
		header.Platforms = append(header.Platforms, PlatformColumn{
			ID:   id,
			Span: strconv.Itoa(len(platform.Runtimes)),
			Icon: resolve.NewIcon(strs, id, ""),
		})
		for _, runtime := range platform.Runtimes {
			header.Runtimes = append(header.Runtimes, RuntimeColumn{
				ID:   runtime,
				Icon: resolve.NewIcon(strs, runtime, ""),
			})
		}
	}
	return header
}

func (b builder) row(row collect.Row) (Row, error) {
	out := Row{
		Name:        row.Name,
		Basic:       row.Basic,
		StatusIcons: b.statusIcons(row.Feature),
	}
	out.Label, out.Text = b.label(row)
	if row.Feature != nil {
		out.Href = MDNHref(row.Feature.MDNURL, b.opts.ForMDNURL)
	}
	if out.Href != "" {
		out.Label = `<a href="` + html.EscapeString(out.Href) + `">` + out.Label + `</a>`
	}

	for _, runtime := range b.opts.Profile.Runtimes() {
		cell, err := b.cell(row.Feature, runtime)
		if err != nil {
			return Row{}, err
		}
		out.Cells = append(out.Cells, cell)
	}
	return out, nil
}

// label returns the HTML and plain text forms of a row label. Nested rows
// with a description are prefixed with their parent path.
func (b builder) label(row collect.Row) (string, string) {
	if strings.TrimSpace(row.Description) == "" {
		return "<code>" + html.EscapeString(row.Name) + "</code>", row.Name
	}

	markup := sanitizeMarkup(b.opts.Sanitizer, row.Description)
	text := plainText(markup)
	if parent := row.Parent(); parent != "" {
		markup = "<code>" + html.EscapeString(parent) + "</code>: " + markup
		text = parent + ": " + text
	}
	return markup, text
}

func (b builder) statusIcons(feature *bcd.Feature) []resolve.Icon {
	if feature == nil || feature.Status == nil {
		return nil
	}
	strs := b.opts.Strings
	var icons []resolve.Icon
	if feature.Status.Experimental {
		icons = append(icons, resolve.NewIcon(strs, resolve.IconExperimental, ""))
		b.legend.Add(resolve.IconExperimental)
	}
	if feature.Status.Deprecated {
		variant := "web"
		if b.opts.Profile.IsExtension() {
			variant = "ext"
		}
		icons = append(icons, resolve.NewIcon(strs, resolve.IconDeprecated, strs.Get("bc_icon_title_deprecated_"+variant)))
		b.legend.Add(resolve.IconDeprecated)
	}
	if feature.Status.NonStandard() {
		icons = append(icons, resolve.NewIcon(strs, resolve.IconNonStandard, ""))
		b.legend.Add(resolve.IconNonStandard)
	}
	return icons
}

func (b builder) cell(feature *bcd.Feature, runtime string) (Cell, error) {
	strs := b.opts.Strings
	support := feature.SupportFor(runtime)

	cell := Cell{
		Runtime: runtime,
		Class:   resolve.Classify(support),
	}
	b.legend.AddSupport(cell.Class)

	if support == nil {
		cell.Label = resolve.CellLabel(strs, bcd.Unknown(), bcd.Unknown(), false)
		return cell, nil
	}

	head := support.Head()
	cell.Label = resolve.RecordLabel(strs, head)
	if !resolve.NeedsHistory(support) {
		return cell, nil
	}

	cell.HasHistory = true
	if err := resolve.Validate(head); err != nil {
		return Cell{}, withRuntime(err, runtime)
	}
	cell.Icons = resolve.CellIcons(strs, head, b.legend)

	for _, record := range support.History() {
		notes, err := resolve.Annotate(strs, record, runtime, b.legend)
		if err != nil {
			return Cell{}, err
		}
		for i := range notes {
			notes[i].Note = sanitizeMarkup(b.opts.Sanitizer, notes[i].Note)
		}
		cell.History = append(cell.History, HistoryEntry{
			Class: resolve.ClassifyRecord(record),
			Label: resolve.RecordLabel(strs, record),
			Icons: resolve.CellIcons(strs, record, b.legend),
			Notes: notes,
		})
	}
	return cell, nil
}

func (b builder) legendItems() []LegendItem {
	strs := b.opts.Strings
	tags := b.legend.Items()
	items := make([]LegendItem, 0, len(tags))
	for _, tag := range tags {
		if class, ok := resolve.SupportClass(tag); ok {
			text := strs.Get("supportsLong_" + string(class))
			items = append(items, LegendItem{
				Tag:     tag,
				Support: true,
				Class:   string(class),
				Icon:    resolve.Icon{Slug: tag, Name: text, Title: text},
				Text:    text,
			})
			continue
		}
		items = append(items, LegendItem{
			Tag:  tag,
			Icon: resolve.LegendIcon(strs, tag),
			Text: strs.Get("legend_" + tag),
		})
	}
	return items
}

func withRuntime(err error, runtime string) error {
	var invalid *resolve.InvalidSupportRecordError
	if errors.As(err, &invalid) {
		invalid.Runtime = runtime
	}
	return err
}

// MDNHref returns the link target for mdnURL as seen from the page
// forMDNURL. Without forMDNURL the absolute URL is kept. Otherwise the MDN
// origin is stripped, and a link to the page itself becomes its "#anchor", or
// "" when it has none.
func MDNHref(mdnURL, forMDNURL string) string {
	if mdnURL == "" || forMDNURL == "" {
		return mdnURL
	}

	href := strings.Replace(mdnURL, mdnOrigin, "", 1)
	_, slug, found := strings.Cut(forMDNURL, "/docs/")
	if !found {
		return href
	}
	slug, _, _ = strings.Cut(slug, "#")

	path, _, _ := strings.Cut(href, "#")
	if path != "/docs/"+slug {
		return href
	}
	if i := strings.Index(mdnURL, "#"); i >= 0 {
		return mdnURL[i:]
	}
	return ""
}
