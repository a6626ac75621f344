package table

import "github.com/goliatone/go-compattable/pkg/resolve"

// Table is the renderer-agnostic compatibility table.
type Table struct {
	// Category is the css suffix selected by the query ("web", "js", "ext").
	Category    string       `json:"category"`
	Query       string       `json:"query"`
	Header      Header       `json:"header"`
	Rows        []Row        `json:"rows"`
	Legend      []LegendItem `json:"legend"`
	LegendTitle string       `json:"legend_title"`
}

// Header holds the two header rows.
type Header struct {
	Platforms []PlatformColumn `json:"platforms"`
	Runtimes  []RuntimeColumn  `json:"runtimes"`
}

// PlatformColumn spans the runtimes of one platform.
type PlatformColumn struct {
	ID string `json:"id"`
	// Span is the column count, kept as text so template engines print it
	// verbatim.
	Span string       `json:"span"`
	Icon resolve.Icon `json:"icon"`
}

// RuntimeColumn is a single runtime header cell.
type RuntimeColumn struct {
	ID   string       `json:"id"`
	Icon resolve.Icon `json:"icon"`
}

// Row is one feature row.
type Row struct {
	Name  string `json:"name"`
	Basic bool   `json:"basic"`
	// Label is sanitized HTML, linked when the feature has an MDN URL.
	Label string `json:"label"`
	// Text is the label without markup.
	Text        string         `json:"text"`
	Href        string         `json:"href,omitempty"`
	StatusIcons []resolve.Icon `json:"status_icons,omitempty"`
	Cells       []Cell         `json:"cells"`
}

// Cell is the resolved state of one runtime for one feature.
type Cell struct {
	Runtime    string         `json:"runtime"`
	Class      resolve.Class  `json:"class"`
	Label      resolve.Label  `json:"label"`
	Icons      []resolve.Icon `json:"icons,omitempty"`
	HasHistory bool           `json:"has_history"`
	History    []HistoryEntry `json:"history,omitempty"`
}

// HistoryEntry is one statement of a cell's history panel.
type HistoryEntry struct {
	Class resolve.Class        `json:"class"`
	Label resolve.Label        `json:"label"`
	Icons []resolve.Icon       `json:"icons,omitempty"`
	Notes []resolve.Annotation `json:"notes,omitempty"`
}

// LegendItem explains one icon or support class used in the table.
type LegendItem struct {
	Tag string `json:"tag"`
	// Support marks support_* entries, which render a level marker instead of
	// an icon.
	Support bool         `json:"support"`
	Class   string       `json:"class,omitempty"`
	Icon    resolve.Icon `json:"icon"`
	Text    string       `json:"text"`
}
