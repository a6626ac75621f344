// Package markdown renders compat tables as GitHub-flavoured Markdown: one
// table with a row per feature, then the history notes and the legend as
// lists.
package markdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-compattable/pkg/render"
	"github.com/goliatone/go-compattable/pkg/table"
)

// Name is the registry name of the renderer.
const Name = "markdown"

type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns the Markdown renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return Name
}

func (Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func (Renderer) Render(ctx context.Context, tbl table.Table, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if options.Standalone {
		title := strings.TrimSpace(options.Title)
		if title == "" {
			title = tbl.Query
		}
		fmt.Fprintf(&b, "# %s\n\n", title)
	}

	writeTable(&b, tbl)
	if notes := collectNotes(tbl); len(notes) > 0 {
		b.WriteString("\n")
		for _, note := range notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}
	if len(tbl.Legend) > 0 {
		fmt.Fprintf(&b, "\n**%s**\n\n", escapeInline(tbl.LegendTitle))
		for _, item := range tbl.Legend {
			if item.Support || item.Icon.Name == "" || item.Icon.Name == item.Text {
				fmt.Fprintf(&b, "- %s\n", escapeInline(item.Text))
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", escapeInline(item.Icon.Name), escapeInline(item.Text))
		}
	}
	return []byte(b.String()), nil
}

func writeTable(b *strings.Builder, tbl table.Table) {
	header := []string{""}
	for _, runtime := range tbl.Header.Runtimes {
		header = append(header, escapeCell(runtime.Icon.Name))
	}
	writeRow(b, header)

	divider := make([]string, len(header))
	divider[0] = "---"
	for i := 1; i < len(divider); i++ {
		divider[i] = ":---:"
	}
	writeRow(b, divider)

	for _, row := range tbl.Rows {
		cells := []string{featureCell(row)}
		for _, cell := range row.Cells {
			cells = append(cells, supportCell(cell))
		}
		writeRow(b, cells)
	}
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func featureCell(row table.Row) string {
	label := escapeCell(fromHTML(row.Label))
	if len(row.StatusIcons) == 0 {
		return label
	}
	names := make([]string, 0, len(row.StatusIcons))
	for _, icon := range row.StatusIcons {
		names = append(names, "_"+escapeCell(icon.Name)+"_")
	}
	return label + " " + strings.Join(names, " ")
}

func supportCell(cell table.Cell) string {
	text := escapeCell(cell.Label.Text())
	if len(cell.Icons) == 0 {
		return text
	}
	names := make([]string, 0, len(cell.Icons))
	for _, icon := range cell.Icons {
		names = append(names, escapeCell(icon.Name))
	}
	return text + " (" + strings.Join(names, ", ") + ")"
}

// collectNotes lists every history annotation as "Feature, Runtime, version:
// note" in table order.
func collectNotes(tbl table.Table) []string {
	runtimeNames := make(map[string]string, len(tbl.Header.Runtimes))
	for _, runtime := range tbl.Header.Runtimes {
		runtimeNames[runtime.ID] = runtime.Icon.Name
	}

	var notes []string
	for _, row := range tbl.Rows {
		for _, cell := range row.Cells {
			for _, entry := range cell.History {
				for _, annotation := range entry.Notes {
					notes = append(notes, fmt.Sprintf("%s, %s %s: %s",
						escapeInline(row.Text),
						escapeInline(runtimeNames[cell.Runtime]),
						escapeInline(entry.Label.Text()),
						fromHTML(annotation.Note),
					))
				}
			}
		}
	}
	return notes
}

func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

var inlineEscaper = strings.NewReplacer(`*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escapeInline(s string) string {
	return inlineEscaper.Replace(strings.Join(strings.Fields(s), " "))
}
