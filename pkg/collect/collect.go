// Package collect flattens a compat subtree into the ordered rows of a table.
package collect

import (
	"strings"

	"github.com/goliatone/go-compattable/pkg/bcd"
)

// Row is one table row: a qualified feature name and the compat entry it
// displays. Description is owned by the row so the source tree is never
// modified.
type Row struct {
	// Name is the dotted path below the query root; the basic support row uses
	// the last segment of the query.
	Name        string
	Feature     *bcd.Feature
	Description string
	// Basic marks the synthetic row for the query root's own compat entry.
	Basic bool
}

// Parent returns everything before the last dot of the row name.
func (r Row) Parent() string {
	if i := strings.LastIndex(r.Name, "."); i >= 0 {
		return r.Name[:i]
	}
	return ""
}

// Leaf returns the last dot segment of the row name.
func (r Row) Leaf() string {
	return r.Name[strings.LastIndex(r.Name, ".")+1:]
}

// Features walks root down to depth levels and returns one row per node that
// carries compat data, in source order. The root's own entry comes first,
// labelled with basicSupport. Depth 0 or less returns the root row only.
func Features(root *bcd.Node, depth int, query, basicSupport string) []Row {
	if root == nil {
		return nil
	}

	var rows []Row
	if root.Compat != nil {
		rows = append(rows, Row{
			Name:        lastSegment(query),
			Feature:     root.Compat,
			Description: basicSupport,
			Basic:       true,
		})
	}
	return descend(root, depth, "", rows)
}

func descend(node *bcd.Node, depth int, prefix string, rows []Row) []Row {
	if depth <= 0 {
		return rows
	}
	for _, key := range node.Keys() {
		child := node.Child(key)
		if child == nil {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if child.Compat != nil {
			rows = append(rows, Row{
				Name:        name,
				Feature:     child.Compat,
				Description: child.Compat.Description,
			})
		}
		rows = descend(child, depth-1, name, rows)
	}
	return rows
}

func lastSegment(query string) string {
	return query[strings.LastIndex(query, ".")+1:]
}
