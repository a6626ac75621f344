package server

import (
	"sort"
	"strings"
)

// Search filters feature paths by a case-insensitive substring. Paths that
// start with the query sort first, then alphabetically.
func Search(paths []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(paths) <= limit {
				return append([]string{}, paths...)
			}
			return append([]string{}, paths[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedPath, 0, 32)
	for _, path := range paths {
		lower := strings.ToLower(path)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedPath{
			path:     path,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].path < matches[j].path
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.path)
	}
	return out
}

type matchedPath struct {
	path     string
	isPrefix bool
}
