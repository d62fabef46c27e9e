package engine

import (
	"slices"
	"strings"
)

// firstPerDate sorts rows by date and keeps only the first row seen for each
// date. The sort is stable, so store order breaks ties.
func firstPerDate[T any](rows []T, date func(T) string) []T {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int { return strings.Compare(date(a), date(b)) })

	out := make([]T, 0, len(sorted))
	last := ""
	for i, row := range sorted {
		if i > 0 && date(row) == last {
			continue
		}
		last = date(row)
		out = append(out, row)
	}
	return out
}
