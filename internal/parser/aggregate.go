// Package parser provides utilities for parsing and transforming query results.
// It handles result normalization, graph projection, aggregation and highlighting.
package parser

import (
	"github.com/protscope/core/internal/models"
)

// Aggregate counts rows per category label in order of first occurrence.
// Rows without a label are counted under models.UnknownCategory.
func Aggregate(rows []models.ResultRow) []models.CategoryCount {
	counts := []models.CategoryCount{}
	index := make(map[string]int)

	for _, row := range rows {
		key := row.AggregationKey()
		if i, ok := index[key]; ok {
			counts[i].Count++
			continue
		}
		index[key] = len(counts)
		counts = append(counts, models.CategoryCount{Label: key, Count: 1})
	}

	return counts
}

// CountDomain returns the smallest and largest count, or [0, 0] when empty.
func CountDomain(counts []models.CategoryCount) [2]int {
	if len(counts) == 0 {
		return [2]int{0, 0}
	}

	domain := [2]int{counts[0].Count, counts[0].Count}
	for _, c := range counts[1:] {
		domain[0] = min(domain[0], c.Count)
		domain[1] = max(domain[1], c.Count)
	}
	return domain
}

// RowsForCategory returns the rows aggregated under label, in input order.
func RowsForCategory(rows []models.ResultRow, label string) []models.ResultRow {
	related := []models.ResultRow{}
	for _, row := range rows {
		if row.AggregationKey() == label {
			related = append(related, row)
		}
	}
	return related
}
