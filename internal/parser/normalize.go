// Package parser provides utilities for parsing and transforming query results.
// It handles result normalization, graph projection, aggregation and highlighting.
package parser

import (
	"github.com/protscope/core/internal/models"
)

// Variable names per row field. The search queries project ?item style names,
// the organ queries ?protein style names.
var (
	entityVars        = []string{"item", "protein"}
	entityLabelVars   = []string{"itemLabel", "proteinLabel"}
	crossRefVars      = []string{"uniprotid", "uniprotID"}
	categoryVars      = []string{"biological_process", "biologicalProcess"}
	categoryLabelVars = []string{"biological_processLabel", "biologicalProcessLabel"}
)

// Normalize converts raw bindings into result rows. Rows lacking an entity id
// are dropped; missing optional fields never drop a row.
//
// An id is either an entity or a category for the whole row set: a category
// id that is also some row's entity id is cleared from the row carrying it.
func Normalize(bindings []models.Binding) []models.ResultRow {
	rows := make([]models.ResultRow, 0, len(bindings))
	entities := make(map[string]bool)

	for _, b := range bindings {
		row, ok := normalizeBinding(b)
		if !ok {
			continue
		}
		rows = append(rows, row)
		entities[row.EntityID] = true
	}

	for i := range rows {
		if rows[i].CategoryID.Present && entities[rows[i].CategoryID.Value] {
			rows[i].CategoryID = models.None()
			rows[i].CategoryLabel = models.None()
		}
	}

	return rows
}

func normalizeBinding(b models.Binding) (models.ResultRow, bool) {
	entity := lookup(b, entityVars)
	if !entity.Present || entity.Value == "" {
		return models.ResultRow{}, false
	}

	row := models.ResultRow{
		EntityID:      entity.Value,
		EntityLabel:   lookup(b, entityLabelVars),
		CrossRefID:    lookup(b, crossRefVars),
		CategoryID:    lookup(b, categoryVars),
		CategoryLabel: lookup(b, categoryLabelVars),
	}

	if row.CategoryID.Present && row.CategoryID.Value == "" {
		row.CategoryID = models.None()
	}

	return row, true
}

func lookup(b models.Binding, names []string) models.Optional {
	for _, name := range names {
		if v, ok := b[name]; ok {
			return models.Some(v.Value)
		}
	}
	return models.None()
}
