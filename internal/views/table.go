package views

import (
	"github.com/protscope/core/internal/models"
)

var TableColumns = []string{"Protein", "UniProt", "Process URL", "Process Name"}

// TableRow holds display cells. Absent values are empty strings.
type TableRow struct {
	Protein     string `json:"protein" yaml:"protein"`
	UniProt     string `json:"uniprot" yaml:"uniprot"`
	ProcessURL  string `json:"process_url" yaml:"process_url"`
	ProcessName string `json:"process_name" yaml:"process_name"`
}

type TableView struct {
	View    models.View `json:"view" yaml:"view"`
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    []TableRow  `json:"rows" yaml:"rows"`
	Empty   bool        `json:"empty" yaml:"empty"`
}

func Table(rows []models.ResultRow) TableView {
	return TableView{
		View:    models.ViewTable,
		Columns: TableColumns,
		Rows:    tableRows(rows),
		Empty:   len(rows) == 0,
	}
}

func tableRows(rows []models.ResultRow) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, TableRow{
			Protein:     r.EntityLabel.Value,
			UniProt:     r.CrossRefID.Value,
			ProcessURL:  r.CategoryID.Value,
			ProcessName: r.CategoryLabel.Value,
		})
	}
	return out
}
