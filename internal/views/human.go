package views

import (
	"fmt"

	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/organ"
)

const unnamed = "Unnamed"

type HumanView struct {
	View    models.View    `json:"view" yaml:"view"`
	Regions []organ.Region `json:"regions" yaml:"regions"`
}

func Human() HumanView {
	return HumanView{View: models.ViewHuman, Regions: organ.Regions()}
}

type PanelRow struct {
	Protein string `json:"protein" yaml:"protein"`
	UniProt string `json:"uniprot" yaml:"uniprot"`
}

type OrganPanelView struct {
	Organ organ.ID   `json:"organ" yaml:"organ"`
	Title string     `json:"title" yaml:"title"`
	Rows  []PanelRow `json:"rows" yaml:"rows"`
	Empty bool       `json:"empty" yaml:"empty"`
}

func OrganPanel(region organ.Region, rows []models.ResultRow) OrganPanelView {
	out := make([]PanelRow, 0, len(rows))
	for _, r := range rows {
		protein := r.Label()
		if protein == "" {
			protein = unnamed
		}
		out = append(out, PanelRow{Protein: protein, UniProt: r.CrossRefID.Value})
	}

	return OrganPanelView{
		Organ: region.ID,
		Title: panelTitle(region.Label, len(rows)),
		Rows:  out,
		Empty: len(rows) == 0,
	}
}

func panelTitle(label string, n int) string {
	if n == 1 {
		return fmt.Sprintf("%s — 1 result", label)
	}
	return fmt.Sprintf("%s — %d results", label, n)
}
