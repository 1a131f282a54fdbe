package views

import (
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/parser"
)

// PreviewLimit caps the entity labels listed in a category hover preview.
const PreviewLimit = 15

const unnamedEntity = "Unnamed protein"

type BubbleView struct {
	View   models.View            `json:"view" yaml:"view"`
	Counts []models.CategoryCount `json:"counts" yaml:"counts"`
	// Domain is [min, max] of the counts, for the color scale.
	Domain [2]int `json:"domain" yaml:"domain"`
	Empty  bool   `json:"empty" yaml:"empty"`
}

func Bubble(rows []models.ResultRow) BubbleView {
	counts := parser.Aggregate(rows)
	return BubbleView{
		View:   models.ViewBubble,
		Counts: counts,
		Domain: parser.CountDomain(counts),
		Empty:  len(counts) == 0,
	}
}

// CategoryDetailView is the hover preview and click table of one bubble.
type CategoryDetailView struct {
	Label   string     `json:"label" yaml:"label"`
	Total   int        `json:"total" yaml:"total"`
	Preview []string   `json:"preview" yaml:"preview"`
	More    int        `json:"more" yaml:"more"`
	Rows    []TableRow `json:"rows" yaml:"rows"`
	Empty   bool       `json:"empty" yaml:"empty"`
}

func CategoryDetail(rows []models.ResultRow, label string) CategoryDetailView {
	related := parser.RowsForCategory(rows, label)

	preview := make([]string, 0, min(len(related), PreviewLimit))
	for _, r := range related[:min(len(related), PreviewLimit)] {
		preview = append(preview, r.EntityLabel.Or(unnamedEntity))
	}

	return CategoryDetailView{
		Label:   label,
		Total:   len(related),
		Preview: preview,
		More:    max(len(related)-PreviewLimit, 0),
		Rows:    tableRows(related),
		Empty:   len(related) == 0,
	}
}
