// Package views shapes normalized rows into the view models the rendering
// collaborators consume. Every view model is rebuilt from rows on demand.
package views

import (
	"fmt"

	"github.com/protscope/core/internal/models"
)

// Render builds the view model for view. The human view ignores rows; its
// organ panels are built separately from the organ cache.
func Render(view models.View, rows []models.ResultRow, sc *models.SearchContext) (any, error) {
	switch view {
	case models.ViewTable:
		return Table(rows), nil
	case models.ViewGraph:
		return Graph(rows, sc), nil
	case models.ViewBubble:
		return Bubble(rows), nil
	case models.ViewHuman:
		return Human(), nil
	default:
		return nil, fmt.Errorf("unknown view %q", string(view))
	}
}
