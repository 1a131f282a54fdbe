package views

import (
	"github.com/protscope/core/internal/models"
	"github.com/protscope/core/internal/parser"
)

// Layout carries the force simulation parameters for the browser renderer.
type Layout struct {
	LinkDistance   float64    `json:"link_distance" yaml:"link_distance"`
	Charge         float64    `json:"charge" yaml:"charge"`
	Zoom           [2]float64 `json:"zoom" yaml:"zoom"`
	EntityRadius   float64    `json:"entity_radius" yaml:"entity_radius"`
	CategoryRadius float64    `json:"category_radius" yaml:"category_radius"`
}

var DefaultLayout = Layout{
	LinkDistance:   250,
	Charge:         -2000,
	Zoom:           [2]float64{0.1, 5},
	EntityRadius:   25,
	CategoryRadius: 18,
}

type GraphView struct {
	View         models.View           `json:"view" yaml:"view"`
	Nodes        []models.Node         `json:"nodes" yaml:"nodes"`
	Edges        []models.Edge         `json:"edges" yaml:"edges"`
	Stats        *models.Stats         `json:"stats" yaml:"stats"`
	Emphasis     map[string]bool       `json:"emphasis" yaml:"emphasis"`
	LabelVisible map[string]bool       `json:"label_visible" yaml:"label_visible"`
	Search       *models.SearchContext `json:"search,omitempty" yaml:"search,omitempty"`
	Layout       Layout                `json:"layout" yaml:"layout"`
	Empty        bool                  `json:"empty" yaml:"empty"`
}

func Graph(rows []models.ResultRow, sc *models.SearchContext) GraphView {
	graph := parser.BuildGraph(rows)
	h := parser.Resolve(graph, sc)

	return GraphView{
		View:         models.ViewGraph,
		Nodes:        graph.Nodes,
		Edges:        graph.Edges,
		Stats:        graph.Stats,
		Emphasis:     h.Emphasis,
		LabelVisible: h.LabelVisible,
		Search:       sc,
		Layout:       DefaultLayout,
		Empty:        len(graph.Nodes) == 0,
	}
}
