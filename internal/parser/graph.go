// Package parser provides utilities for parsing and transforming query results.
// It handles result normalization, graph projection, aggregation and highlighting.
package parser

import (
	"github.com/protscope/core/internal/models"
)

// BuildGraph projects rows into one node per distinct id and one edge per row
// that carries both an entity and a category. The first label seen for an id
// wins. Edges are not deduplicated.
func BuildGraph(rows []models.ResultRow) *models.Graph {
	graph := &models.Graph{
		Nodes: []models.Node{},
		Edges: []models.Edge{},
	}

	nodeMap := make(map[string]bool)
	stats := &models.Stats{}

	addNode := func(id, label string, kind models.NodeKind) {
		if nodeMap[id] {
			return
		}
		graph.Nodes = append(graph.Nodes, models.Node{ID: id, Label: label, Kind: kind})
		nodeMap[id] = true

		if kind == models.KindEntity {
			stats.EntityNodes++
		} else {
			stats.CategoryNodes++
		}
	}

	for _, row := range rows {
		if row.EntityID != "" {
			addNode(row.EntityID, row.Label(), models.KindEntity)
		}

		if row.CategoryID.Present {
			addNode(row.CategoryID.Value, row.CategoryName(), models.KindCategory)
		}

		if row.EntityID != "" && row.CategoryID.Present {
			graph.Edges = append(graph.Edges, models.Edge{
				Source: row.EntityID,
				Target: row.CategoryID.Value,
			})
		}
	}

	stats.TotalNodes = len(graph.Nodes)
	stats.TotalEdges = len(graph.Edges)
	graph.Stats = stats

	return graph
}

// Neighbors maps every node id to the ids it shares an edge with.
func Neighbors(graph *models.Graph) map[string][]string {
	adj := make(map[string][]string, len(graph.Nodes))
	seen := make(map[models.Edge]bool, len(graph.Edges))

	for _, e := range graph.Edges {
		if seen[e] {
			continue
		}
		seen[e] = true
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}

	return adj
}
