// Package parser provides utilities for parsing and transforming query results.
// It handles result normalization, graph projection, aggregation and highlighting.
package parser

import (
	"strings"

	"github.com/protscope/core/internal/models"
)

// Highlights holds, per node id, the emphasis state and whether the label is
// shown without hovering. Every node of the resolved graph has an entry in
// both maps.
type Highlights struct {
	Emphasis     map[string]bool `json:"emphasis" yaml:"emphasis"`
	LabelVisible map[string]bool `json:"label_visible" yaml:"label_visible"`
}

// Resolve computes highlight state for graph under the active search. A nil
// search yields the baseline: category labels shown, entity labels hidden,
// nothing emphasized. Resolve never mutates graph.
func Resolve(graph *models.Graph, sc *models.SearchContext) Highlights {
	h := Highlights{
		Emphasis:     make(map[string]bool, len(graph.Nodes)),
		LabelVisible: make(map[string]bool, len(graph.Nodes)),
	}

	for _, n := range graph.Nodes {
		h.Emphasis[n.ID] = false
		h.LabelVisible[n.ID] = n.Kind == models.KindCategory
	}

	if sc == nil {
		return h
	}
	term := strings.ToLower(strings.TrimSpace(sc.Term))
	if term == "" {
		return h
	}

	byID := make(map[string]models.Node, len(graph.Nodes))
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}
	adj := Neighbors(graph)

	switch {
	case sc.Mode == models.ModeCategory:
		for _, n := range graph.Nodes {
			switch n.Kind {
			case models.KindCategory:
				if contains(n.Label, term) {
					h.Emphasis[n.ID] = true
				}
			case models.KindEntity:
				for _, id := range adj[n.ID] {
					if c, ok := byID[id]; ok && c.Kind == models.KindCategory && contains(c.Label, term) {
						h.Emphasis[n.ID] = true
						break
					}
				}
				if matchesNode(n, term) {
					h.LabelVisible[n.ID] = true
				}
			}
		}

	case sc.Mode.EntitySearch():
		for _, n := range graph.Nodes {
			if n.Kind != models.KindEntity || !matchesNode(n, term) {
				continue
			}
			h.Emphasis[n.ID] = true
			h.LabelVisible[n.ID] = true
			for _, id := range adj[n.ID] {
				if c, ok := byID[id]; ok && c.Kind == models.KindCategory {
					h.Emphasis[id] = true
				}
			}
		}
	}

	return h
}

func matchesNode(n models.Node, term string) bool {
	return contains(n.Label, term) || contains(n.ID, term)
}

func contains(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
