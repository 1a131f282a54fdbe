// Package models defines the core data structures shared by the query,
// projection and rendering layers.
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphUnmarshal(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		jsonData := `{
			"nodes": [],
			"edges": []
		}`

		var graph Graph
		err := json.Unmarshal([]byte(jsonData), &graph)

		require.NoError(t, err)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Edges)
		assert.Nil(t, graph.Stats)
	})

	t.Run("graph with nodes and edges", func(t *testing.T) {
		jsonData := `{
			"nodes": [
				{"id": "http://www.wikidata.org/entity/Q1", "label": "ProtA", "kind": "entity"},
				{"id": "http://www.wikidata.org/entity/Q2", "label": "Metabolism", "kind": "category"}
			],
			"edges": [
				{"source": "http://www.wikidata.org/entity/Q1", "target": "http://www.wikidata.org/entity/Q2"}
			],
			"stats": {"total_nodes": 2, "total_edges": 1, "entity_nodes": 1, "category_nodes": 1}
		}`

		var graph Graph
		err := json.Unmarshal([]byte(jsonData), &graph)

		require.NoError(t, err)
		require.Len(t, graph.Nodes, 2)
		assert.Equal(t, KindEntity, graph.Nodes[0].Kind)
		assert.Equal(t, KindCategory, graph.Nodes[1].Kind)
		assert.Equal(t, "http://www.wikidata.org/entity/Q2", graph.Edges[0].Target)
		assert.Equal(t, 1, graph.Stats.CategoryNodes)
	})

	t.Run("unknown node kind is rejected", func(t *testing.T) {
		var node Node
		err := json.Unmarshal([]byte(`{"id": "x", "label": "x", "kind": "organ"}`), &node)

		assert.Error(t, err)
	})
}

func TestGraphMarshal(t *testing.T) {
	t.Run("kinds are written as names", func(t *testing.T) {
		graph := Graph{
			Nodes: []Node{
				{ID: "E1", Label: "ProtA", Kind: KindEntity},
				{ID: "C1", Label: "Metabolism", Kind: KindCategory},
			},
			Edges: []Edge{{Source: "E1", Target: "C1"}},
		}

		data, err := json.Marshal(graph)
		require.NoError(t, err)

		jsonString := string(data)
		assert.Contains(t, jsonString, `"kind":"entity"`)
		assert.Contains(t, jsonString, `"kind":"category"`)
		assert.NotContains(t, jsonString, "stats")
	})
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "entity", KindEntity.String())
	assert.Equal(t, "category", KindCategory.String())
	assert.Equal(t, "NodeKind(7)", NodeKind(7).String())
}
