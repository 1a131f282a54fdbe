package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsUnmarshal(t *testing.T) {
	t.Run("bindings with language tags", func(t *testing.T) {
		jsonData := `{
			"head": {"vars": ["item", "itemLabel"]},
			"results": {"bindings": [
				{
					"item": {"type": "uri", "value": "http://www.wikidata.org/entity/Q1"},
					"itemLabel": {"type": "literal", "value": "ProtA", "xml:lang": "en"}
				}
			]}
		}`

		var results Results
		err := json.Unmarshal([]byte(jsonData), &results)

		require.NoError(t, err)
		assert.Equal(t, []string{"item", "itemLabel"}, results.Head.Vars)
		require.NotNil(t, results.Results)
		require.Len(t, results.Results.Bindings, 1)
		assert.Equal(t, "en", results.Results.Bindings[0]["itemLabel"].Lang)
		assert.Equal(t, "uri", results.Results.Bindings[0]["item"].Type)
	})

	t.Run("missing results section stays nil", func(t *testing.T) {
		var results Results
		err := json.Unmarshal([]byte(`{"head": {"vars": []}}`), &results)

		require.NoError(t, err)
		assert.Nil(t, results.Results)
	})
}

func TestOptional(t *testing.T) {
	t.Run("or returns value when present", func(t *testing.T) {
		assert.Equal(t, "ProtA", Some("ProtA").Or("fallback"))
	})

	t.Run("or returns fallback when absent", func(t *testing.T) {
		assert.Equal(t, "fallback", None().Or("fallback"))
	})

	t.Run("present empty string is kept", func(t *testing.T) {
		assert.Equal(t, "", Some("").Or("fallback"))
	})

	t.Run("absent marshals as null", func(t *testing.T) {
		data, err := json.Marshal(struct {
			V Optional `json:"v"`
		}{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"v": null}`, string(data))
	})

	t.Run("null unmarshals as absent", func(t *testing.T) {
		var v struct {
			V Optional `json:"v"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"v": null}`), &v))
		assert.False(t, v.V.Present)

		require.NoError(t, json.Unmarshal([]byte(`{"v": "P12345"}`), &v))
		assert.Equal(t, Some("P12345"), v.V)
	})
}

func TestResultRowFallbacks(t *testing.T) {
	t.Run("label falls back to entity id", func(t *testing.T) {
		row := ResultRow{EntityID: "E1"}
		assert.Equal(t, "E1", row.Label())

		row.EntityLabel = Some("ProtA")
		assert.Equal(t, "ProtA", row.Label())
	})

	t.Run("category name falls back to category id", func(t *testing.T) {
		row := ResultRow{EntityID: "E1", CategoryID: Some("C1")}
		assert.Equal(t, "C1", row.CategoryName())

		row.CategoryLabel = Some("Metabolism")
		assert.Equal(t, "Metabolism", row.CategoryName())
	})

	t.Run("category name is empty without a category", func(t *testing.T) {
		assert.Equal(t, "", ResultRow{EntityID: "E1"}.CategoryName())
	})

	t.Run("aggregation key uses the unknown sentinel", func(t *testing.T) {
		row := ResultRow{EntityID: "E1", CategoryID: Some("C1")}
		assert.Equal(t, UnknownCategory, row.AggregationKey())

		row.CategoryLabel = Some("Signaling")
		assert.Equal(t, "Signaling", row.AggregationKey())
	})
}
