// Package models defines the core data structures shared by the query,
// projection and rendering layers.
package models

import (
	"github.com/goccy/go-json"
)

// UnknownCategory is the aggregation key for rows without a category label.
const UnknownCategory = "Unknown"

// Results is the application/sparql-results+json envelope.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Binding maps a projected variable name to its bound term.
type Binding map[string]BindingValue

type BindingValue struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Optional is a binding value that may be absent from a row.
type Optional struct {
	Value   string
	Present bool
}

func Some(v string) Optional { return Optional{Value: v, Present: true} }

func None() Optional { return Optional{} }

// Or returns the value when present and fallback otherwise.
func (o Optional) Or(fallback string) string {
	if o.Present {
		return o.Value
	}
	return fallback
}

func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Some(s)
	return nil
}

func (o Optional) MarshalYAML() (any, error) {
	if !o.Present {
		return nil, nil
	}
	return o.Value, nil
}

// ResultRow is the uniform shape every binding is normalized into.
type ResultRow struct {
	EntityID      string   `json:"entity_id" yaml:"entity_id"`
	EntityLabel   Optional `json:"entity_label" yaml:"entity_label"`
	CrossRefID    Optional `json:"cross_ref_id" yaml:"cross_ref_id"`
	CategoryID    Optional `json:"category_id" yaml:"category_id"`
	CategoryLabel Optional `json:"category_label" yaml:"category_label"`
}

// Label falls back to the entity id when the row carries no label.
func (r ResultRow) Label() string {
	return r.EntityLabel.Or(r.EntityID)
}

// CategoryName falls back to the category id when the row carries no label.
// It is empty when the row has no category at all.
func (r ResultRow) CategoryName() string {
	return r.CategoryLabel.Or(r.CategoryID.Value)
}

// AggregationKey groups rows for the packing view.
func (r ResultRow) AggregationKey() string {
	return r.CategoryLabel.Or(UnknownCategory)
}
