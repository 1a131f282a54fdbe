// Package models defines the core data structures shared by the query,
// projection and rendering layers.
package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

type NodeKind int

const (
	KindEntity NodeKind = iota
	KindCategory
)

func (k NodeKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindCategory:
		return "category"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

func (k NodeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *NodeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "entity":
		*k = KindEntity
	case "category":
		*k = KindCategory
	default:
		return fmt.Errorf("unknown node kind %q", s)
	}
	return nil
}

func (k NodeKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
	Stats *Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

type Node struct {
	ID    string   `json:"id" yaml:"id"`
	Label string   `json:"label" yaml:"label"`
	Kind  NodeKind `json:"kind" yaml:"kind"`
}

// Edge always points from an entity node to a category node.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

type Stats struct {
	TotalNodes    int `json:"total_nodes" yaml:"total_nodes"`
	TotalEdges    int `json:"total_edges" yaml:"total_edges"`
	EntityNodes   int `json:"entity_nodes" yaml:"entity_nodes"`
	CategoryNodes int `json:"category_nodes" yaml:"category_nodes"`
}

// CategoryCount is one bubble of the packing view.
type CategoryCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}
