// Package models defines the core data structures shared by the query,
// projection and rendering layers.
package models

import (
	"fmt"
	"strings"
)

// Mode selects the query shape and the highlight rules of a search.
type Mode int

const (
	ModeEntityName Mode = iota + 1
	ModeCrossRefID
	ModeCategory
)

var modeNames = map[Mode]string{
	ModeEntityName: "name",
	ModeCrossRefID: "uniprot",
	ModeCategory:   "process",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// EntitySearch reports whether the mode matches against entity nodes.
func (m Mode) EntitySearch() bool {
	return m == ModeEntityName || m == ModeCrossRefID
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "protein", "":
		return ModeEntityName, nil
	case "uniprot", "crossref", "xref":
		return ModeCrossRefID, nil
	case "process", "category":
		return ModeCategory, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q (use name, uniprot or process)", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("invalid search mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SearchContext lives from a submitted search until the next search or reset.
type SearchContext struct {
	Mode Mode   `json:"mode" yaml:"mode"`
	Term string `json:"term" yaml:"term"`
}

// View is the presentation consumer the core output is shaped for.
type View string

const (
	ViewTable  View = "table"
	ViewGraph  View = "graph"
	ViewBubble View = "bubble"
	ViewHuman  View = "human"
)

func Views() []View {
	return []View{ViewTable, ViewGraph, ViewBubble, ViewHuman}
}

func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewTable, ViewGraph, ViewBubble, ViewHuman:
		return v, nil
	case "":
		return ViewTable, nil
	default:
		return "", fmt.Errorf("unknown view %q (use table, graph, bubble or human)", s)
	}
}
