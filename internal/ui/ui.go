// Package ui renders view models to a terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/protscope/core/internal/views"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Accent = color.New(color.FgHiBlue, color.Bold)
)

const (
	barWidth = 40
	// maxCell caps a table column; longer cells are truncated.
	maxCell = 60
)

// Render writes v, which must be one of the view models, to w.
func Render(w io.Writer, v any) error {
	switch v := v.(type) {
	case views.TableView:
		TableView(w, v)
	case views.GraphView:
		GraphView(w, v)
	case views.BubbleView:
		BubbleView(w, v)
	case views.CategoryDetailView:
		CategoryView(w, v)
	case views.HumanView:
		HumanView(w, v)
	case views.OrganPanelView:
		PanelView(w, v)
	default:
		return fmt.Errorf("cannot render %T", v)
	}
	return nil
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], min(runewidth.StringWidth(cell), maxCell))
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += pad(h, widths[i]) + "  "
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(w, strings.TrimRight(sepLine, " "))

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += pad(cell, widths[i]) + "  "
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func tableCells(rows []views.TableRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Protein, r.UniProt, r.ProcessURL, r.ProcessName})
	}
	return cells
}

func TableView(w io.Writer, v views.TableView) {
	if v.Empty {
		Warn.Fprintln(w, "No results found.")
		return
	}
	Table(w, v.Columns, tableCells(v.Rows))
	Subtle.Fprintf(w, "\n  %d rows\n", len(v.Rows))
}

// GraphView prints node counts and the edge list. Emphasized nodes are
// highlighted and hidden entity labels are replaced by their ids.
func GraphView(w io.Writer, v views.GraphView) {
	if v.Empty {
		Warn.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%s %d nodes (%d entities, %d categories), %d edges\n",
		Brand.Sprint("graph"),
		v.Stats.TotalNodes, v.Stats.EntityNodes, v.Stats.CategoryNodes, v.Stats.TotalEdges)
	if v.Search != nil {
		Subtle.Fprintf(w, "  search: %s %q\n", v.Search.Mode, v.Search.Term)
	}
	fmt.Fprintln(w)

	labels := make(map[string]string, len(v.Nodes))
	for _, n := range v.Nodes {
		labels[n.ID] = n.Label
	}
	name := func(id string) string {
		text := id
		if v.LabelVisible[id] {
			text = labels[id]
		}
		if v.Emphasis[id] {
			return Accent.Sprint(text)
		}
		return text
	}

	for _, e := range v.Edges {
		fmt.Fprintf(w, "  %s %s %s\n", name(e.Source), Subtle.Sprint("→"), name(e.Target))
	}
}

func BubbleView(w io.Writer, v views.BubbleView) {
	if v.Empty {
		Warn.Fprintln(w, "No results found.")
		return
	}

	width := 0
	for _, c := range v.Counts {
		width = max(width, runewidth.StringWidth(c.Label))
	}

	for _, c := range v.Counts {
		n := 1
		if v.Domain[1] > 0 {
			n = max(1, c.Count*barWidth/v.Domain[1])
		}
		fmt.Fprintf(w, "  %s  %s %d\n", pad(c.Label, width), Info.Sprint(strings.Repeat("█", n)), c.Count)
	}
}

func CategoryView(w io.Writer, v views.CategoryDetailView) {
	if v.Empty {
		Warn.Fprintf(w, "No proteins found for %q.\n", v.Label)
		return
	}

	fmt.Fprintf(w, "%s\n%d proteins:\n", Brand.Sprint(v.Label), v.Total)
	for _, p := range v.Preview {
		fmt.Fprintf(w, "  • %s\n", p)
	}
	if v.More > 0 {
		Subtle.Fprintf(w, "  and %d more\n", v.More)
	}
	fmt.Fprintln(w)
	Table(w, views.TableColumns, tableCells(v.Rows))
}

func HumanView(w io.Writer, v views.HumanView) {
	rows := make([][]string, 0, len(v.Regions))
	for _, r := range v.Regions {
		rows = append(rows, []string{string(r.ID), r.Label, r.Anatomy})
	}
	Table(w, []string{"Organ", "Label", "Anatomy"}, rows)
}

func PanelView(w io.Writer, v views.OrganPanelView) {
	fmt.Fprintln(w, Brand.Sprint(v.Title))
	if v.Empty {
		Warn.Fprintln(w, "No proteins found.")
		return
	}

	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		rows = append(rows, []string{r.Protein, r.UniProt})
	}
	Table(w, []string{"Protein", "UniProt"}, rows)
}

// Error prints err in red.
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", Bad.Sprint("✗"), err)
}
