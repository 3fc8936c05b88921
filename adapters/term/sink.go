// Package term renders analyzer output as plain text for terminal
// inspection: metric tables, grouped statistic tables, a participation
// grid, and line charts via asciigraph.
package term

import (
	"fmt"
	"io"
	"strings"

	"longeda/domain/study"
	"longeda/ports"

	"github.com/guptarohit/asciigraph"
)

// Sink writes rendered output to a single writer.
type Sink struct {
	w io.Writer
}

var _ ports.VisualizationSink = (*Sink)(nil)

// NewSink creates a terminal sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// RenderMetrics prints a two-column name/value table.
func (s *Sink) RenderMetrics(title string, metrics []study.Metric) {
	s.heading(title)
	width := 0
	for _, m := range metrics {
		if len(m.Name) > width {
			width = len(m.Name)
		}
	}
	for _, m := range metrics {
		fmt.Fprintf(s.w, "  %-*s  %s\n", width, m.Name, m.Value)
	}
	fmt.Fprintln(s.w)
}

// RenderTable prints a grouped statistics table with aligned columns.
func (s *Sink) RenderTable(title string, tbl *study.SummaryTable) {
	s.heading(title)

	header := append([]string{tbl.GroupKey}, tbl.Columns...)
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	body := make([][]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		row := make([]string, 0, len(header))
		row = append(row, r.Group)
		for _, c := range r.Cells {
			row = append(row, c.String())
		}
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
		body[i] = row
	}

	s.printRow(header, widths)
	for _, row := range body {
		s.printRow(row, widths)
	}
	fmt.Fprintln(s.w)
}

// RenderMatrix prints a presence grid: one line per row label, one
// mark per column. Filled cells render as '#', empty as '.'.
func (s *Sink) RenderMatrix(title string, rowLabels, colLabels []string, cells [][]int) {
	s.heading(title)

	labelWidth := 0
	for _, l := range rowLabels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}
	fmt.Fprintf(s.w, "  %-*s  %s\n", labelWidth, "", strings.Join(colLabels, " "))
	for i, l := range rowLabels {
		marks := make([]string, len(colLabels))
		for j := range colLabels {
			mark := "."
			if i < len(cells) && j < len(cells[i]) && cells[i][j] != 0 {
				mark = "#"
			}
			marks[j] = fmt.Sprintf("%-*s", len(colLabels[j]), mark)
		}
		fmt.Fprintf(s.w, "  %-*s  %s\n", labelWidth, l, strings.Join(marks, " "))
	}
	fmt.Fprintln(s.w)
}

// RenderDistribution plots the values as an ASCII line chart.
func (s *Sink) RenderDistribution(title string, values []float64) {
	s.heading(title)
	if len(values) == 0 {
		fmt.Fprintln(s.w, "  (no data)")
		fmt.Fprintln(s.w)
		return
	}
	graph := asciigraph.Plot(values, asciigraph.Height(8), asciigraph.Offset(2))
	fmt.Fprintln(s.w, graph)
	fmt.Fprintln(s.w)
}

func (s *Sink) heading(title string) {
	fmt.Fprintln(s.w, title)
	fmt.Fprintln(s.w, strings.Repeat("-", len(title)))
}

func (s *Sink) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%-*s", widths[i], c)
	}
	fmt.Fprintf(s.w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " "))
}
