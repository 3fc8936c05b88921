package study

import (
	"longeda/domain/table"
)

// SummaryTable is a read-only presentation table: one row per group,
// one column per (outcome, statistic) pair named "{outcome}_{stat}".
// It never feeds back into analysis.
type SummaryTable struct {
	GroupKey string       `json:"group_key"`
	Columns  []string     `json:"columns"`
	Rows     []SummaryRow `json:"rows"`
}

// SummaryRow is the statistics for one group value.
type SummaryRow struct {
	Group string        `json:"group"`
	Cells []table.Float `json:"cells"`
}

// Cell looks up a single statistic by group value and column name.
func (t *SummaryTable) Cell(group, column string) (table.Float, bool) {
	ci := -1
	for i, c := range t.Columns {
		if c == column {
			ci = i
			break
		}
	}
	if ci < 0 {
		return table.None(), false
	}
	for _, r := range t.Rows {
		if r.Group == group {
			return r.Cells[ci], true
		}
	}
	return table.None(), false
}

// Rounded returns a presentation copy with every cell rounded to two
// decimal places.
func (t *SummaryTable) Rounded() *SummaryTable {
	out := &SummaryTable{
		GroupKey: t.GroupKey,
		Columns:  append([]string(nil), t.Columns...),
		Rows:     make([]SummaryRow, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cells := make([]table.Float, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = c.Round(2)
		}
		out.Rows[i] = SummaryRow{Group: r.Group, Cells: cells}
	}
	return out
}
