package analysis

import (
	"longeda/domain/study"
	"longeda/domain/table"
)

// summaryStatNames fixes the statistic ordering used for every
// "{outcome}_{stat}" presentation column.
var summaryStatNames = [...]string{"mean", "std", "min", "max"}

// statColumns builds the flattened column header for a set of outcome
// variables: one column per (outcome, statistic) pair.
func statColumns(outcomes []string) []string {
	columns := make([]string, 0, len(outcomes)*len(summaryStatNames))
	for _, o := range outcomes {
		for _, s := range summaryStatNames {
			columns = append(columns, o+"_"+s)
		}
	}
	return columns
}

// summaryCells flattens a Stats record in summaryStatNames order.
func summaryCells(s study.Stats) []table.Float {
	return []table.Float{s.Mean, s.StdDev, s.Min, s.Max}
}

// buildSummaryTable reshapes grouped aggregates into a presentation
// table: one row per group, columns named "{outcome}_{stat}". The
// statsFor callback supplies the aggregate for each (group, outcome)
// pair.
func buildSummaryTable(groupKey string, groups, outcomes []string, statsFor func(group, outcome string) study.Stats) *study.SummaryTable {
	out := &study.SummaryTable{
		GroupKey: groupKey,
		Columns:  statColumns(outcomes),
		Rows:     make([]study.SummaryRow, 0, len(groups)),
	}
	for _, g := range groups {
		cells := make([]table.Float, 0, len(out.Columns))
		for _, o := range outcomes {
			cells = append(cells, summaryCells(statsFor(g, o))...)
		}
		out.Rows = append(out.Rows, study.SummaryRow{Group: g, Cells: cells})
	}
	return out
}
