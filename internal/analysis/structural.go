package analysis

import (
	"fmt"

	"longeda/domain/core"
	"longeda/domain/study"
	"longeda/domain/table"
	"longeda/ports"
)

// StructuralSummarizer computes stratified descriptive statistics:
// for each structural variable, a table with one row per distinct
// value and one column per (outcome, statistic) pair.
type StructuralSummarizer struct {
	sink ports.VisualizationSink
}

// NewStructuralSummarizer creates a summarizer. A nil sink disables
// rendering.
func NewStructuralSummarizer(sink ports.VisualizationSink) *StructuralSummarizer {
	return &StructuralSummarizer{sink: sink}
}

// Summarize builds one summary table per structural variable, in the
// order given. A nil or empty outcomeVars auto-discovers every numeric
// column except subjectKey and the structural variables themselves.
// All requested columns are validated before any aggregation runs.
func (a *StructuralSummarizer) Summarize(t *table.Table, subjectKey string, structuralVars, outcomeVars []string) (*study.StructuralReport, error) {
	if subjectKey == "" {
		subjectKey = DefaultSubjectKey
	}
	if len(structuralVars) == 0 {
		return nil, core.ErrEmptyColumnSet
	}
	if !t.HasColumn(subjectKey) {
		return nil, core.NewSchemaError(subjectKey)
	}
	for _, v := range structuralVars {
		if !t.HasColumn(v) {
			return nil, core.NewSchemaError(v)
		}
	}

	outcomes, err := a.resolveOutcomes(t, subjectKey, structuralVars, outcomeVars)
	if err != nil {
		return nil, err
	}

	report := &study.StructuralReport{
		Vars:   append([]string(nil), structuralVars...),
		Tables: make(map[string]*study.SummaryTable, len(structuralVars)),
	}

	for _, v := range structuralVars {
		report.Tables[v] = a.summarizeBy(t, v, outcomes)
	}

	if a.sink != nil {
		for _, v := range report.Vars {
			a.sink.RenderTable(fmt.Sprintf("Summary by %s", v), report.Tables[v].Rounded())
		}
	}

	return report, nil
}

// resolveOutcomes validates explicitly requested outcome variables or
// auto-discovers numeric columns. Explicit outcomes must exist and be
// numeric; auto-discovered ones are numeric by construction.
func (a *StructuralSummarizer) resolveOutcomes(t *table.Table, subjectKey string, structuralVars, outcomeVars []string) ([]string, error) {
	if len(outcomeVars) > 0 {
		for _, o := range outcomeVars {
			col, ok := t.Schema().Column(o)
			if !ok {
				return nil, core.NewSchemaError(o)
			}
			if col.Type != table.Numeric {
				return nil, core.NewTypeError(o)
			}
		}
		return outcomeVars, nil
	}

	excluded := map[string]struct{}{subjectKey: {}}
	for _, v := range structuralVars {
		excluded[v] = struct{}{}
	}
	var outcomes []string
	for _, name := range t.NumericColumns() {
		if _, skip := excluded[name]; skip {
			continue
		}
		outcomes = append(outcomes, name)
	}
	return outcomes, nil
}

// summarizeBy aggregates every outcome within the groups of one
// structural variable. Full precision is kept; rounding happens at the
// sink boundary.
func (a *StructuralSummarizer) summarizeBy(t *table.Table, structuralVar string, outcomes []string) *study.SummaryTable {
	groups := t.Groups(structuralVar)

	cells := make(map[string]map[string]study.Stats, len(groups))
	order := make([]string, len(groups))
	for i, g := range groups {
		order[i] = g.Key
		perOutcome := make(map[string]study.Stats, len(outcomes))
		for _, o := range outcomes {
			var values []float64
			for _, row := range g.Rows {
				if v := t.NumberAt(row, o); v.Valid {
					values = append(values, v.Value)
				}
			}
			perOutcome[o] = computeStats(values)
		}
		cells[g.Key] = perOutcome
	}

	return buildSummaryTable(structuralVar, order, outcomes, func(group, outcome string) study.Stats {
		return cells[group][outcome]
	})
}
