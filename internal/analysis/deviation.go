package analysis

import (
	"sort"

	"longeda/domain/core"
	"longeda/domain/study"
	"longeda/domain/table"
	"longeda/ports"
)

// Default column names for planned and observed visit timing.
const (
	DefaultNominalKey = "nominal_month"
	DefaultActualKey  = "actual_month"
)

// TimeDeviationAnalyzer summarizes the deviation between planned
// (nominal) and observed (actual) visit timing, globally and per
// nominal time point.
type TimeDeviationAnalyzer struct {
	sink ports.VisualizationSink
}

// NewTimeDeviationAnalyzer creates an analyzer. A nil sink disables
// rendering.
func NewTimeDeviationAnalyzer(sink ports.VisualizationSink) *TimeDeviationAnalyzer {
	return &TimeDeviationAnalyzer{sink: sink}
}

// Analyze computes per-row deviation = actual - nominal and summarizes
// it. Rows with a missing nominal or actual value are excluded from
// every statistic. Summaries keep full precision; the tables handed to
// the sink are rounded to two decimals.
func (a *TimeDeviationAnalyzer) Analyze(t *table.Table, subjectKey, nominalKey, actualKey string) (*study.DeviationSummary, error) {
	if subjectKey == "" {
		subjectKey = DefaultSubjectKey
	}
	if nominalKey == "" {
		nominalKey = DefaultNominalKey
	}
	if actualKey == "" {
		actualKey = DefaultActualKey
	}
	for _, key := range []string{subjectKey, nominalKey, actualKey} {
		if !t.HasColumn(key) {
			return nil, core.NewSchemaError(key)
		}
	}
	for _, key := range []string{nominalKey, actualKey} {
		if col, _ := t.Schema().Column(key); col.Type != table.Numeric {
			return nil, core.NewTypeError(key)
		}
	}

	type nominalGroup struct {
		key    string
		value  table.Float
		values []float64
	}
	var groups []*nominalGroup
	byKey := make(map[string]*nominalGroup)

	var deviations []float64
	for i := 0; i < t.Len(); i++ {
		nominal := t.NumberAt(i, nominalKey)
		actual := t.NumberAt(i, actualKey)
		if !nominal.Valid || !actual.Valid {
			continue
		}
		dev := actual.Value - nominal.Value
		deviations = append(deviations, dev)

		key := t.TextAt(i, nominalKey)
		g, ok := byKey[key]
		if !ok {
			g = &nominalGroup{key: key, value: nominal}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.values = append(g.values, dev)
	}

	// Group ordering: ascending nominal time value.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].value.Value < groups[j].value.Value
	})

	byNominal := make([]study.NominalDeviation, len(groups))
	for i, g := range groups {
		byNominal[i] = study.NominalDeviation{
			Nominal: g.key,
			Value:   g.value,
			Stats:   computeStats(g.values),
		}
	}

	summary := &study.DeviationSummary{
		Global:     computeStats(deviations),
		ByNominal:  byNominal,
		Deviations: deviations,
		Shape:      distributionShape(deviations),
	}

	if a.sink != nil {
		a.sink.RenderMetrics("Time deviation", summary.Metrics())
		a.sink.RenderTable("Deviation by nominal time", DeviationTable(nominalKey, summary))
		a.sink.RenderDistribution("Deviation distribution", deviations)
	}

	return summary, nil
}

// DeviationTable reshapes the per-nominal statistics through the
// shared pivot helper, rounded for display.
func DeviationTable(nominalKey string, s *study.DeviationSummary) *study.SummaryTable {
	if nominalKey == "" {
		nominalKey = DefaultNominalKey
	}
	byGroup := make(map[string]study.Stats, len(s.ByNominal))
	order := make([]string, len(s.ByNominal))
	for i, g := range s.ByNominal {
		byGroup[g.Nominal] = g.Stats
		order[i] = g.Nominal
	}
	tbl := buildSummaryTable(nominalKey, order, []string{"deviation"}, func(group, _ string) study.Stats {
		return byGroup[group]
	})
	return tbl.Rounded()
}
