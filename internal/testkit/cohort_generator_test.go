package testkit

import (
	"testing"

	"longeda/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Shape(t *testing.T) {
	cfg := DefaultCohortConfig()
	tbl, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	assert.Equal(t, "synthetic_cohort", tbl.Name())
	for _, col := range []string{"subject_id", "visit_month", "nominal_month", "actual_month", "sex", "site", "bmi", "sbp"} {
		assert.True(t, tbl.HasColumn(col), "missing column %s", col)
	}
	assert.Contains(t, tbl.NumericColumns(), "actual_month")
	assert.Contains(t, tbl.NumericColumns(), "bmi")

	// Every subject completes baseline; dropout only removes later rows.
	assert.GreaterOrEqual(t, tbl.Len(), cfg.SubjectCount)
	assert.LessOrEqual(t, tbl.Len(), cfg.SubjectCount*len(cfg.VisitMonths))
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultCohortConfig()
	a, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)
	b, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		for _, col := range a.Schema().Names() {
			assert.Equal(t, a.CellAt(i, col), b.CellAt(i, col), "row %d column %s", i, col)
		}
	}
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultCohortConfig()
	a, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	cfg.Seed = 7
	b, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	if a.Len() == b.Len() {
		same := true
		for i := 0; i < a.Len() && same; i++ {
			same = a.CellAt(i, "actual_month") == b.CellAt(i, "actual_month")
		}
		assert.False(t, same, "different seeds must produce different timings")
	}
}

func TestGenerate_FeedsParticipationAnalysis(t *testing.T) {
	cfg := DefaultCohortConfig()
	tbl, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	summary, err := analysis.NewParticipationAnalyzer(nil).Describe(tbl, "", "")
	require.NoError(t, err)

	assert.Equal(t, cfg.SubjectCount, summary.TotalSubjects)
	assert.Equal(t, len(cfg.VisitMonths), summary.TotalTimePoints)
	// Baseline is mandatory, so its column sums to the full cohort.
	assert.Equal(t, float64(cfg.SubjectCount), summary.SubjectCounts[0])
	for _, c := range summary.VisitCounts {
		assert.GreaterOrEqual(t, c, 1.0)
	}
}

func TestGenerate_FeedsDeviationAnalysis(t *testing.T) {
	cfg := DefaultCohortConfig()
	cfg.TimingJitter = 0.25
	tbl, err := NewCohortGenerator(cfg).Generate()
	require.NoError(t, err)

	summary, err := analysis.NewTimeDeviationAnalyzer(nil).Analyze(tbl, "", "", "")
	require.NoError(t, err)

	require.True(t, summary.Global.StdDev.Valid)
	assert.InDelta(t, 0, summary.Global.Mean.Value, 0.2, "jitter is centered on the nominal schedule")
	assert.Less(t, summary.Global.StdDev.Value, 1.0)
	assert.Len(t, summary.ByNominal, len(cfg.VisitMonths))
}
