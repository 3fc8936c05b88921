package analysis

import (
	"testing"

	"longeda/domain/core"
	"longeda/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitTable(t *testing.T, records [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords("visits", []string{"subject_id", "visit_month"}, records)
	require.NoError(t, err)
	return tbl
}

func TestDescribeParticipation_TwoSubjects(t *testing.T) {
	// A visits at months 1 and 2, B only at month 1.
	tbl := visitTable(t, [][]string{
		{"A", "1"},
		{"A", "2"},
		{"B", "1"},
	})

	sum, err := NewParticipationAnalyzer(nil).Describe(tbl, "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, sum.TotalSubjects)
	assert.Equal(t, 2, sum.TotalTimePoints)
	assert.Equal(t, table.Some(1.5), sum.AvgVisits)
	assert.Equal(t, table.Some(1.0), sum.MinVisits)
	assert.Equal(t, table.Some(2.0), sum.MaxVisits)

	assert.Equal(t, []string{"A", "B"}, sum.Subjects)
	assert.Equal(t, []string{"1", "2"}, sum.TimePoints)
	assert.Equal(t, [][]int{{1, 1}, {1, 0}}, sum.Matrix)

	require.Len(t, sum.SubjectsPerTime, 2)
	assert.Equal(t, 2, sum.SubjectsPerTime[0].Subjects)
	assert.Equal(t, 1, sum.SubjectsPerTime[1].Subjects)
}

func TestDescribeParticipation_MatrixRowSumsEqualVisitCounts(t *testing.T) {
	tbl := visitTable(t, [][]string{
		{"C", "0"}, {"A", "0"}, {"A", "6"}, {"A", "6"}, // duplicate visit rows collapse
		{"B", "6"}, {"C", "12"}, {"A", "12"},
	})

	sum, err := NewParticipationAnalyzer(nil).Describe(tbl, "subject_id", "visit_month")
	require.NoError(t, err)

	require.Len(t, sum.Matrix, sum.TotalSubjects)
	for i, row := range sum.Matrix {
		require.Len(t, row, sum.TotalTimePoints)
		rowSum := 0
		for _, c := range row {
			rowSum += c
		}
		assert.Equal(t, float64(rowSum), sum.VisitCounts[i], "row sum for %s", sum.Subjects[i])
	}
}

func TestDescribeParticipation_SingleVisitCountsOne(t *testing.T) {
	tbl := visitTable(t, [][]string{{"A", "0"}})

	sum, err := NewParticipationAnalyzer(nil).Describe(tbl, "", "")
	require.NoError(t, err)
	assert.Equal(t, table.Some(1.0), sum.MinVisits)
	assert.Equal(t, []float64{1}, sum.VisitCounts)
}

func TestDescribeParticipation_EmptyTable(t *testing.T) {
	tbl := visitTable(t, nil)

	sum, err := NewParticipationAnalyzer(nil).Describe(tbl, "", "")
	require.NoError(t, err)

	assert.Equal(t, 0, sum.TotalSubjects)
	assert.Equal(t, 0, sum.TotalTimePoints)
	assert.False(t, sum.AvgVisits.Valid, "mean of no subjects must be undefined, not zero")
	assert.False(t, sum.MinVisits.Valid)
	assert.False(t, sum.MaxVisits.Valid)
	assert.Empty(t, sum.Matrix)
}

func TestDescribeParticipation_MissingColumn(t *testing.T) {
	tbl := visitTable(t, [][]string{{"A", "1"}})

	_, err := NewParticipationAnalyzer(nil).Describe(tbl, "patient_id", "")
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))

	_, err = NewParticipationAnalyzer(nil).Describe(tbl, "", "week")
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
}

func TestDescribeParticipation_Idempotent(t *testing.T) {
	tbl := visitTable(t, [][]string{
		{"A", "1"}, {"B", "2"}, {"A", "2"}, {"C", "1"},
	})

	a := NewParticipationAnalyzer(nil)
	first, err := a.Describe(tbl, "", "")
	require.NoError(t, err)
	second, err := a.Describe(tbl, "", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDescribeParticipation_RendersThroughSink(t *testing.T) {
	tbl := visitTable(t, [][]string{{"A", "1"}, {"B", "1"}})

	sink := &recordingSink{}
	_, err := NewParticipationAnalyzer(sink).Describe(tbl, "", "")
	require.NoError(t, err)

	assert.Equal(t, 1, sink.metricCalls)
	assert.Equal(t, 1, sink.matrixCalls)
	assert.Equal(t, 1, sink.distCalls)
}
