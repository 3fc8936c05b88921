package analysis

import (
	"testing"

	"longeda/domain/core"
	"longeda/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cohortTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords("cohort",
		[]string{"subject_id", "sex", "site", "bmi", "sbp"},
		[][]string{
			{"s1", "M", "site_a", "20", "118"},
			{"s2", "M", "site_b", "22", "124"},
			{"s3", "F", "site_a", "30", "131"},
		})
	require.NoError(t, err)
	return tbl
}

func TestSummarize_BySex(t *testing.T) {
	// M has BMI 20 and 22, F only 30.
	report, err := NewStructuralSummarizer(nil).Summarize(cohortTable(t), "", []string{"sex"}, []string{"bmi"})
	require.NoError(t, err)

	tbl, ok := report.Table("sex")
	require.True(t, ok)
	assert.Equal(t, []string{"bmi_mean", "bmi_std", "bmi_min", "bmi_max"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)

	mean, ok := tbl.Cell("F", "bmi_mean")
	require.True(t, ok)
	assert.Equal(t, table.Some(30.0), mean)
	fmin, _ := tbl.Cell("F", "bmi_min")
	fmax, _ := tbl.Cell("F", "bmi_max")
	assert.Equal(t, table.Some(30.0), fmin)
	assert.Equal(t, table.Some(30.0), fmax)
	fstd, _ := tbl.Cell("F", "bmi_std")
	assert.False(t, fstd.Valid, "std for a single-member group must be undefined")

	mmean, _ := tbl.Cell("M", "bmi_mean")
	assert.Equal(t, table.Some(21.0), mmean)
	mstd, _ := tbl.Cell("M", "bmi_std")
	require.True(t, mstd.Valid)
	assert.InDelta(t, 1.4142, mstd.Value, 1e-4)
	assert.Equal(t, table.Some(1.41), mstd.Round(2))
}

func TestSummarize_AutoDiscoversOutcomes(t *testing.T) {
	report, err := NewStructuralSummarizer(nil).Summarize(cohortTable(t), "subject_id", []string{"sex", "site"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"sex", "site"}, report.Vars)
	tbl, ok := report.Table("site")
	require.True(t, ok)
	// bmi and sbp are the numeric columns left after excluding keys.
	assert.Equal(t, []string{
		"bmi_mean", "bmi_std", "bmi_min", "bmi_max",
		"sbp_mean", "sbp_std", "sbp_min", "sbp_max",
	}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "site_a", tbl.Rows[0].Group)
	assert.Equal(t, "site_b", tbl.Rows[1].Group)
}

func TestSummarize_AllMissingGroupUndefined(t *testing.T) {
	tbl, err := table.FromRecords("t",
		[]string{"subject_id", "sex", "bmi"},
		[][]string{
			{"s1", "M", "21"},
			{"s2", "F", ""},
			{"s3", "F", ""},
		})
	require.NoError(t, err)

	report, err := NewStructuralSummarizer(nil).Summarize(tbl, "", []string{"sex"}, []string{"bmi"})
	require.NoError(t, err)

	st, _ := report.Table("sex")
	for _, col := range st.Columns {
		v, ok := st.Cell("F", col)
		require.True(t, ok)
		assert.False(t, v.Valid, "column %s must be undefined for an all-missing group", col)
	}
}

func TestSummarize_Errors(t *testing.T) {
	tbl := cohortTable(t)
	s := NewStructuralSummarizer(nil)

	_, err := s.Summarize(tbl, "", nil, nil)
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))

	_, err = s.Summarize(tbl, "", []string{"country"}, nil)
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))

	_, err = s.Summarize(tbl, "", []string{"sex"}, []string{"weight"})
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))

	// An explicitly requested categorical outcome is a type error.
	_, err = s.Summarize(tbl, "", []string{"sex"}, []string{"site"})
	require.Error(t, err)
	assert.True(t, core.IsTypeError(err))
}

func TestSummarize_RendersRoundedTables(t *testing.T) {
	sink := &recordingSink{}
	_, err := NewStructuralSummarizer(sink).Summarize(cohortTable(t), "", []string{"sex", "site"}, nil)
	require.NoError(t, err)

	require.Equal(t, 2, sink.tableCalls)
	std, ok := sink.tables[0].Cell("M", "bmi_std")
	require.True(t, ok)
	assert.Equal(t, table.Some(1.41), std, "sink tables are rounded to 2 decimals")
}

func TestSummarize_Idempotent(t *testing.T) {
	tbl := cohortTable(t)
	s := NewStructuralSummarizer(nil)

	first, err := s.Summarize(tbl, "", []string{"sex"}, nil)
	require.NoError(t, err)
	second, err := s.Summarize(tbl, "", []string{"sex"}, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
