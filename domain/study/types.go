// Package study holds the result records produced by the analyzers.
// All values are stored at full precision; rounding happens only in the
// presentation helpers handed to the visualization sink.
package study

import (
	"longeda/domain/table"
)

// Stats is the four-statistic descriptive summary used throughout:
// mean, sample standard deviation (n-1 divisor), min, and max. Each
// statistic is undefined when it has no defined value for the input
// (std for n<2, everything for n=0).
type Stats struct {
	N      int         `json:"n"`
	Mean   table.Float `json:"mean"`
	StdDev table.Float `json:"std_dev"`
	Min    table.Float `json:"min"`
	Max    table.Float `json:"max"`
}

// Rounded returns a presentation copy with every statistic rounded to
// two decimal places.
func (s Stats) Rounded() Stats {
	return Stats{
		N:      s.N,
		Mean:   s.Mean.Round(2),
		StdDev: s.StdDev.Round(2),
		Min:    s.Min.Round(2),
		Max:    s.Max.Round(2),
	}
}

// Metric is one name/value pair in a presentation table.
type Metric struct {
	Name  string      `json:"name"`
	Value table.Float `json:"value"`
}

// TimePointCount pairs a time point with its distinct-subject count.
type TimePointCount struct {
	Time     string `json:"time"`
	Subjects int    `json:"subjects"`
}

// ParticipationSummary describes visit participation across a cohort.
type ParticipationSummary struct {
	TotalSubjects   int         `json:"total_subjects"`
	TotalTimePoints int         `json:"total_time_points"`
	AvgVisits       table.Float `json:"avg_visits_per_subject"`
	MinVisits       table.Float `json:"min_visits_per_subject"`
	MaxVisits       table.Float `json:"max_visits_per_subject"`

	SubjectsPerTime []TimePointCount `json:"subjects_per_time_point"`

	// Participation matrix: rows follow Subjects (sorted), columns
	// follow TimePoints (encounter order); a cell is 1 iff at least one
	// observation exists for that subject at that time point.
	Subjects   []string `json:"subjects"`
	TimePoints []string `json:"time_points"`
	Matrix     [][]int  `json:"matrix"`

	// Raw distributions for charting, aligned with Subjects and
	// TimePoints respectively.
	VisitCounts   []float64 `json:"visit_counts"`
	SubjectCounts []float64 `json:"subject_counts"`
}

// Metrics returns the scalar statistics as a presentation table.
func (s *ParticipationSummary) Metrics() []Metric {
	return []Metric{
		{Name: "total_subjects", Value: table.Some(float64(s.TotalSubjects))},
		{Name: "total_time_points", Value: table.Some(float64(s.TotalTimePoints))},
		{Name: "avg_visits_per_subject", Value: s.AvgVisits.Round(2)},
		{Name: "min_visits_per_subject", Value: s.MinVisits},
		{Name: "max_visits_per_subject", Value: s.MaxVisits},
	}
}

// NominalDeviation is the deviation summary for one nominal time point.
type NominalDeviation struct {
	Nominal string      `json:"nominal"`
	Value   table.Float `json:"nominal_value"`
	Stats   Stats       `json:"stats"`
}

// DistributionShape characterizes the shape of the deviation
// distribution when enough observations exist.
type DistributionShape struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	PValue   float64 `json:"p_value"`
}

// DeviationSummary describes actual-minus-nominal visit timing.
type DeviationSummary struct {
	Global Stats `json:"global"`

	// ByNominal is ordered by ascending nominal time value.
	ByNominal []NominalDeviation `json:"by_nominal"`

	// Deviations holds the raw per-row deviation values (rows with a
	// missing side excluded), for charting.
	Deviations []float64 `json:"deviations"`

	Shape *DistributionShape `json:"shape,omitempty"`
}

// Metrics returns the global statistics as a presentation table,
// rounded to two decimals.
func (s *DeviationSummary) Metrics() []Metric {
	g := s.Global.Rounded()
	return []Metric{
		{Name: "n", Value: table.Some(float64(g.N))},
		{Name: "mean_deviation", Value: g.Mean},
		{Name: "std_deviation", Value: g.StdDev},
		{Name: "min_deviation", Value: g.Min},
		{Name: "max_deviation", Value: g.Max},
	}
}

// StructuralReport maps each structural variable to its stratified
// summary table. Vars preserves the caller's ordering, since Go maps
// do not.
type StructuralReport struct {
	Vars   []string                 `json:"vars"`
	Tables map[string]*SummaryTable `json:"tables"`
}

// Table returns the summary table for one structural variable.
func (r *StructuralReport) Table(structuralVar string) (*SummaryTable, bool) {
	t, ok := r.Tables[structuralVar]
	return t, ok
}
