package analysis

import (
	"sort"

	"longeda/domain/core"
	"longeda/domain/study"
	"longeda/domain/table"
	"longeda/ports"
)

// Default column names for long-format study tables.
const (
	DefaultSubjectKey = "subject_id"
	DefaultTimeKey    = "visit_month"
)

// ParticipationAnalyzer summarizes visit participation patterns:
// visits per subject, subjects per time point, and the binary
// subject-by-time-point participation matrix.
type ParticipationAnalyzer struct {
	sink ports.VisualizationSink
}

// NewParticipationAnalyzer creates an analyzer. A nil sink disables
// rendering; the summary is returned either way.
func NewParticipationAnalyzer(sink ports.VisualizationSink) *ParticipationAnalyzer {
	return &ParticipationAnalyzer{sink: sink}
}

// Describe computes the participation summary for the table. Empty key
// names fall back to DefaultSubjectKey and DefaultTimeKey. Rows where
// the subject or time value is missing are dropped, matching group-by
// semantics for null keys.
func (a *ParticipationAnalyzer) Describe(t *table.Table, subjectKey, timeKey string) (*study.ParticipationSummary, error) {
	if subjectKey == "" {
		subjectKey = DefaultSubjectKey
	}
	if timeKey == "" {
		timeKey = DefaultTimeKey
	}
	if !t.HasColumn(subjectKey) {
		return nil, core.NewSchemaError(subjectKey)
	}
	if !t.HasColumn(timeKey) {
		return nil, core.NewSchemaError(timeKey)
	}

	// One pass over the rows collects the distinct time labels each
	// subject was seen at. Time points keep encounter order, the order
	// a pivot would produce.
	visited := make(map[string]map[string]struct{})
	var timePoints []string
	timeSeen := make(map[string]struct{})

	for i := 0; i < t.Len(); i++ {
		subject := t.TextAt(i, subjectKey)
		tp := t.TextAt(i, timeKey)
		if subject == "" || tp == "" {
			continue
		}
		if _, ok := timeSeen[tp]; !ok {
			timeSeen[tp] = struct{}{}
			timePoints = append(timePoints, tp)
		}
		times, ok := visited[subject]
		if !ok {
			times = make(map[string]struct{})
			visited[subject] = times
		}
		times[tp] = struct{}{}
	}

	subjects := make([]string, 0, len(visited))
	for s := range visited {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	matrix := make([][]int, len(subjects))
	visitCounts := make([]float64, len(subjects))
	for i, s := range subjects {
		row := make([]int, len(timePoints))
		for j, tp := range timePoints {
			if _, ok := visited[s][tp]; ok {
				row[j] = 1
			}
		}
		matrix[i] = row
		visitCounts[i] = float64(len(visited[s]))
	}

	perTime := make([]study.TimePointCount, len(timePoints))
	subjectCounts := make([]float64, len(timePoints))
	for j, tp := range timePoints {
		n := 0
		for _, s := range subjects {
			if _, ok := visited[s][tp]; ok {
				n++
			}
		}
		perTime[j] = study.TimePointCount{Time: tp, Subjects: n}
		subjectCounts[j] = float64(n)
	}

	visitStats := computeStats(visitCounts)
	summary := &study.ParticipationSummary{
		TotalSubjects:   len(subjects),
		TotalTimePoints: len(timePoints),
		AvgVisits:       visitStats.Mean,
		MinVisits:       visitStats.Min,
		MaxVisits:       visitStats.Max,
		SubjectsPerTime: perTime,
		Subjects:        subjects,
		TimePoints:      timePoints,
		Matrix:          matrix,
		VisitCounts:     visitCounts,
		SubjectCounts:   subjectCounts,
	}

	if a.sink != nil {
		a.sink.RenderMetrics("Participation summary", summary.Metrics())
		a.sink.RenderMatrix("Participation (subjects x time points)", subjects, timePoints, matrix)
		a.sink.RenderDistribution("Visits per subject", visitCounts)
	}

	return summary, nil
}
