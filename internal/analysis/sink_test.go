package analysis

import (
	"longeda/domain/study"
)

// recordingSink counts render calls for wiring tests.
type recordingSink struct {
	metricCalls int
	tableCalls  int
	matrixCalls int
	distCalls   int
	tables      []*study.SummaryTable
}

func (s *recordingSink) RenderMetrics(string, []study.Metric) { s.metricCalls++ }

func (s *recordingSink) RenderTable(_ string, tbl *study.SummaryTable) {
	s.tableCalls++
	s.tables = append(s.tables, tbl)
}

func (s *recordingSink) RenderMatrix(string, []string, []string, [][]int) { s.matrixCalls++ }

func (s *recordingSink) RenderDistribution(string, []float64) { s.distCalls++ }
