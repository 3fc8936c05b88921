package ports

import (
	"longeda/domain/study"
)

// VisualizationSink receives already-computed presentation tables and
// raw numeric arrays for rendering. Implementations own all chart and
// formatting decisions; the analyzers only hand over data.
type VisualizationSink interface {
	// RenderMetrics displays a metric-name/value table.
	RenderMetrics(title string, metrics []study.Metric)

	// RenderTable displays a grouped statistics table.
	RenderTable(title string, tbl *study.SummaryTable)

	// RenderMatrix displays a binary presence matrix such as the
	// participation heatmap.
	RenderMatrix(title string, rowLabels, colLabels []string, cells [][]int)

	// RenderDistribution displays a numeric distribution for charting.
	RenderDistribution(title string, values []float64)
}
