package ports

import (
	"context"
	"time"
)

// PipelineMetrics aggregates the recruitment funnel.
type PipelineMetrics struct {
	Pipeline          []StatusCount `json:"pipeline"`
	AvgTimeToHireDays float64       `json:"avg_time_to_hire_days"`
}

// ReportService produces exports and aggregated metrics.
type ReportService interface {
	// ExportApplicationsCSV renders all applications within the optional
	// date range as a CSV document.
	ExportApplicationsCSV(ctx context.Context, from, to time.Time) ([]byte, error)
	PipelineMetrics(ctx context.Context) (*PipelineMetrics, error)
}
