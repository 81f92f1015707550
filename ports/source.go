// Package ports defines the boundaries between the analysis services and
// their collaborators.
package ports

import (
	"healthlens/domain/core"
	"healthlens/domain/metric"
)

// MetricSource supplies per-day metric records and daily aggregates from the
// date-partitioned record tree. Implementations are read-only and fail-soft:
// missing or malformed days are simply absent from results.
type MetricSource interface {
	// LoadMetric returns one DayRecord per qualifying day, date ascending.
	LoadMetric(name string, r core.DateRange) []metric.DayRecord

	// AggregateMetric reduces each day to a single value using the
	// aggregation strategy for the metric's classification.
	AggregateMetric(name string, r core.DateRange) *metric.DailySeries

	// DiscoverMetrics lists metric names present in the range, found by
	// sampling a handful of evenly spaced days.
	DiscoverMetrics(r core.DateRange) []string

	// LatestDate reports the most recent date with any data.
	LatestDate() (core.Date, bool)
}
