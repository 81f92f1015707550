package app

import (
	"fmt"

	"healthlens/domain/core"
	"healthlens/domain/stats"
	"healthlens/internal/errors"
)

// MetricResult is the single-metric deep dive: the full statistics bundle
// for one aggregated series. LongestStreak is present only when a streak
// threshold was requested.
type MetricResult struct {
	Period        Period            `json:"period"`
	Metric        string            `json:"metric"`
	Stats         stats.MetricStats `json:"stats"`
	LongestStreak *int              `json:"longest_streak,omitempty"`
}

// Metric computes the full statistics bundle for one metric. A positive
// streakThreshold also reports the longest run of days at or above it.
func (a *Analyzer) Metric(r core.DateRange, name string, streakThreshold float64) (MetricResult, error) {
	daily := a.source.AggregateMetric(name, r)
	if daily.Len() == 0 {
		return MetricResult{}, errors.NotFound(fmt.Sprintf("metric '%s'", name))
	}

	result := MetricResult{
		Period: newPeriod(r),
		Metric: name,
		Stats:  stats.BuildMetricStats(daily, a.tuning.TrendSlopeRatio),
	}
	if streakThreshold > 0 {
		streak := stats.LongestStreak(daily, streakThreshold)
		result.LongestStreak = &streak
	}
	return result, nil
}
