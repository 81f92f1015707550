package app

import (
	"math"
	"sort"

	"healthlens/domain/core"
	"healthlens/domain/stats"
	"healthlens/internal/errors"
)

// MetricComparison is one metric's side-by-side period summary. DeltaPct is
// nil when the first period's mean is zero.
type MetricComparison struct {
	Name     string   `json:"name"`
	P1Avg    float64  `json:"p1_avg"`
	P2Avg    float64  `json:"p2_avg"`
	Delta    float64  `json:"delta"`
	DeltaPct *float64 `json:"delta_pct"`
	P1Days   int      `json:"p1_days"`
	P2Days   int      `json:"p2_days"`
}

// CompareResult compares two calendar months over their common metrics.
type CompareResult struct {
	P1      string             `json:"p1"`
	P2      string             `json:"p2"`
	Metrics []MetricComparison `json:"metrics"`
}

// Compare builds a side-by-side comparison of two YYYY-MM months across the
// metrics discovered in both.
func (a *Analyzer) Compare(p1, p2 string) (CompareResult, error) {
	r1, err := core.MonthRange(p1)
	if err != nil {
		return CompareResult{}, errors.InvalidInput(err.Error())
	}
	r2, err := core.MonthRange(p2)
	if err != nil {
		return CompareResult{}, errors.InvalidInput(err.Error())
	}

	in1 := make(map[string]struct{})
	for _, name := range a.source.DiscoverMetrics(r1) {
		in1[name] = struct{}{}
	}
	var common []string
	for _, name := range a.source.DiscoverMetrics(r2) {
		if _, ok := in1[name]; ok {
			common = append(common, name)
		}
	}
	sort.Strings(common)

	result := CompareResult{P1: p1, P2: p2, Metrics: []MetricComparison{}}
	for _, name := range common {
		v1 := a.source.AggregateMetric(name, r1).Values()
		v2 := a.source.AggregateMetric(name, r2).Values()
		avg1, ok1 := stats.Mean(v1)
		avg2, ok2 := stats.Mean(v2)
		if !ok1 || !ok2 {
			continue
		}
		delta := avg2 - avg1
		cmp := MetricComparison{
			Name:   name,
			P1Avg:  stats.Round(avg1, 2),
			P2Avg:  stats.Round(avg2, 2),
			Delta:  stats.Round(delta, 2),
			P1Days: len(v1),
			P2Days: len(v2),
		}
		if avg1 != 0 {
			cmp.DeltaPct = stats.RoundPtr(delta/math.Abs(avg1)*100, 1)
		}
		result.Metrics = append(result.Metrics, cmp)
	}
	return result, nil
}
