package app

import (
	"fmt"
	"math"
	"sort"

	"healthlens/domain/core"
	"healthlens/domain/stats"
	"healthlens/internal/errors"
)

// CorrelateResult lists every qualifying correlation against the target
// metric across the requested lags, strongest first.
type CorrelateResult struct {
	Period       Period            `json:"period"`
	Target       string            `json:"target"`
	Lags         []int             `json:"lags"`
	Correlations []PairCorrelation `json:"correlations"`
}

// Correlate correlates every discovered metric against the target at each
// lag. The target must exist in the range and carry at least 7 days of data.
func (a *Analyzer) Correlate(r core.DateRange, target string, lags []int) (CorrelateResult, error) {
	available := a.source.DiscoverMetrics(r)

	found := false
	for _, name := range available {
		if name == target {
			found = true
			break
		}
	}
	if !found {
		return CorrelateResult{}, errors.NotFound(fmt.Sprintf("target metric '%s'", target))
	}

	targetDaily := a.source.AggregateMetric(target, r)
	if targetDaily.Len() < stats.MinCorrelationN {
		return CorrelateResult{}, errors.InvalidInput(fmt.Sprintf(
			"not enough data for '%s' (need >= %d days, got %d)",
			target, stats.MinCorrelationN, targetDaily.Len()))
	}

	correlations := []PairCorrelation{}
	for _, name := range available {
		if name == target {
			continue
		}
		otherDaily := a.source.AggregateMetric(name, r)
		if otherDaily.Len() < stats.MinCorrelationN {
			continue
		}
		for _, lag := range lags {
			x, y := alignAtLag(targetDaily, otherDaily, lag)
			if len(x) < stats.MinCorrelationN {
				continue
			}
			c := stats.Pearson(x, y)
			correlations = append(correlations, PairCorrelation{
				MetricA: target,
				MetricB: name,
				Lag:     lag,
				R:       c.R,
				P:       c.P,
				N:       c.N,
			})
		}
	}

	sort.SliceStable(correlations, func(i, j int) bool {
		return math.Abs(correlations[i].R) > math.Abs(correlations[j].R)
	})

	return CorrelateResult{
		Period:       newPeriod(r),
		Target:       target,
		Lags:         lags,
		Correlations: correlations,
	}, nil
}
