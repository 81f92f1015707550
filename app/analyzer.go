// Package app composes the loading, aggregation, statistics and sleep
// layers into the analysis modes. Every mode returns a result object
// shaped for direct JSON serialization.
package app

import (
	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/ports"
)

// Tuning carries the calibration knobs for the analysis modes. The defaults
// match the engine's documented thresholds; hosts may override without
// touching mode logic.
type Tuning struct {
	TrendAlertPct     float64 // half-period change alert threshold (percent)
	TrendSlopeRatio   float64 // relative-slope cutoff for up/down vs flat
	AnomalyZ          float64 // |z-score| cutoff for per-day anomalies
	MinAbsR           float64 // |r| floor for reported scan correlations
	TopCorrelations   int     // scan mode keeps this many correlations
	DefaultPeriodDays int     // range length when no period is requested
}

// DefaultTuning returns the stock thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		TrendAlertPct:     15.0,
		TrendSlopeRatio:   0.05,
		AnomalyZ:          2.0,
		MinAbsR:           0.2,
		TopCorrelations:   10,
		DefaultPeriodDays: DefaultPeriodDays,
	}
}

// Analyzer runs analysis modes against a metric source.
type Analyzer struct {
	source ports.MetricSource
	tuning Tuning
}

// NewAnalyzer creates an analyzer with default tuning.
func NewAnalyzer(source ports.MetricSource) *Analyzer {
	return NewAnalyzerWithTuning(source, DefaultTuning())
}

// NewAnalyzerWithTuning creates an analyzer with explicit tuning.
func NewAnalyzerWithTuning(source ports.MetricSource, tuning Tuning) *Analyzer {
	return &Analyzer{source: source, tuning: tuning}
}

// Period is the analyzed date span as it appears in results.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func newPeriod(r core.DateRange) Period {
	return Period{From: r.From.String(), To: r.To.String()}
}

// alignAtLag pairs a's values with b's values lag days later, keeping only
// dates present in both series. a's date order is preserved.
func alignAtLag(a, b *metric.DailySeries, lag int) (x, y []float64) {
	for i := 0; i < a.Len(); i++ {
		dv := a.At(i)
		if bv, ok := b.Get(dv.Date.AddDays(lag)); ok {
			x = append(x, dv.Value)
			y = append(y, bv)
		}
	}
	return x, y
}
