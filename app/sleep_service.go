package app

import (
	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/sleep"
	"healthlens/domain/stats"
)

// NightEntry is one analyzed night with its calendar date.
type NightEntry struct {
	Date string `json:"date"`
	sleep.Night
}

// SleepAverages summarizes nightly results with arithmetic means.
type SleepAverages struct {
	TotalHours   *float64 `json:"total_hrs,omitempty"`
	DeepPct      *float64 `json:"deep_pct,omitempty"`
	CorePct      *float64 `json:"core_pct,omitempty"`
	RemPct       *float64 `json:"rem_pct,omitempty"`
	AwakeMinutes *float64 `json:"awake_min,omitempty"`
}

// SleepResult is the sleep deep-dive report.
type SleepResult struct {
	Period         Period        `json:"period"`
	Nightly        []NightEntry  `json:"nightly"`
	Averages       SleepAverages `json:"averages"`
	NightsAnalyzed int           `json:"nights_analyzed"`
}

// Sleep analyzes every night in the range.
func (a *Analyzer) Sleep(r core.DateRange) SleepResult {
	result := SleepResult{
		Period:  newPeriod(r),
		Nightly: []NightEntry{},
	}

	for _, rec := range a.source.LoadMetric(metric.SleepAnalysis, r) {
		night, ok := sleep.AnalyzeNight(rec.Samples, rec.Timezone)
		if !ok {
			continue
		}
		result.Nightly = append(result.Nightly, NightEntry{Date: rec.Date.String(), Night: night})
	}
	result.NightsAnalyzed = len(result.Nightly)

	if len(result.Nightly) > 0 {
		var hrs, deepPcts, corePcts, remPcts, awakeMins []float64
		for _, n := range result.Nightly {
			hrs = append(hrs, n.TotalHours)
			deepPcts = append(deepPcts, n.DeepPct)
			corePcts = append(corePcts, n.CorePct)
			remPcts = append(remPcts, n.RemPct)
			awakeMins = append(awakeMins, n.AwakeMinutes)
		}
		result.Averages = SleepAverages{
			TotalHours:   meanPtr(hrs),
			DeepPct:      meanPtr(deepPcts),
			CorePct:      meanPtr(corePcts),
			RemPct:       meanPtr(remPcts),
			AwakeMinutes: meanPtr(awakeMins),
		}
	}
	return result
}

func meanPtr(values []float64) *float64 {
	m, ok := stats.Mean(values)
	if !ok {
		return nil
	}
	return stats.RoundPtr(m, 2)
}
