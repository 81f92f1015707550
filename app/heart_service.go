package app

import (
	"sort"

	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/stats"
)

// WeeklyAverage is one ISO week's mean and sample count for a metric.
type WeeklyAverage struct {
	Week string  `json:"week"`
	Avg  float64 `json:"avg"`
	N    int     `json:"n"`
}

// HeartResult is the cardiovascular report: weekly resting HR and HRV plus
// overall averages. Overall fields are omitted when the series is empty.
type HeartResult struct {
	Period          Period          `json:"period"`
	WeeklyRestingHR []WeeklyAverage `json:"weekly_resting_hr"`
	WeeklyHRV       []WeeklyAverage `json:"weekly_hrv"`
	AvgWalkingHR    *float64        `json:"avg_walking_hr,omitempty"`
	AvgRestingHR    *float64        `json:"avg_resting_hr,omitempty"`
	AvgHRV          *float64        `json:"avg_hrv,omitempty"`
}

// Heart groups resting heart rate and HRV into ISO-calendar weeks.
func (a *Analyzer) Heart(r core.DateRange) HeartResult {
	rhr := a.source.AggregateMetric(metric.RestingHeartRate, r)
	hrv := a.source.AggregateMetric(metric.HRVSDNN, r)
	whr := a.source.AggregateMetric(metric.WalkingHeartRate, r)

	result := HeartResult{
		Period:          newPeriod(r),
		WeeklyRestingHR: weeklyAverages(rhr),
		WeeklyHRV:       weeklyAverages(hrv),
	}
	result.AvgWalkingHR = meanPtr(whr.Values())
	result.AvgRestingHR = meanPtr(rhr.Values())
	result.AvgHRV = meanPtr(hrv.Values())
	return result
}

// weeklyAverages buckets a daily series by ISO week and averages each
// bucket, ordered by week label.
func weeklyAverages(daily *metric.DailySeries) []WeeklyAverage {
	weeks := make(map[string][]float64)
	for i := 0; i < daily.Len(); i++ {
		dv := daily.At(i)
		key := dv.Date.ISOWeek()
		weeks[key] = append(weeks[key], dv.Value)
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []WeeklyAverage{}
	for _, k := range keys {
		vals := weeks[k]
		m, _ := stats.Mean(vals)
		out = append(out, WeeklyAverage{Week: k, Avg: stats.Round(m, 2), N: len(vals)})
	}
	return out
}
