package app

import (
	"math"
	"sort"

	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/sleep"
	"healthlens/domain/stats"
)

// scanMetrics is the fixed metric set scan mode inspects for trends and
// anomalies, in reporting order.
var scanMetrics = []string{
	metric.StepCount,
	metric.RestingHeartRate,
	metric.HRVSDNN,
	metric.ActiveEnergyBurned,
	metric.ExerciseTime,
}

// sleepHoursName labels the derived nightly-sleep series in scan output.
const sleepHoursName = "sleep-hours"

// scanLags are the day offsets scan mode correlates across.
var scanLags = []int{0, 1, 2}

// TrendAlert flags a metric whose second-half average moved past the alert
// threshold relative to the first half.
type TrendAlert struct {
	Metric        string   `json:"metric"`
	Direction     string   `json:"direction"`
	ChangePct     float64  `json:"change_pct"`
	FirstHalfAvg  *float64 `json:"first_half_avg"`
	SecondHalfAvg *float64 `json:"second_half_avg"`
}

// Anomaly flags a single day whose z-score exceeds the anomaly threshold.
type Anomaly struct {
	Metric string   `json:"metric"`
	Date   string   `json:"date"`
	Value  *float64 `json:"value"`
	ZScore float64  `json:"z_score"`
}

// PairCorrelation is one cross-metric correlation at a day lag.
type PairCorrelation struct {
	MetricA string  `json:"metric_a"`
	MetricB string  `json:"metric_b"`
	Lag     int     `json:"lag"`
	R       float64 `json:"r"`
	P       float64 `json:"p"`
	N       int     `json:"n"`
}

// Consistency reports behavioral regularity measures. Fields are omitted
// when the underlying data is missing.
type Consistency struct {
	BedtimeStdevMin   *float64 `json:"bedtime_stdev_min,omitempty"`
	ExerciseFrequency *float64 `json:"exercise_frequency,omitempty"`
	StepCV            *float64 `json:"step_cv,omitempty"`
}

// ScanResult is the overview report: trend alerts, per-day anomalies, top
// cross-metric correlations and consistency measures.
type ScanResult struct {
	Period       Period            `json:"period"`
	TrendAlerts  []TrendAlert      `json:"trend_alerts"`
	Anomalies    []Anomaly         `json:"anomalies"`
	Correlations []PairCorrelation `json:"correlations"`
	Consistency  Consistency       `json:"consistency"`
}

type namedSeries struct {
	name   string
	series *metric.DailySeries
}

// Scan runs the overview mode across the range.
func (a *Analyzer) Scan(r core.DateRange) ScanResult {
	result := ScanResult{
		Period:       newPeriod(r),
		TrendAlerts:  []TrendAlert{},
		Anomalies:    []Anomaly{},
		Correlations: []PairCorrelation{},
	}

	midpoint := r.Midpoint()
	half2Start := midpoint.AddDays(1)

	// Aggregate key metrics; collect series for correlation in a fixed
	// order so top-N truncation is reproducible.
	var collected []namedSeries
	for _, name := range scanMetrics {
		daily := a.source.AggregateMetric(name, r)
		if daily.Len() == 0 {
			continue
		}
		collected = append(collected, namedSeries{name: name, series: daily})

		a.detectTrend(&result, name, daily, midpoint, half2Start)
		a.detectAnomalies(&result, name, daily)
	}

	// Nightly sleep feeds both the correlation set and bedtime consistency.
	var bedtimeMins []float64
	sleepSeries := metric.NewDailySeries()
	for _, rec := range a.source.LoadMetric(metric.SleepAnalysis, r) {
		night, ok := sleep.AnalyzeNight(rec.Samples, rec.Timezone)
		if !ok {
			continue
		}
		sleepSeries.Append(rec.Date, night.TotalHours)
		if night.BedtimeLocal != "" {
			if mins, ok := bedtimeMinutes(night.BedtimeLocal); ok {
				bedtimeMins = append(bedtimeMins, mins)
			}
		}
	}
	if sleepSeries.Len() > 0 {
		collected = append(collected, namedSeries{name: sleepHoursName, series: sleepSeries})
	}

	result.Correlations = a.topCorrelations(collected)
	result.Consistency = a.consistency(r, collected, bedtimeMins)
	return result
}

// detectTrend compares first-half vs second-half averages for one metric.
func (a *Analyzer) detectTrend(result *ScanResult, name string, daily *metric.DailySeries, half1End, half2Start core.Date) {
	h1Avg, ok1 := stats.Mean(daily.ValuesUpTo(half1End))
	h2Avg, ok2 := stats.Mean(daily.ValuesFrom(half2Start))
	if !ok1 || !ok2 || h1Avg == 0 {
		return
	}
	changePct := (h2Avg - h1Avg) / math.Abs(h1Avg) * 100
	if math.Abs(changePct) <= a.tuning.TrendAlertPct {
		return
	}
	direction := "up"
	if changePct < 0 {
		direction = "down"
	}
	result.TrendAlerts = append(result.TrendAlerts, TrendAlert{
		Metric:        name,
		Direction:     direction,
		ChangePct:     stats.Round(changePct, 1),
		FirstHalfAvg:  stats.RoundPtr(h1Avg, 2),
		SecondHalfAvg: stats.RoundPtr(h2Avg, 2),
	})
}

// detectAnomalies flags days whose z-score exceeds the tuning threshold.
func (a *Analyzer) detectAnomalies(result *ScanResult, name string, daily *metric.DailySeries) {
	values := daily.Values()
	m, okM := stats.Mean(values)
	sd, okS := stats.Stdev(values)
	if !okM || !okS || sd <= 0 {
		return
	}
	for i := 0; i < daily.Len(); i++ {
		dv := daily.At(i)
		z := (dv.Value - m) / sd
		if math.Abs(z) > a.tuning.AnomalyZ {
			result.Anomalies = append(result.Anomalies, Anomaly{
				Metric: name,
				Date:   dv.Date.String(),
				Value:  stats.RoundPtr(dv.Value, 2),
				ZScore: stats.Round(z, 2),
			})
		}
	}
}

// topCorrelations computes pairwise Pearson correlations at each scan lag
// over the collected series and keeps the strongest by |r|. The candidate
// set is fully assembled in deterministic order before truncation.
func (a *Analyzer) topCorrelations(collected []namedSeries) []PairCorrelation {
	candidates := []PairCorrelation{}
	for i := 0; i < len(collected); i++ {
		for j := i + 1; j < len(collected); j++ {
			for _, lag := range scanLags {
				x, y := alignAtLag(collected[i].series, collected[j].series, lag)
				if len(x) < stats.MinCorrelationN {
					continue
				}
				c := stats.Pearson(x, y)
				if math.Abs(c.R) > a.tuning.MinAbsR {
					candidates = append(candidates, PairCorrelation{
						MetricA: collected[i].name,
						MetricB: collected[j].name,
						Lag:     lag,
						R:       c.R,
						P:       c.P,
						N:       c.N,
					})
				}
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].R) > math.Abs(candidates[j].R)
	})
	if len(candidates) > a.tuning.TopCorrelations {
		candidates = candidates[:a.tuning.TopCorrelations]
	}
	return candidates
}

// consistency computes bedtime spread, exercise-day frequency and step CV.
func (a *Analyzer) consistency(r core.DateRange, collected []namedSeries, bedtimeMins []float64) Consistency {
	var out Consistency

	if sd, ok := stats.Stdev(bedtimeMins); ok {
		out.BedtimeStdevMin = stats.RoundPtr(sd, 1)
	}

	exercise := a.source.AggregateMetric(metric.ExerciseTime, r)
	if exercise.Len() > 0 {
		withExercise := 0
		for _, v := range exercise.Values() {
			if v > 0 {
				withExercise++
			}
		}
		out.ExerciseFrequency = stats.RoundPtr(float64(withExercise)/float64(r.Len()), 2)
	}

	for _, ns := range collected {
		if ns.name == metric.StepCount {
			if cv, ok := stats.CV(ns.series.Values()); ok {
				out.StepCV = stats.RoundPtr(cv, 3)
			}
		}
	}
	return out
}

// bedtimeMinutes converts a local bedtime string to minutes from midnight.
// Bedtimes before noon belong to the tail of the previous night and shift
// +24h so a night's bedtimes stay numerically contiguous.
func bedtimeMinutes(local string) (float64, bool) {
	t, err := core.ParseInstant(local)
	if err != nil {
		return 0, false
	}
	mins := float64(t.Hour()*60 + t.Minute())
	if mins < 720 {
		mins += 1440
	}
	return mins, true
}
