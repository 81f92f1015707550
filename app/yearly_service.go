package app

import (
	"fmt"

	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/sleep"
	"healthlens/domain/stats"
)

// MonthSummary is one month's averages and totals. Fields are nil when the
// month carries no data for that metric.
type MonthSummary struct {
	Month            string   `json:"month"`
	StepsAvg         *float64 `json:"steps_avg"`
	SleepAvgHrs      *float64 `json:"sleep_avg_hrs"`
	RestingHRAvg     *float64 `json:"resting_hr_avg"`
	HRVAvg           *float64 `json:"hrv_avg"`
	ExerciseTotalMin *float64 `json:"exercise_total_min"`
	ActiveKcalTotal  *float64 `json:"active_kcal_total"`
	DaysWithData     int      `json:"days_with_data"`
}

// BestDay is a single best or worst day for one metric.
type BestDay struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// YearlyBests holds the year's standout days. Resting HR counts lower as
// better, HRV higher.
type YearlyBests struct {
	HighestStepDay  *BestDay `json:"highest_step_day,omitempty"`
	LongestSleep    *BestDay `json:"longest_sleep,omitempty"`
	LowestRestingHR *BestDay `json:"lowest_resting_hr,omitempty"`
	HighestHRV      *BestDay `json:"highest_hrv,omitempty"`
}

// YearlyWorsts holds the year's weakest days.
type YearlyWorsts struct {
	LowestStepDay    *BestDay `json:"lowest_step_day,omitempty"`
	ShortestSleep    *BestDay `json:"shortest_sleep,omitempty"`
	HighestRestingHR *BestDay `json:"highest_resting_hr,omitempty"`
}

// YearlyResult is the twelve-month annual summary.
type YearlyResult struct {
	Year    int            `json:"year"`
	Monthly []MonthSummary `json:"monthly"`
	Bests   YearlyBests    `json:"bests"`
	Worsts  YearlyWorsts   `json:"worsts"`
}

// Yearly summarizes a calendar year month by month with year-wide bests
// and worsts.
func (a *Analyzer) Yearly(year int) YearlyResult {
	r := core.DateRange{
		From: core.NewDate(year, 1, 1),
		To:   core.NewDate(year, 12, 31),
	}

	steps := a.source.AggregateMetric(metric.StepCount, r)
	activeKcal := a.source.AggregateMetric(metric.ActiveEnergyBurned, r)
	exercise := a.source.AggregateMetric(metric.ExerciseTime, r)
	rhr := a.source.AggregateMetric(metric.RestingHeartRate, r)
	hrv := a.source.AggregateMetric(metric.HRVSDNN, r)

	sleepDaily := metric.NewDailySeries()
	for _, rec := range a.source.LoadMetric(metric.SleepAnalysis, r) {
		if night, ok := sleep.AnalyzeNight(rec.Samples, rec.Timezone); ok {
			sleepDaily.Append(rec.Date, night.TotalHours)
		}
	}

	result := YearlyResult{Year: year, Monthly: make([]MonthSummary, 0, 12)}

	for m := 1; m <= 12; m++ {
		mr, _ := core.MonthRange(fmt.Sprintf("%04d-%02d", year, m))

		sVals := steps.ValuesBetween(mr)
		akVals := activeKcal.ValuesBetween(mr)
		exVals := exercise.ValuesBetween(mr)
		rhrVals := rhr.ValuesBetween(mr)
		hrvVals := hrv.ValuesBetween(mr)
		slVals := sleepDaily.ValuesBetween(mr)

		summary := MonthSummary{
			Month:        fmt.Sprintf("%04d-%02d", year, m),
			SleepAvgHrs:  meanPtr(slVals),
			RestingHRAvg: meanPtr(rhrVals),
			HRVAvg:       meanPtr(hrvVals),
			DaysWithData: len(sVals),
		}
		if avg, ok := stats.Mean(sVals); ok {
			summary.StepsAvg = stats.RoundPtr(avg, 0)
		}
		if len(exVals) > 0 {
			summary.ExerciseTotalMin = stats.RoundPtr(sum(exVals), 0)
		}
		if len(akVals) > 0 {
			summary.ActiveKcalTotal = stats.RoundPtr(sum(akVals), 0)
		}
		result.Monthly = append(result.Monthly, summary)
	}

	if best, ok := steps.Max(); ok {
		result.Bests.HighestStepDay = bestDay(best, 0)
	}
	if worst, ok := steps.Min(); ok {
		result.Worsts.LowestStepDay = bestDay(worst, 0)
	}
	if best, ok := sleepDaily.Max(); ok {
		result.Bests.LongestSleep = bestDay(best, 2)
	}
	if worst, ok := sleepDaily.Min(); ok {
		result.Worsts.ShortestSleep = bestDay(worst, 2)
	}
	if best, ok := rhr.Min(); ok {
		result.Bests.LowestRestingHR = bestDay(best, 2)
	}
	if worst, ok := rhr.Max(); ok {
		result.Worsts.HighestRestingHR = bestDay(worst, 2)
	}
	if best, ok := hrv.Max(); ok {
		result.Bests.HighestHRV = bestDay(best, 2)
	}
	return result
}

func bestDay(dv metric.DatedValue, decimals int) *BestDay {
	return &BestDay{Date: dv.Date.String(), Value: stats.Round(dv.Value, decimals)}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
