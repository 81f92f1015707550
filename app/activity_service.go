package app

import (
	"sort"

	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/stats"
)

// ActivityDay is one day's activity row. Metrics missing for a day display
// as zero rather than dropping the row.
type ActivityDay struct {
	Date        string  `json:"date"`
	Steps       float64 `json:"steps"`
	ActiveKcal  float64 `json:"active_kcal"`
	ExerciseMin float64 `json:"exercise_min"`
	DistanceKm  float64 `json:"distance_km"`
}

// ActivityAverages holds per-metric daily averages over days with data.
type ActivityAverages struct {
	Steps       *float64 `json:"steps,omitempty"`
	ActiveKcal  *float64 `json:"active_kcal,omitempty"`
	ExerciseMin *float64 `json:"exercise_min,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

// ActivityResult is the activity report: steps, active energy, exercise
// minutes and walking/running distance merged by date union.
type ActivityResult struct {
	Period       Period           `json:"period"`
	Daily        []ActivityDay    `json:"daily"`
	Averages     ActivityAverages `json:"averages"`
	DaysAnalyzed int              `json:"days_analyzed"`
}

// Activity aggregates the four activity series across the range.
func (a *Analyzer) Activity(r core.DateRange) ActivityResult {
	steps := a.source.AggregateMetric(metric.StepCount, r)
	activeKcal := a.source.AggregateMetric(metric.ActiveEnergyBurned, r)
	exerciseMin := a.source.AggregateMetric(metric.ExerciseTime, r)
	distance := a.source.AggregateMetric(metric.DistanceWalkRun, r)

	dateSet := make(map[core.Date]struct{})
	for _, s := range []*metric.DailySeries{steps, activeKcal, exerciseMin, distance} {
		for _, d := range s.Dates() {
			dateSet[d] = struct{}{}
		}
	}
	allDates := make([]core.Date, 0, len(dateSet))
	for d := range dateSet {
		allDates = append(allDates, d)
	}
	sort.Slice(allDates, func(i, j int) bool { return allDates[i].Before(allDates[j]) })

	result := ActivityResult{
		Period: newPeriod(r),
		Daily:  make([]ActivityDay, 0, len(allDates)),
	}
	for _, d := range allDates {
		result.Daily = append(result.Daily, ActivityDay{
			Date:        d.String(),
			Steps:       stats.Round(steps.GetOr(d, 0), 0),
			ActiveKcal:  stats.Round(activeKcal.GetOr(d, 0), 2),
			ExerciseMin: stats.Round(exerciseMin.GetOr(d, 0), 1),
			DistanceKm:  stats.Round(distance.GetOr(d, 0), 2),
		})
	}
	result.DaysAnalyzed = len(result.Daily)

	result.Averages = ActivityAverages{
		Steps:       meanPtr(steps.Values()),
		ActiveKcal:  meanPtr(activeKcal.Values()),
		ExerciseMin: meanPtr(exerciseMin.Values()),
		DistanceKm:  meanPtr(distance.Values()),
	}
	return result
}
