package stats

import (
	"healthlens/domain/metric"
)

// MetricStats is the full statistics bundle for one daily series. It is a
// pure function of the series, recomputed on demand and shaped for direct
// JSON serialization.
type MetricStats struct {
	N                int               `json:"n"`
	Mean             *float64          `json:"mean"`
	Median           *float64          `json:"median"`
	Stdev            *float64          `json:"stdev"`
	CV               *float64          `json:"cv"`
	Percentiles      *Percentiles      `json:"percentiles"`
	Min              *metric.DatedValue `json:"min"`
	Max              *metric.DatedValue `json:"max"`
	Dates            []string          `json:"dates"`
	Values           []float64         `json:"values"`
	Rolling7d        []*float64        `json:"rolling_7d"`
	Rolling30d       []*float64        `json:"rolling_30d"`
	TrendSlope       *float64          `json:"trend_slope"`
	TrendDirection   string            `json:"trend_direction,omitempty"`
	DayOfWeek        WeekdayAverages   `json:"day_of_week"`
	Distribution     []Bin             `json:"distribution"`
	PeriodComparison *PeriodComparison `json:"period_comparison"`
}

// BuildMetricStats computes every toolkit output for a series. slopeRatio
// is the relative-slope cutoff for trend direction; pass
// DefaultTrendSlopeRatio for the stock calibration.
func BuildMetricStats(s *metric.DailySeries, slopeRatio float64) MetricStats {
	n := s.Len()
	if n == 0 {
		return MetricStats{
			Dates:      []string{},
			Values:     []float64{},
			Rolling7d:  []*float64{},
			Rolling30d: []*float64{},
		}
	}

	values := s.Values()
	out := MetricStats{
		N:                n,
		Percentiles:      ComputePercentiles(values),
		Rolling7d:        RollingAvg(values, 7),
		Rolling30d:       RollingAvg(values, 30),
		DayOfWeek:        DayOfWeekAvg(s),
		Distribution:     DistributionBins(values, 10),
		PeriodComparison: ComparePeriods(values),
	}

	meanVal := 0.0
	if m, ok := Mean(values); ok {
		meanVal = m
		out.Mean = RoundPtr(m, 2)
	}
	if m, ok := Median(values); ok {
		out.Median = RoundPtr(m, 2)
	}
	if sd, ok := Stdev(values); ok {
		out.Stdev = RoundPtr(sd, 2)
	}
	if cv, ok := CV(values); ok {
		out.CV = RoundPtr(cv, 2)
	}
	if dv, ok := s.Min(); ok {
		dv.Value = Round(dv.Value, 2)
		out.Min = &dv
	}
	if dv, ok := s.Max(); ok {
		dv.Value = Round(dv.Value, 2)
		out.Max = &dv
	}

	out.Dates = make([]string, n)
	out.Values = make([]float64, n)
	for i := 0; i < n; i++ {
		dv := s.At(i)
		out.Dates[i] = dv.Date.String()
		out.Values[i] = Round(dv.Value, 2)
	}

	if slope, _, ok := LinearRegression(values); ok {
		out.TrendSlope = RoundPtr(slope, 4)
		out.TrendDirection = TrendDirection(slope, n, meanVal, slopeRatio)
	} else {
		out.TrendDirection = "flat"
	}
	return out
}
