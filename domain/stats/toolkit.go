package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"healthlens/domain/core"
	"healthlens/domain/metric"
)

// Named thresholds for trend classification. Kept as package constants so a
// host application can calibrate without touching the toolkit logic.
const (
	// DefaultTrendSlopeRatio is the relative-slope cutoff for calling a
	// series "up" or "down" instead of "flat".
	DefaultTrendSlopeRatio = 0.05
	// MinCorrelationN is the minimum aligned sample count for Pearson
	// correlation to report anything but a neutral result.
	MinCorrelationN = 7
)

// Mean returns the arithmetic mean. ok is false for an empty input.
func Mean(values []float64) (float64, bool) {
	m, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Stdev returns the population standard deviation (divide by N). ok is false
// for fewer than two values.
func Stdev(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	s, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0, false
	}
	return s, true
}

// CV returns the coefficient of variation (stdev/mean). ok is false when the
// mean is zero or the stdev is undefined.
func CV(values []float64) (float64, bool) {
	m, okM := Mean(values)
	s, okS := Stdev(values)
	if !okM || !okS || m == 0 {
		return 0, false
	}
	return s / m, true
}

// Median returns the median, averaging the two central values for
// even-length inputs. ok is false for an empty input.
func Median(values []float64) (float64, bool) {
	m, err := stats.Median(values)
	if err != nil {
		return 0, false
	}
	return m, true
}

// Percentiles holds the fixed percentile set reported for every series.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// ComputePercentiles returns P10/P25/P75/P90 by linear interpolation between
// order statistics at rank k=(n−1)·p. Returns nil for an empty input.
func ComputePercentiles(values []float64) *Percentiles {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lerp := func(p float64) float64 {
		k := float64(len(sorted)-1) * p
		f := int(k)
		c := f + 1
		if c >= len(sorted) {
			return sorted[f]
		}
		return sorted[f] + (k-float64(f))*(sorted[c]-sorted[f])
	}
	return &Percentiles{
		P10: Round(lerp(0.10), 2),
		P25: Round(lerp(0.25), 2),
		P75: Round(lerp(0.75), 2),
		P90: Round(lerp(0.90), 2),
	}
}

// RollingAvg computes a trailing moving average. Positions before the window
// is full are nil; each defined position is the mean of the window values
// ending at (and including) that position.
func RollingAvg(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if i < window-1 {
			continue
		}
		m, _ := stats.Mean(values[i-window+1 : i+1])
		r := Round(m, 2)
		out[i] = &r
	}
	return out
}

// LinearRegression fits y = slope·x + intercept against the index sequence
// 0..n−1 by closed-form least squares. ok is false for n<2; a constant
// series yields slope exactly 0.
func LinearRegression(values []float64) (slope, intercept float64, ok bool) {
	if len(values) < 2 {
		return 0, 0, false
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, values, nil, false)
	if math.IsNaN(slope) || math.IsNaN(intercept) {
		return 0, 0, false
	}
	return slope, intercept, true
}

// TrendDirection classifies a fitted slope as "up", "down" or "flat" by
// comparing the projected change |slope·n| against the series mean. An
// undefined or zero mean always reads as "flat".
func TrendDirection(slope float64, n int, mean float64, ratio float64) string {
	if mean == 0 || n == 0 {
		return "flat"
	}
	if math.Abs(slope*float64(n))/math.Abs(mean) > ratio {
		if slope > 0 {
			return "up"
		}
		return "down"
	}
	return "flat"
}

// WeekdayAverages reports the per-weekday mean, Monday first. Absent
// weekdays are nil.
type WeekdayAverages struct {
	Mon *float64 `json:"Mon"`
	Tue *float64 `json:"Tue"`
	Wed *float64 `json:"Wed"`
	Thu *float64 `json:"Thu"`
	Fri *float64 `json:"Fri"`
	Sat *float64 `json:"Sat"`
	Sun *float64 `json:"Sun"`
}

// DayOfWeekAvg buckets a series by weekday and averages each bucket.
func DayOfWeekAvg(s *metric.DailySeries) WeekdayAverages {
	buckets := make(map[int][]float64, 7)
	for i := 0; i < s.Len(); i++ {
		dv := s.At(i)
		// Monday-based index: Mon=0 .. Sun=6.
		idx := (int(dv.Date.Weekday()) + 6) % 7
		buckets[idx] = append(buckets[idx], dv.Value)
	}
	avg := func(idx int) *float64 {
		vals := buckets[idx]
		if len(vals) == 0 {
			return nil
		}
		m, _ := stats.Mean(vals)
		r := Round(m, 2)
		return &r
	}
	return WeekdayAverages{
		Mon: avg(0), Tue: avg(1), Wed: avg(2), Thu: avg(3),
		Fri: avg(4), Sat: avg(5), Sun: avg(6),
	}
}

// Bin is one histogram bucket. The final bin is right-inclusive at the
// series maximum.
type Bin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// DistributionBins splits values into nBins equal-width buckets between the
// series min and max. A degenerate series (min==max) yields one bin holding
// every point. Returns nil for an empty input.
func DistributionBins(values []float64, nBins int) []Bin {
	if len(values) == 0 || nBins <= 0 {
		return nil
	}
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)
	if lo == hi {
		return []Bin{{From: Round(lo, 2), To: Round(hi, 2), Count: len(values)}}
	}
	width := (hi - lo) / float64(nBins)
	bins := make([]Bin, 0, nBins)
	for i := 0; i < nBins; i++ {
		from := lo + float64(i)*width
		to := lo + float64(i+1)*width
		count := 0
		for _, v := range values {
			if (v >= from && v < to) || (i == nBins-1 && v == to) {
				count++
			}
		}
		bins = append(bins, Bin{From: Round(from, 2), To: Round(to, 2), Count: count})
	}
	return bins
}

// LongestStreak returns the longest run of calendar-consecutive dates whose
// value is at or above the threshold.
func LongestStreak(s *metric.DailySeries, threshold float64) int {
	best, current := 0, 0
	var prev core.Date
	havePrev := false
	for i := 0; i < s.Len(); i++ {
		dv := s.At(i)
		if dv.Value >= threshold {
			if havePrev && dv.Date.DaysSince(prev) == 1 {
				current++
			} else {
				current = 1
			}
		} else {
			current = 0
		}
		if current > best {
			best = current
		}
		prev = dv.Date
		havePrev = true
	}
	return best
}

// PeriodComparison is a first-half/second-half mean comparison of a series.
type PeriodComparison struct {
	FirstHalfAvg  *float64 `json:"first_half_avg"`
	SecondHalfAvg *float64 `json:"second_half_avg"`
	ChangePct     float64  `json:"change_pct"`
}

// ComparePeriods splits values at the midpoint index and reports the mean
// change of the second half relative to the first, as a percentage. The
// change is 0 when the first-half mean is 0. Returns nil for n<4.
func ComparePeriods(values []float64) *PeriodComparison {
	if len(values) < 4 {
		return nil
	}
	mid := len(values) / 2
	fh, _ := Mean(values[:mid])
	sh, _ := Mean(values[mid:])
	changePct := 0.0
	if fh != 0 {
		changePct = Round((sh-fh)/math.Abs(fh)*100, 1)
	}
	return &PeriodComparison{
		FirstHalfAvg:  RoundPtr(fh, 2),
		SecondHalfAvg: RoundPtr(sh, 2),
		ChangePct:     changePct,
	}
}

// Round rounds to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

// RoundPtr rounds and returns a pointer, for optional JSON fields.
func RoundPtr(v float64, decimals int) *float64 {
	r := Round(v, decimals)
	return &r
}
