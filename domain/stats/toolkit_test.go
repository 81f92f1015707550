package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlens/domain/core"
	"healthlens/domain/metric"
)

func day(d int) core.Date {
	return core.NewDate(2026, time.June, d)
}

func seriesOf(values ...float64) *metric.DailySeries {
	s := metric.NewDailySeries()
	for i, v := range values {
		s.Append(day(1).AddDays(i), v)
	}
	return s
}

func TestMeanAndMedian(t *testing.T) {
	m, ok := Mean([]float64{1, 2, 3, 4})
	require.True(t, ok)
	assert.Equal(t, 2.5, m)

	_, ok = Mean(nil)
	assert.False(t, ok)

	med, ok := Median([]float64{1, 3, 2})
	require.True(t, ok)
	assert.Equal(t, 2.0, med)

	med, ok = Median([]float64{1, 2, 3, 4})
	require.True(t, ok)
	assert.Equal(t, 2.5, med)
}

func TestStdevIsPopulation(t *testing.T) {
	// Population stdev of {2,4,4,4,5,5,7,9} is exactly 2.
	s, ok := Stdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 2.0, s, 1e-9)

	_, ok = Stdev([]float64{5})
	assert.False(t, ok)
}

func TestCV(t *testing.T) {
	cv, ok := CV([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 2.0/5.0, cv, 1e-9)

	_, ok = CV([]float64{0, 0, 0})
	assert.False(t, ok)
}

func TestComputePercentilesLinearInterpolation(t *testing.T) {
	p := ComputePercentiles([]float64{10, 20, 30, 40, 50})
	require.NotNil(t, p)
	// k = (n-1)*p over sorted values.
	assert.Equal(t, 14.0, p.P10)
	assert.Equal(t, 20.0, p.P25)
	assert.Equal(t, 40.0, p.P75)
	assert.Equal(t, 46.0, p.P90)

	assert.Nil(t, ComputePercentiles(nil))
}

func TestRollingAvg(t *testing.T) {
	out := RollingAvg([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.Nil(t, out[0])
	assert.Nil(t, out[1])
	require.NotNil(t, out[2])
	assert.Equal(t, 2.0, *out[2])
	assert.Equal(t, 4.0, *out[4])
}

func TestLinearRegression(t *testing.T) {
	slope, intercept, ok := LinearRegression([]float64{1, 3, 5, 7})
	require.True(t, ok)
	assert.InDelta(t, 2.0, slope, 1e-9)
	assert.InDelta(t, 1.0, intercept, 1e-9)

	slope, _, ok = LinearRegression([]float64{4, 4, 4, 4})
	require.True(t, ok)
	assert.Equal(t, 0.0, slope)

	_, _, ok = LinearRegression([]float64{1})
	assert.False(t, ok)
}

func TestTrendDirection(t *testing.T) {
	// Projected change 10 over mean 100 with default ratio 0.05: up.
	assert.Equal(t, "up", TrendDirection(1, 10, 100, DefaultTrendSlopeRatio))
	assert.Equal(t, "down", TrendDirection(-1, 10, 100, DefaultTrendSlopeRatio))
	// Projected change 4 over mean 100: flat.
	assert.Equal(t, "flat", TrendDirection(0.4, 10, 100, DefaultTrendSlopeRatio))
	assert.Equal(t, "flat", TrendDirection(5, 10, 0, DefaultTrendSlopeRatio))
}

func TestDayOfWeekAvg(t *testing.T) {
	// 2026-06-01 is a Monday.
	s := seriesOf(10, 20, 30, 40, 50, 60, 70, 90)
	avgs := DayOfWeekAvg(s)
	require.NotNil(t, avgs.Mon)
	// Two Mondays: 10 and 90.
	assert.Equal(t, 50.0, *avgs.Mon)
	require.NotNil(t, avgs.Sun)
	assert.Equal(t, 70.0, *avgs.Sun)
}

func TestDistributionBins(t *testing.T) {
	bins := DistributionBins([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 10}, 5)
	require.Len(t, bins, 5)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	// The max lands in the final right-inclusive bin; every point counted.
	assert.Equal(t, 10, total)
	assert.Equal(t, 0.0, bins[0].From)
	assert.Equal(t, 10.0, bins[4].To)

	degenerate := DistributionBins([]float64{7, 7, 7}, 5)
	require.Len(t, degenerate, 1)
	assert.Equal(t, 3, degenerate[0].Count)

	assert.Nil(t, DistributionBins(nil, 5))
}

func TestLongestStreak(t *testing.T) {
	s := metric.NewDailySeries()
	s.Append(day(1), 10000)
	s.Append(day(2), 12000)
	s.Append(day(3), 9000)
	s.Append(day(5), 11000) // calendar gap breaks the run
	s.Append(day(6), 11000)
	assert.Equal(t, 2, LongestStreak(s, 10000))
	assert.Equal(t, 0, LongestStreak(s, 50000))
}

func TestComparePeriods(t *testing.T) {
	pc := ComparePeriods([]float64{10, 10, 20, 20})
	require.NotNil(t, pc)
	assert.Equal(t, 10.0, *pc.FirstHalfAvg)
	assert.Equal(t, 20.0, *pc.SecondHalfAvg)
	assert.Equal(t, 100.0, pc.ChangePct)

	assert.Nil(t, ComparePeriods([]float64{1, 2, 3}))

	zero := ComparePeriods([]float64{0, 0, 5, 5})
	require.NotNil(t, zero)
	assert.Equal(t, 0.0, zero.ChangePct)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.14, Round(3.14159, 2))
	assert.Equal(t, 3.0, Round(3.14159, 0))
	assert.Equal(t, 3.1416, Round(3.14159, 4))
}
