package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthlens/adapters/filestore"
	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/internal/testkit"
)

func day(d int) core.Date {
	return core.NewDate(2026, time.June, d)
}

func rangeOf(from, to int) core.DateRange {
	return core.DateRange{From: day(from), To: day(to)}
}

func newFixtureAnalyzer(t *testing.T) (*Analyzer, *testkit.FixtureTree, *filestore.Store) {
	t.Helper()
	tree := testkit.NewFixtureTree(t.TempDir())
	store := filestore.New(tree.Root())
	return NewAnalyzer(store), tree, store
}

func TestScanFlagsTrendAlert(t *testing.T) {
	analyzer, tree, _ := newFixtureAnalyzer(t)
	values := make([]float64, 14)
	for i := range values {
		if i < 7 {
			values[i] = 5000
		} else {
			values[i] = 8000
		}
	}
	require.NoError(t, tree.DailyNumbers(day(1), metric.StepCount, values))

	result := analyzer.Scan(rangeOf(1, 14))
	require.Len(t, result.TrendAlerts, 1)
	alert := result.TrendAlerts[0]
	assert.Equal(t, metric.StepCount, alert.Metric)
	assert.Equal(t, "up", alert.Direction)
	assert.Equal(t, 60.0, alert.ChangePct)
	require.NotNil(t, alert.FirstHalfAvg)
	assert.Equal(t, 5000.0, *alert.FirstHalfAvg)
	require.NotNil(t, alert.SecondHalfAvg)
	assert.Equal(t, 8000.0, *alert.SecondHalfAvg)
}

func TestScanStableSeriesHasNoAlerts(t *testing.T) {
	analyzer, tree, _ := newFixtureAnalyzer(t)
	values := make([]float64, 14)
	for i := range values {
		values[i] = 5000
	}
	require.NoError(t, tree.DailyNumbers(day(1), metric.StepCount, values))

	result := analyzer.Scan(rangeOf(1, 14))
	assert.Empty(t, result.TrendAlerts)
	assert.Empty(t, result.Anomalies)
}

func TestScanFlagsAnomalousDay(t *testing.T) {
	analyzer, tree, _ := newFixtureAnalyzer(t)
	values := make([]float64, 21)
	for i := range values {
		values[i] = 5000
	}
	values[20] = 15000
	require.NoError(t, tree.DailyNumbers(day(1), metric.StepCount, values))

	result := analyzer.Scan(rangeOf(1, 21))
	require.Len(t, result.Anomalies, 1)
	anomaly := result.Anomalies[0]
	assert.Equal(t, metric.StepCount, anomaly.Metric)
	assert.Equal(t, "2026-06-21", anomaly.Date)
	require.NotNil(t, anomaly.Value)
	assert.Equal(t, 15000.0, *anomaly.Value)
	assert.Greater(t, anomaly.ZScore, 2.0)
}

func TestScanConsistencyStepCV(t *testing.T) {
	analyzer, tree, _ := newFixtureAnalyzer(t)
	require.NoError(t, tree.DailyNumbers(day(1), metric.StepCount, []float64{
		4000, 6000, 4000, 6000, 4000, 6000, 4000, 6000,
	}))

	result := analyzer.Scan(rangeOf(1, 8))
	require.NotNil(t, result.Consistency.StepCV)
	// Population stdev 1000 over mean 5000.
	assert.Equal(t, 0.2, *result.Consistency.StepCV)
	assert.Nil(t, result.Consistency.BedtimeStdevMin)
	assert.Nil(t, result.Consistency.ExerciseFrequency)
}

func TestScanCorrelatesAcrossMetrics(t *testing.T) {
	analyzer, tree, _ := newFixtureAnalyzer(t)
	steps := make([]float64, 10)
	hrv := make([]float64, 10)
	for i := range steps {
		steps[i] = float64((i + 1) * 1000)
		hrv[i] = float64(40 + i)
	}
	require.NoError(t, tree.DailyNumbers(day(1), metric.StepCount, steps))
	require.NoError(t, tree.DailyNumbers(day(1), metric.HRVSDNN, hrv))

	result := analyzer.Scan(rangeOf(1, 10))
	require.NotEmpty(t, result.Correlations)
	top := result.Correlations[0]
	assert.Equal(t, metric.StepCount, top.MetricA)
	assert.Equal(t, metric.HRVSDNN, top.MetricB)
	assert.Equal(t, 1.0, top.R)
	assert.Equal(t, 0.0, top.P)
}

func TestBedtimeMinutes(t *testing.T) {
	mins, ok := bedtimeMinutes("2026-06-01T23:30:00")
	require.True(t, ok)
	assert.Equal(t, 1410.0, mins)

	// Past midnight: shifted forward a day to stay contiguous.
	mins, ok = bedtimeMinutes("2026-06-02T01:00:00")
	require.True(t, ok)
	assert.Equal(t, 1500.0, mins)

	_, ok = bedtimeMinutes("garbage")
	assert.False(t, ok)
}
