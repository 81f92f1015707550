package filestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestLoadMetricReadsDayRecords(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteDay(day(1), metric.StepCount, "Europe/Berlin", []metric.Sample{
		testkit.NumberSample("2026-06-01T08:00:00Z", "2026-06-01T09:00:00Z", 1200, "Apple Watch"),
		testkit.TagSample("2026-06-01T09:00:00Z", "2026-06-01T09:30:00Z", "strolling"),
	}))

	store := New(tree.Root())
	records := store.LoadMetric(metric.StepCount, rangeOf(1, 3))
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, day(1), rec.Date)
	assert.Equal(t, "Europe/Berlin", rec.Timezone)
	require.Len(t, rec.Samples, 2)
	require.NotNil(t, rec.Samples[0].Number)
	assert.Equal(t, 1200.0, *rec.Samples[0].Number)
	assert.Equal(t, "strolling", rec.Samples[1].Tag)
	assert.Nil(t, rec.Samples[1].Number)
}

func TestLoadMetricSkipsMalformedDays(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteRaw(day(1), metric.StepCount, []byte("{not json")))
	require.NoError(t, tree.WriteRaw(day(2), metric.StepCount, []byte(`[1,2,3]`)))
	require.NoError(t, tree.WriteRaw(day(3), metric.StepCount, []byte(`{"samples":"nope"}`)))
	require.NoError(t, tree.WriteDay(day(4), metric.StepCount, "", []metric.Sample{
		testkit.NumberSample("2026-06-04T08:00:00Z", "2026-06-04T09:00:00Z", 500, "Apple Watch"),
	}))

	store := New(tree.Root())
	records := store.LoadMetric(metric.StepCount, rangeOf(1, 5))
	require.Len(t, records, 1)
	assert.Equal(t, day(4), records[0].Date)
	assert.Equal(t, int64(3), store.Skips().Days)
}

func TestAggregateSumDeduplicatesAndKeepsZeroDays(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteDay(day(1), metric.StepCount, "", []metric.Sample{
		testkit.NumberSample("2026-06-01T08:00:00Z", "2026-06-01T09:00:00Z", 500, "Apple Watch"),
		testkit.NumberSample("2026-06-01T08:15:00Z", "2026-06-01T08:45:00Z", 200, "iPhone"),
		testkit.NumberSample("2026-06-01T10:00:00Z", "2026-06-01T10:30:00Z", 100, "iPhone"),
	}))
	// A day whose samples carry no convertible values still aggregates to 0.
	require.NoError(t, tree.WriteDay(day(2), metric.StepCount, "", []metric.Sample{
		testkit.TagSample("2026-06-02T08:00:00Z", "2026-06-02T09:00:00Z", "unknown"),
	}))

	store := New(tree.Root())
	series := store.AggregateSum(metric.StepCount, rangeOf(1, 2))
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 600.0, series.GetOr(day(1), -1))
	assert.Equal(t, 0.0, series.GetOr(day(2), -1))
}

func TestAggregateMeanOmitsEmptyDays(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteDay(day(1), metric.RestingHeartRate, "", []metric.Sample{
		testkit.NumberSample("2026-06-01T08:00:00Z", "2026-06-01T08:01:00Z", 58, "Apple Watch"),
		testkit.NumberSample("2026-06-01T20:00:00Z", "2026-06-01T20:01:00Z", 62, "Apple Watch"),
	}))
	require.NoError(t, tree.WriteDay(day(2), metric.RestingHeartRate, "", []metric.Sample{
		testkit.TagSample("2026-06-02T08:00:00Z", "2026-06-02T08:01:00Z", "unknown"),
	}))

	store := New(tree.Root())
	series := store.AggregateMean(metric.RestingHeartRate, rangeOf(1, 2))
	require.Equal(t, 1, series.Len())
	assert.Equal(t, 60.0, series.GetOr(day(1), -1))
}

func TestAggregateMetricDispatchesOnClass(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	// Two step samples on one day: additive, so they sum.
	require.NoError(t, tree.WriteDay(day(1), metric.StepCount, "", []metric.Sample{
		testkit.NumberSample("2026-06-01T08:00:00Z", "2026-06-01T09:00:00Z", 300, "Apple Watch"),
		testkit.NumberSample("2026-06-01T10:00:00Z", "2026-06-01T11:00:00Z", 700, "Apple Watch"),
	}))
	// Two heart rate samples: single-value metric, so they average.
	require.NoError(t, tree.WriteDay(day(1), metric.RestingHeartRate, "", []metric.Sample{
		testkit.NumberSample("2026-06-01T08:00:00Z", "2026-06-01T08:01:00Z", 50, "Apple Watch"),
		testkit.NumberSample("2026-06-01T20:00:00Z", "2026-06-01T20:01:00Z", 60, "Apple Watch"),
	}))

	store := New(tree.Root())
	steps := store.AggregateMetric(metric.StepCount, rangeOf(1, 1))
	assert.Equal(t, 1000.0, steps.GetOr(day(1), -1))
	rhr := store.AggregateMetric(metric.RestingHeartRate, rangeOf(1, 1))
	assert.Equal(t, 55.0, rhr.GetOr(day(1), -1))
}

func TestDiscoverMetrics(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteDay(day(1), metric.StepCount, "", nil))
	require.NoError(t, tree.WriteDay(day(1), metric.SleepAnalysis, "", nil))
	require.NoError(t, tree.WriteDay(day(2), metric.RestingHeartRate, "", nil))
	require.NoError(t, tree.WriteDay(day(2), "workout-running", "", nil))

	store := New(tree.Root())
	found := store.DiscoverMetrics(rangeOf(1, 3))
	assert.Equal(t, []string{
		metric.RestingHeartRate,
		metric.SleepAnalysis,
		metric.StepCount,
	}, found)
}

func TestDiscoverMetricsSamplesLargeRanges(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	// Data on the final day only; discovery always probes the range end.
	require.NoError(t, tree.WriteDay(core.NewDate(2026, time.August, 31), metric.StepCount, "", nil))

	store := New(tree.Root())
	r := core.DateRange{From: day(1), To: core.NewDate(2026, time.August, 31)}
	assert.Equal(t, []string{metric.StepCount}, store.DiscoverMetrics(r))
}

func TestLatestDate(t *testing.T) {
	tree := testkit.NewFixtureTree(t.TempDir())
	require.NoError(t, tree.WriteDay(day(3), metric.StepCount, "", nil))
	require.NoError(t, tree.WriteDay(core.NewDate(2025, time.December, 31), metric.StepCount, "", nil))

	store := New(tree.Root())
	latest, ok := store.LatestDate()
	require.True(t, ok)
	assert.Equal(t, day(3), latest)
}

func TestLatestDateEmptyTree(t *testing.T) {
	store := New(t.TempDir())
	_, ok := store.LatestDate()
	assert.False(t, ok)
}
