package metric

import (
	"time"

	"healthlens/domain/core"
)

// Well-known metric file stems.
const (
	StepCount          = "step-count"
	ActiveEnergyBurned = "active-energy-burned"
	BasalEnergyBurned  = "basal-energy-burned"
	DistanceWalkRun    = "distance-walking-running"
	FlightsClimbed     = "flights-climbed"
	ExerciseTime       = "apple-exercise-time"
	StandTime          = "apple-stand-time"
	RestingHeartRate   = "resting-heart-rate"
	WalkingHeartRate   = "walking-heart-rate-average"
	HRVSDNN            = "heart-rate-variability-sdnn"
	SleepAnalysis      = "sleep-analysis"
)

// Sample is a single recorded measurement. For quantity metrics Number holds
// the parsed value; for sleep-analysis Tag holds the stage label. Start and
// End carry the raw ISO-8601 instants as stored on disk.
type Sample struct {
	Start  string
	End    string
	Number *float64
	Tag    string
	Unit   string
	Source string
	Device string
}

// StartTime parses the sample's start instant.
func (s Sample) StartTime() (time.Time, error) {
	return core.ParseInstant(s.Start)
}

// EndTime parses the sample's end instant.
func (s Sample) EndTime() (time.Time, error) {
	return core.ParseInstant(s.End)
}

// DayRecord is one metric's samples for one calendar date, plus the record's
// timezone name when present. Records are loaded read-only.
type DayRecord struct {
	Date     core.Date
	Samples  []Sample
	Timezone string
}

// Class is a metric's aggregation class.
type Class int

const (
	// ClassAdditive metrics sum their samples per day, after device dedup.
	ClassAdditive Class = iota
	// ClassSingleValue metrics carry about one sample per day; take the mean.
	ClassSingleValue
	// ClassMean metrics average their samples per day, no dedup.
	ClassMean
)

// Classifier partitions metric names into aggregation classes. Metric names
// outside the explicit tables default to ClassMean. The zero value is not
// usable; construct with DefaultClassifier or NewClassifier.
type Classifier struct {
	additive map[string]struct{}
	single   map[string]struct{}
}

// NewClassifier builds a classifier from explicit additive and single-value
// metric name sets. Everything else classifies as ClassMean.
func NewClassifier(additive, single []string) Classifier {
	c := Classifier{
		additive: make(map[string]struct{}, len(additive)),
		single:   make(map[string]struct{}, len(single)),
	}
	for _, m := range additive {
		c.additive[m] = struct{}{}
	}
	for _, m := range single {
		c.single[m] = struct{}{}
	}
	return c
}

// DefaultClassifier returns the stock classification for Apple Health
// metric names.
func DefaultClassifier() Classifier {
	return NewClassifier(
		[]string{
			StepCount,
			ActiveEnergyBurned,
			BasalEnergyBurned,
			DistanceWalkRun,
			FlightsClimbed,
			ExerciseTime,
			StandTime,
		},
		[]string{
			RestingHeartRate,
			WalkingHeartRate,
		},
	)
}

// Classify returns the aggregation class for a metric name.
func (c Classifier) Classify(name string) Class {
	if _, ok := c.additive[name]; ok {
		return ClassAdditive
	}
	if _, ok := c.single[name]; ok {
		return ClassSingleValue
	}
	return ClassMean
}
