// Package filestore reads health-sample records from a date-partitioned
// file tree laid out as YYYY/MM/DD/<metric>.json.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tidwall/gjson"

	"healthlens/domain/core"
	"healthlens/domain/metric"
)

// discoverySampleDays caps how many evenly spaced days DiscoverMetrics
// inspects for large ranges.
const discoverySampleDays = 10

// Skips counts data silently excluded during loading, for observability.
// Exclusion is by design (fail-soft loading); the counters make the
// suppression visible without turning it into errors.
type Skips struct {
	Days    int64 `json:"days"`
	Samples int64 `json:"samples"`
}

// Store is a read-only MetricSource over a record tree root.
type Store struct {
	root       string
	classifier metric.Classifier

	skippedDays    atomic.Int64
	skippedSamples atomic.Int64
}

// New creates a Store rooted at dir using the default metric classification.
func New(dir string) *Store {
	return NewWithClassifier(dir, metric.DefaultClassifier())
}

// NewWithClassifier creates a Store with a custom metric classification.
func NewWithClassifier(dir string, c metric.Classifier) *Store {
	return &Store{root: dir, classifier: c}
}

// Root returns the record tree root directory.
func (s *Store) Root() string {
	return s.root
}

// Skips returns the cumulative skip counters for this store.
func (s *Store) Skips() Skips {
	return Skips{Days: s.skippedDays.Load(), Samples: s.skippedSamples.Load()}
}

func (s *Store) dayDir(d core.Date) string {
	return filepath.Join(s.root,
		fmt.Sprintf("%04d", d.Year),
		fmt.Sprintf("%02d", int(d.Month)),
		fmt.Sprintf("%02d", d.Day))
}

// LoadMetric reads one metric's records for each day in the range. A day is
// included only when its file exists, parses as a JSON object, and carries a
// list-typed samples field; anything else skips the day silently. Records
// are returned date ascending.
func (s *Store) LoadMetric(name string, r core.DateRange) []metric.DayRecord {
	var out []metric.DayRecord
	for _, d := range r.Days() {
		path := filepath.Join(s.dayDir(d), name+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				s.skippedDays.Add(1)
			}
			continue
		}
		if !gjson.ValidBytes(raw) {
			s.skippedDays.Add(1)
			continue
		}
		doc := gjson.ParseBytes(raw)
		if !doc.IsObject() {
			s.skippedDays.Add(1)
			continue
		}
		samples := doc.Get("samples")
		if !samples.IsArray() {
			s.skippedDays.Add(1)
			continue
		}
		rec := metric.DayRecord{
			Date:     d,
			Timezone: doc.Get("timezone").String(),
		}
		samples.ForEach(func(_, item gjson.Result) bool {
			rec.Samples = append(rec.Samples, s.parseSample(item))
			return true
		})
		out = append(out, rec)
	}
	return out
}

// parseSample maps one loosely-typed sample object to the explicit Sample
// structure. Numeric values land in Number; string values land in Tag and,
// when they convert, in Number as well.
func (s *Store) parseSample(item gjson.Result) metric.Sample {
	sample := metric.Sample{
		Start:  item.Get("start").String(),
		End:    item.Get("end").String(),
		Unit:   item.Get("unit").String(),
		Source: item.Get("source").String(),
		Device: item.Get("device").String(),
	}
	value := item.Get("value")
	switch value.Type {
	case gjson.Number:
		n := value.Float()
		sample.Number = &n
	case gjson.String:
		sample.Tag = value.String()
		if n, err := strconv.ParseFloat(strings.TrimSpace(value.String()), 64); err == nil {
			sample.Number = &n
		}
	default:
		s.skippedSamples.Add(1)
	}
	return sample
}

// AggregateSum sums each day's sample values after device deduplication.
// A day with zero convertible values still yields 0.0.
func (s *Store) AggregateSum(name string, r core.DateRange) *metric.DailySeries {
	series := metric.NewDailySeries()
	for _, rec := range s.LoadMetric(name, r) {
		total := 0.0
		for _, sample := range metric.DedupSamples(rec.Samples) {
			if sample.Number != nil {
				total += *sample.Number
			}
		}
		series.Append(rec.Date, total)
	}
	return series
}

// AggregateMean averages each day's sample values, no deduplication. Days
// with no convertible value are omitted from the series.
func (s *Store) AggregateMean(name string, r core.DateRange) *metric.DailySeries {
	series := metric.NewDailySeries()
	for _, rec := range s.LoadMetric(name, r) {
		sum, count := 0.0, 0
		for _, sample := range rec.Samples {
			if sample.Number != nil {
				sum += *sample.Number
				count++
			}
		}
		if count > 0 {
			series.Append(rec.Date, sum/float64(count))
		}
	}
	return series
}

// AggregateMetric dispatches on the metric's classification: additive
// metrics sum with dedup, everything else takes the daily mean.
func (s *Store) AggregateMetric(name string, r core.DateRange) *metric.DailySeries {
	switch s.classifier.Classify(name) {
	case metric.ClassAdditive:
		return s.AggregateSum(name, r)
	default:
		return s.AggregateMean(name, r)
	}
}

// DiscoverMetrics finds metric names present in the range by sampling up to
// discoverySampleDays evenly spaced days. Workout record files are not
// daily metrics and are excluded.
func (s *Store) DiscoverMetrics(r core.DateRange) []string {
	total := r.Len()
	var sampleDates []core.Date
	if total <= discoverySampleDays {
		sampleDates = r.Days()
	} else {
		step := total / discoverySampleDays
		for i := 0; i < discoverySampleDays; i++ {
			sampleDates = append(sampleDates, r.From.AddDays(i*step))
		}
		sampleDates = append(sampleDates, r.To)
	}

	found := make(map[string]struct{})
	for _, d := range sampleDates {
		entries, err := os.ReadDir(s.dayDir(d))
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "workout-") {
				continue
			}
			found[strings.TrimSuffix(name, ".json")] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LatestDate scans the YYYY/MM/DD tree for the most recent day directory.
func (s *Store) LatestDate() (core.Date, bool) {
	var latest core.Date
	ok := false
	for _, yearName := range sortedDirNames(s.root, 4) {
		yearPath := filepath.Join(s.root, yearName)
		for _, monthName := range sortedDirNames(yearPath, 2) {
			monthPath := filepath.Join(yearPath, monthName)
			for _, dayName := range sortedDirNames(monthPath, 2) {
				d, err := core.ParseDate(yearName + "-" + monthName + "-" + dayName)
				if err != nil {
					continue
				}
				if !ok || d.After(latest) {
					latest = d
					ok = true
				}
			}
		}
	}
	return latest, ok
}

// sortedDirNames lists numeric subdirectory names of exactly width digits.
func sortedDirNames(path string, width int) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || len(name) != width {
			continue
		}
		if _, err := strconv.Atoi(name); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
