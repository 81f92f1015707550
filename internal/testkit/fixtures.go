// Package testkit writes synthetic health record trees for tests. Fixtures
// are laid out the same way production data is: YYYY/MM/DD/<metric>.json.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"healthlens/domain/core"
	"healthlens/domain/metric"
)

// FixtureTree builds record files under a root directory.
type FixtureTree struct {
	root string
}

// NewFixtureTree creates a fixture builder rooted at dir.
func NewFixtureTree(dir string) *FixtureTree {
	return &FixtureTree{root: dir}
}

// Root returns the tree's base directory.
func (f *FixtureTree) Root() string {
	return f.root
}

// sampleDoc is the on-disk sample shape. Value is a number for quantity
// metrics and a stage string for sleep-analysis.
type sampleDoc struct {
	Start  string      `json:"start"`
	End    string      `json:"end"`
	Value  interface{} `json:"value"`
	Unit   string      `json:"unit,omitempty"`
	Source string      `json:"source,omitempty"`
	Device string      `json:"device,omitempty"`
}

type dayDocument struct {
	Timezone string      `json:"timezone,omitempty"`
	Samples  []sampleDoc `json:"samples"`
}

// WriteDay writes one metric file for one date.
func (f *FixtureTree) WriteDay(d core.Date, metricName string, tz string, samples []metric.Sample) error {
	dir := filepath.Join(f.root,
		fmt.Sprintf("%04d", d.Year),
		fmt.Sprintf("%02d", int(d.Month)),
		fmt.Sprintf("%02d", d.Day))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create day dir: %w", err)
	}

	doc := dayDocument{Timezone: tz, Samples: make([]sampleDoc, 0, len(samples))}
	for _, s := range samples {
		sd := sampleDoc{Start: s.Start, End: s.End, Unit: s.Unit, Source: s.Source, Device: s.Device}
		if s.Number != nil {
			sd.Value = *s.Number
		} else {
			sd.Value = s.Tag
		}
		doc.Samples = append(doc.Samples, sd)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal day document: %w", err)
	}
	path := filepath.Join(dir, metricName+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write day file: %w", err)
	}
	return nil
}

// WriteRaw writes arbitrary bytes as a metric file, for malformed-input
// tests.
func (f *FixtureTree) WriteRaw(d core.Date, metricName string, data []byte) error {
	dir := filepath.Join(f.root,
		fmt.Sprintf("%04d", d.Year),
		fmt.Sprintf("%02d", int(d.Month)),
		fmt.Sprintf("%02d", d.Day))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create day dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, metricName+".json"), data, 0o644)
}

// NumberSample builds a numeric sample spanning start to end.
func NumberSample(start, end string, value float64, device string) metric.Sample {
	v := value
	return metric.Sample{Start: start, End: end, Number: &v, Device: device}
}

// TagSample builds a categorical sample, as sleep stages are recorded.
func TagSample(start, end, tag string) metric.Sample {
	return metric.Sample{Start: start, End: end, Tag: tag}
}

// DailyNumbers writes a run of consecutive days, one per value, each
// holding a single numeric sample at noon UTC.
func (f *FixtureTree) DailyNumbers(from core.Date, metricName string, values []float64) error {
	for i, v := range values {
		d := from.AddDays(i)
		start := fmt.Sprintf("%sT12:00:00Z", d.String())
		end := fmt.Sprintf("%sT12:05:00Z", d.String())
		sample := NumberSample(start, end, v, "Apple Watch")
		if err := f.WriteDay(d, metricName, "UTC", []metric.Sample{sample}); err != nil {
			return err
		}
	}
	return nil
}
