package metric

import (
	"healthlens/domain/core"
)

// DatedValue pairs a value with the date it was observed.
type DatedValue struct {
	Date  core.Date `json:"date"`
	Value float64   `json:"value"`
}

// DailySeries is an ordered date→value mapping for one metric. Dates are
// unique and strictly ascending; the order is load-bearing for rolling
// windows, trend regression and deterministic serialization. Build once,
// never mutate after construction.
type DailySeries struct {
	dates  []core.Date
	values []float64
	index  map[core.Date]int
}

// NewDailySeries creates an empty series.
func NewDailySeries() *DailySeries {
	return &DailySeries{index: make(map[core.Date]int)}
}

// Append adds a value for a date later than every date already present.
// Out-of-order or duplicate dates are ignored, preserving the ascending
// invariant; builders iterate the calendar in order so this does not occur
// in practice.
func (s *DailySeries) Append(d core.Date, v float64) {
	if len(s.dates) > 0 && !d.After(s.dates[len(s.dates)-1]) {
		return
	}
	s.index[d] = len(s.dates)
	s.dates = append(s.dates, d)
	s.values = append(s.values, v)
}

// Len returns the number of days in the series.
func (s *DailySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dates)
}

// Get returns the value recorded for a date.
func (s *DailySeries) Get(d core.Date) (float64, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[d]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// GetOr returns the value for a date, or def when absent.
func (s *DailySeries) GetOr(d core.Date, def float64) float64 {
	if v, ok := s.Get(d); ok {
		return v
	}
	return def
}

// Dates returns the dates in ascending order.
func (s *DailySeries) Dates() []core.Date {
	out := make([]core.Date, len(s.dates))
	copy(out, s.dates)
	return out
}

// Values returns the values in date order.
func (s *DailySeries) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// At returns the i-th entry in date order.
func (s *DailySeries) At(i int) DatedValue {
	return DatedValue{Date: s.dates[i], Value: s.values[i]}
}

// ValuesBetween returns the values whose dates fall inside the range,
// inclusive, in date order.
func (s *DailySeries) ValuesBetween(r core.DateRange) []float64 {
	var out []float64
	for i, d := range s.dates {
		if !d.Before(r.From) && !d.After(r.To) {
			out = append(out, s.values[i])
		}
	}
	return out
}

// ValuesUpTo returns the values on or before d, in date order.
func (s *DailySeries) ValuesUpTo(d core.Date) []float64 {
	var out []float64
	for i, dt := range s.dates {
		if !dt.After(d) {
			out = append(out, s.values[i])
		}
	}
	return out
}

// ValuesFrom returns the values on or after d, in date order.
func (s *DailySeries) ValuesFrom(d core.Date) []float64 {
	var out []float64
	for i, dt := range s.dates {
		if !dt.Before(d) {
			out = append(out, s.values[i])
		}
	}
	return out
}

// Min returns the entry with the smallest value.
func (s *DailySeries) Min() (DatedValue, bool) {
	if s.Len() == 0 {
		return DatedValue{}, false
	}
	best := 0
	for i := 1; i < len(s.values); i++ {
		if s.values[i] < s.values[best] {
			best = i
		}
	}
	return s.At(best), true
}

// Max returns the entry with the largest value.
func (s *DailySeries) Max() (DatedValue, bool) {
	if s.Len() == 0 {
		return DatedValue{}, false
	}
	best := 0
	for i := 1; i < len(s.values); i++ {
		if s.values[i] > s.values[best] {
			best = i
		}
	}
	return s.At(best), true
}
