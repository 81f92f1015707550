package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component.
// It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date (in t's location).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a 'YYYY-MM-DD' string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as 'YYYY-MM-DD'.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a 'YYYY-MM-DD' string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a 'YYYY-MM-DD' string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeek returns the ISO-8601 week key, e.g. "2026-W07".
func (d Date) ISOWeek() string {
	year, week := d.Time().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	From Date
	To   Date
}

// Days returns every date in the range in ascending order.
func (r DateRange) Days() []Date {
	if r.To.Before(r.From) {
		return nil
	}
	out := make([]Date, 0, r.To.DaysSince(r.From)+1)
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Len returns the number of days in the range.
func (r DateRange) Len() int {
	if r.To.Before(r.From) {
		return 0
	}
	return r.To.DaysSince(r.From) + 1
}

// Midpoint returns the date splitting the range in half. The first half runs
// from From through the midpoint, the second half from the following day.
func (r DateRange) Midpoint() Date {
	return r.From.AddDays(r.To.DaysSince(r.From) / 2)
}

// MonthRange resolves a 'YYYY-MM' string to the full month span.
func MonthRange(ym string) (DateRange, error) {
	parts := strings.SplitN(ym, "-", 2)
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("invalid month %q: want YYYY-MM", ym)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid month %q: %w", ym, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return DateRange{}, fmt.Errorf("invalid month %q: want YYYY-MM", ym)
	}
	first := NewDate(year, time.Month(month), 1)
	last := DateOf(first.Time().AddDate(0, 1, 0).AddDate(0, 0, -1))
	return DateRange{From: first, To: last}, nil
}
