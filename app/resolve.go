package app

import (
	"strconv"
	"strings"
	"time"

	"healthlens/domain/core"
	"healthlens/internal/errors"
	"healthlens/ports"
)

// DefaultPeriodDays is the fallback window when no range is given.
const DefaultPeriodDays = 30

// ParsePeriod parses a period string like "30d" or "90d" into a day count.
// Anything unparseable falls back to the default window.
func ParsePeriod(s string) int {
	return ParsePeriodOr(s, DefaultPeriodDays)
}

// ParsePeriodOr is ParsePeriod with an explicit fallback day count.
func ParsePeriodOr(s string, fallbackDays int) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "d") {
		if n, err := strconv.Atoi(strings.TrimSuffix(s, "d")); err == nil {
			return n
		}
	}
	return fallbackDays
}

// RangeRequest carries the raw date-selection inputs from a caller.
type RangeRequest struct {
	From   string // YYYY-MM-DD, optional
	To     string // YYYY-MM-DD, optional
	Period string // e.g. "30d", used when From is absent
}

// ResolveRange turns a RangeRequest into a concrete date range. When no
// explicit start is given the window ends at the latest date with data
// (today if the store is empty) and spans the period.
func ResolveRange(source ports.MetricSource, req RangeRequest) (core.DateRange, error) {
	return resolveRange(source, req, DefaultPeriodDays)
}

// ResolveRange resolves a request against the analyzer's source, using the
// tuned default window when no period is given.
func (a *Analyzer) ResolveRange(req RangeRequest) (core.DateRange, error) {
	fallback := a.tuning.DefaultPeriodDays
	if fallback <= 0 {
		fallback = DefaultPeriodDays
	}
	return resolveRange(a.source, req, fallback)
}

func resolveRange(source ports.MetricSource, req RangeRequest, fallbackDays int) (core.DateRange, error) {
	if req.From != "" && req.To != "" {
		from, err := core.ParseDate(req.From)
		if err != nil {
			return core.DateRange{}, errors.InvalidInput(err.Error())
		}
		to, err := core.ParseDate(req.To)
		if err != nil {
			return core.DateRange{}, errors.InvalidInput(err.Error())
		}
		return core.DateRange{From: from, To: to}, nil
	}

	if req.From != "" {
		from, err := core.ParseDate(req.From)
		if err != nil {
			return core.DateRange{}, errors.InvalidInput(err.Error())
		}
		return core.DateRange{From: from, To: core.DateOf(time.Now())}, nil
	}

	to, ok := source.LatestDate()
	if !ok {
		to = core.DateOf(time.Now())
	}
	if req.To != "" {
		parsed, err := core.ParseDate(req.To)
		if err != nil {
			return core.DateRange{}, errors.InvalidInput(err.Error())
		}
		to = parsed
	}

	days := ParsePeriodOr(req.Period, fallbackDays)
	return core.DateRange{From: to.AddDays(-(days - 1)), To: to}, nil
}
