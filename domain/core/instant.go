package core

import (
	"fmt"
	"strings"
	"time"
)

// instantLayouts are tried in order when parsing sample timestamps. Records
// carry ISO-8601 instants with either a trailing 'Z' or an explicit offset,
// with or without fractional seconds.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// ParseInstant parses an ISO-8601 instant string. Instants without an
// explicit offset are interpreted as UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty instant")
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q", s)
}
