package core

import (
	"time"
)

// LocalLayout is the wire format for localized times: ISO-8601 with no
// offset suffix, since the zone is implied by the record.
const LocalLayout = "2006-01-02T15:04:05"

// FallbackOffsets maps common IANA zone names to static UTC offsets in hours.
// Used only when the platform timezone database cannot resolve the zone;
// the static table is DST-unaware, so localized times may be off by an hour
// around transitions. Unlisted zones fall back to UTC.
var FallbackOffsets = map[string]float64{
	"Asia/Shanghai":       8,
	"Asia/Hong_Kong":      8,
	"Asia/Taipei":         8,
	"Asia/Tokyo":          9,
	"Asia/Seoul":          9,
	"Asia/Singapore":      8,
	"Asia/Kolkata":        5.5,
	"Asia/Dubai":          4,
	"Europe/London":       0,
	"Europe/Paris":        1,
	"Europe/Berlin":       1,
	"Europe/Moscow":       3,
	"America/New_York":    -5,
	"America/Chicago":     -6,
	"America/Denver":      -7,
	"America/Los_Angeles": -8,
	"America/Anchorage":   -9,
	"Pacific/Honolulu":    -10,
	"Australia/Sydney":    11,
	"Australia/Melbourne": 11,
	"Pacific/Auckland":    13,
	"UTC":                 0,
}

// ToLocal converts a UTC instant to local time in the named zone. It prefers
// the IANA timezone database (DST-correct); when the zone is unknown to the
// database it falls back to the static offset table.
func ToLocal(t time.Time, tzName string) time.Time {
	if tzName != "" {
		if loc, err := time.LoadLocation(tzName); err == nil {
			return t.In(loc)
		}
	}
	offset := FallbackOffsets[tzName]
	return t.Add(time.Duration(offset * float64(time.Hour)))
}

// LocalString converts a UTC instant string to a localized LocalLayout string.
// Returns the empty string if the instant cannot be parsed.
func LocalString(instant, tzName string) string {
	t, err := ParseInstant(instant)
	if err != nil {
		return ""
	}
	return ToLocal(t, tzName).Format(LocalLayout)
}
