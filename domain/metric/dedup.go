package metric

import (
	"sort"
	"strings"
	"time"
)

// DefaultPrimaryMarker identifies the primary device during deduplication.
// A sample belongs to the primary partition when its device string contains
// the marker.
const DefaultPrimaryMarker = "Watch"

type interval struct {
	start time.Time
	end   time.Time
}

// DedupSamples removes samples from secondary devices whose time window
// overlaps a primary-device sample, so additive metrics recorded by both a
// watch and a companion phone are not double-counted. See DedupSamplesBy.
func DedupSamples(samples []Sample) []Sample {
	return DedupSamplesBy(samples, DefaultPrimaryMarker)
}

// DedupSamplesBy partitions samples into primary (device contains marker) and
// other. With no primary samples the input is returned unchanged. Otherwise
// an other sample is dropped when its half-open interval intersects any
// parseable primary interval; samples whose own instants cannot be parsed are
// kept, since overlap cannot be proven. The result is all primary samples
// followed by the surviving others, and the operation is idempotent.
func DedupSamplesBy(samples []Sample, marker string) []Sample {
	var primary, other []Sample
	for _, s := range samples {
		if marker != "" && strings.Contains(s.Device, marker) {
			primary = append(primary, s)
		} else {
			other = append(other, s)
		}
	}
	if len(primary) == 0 {
		return samples
	}

	intervals := make([]interval, 0, len(primary))
	for _, s := range primary {
		start, err := s.StartTime()
		if err != nil {
			continue
		}
		end, err := s.EndTime()
		if err != nil {
			continue
		}
		intervals = append(intervals, interval{start: start, end: end})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start.Before(intervals[j].start)
	})

	kept := make([]Sample, 0, len(samples))
	kept = append(kept, primary...)
	for _, s := range other {
		start, errS := s.StartTime()
		end, errE := s.EndTime()
		if errS != nil || errE != nil {
			kept = append(kept, s)
			continue
		}
		overlaps := false
		for _, iv := range intervals {
			// Half-open intersection: start < iv.end && end > iv.start.
			if start.Before(iv.end) && end.After(iv.start) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}
	return kept
}
