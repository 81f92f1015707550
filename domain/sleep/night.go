// Package sleep converts one night's stage-tagged interval samples into
// stage percentages and local bedtime/waketime.
package sleep

import (
	"time"

	"healthlens/domain/core"
	"healthlens/domain/metric"
	"healthlens/domain/stats"
)

// Stage tags carried on sleep-analysis samples. Awake intervals are tracked
// separately and never count toward total sleep.
const (
	StageCore = "asleepCore"
	StageDeep = "asleepDeep"
	StageREM  = "asleepREM"
	TagAwake  = "awake"
)

// Night summarizes one night of sleep. Stage percentages are relative to
// total stage minutes; awake time is excluded from the denominator.
type Night struct {
	TotalHours    float64 `json:"total_hrs"`
	DeepPct       float64 `json:"deep_pct"`
	CorePct       float64 `json:"core_pct"`
	RemPct        float64 `json:"rem_pct"`
	AwakeMinutes  float64 `json:"awake_min"`
	BedtimeLocal  string  `json:"bedtime_local,omitempty"`
	WaketimeLocal string  `json:"waketime_local,omitempty"`
}

// AnalyzeNight reduces a day's sleep-analysis samples to a Night. Samples
// with unparseable instants or non-positive duration are skipped. Returns
// ok=false when no stage sample with positive duration exists; an all-awake
// night has no result. Bedtime is the local conversion of the earliest stage
// start, waketime of the latest stage end; conversion is DST-aware when the
// timezone database resolves tzName, otherwise a static offset table applies.
func AnalyzeNight(samples []metric.Sample, tzName string) (Night, bool) {
	stageMinutes := map[string]float64{StageCore: 0, StageDeep: 0, StageREM: 0}
	awakeMinutes := 0.0
	var earliestStart, latestEnd time.Time
	var earliestRaw, latestRaw string

	for _, s := range samples {
		start, err := s.StartTime()
		if err != nil {
			continue
		}
		end, err := s.EndTime()
		if err != nil {
			continue
		}
		durationMin := end.Sub(start).Minutes()
		if durationMin <= 0 {
			continue
		}

		switch s.Tag {
		case StageCore, StageDeep, StageREM:
			stageMinutes[s.Tag] += durationMin
			if earliestRaw == "" || start.Before(earliestStart) {
				earliestStart = start
				earliestRaw = s.Start
			}
			if latestRaw == "" || end.After(latestEnd) {
				latestEnd = end
				latestRaw = s.End
			}
		case TagAwake:
			awakeMinutes += durationMin
		}
	}

	totalMin := stageMinutes[StageCore] + stageMinutes[StageDeep] + stageMinutes[StageREM]
	if totalMin == 0 {
		return Night{}, false
	}

	if tzName == "" {
		tzName = "UTC"
	}
	return Night{
		TotalHours:    stats.Round(totalMin/60, 2),
		DeepPct:       stats.Round(stageMinutes[StageDeep]/totalMin*100, 1),
		CorePct:       stats.Round(stageMinutes[StageCore]/totalMin*100, 1),
		RemPct:        stats.Round(stageMinutes[StageREM]/totalMin*100, 1),
		AwakeMinutes:  stats.Round(awakeMinutes, 1),
		BedtimeLocal:  core.LocalString(earliestRaw, tzName),
		WaketimeLocal: core.LocalString(latestRaw, tzName),
	}, true
}
