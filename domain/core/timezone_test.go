package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocalUsesTimezoneDatabase(t *testing.T) {
	utc := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	// New York observes DST in July: UTC-4, not the static -5.
	local := ToLocal(utc, "America/New_York")
	assert.Equal(t, 8, local.Hour())
}

func TestToLocalFallbackOffset(t *testing.T) {
	utc := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	local := ToLocal(utc, "Not/AZone")
	assert.Equal(t, 12, local.Hour())

	// Half-hour offsets survive the fallback arithmetic.
	kolkata := utc.Add(time.Duration(5.5 * float64(time.Hour)))
	assert.Equal(t, 17, kolkata.Hour())
	assert.Equal(t, 30, kolkata.Minute())
}

func TestLocalString(t *testing.T) {
	got := LocalString("2026-07-15T12:00:00Z", "UTC")
	require.Equal(t, "2026-07-15T12:00:00", got)

	assert.Equal(t, "", LocalString("garbage", "UTC"))
}
