package intake

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStaleBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	now := time.Date(2026, 6, 15, 10, 0, 0, 0, loc)
	day := func(n int) string { return now.AddDate(0, 0, -n).Format(DateLayout) }

	assert.False(t, IsStale(day(364), now, loc), "364 days old is fresh")
	assert.True(t, IsStale(day(365), now, loc), "365 days old is stale")
	assert.True(t, IsStale(day(366), now, loc), "366 days old is stale")
	assert.True(t, IsStale("2025-06-15", now, loc), "exactly one year old is stale")
	assert.False(t, IsStale("2026-06-15", now, loc))
}

func TestStaleCutoffAcrossLeapYear(t *testing.T) {
	// 2024-06-15 minus one calendar year spans Feb 29 (366 days). The 365
	// day bound is later and wins.
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-06-16", StaleCutoff(now, time.UTC))
	assert.False(t, IsStale(now.AddDate(0, 0, -364).Format(DateLayout), now, time.UTC))
	assert.True(t, IsStale(now.AddDate(0, 0, -365).Format(DateLayout), now, time.UTC))
}

func TestStaleCutoffUsesLocalDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	// 17:00 UTC on June 14 is already June 15 in Manila.
	now := time.Date(2026, 6, 14, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-15", StaleCutoff(now, loc))
	assert.Equal(t, "2025-06-14", StaleCutoff(now, time.UTC))
}
