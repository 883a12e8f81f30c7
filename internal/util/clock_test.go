package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlym/postboard/go/internal/util"
)

func TestStubClock(t *testing.T) {
	clock := util.NewStubClock()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	clock.SetNow(now)

	require.Equal(t, now.UTC(), clock.NowUtc())
	require.Equal(t, now.UTC(), clock.NowUtc())

	later := clock.Advance(time.Minute)
	require.Equal(t, now.UTC().Add(time.Minute), later)
	require.Equal(t, time.Minute, util.Since(clock, now))
}

func TestSteppingStubClock(t *testing.T) {
	clock := util.NewSteppingStubClock(time.Second)
	start := clock.NowUtc()
	require.Equal(t, time.Second, util.Since(clock, start))
	require.Equal(t, 2*time.Second, util.Since(clock, start))
}

func TestRealClockIsUTC(t *testing.T) {
	require.Equal(t, time.UTC, util.NewRealClock().NowUtc().Location())
}
