package host

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistorySentinelPrefill(t *testing.T) {
	h := NewHistory(4, XAxisIndex, 100, false)
	require.Equal(t, 4, h.Capacity())
	for _, v := range h.Values() {
		require.True(t, math.IsNaN(v))
	}
	require.Equal(t, []float64{0, 1, 2, 3}, h.Positions())
}

func TestHistoryTimePositions(t *testing.T) {
	h := NewHistory(4, XAxisTime, 100, false)
	require.Equal(t, []float64{0, 0.01, 0.02, 0.03}, h.Positions())
	require.Equal(t, 0.03, h.LatestX())
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(4, XAxisIndex, 100, false)
	for v := uint16(1); v <= 5; v++ {
		h.Push(v)
	}
	// After N+1 inserts into capacity N the first sample is gone and
	// the length is unchanged.
	require.Equal(t, 4, h.Capacity())
	require.Equal(t, []float64{2, 3, 4, 5}, h.Values())
}

func TestHistoryPushTimed(t *testing.T) {
	h := NewHistory(3, XAxisTime, 100, true)
	require.Equal(t, float64(0), h.LatestX())

	h.PushTimed(1, 0)
	h.PushTimed(2, 10*time.Millisecond)
	h.PushTimed(3, 20*time.Millisecond)

	require.Equal(t, []float64{1, 2, 3}, h.Values())
	x := h.Positions()
	require.InDelta(t, -0.03, x[0], 1e-9)
	require.InDelta(t, -0.02, x[1], 1e-9)
	require.Equal(t, float64(0), x[2])
}

func TestHistoryPushTimedFixedAxis(t *testing.T) {
	// Timestamps on an index axis: positions are precomputed and the
	// deltas must not disturb them.
	h := NewHistory(4, XAxisIndex, 100, true)
	h.PushTimed(1, 10*time.Millisecond)
	h.PushTimed(2, 10*time.Millisecond)
	h.PushTimed(3, 10*time.Millisecond)

	require.Equal(t, []float64{0, 1, 2, 3}, h.Positions())
	require.Equal(t, float64(3), h.LatestX())
	require.Equal(t, []float64{1, 2, 3}, h.Values()[1:])
}

func TestHistoryPushTimedEviction(t *testing.T) {
	h := NewHistory(2, XAxisTime, 100, true)
	for v := uint16(1); v <= 3; v++ {
		h.PushTimed(v, 10*time.Millisecond)
	}
	require.Equal(t, []float64{2, 3}, h.Values())
	x := h.Positions()
	require.InDelta(t, -0.01, x[0], 1e-9)
	require.Equal(t, float64(0), x[1])
}
