package host

import (
	"math"
	"time"
)

// XAxis selects how sample positions are derived.
type XAxis int

const (
	// XAxisIndex positions samples by display index.
	XAxisIndex XAxis = iota
	// XAxisTime positions samples in seconds: a fixed sequence of
	// index over the assumed rate, or, with timestamps, measured
	// offsets with the newest sample anchored at zero.
	XAxisTime
)

// History is the fixed-capacity window of the most recent samples.
// Length is constant: slots start as NaN sentinels and the oldest
// entry is evicted exactly when a new one is inserted.
type History struct {
	y    []float64
	x    []float64
	head int // ring cursor, next slot to overwrite (= oldest entry)

	// timed marks per-sample x offsets (timestamp mode with a time
	// axis); otherwise x is positional and never mutated.
	timed bool
}

// NewHistory creates a history of the given capacity.
func NewHistory(capacity int, axis XAxis, sampleRate float64, timestamps bool) *History {
	if capacity < 1 {
		capacity = 1
	}
	h := &History{
		y:     make([]float64, capacity),
		x:     make([]float64, capacity),
		timed: axis == XAxisTime && timestamps,
	}
	for i := range h.y {
		h.y[i] = math.NaN()
	}
	switch {
	case h.timed:
		for i := range h.x {
			h.x[i] = math.NaN()
		}
	case axis == XAxisTime:
		for i := range h.x {
			h.x[i] = float64(i) / sampleRate
		}
	default:
		for i := range h.x {
			h.x[i] = float64(i)
		}
	}
	return h
}

// Capacity returns the fixed buffer length.
func (h *History) Capacity() int {
	return len(h.y)
}

// Push inserts a sample, evicting the oldest. Only the value ring
// moves; positions are fixed.
func (h *History) Push(sample uint16) {
	h.y[h.head] = float64(sample)
	h.head = (h.head + 1) % len(h.y)
}

// PushTimed inserts a sample measured delta after the previous one.
// With per-sample positions every retained offset shifts back by delta
// and the new sample is anchored at zero. On a fixed axis the delta is
// ignored and positions stay put.
func (h *History) PushTimed(sample uint16, delta time.Duration) {
	if !h.timed {
		h.Push(sample)
		return
	}
	d := delta.Seconds()
	for i := range h.x {
		h.x[i] -= d // NaN sentinels stay NaN
	}
	h.y[h.head] = float64(sample)
	h.x[h.head] = 0
	h.head = (h.head + 1) % len(h.y)
}

// LatestX returns the position assigned to the most recent sample.
func (h *History) LatestX() float64 {
	if h.timed {
		return 0
	}
	return h.x[len(h.x)-1]
}

// Values returns the retained samples ordered oldest to newest.
// Slots never written are NaN.
func (h *History) Values() []float64 {
	return h.ordered(h.y)
}

// Positions returns the x position for each slot of Values.
func (h *History) Positions() []float64 {
	if !h.timed {
		return append([]float64(nil), h.x...)
	}
	return h.ordered(h.x)
}

func (h *History) ordered(ring []float64) []float64 {
	out := make([]float64, len(ring))
	n := copy(out, ring[h.head:])
	copy(out[n:], ring[:h.head])
	return out
}
