package host

import (
	"math"
	"time"
)

// RateEstimator keeps a circular window of the most recent
// inter-sample intervals and derives the effective sampling rate as
// the reciprocal of their mean. The estimate is advisory; it never
// affects decoding.
type RateEstimator struct {
	intervals []float64
	cursor    int
	last      time.Time

	// Now overrides the wall clock (tests).
	Now func() time.Time
}

// NewRateEstimator creates an estimator averaging over window
// intervals.
func NewRateEstimator(window int) *RateEstimator {
	if window < 1 {
		window = 1
	}
	r := &RateEstimator{intervals: make([]float64, window)}
	for i := range r.intervals {
		r.intervals[i] = math.NaN()
	}
	return r
}

// Observe records the wall-clock interval since the previous
// observation. The first observation only arms the clock.
func (r *RateEstimator) Observe() {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	if !r.last.IsZero() {
		r.record(now.Sub(r.last).Seconds())
	}
	r.last = now
}

// ObserveDelta records an interval measured at the transmitter
// (timestamp mode), independent of arrival jitter.
func (r *RateEstimator) ObserveDelta(delta time.Duration) {
	r.record(delta.Seconds())
}

func (r *RateEstimator) record(dt float64) {
	r.intervals[r.cursor] = dt
	r.cursor = (r.cursor + 1) % len(r.intervals)
}

// MeanInterval returns the mean of the populated slots in seconds, or
// NaN when nothing has been recorded.
func (r *RateEstimator) MeanInterval() float64 {
	var sum float64
	var n int
	for _, dt := range r.intervals {
		if !math.IsNaN(dt) {
			sum += dt
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Rate returns the estimated sampling rate in Hz, or 0 before any
// interval has been recorded.
func (r *RateEstimator) Rate() float64 {
	mean := r.MeanInterval()
	if math.IsNaN(mean) || mean <= 0 {
		return 0
	}
	return 1 / mean
}
