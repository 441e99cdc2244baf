package host

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/DevonLantagne/adc-baremetal/pkg/wire"
)

// Config fixes the session parameters negotiated out-of-band with the
// device. It is immutable once the session starts.
type Config struct {
	// Stream identifies the byte source (port name, file) for
	// diagnostics only.
	Stream string

	// Baud is the link speed, recorded for diagnostics; the byte
	// source is already opened at this speed.
	Baud int

	// Timestamps must match the transmitter's frame layout.
	Timestamps bool

	// Axis selects index or time positions.
	Axis XAxis

	// SampleRate is the assumed rate in Hz used to size the history
	// and derive fixed time positions when timestamps are off.
	SampleRate float64

	// Window is the display duration covered by the history buffer.
	Window time.Duration

	// Resolution is the converter resolution in bits, exposed so
	// consumers can scale samples; the session does not use it.
	Resolution uint8

	// RateWindow is the number of intervals averaged by the rate
	// estimator.
	RateWindow int

	// Present enables the presentation layer. Consumed by front-ends;
	// the session decodes either way.
	Present bool
}

// DefaultConfig returns the session defaults matching the reference
// firmware (100 Hz, 12-bit, one-second window).
func DefaultConfig() Config {
	return Config{
		Baud:       115200,
		SampleRate: 100,
		Window:     time.Second,
		Resolution: 12,
		RateWindow: 50,
		Present:    true,
	}
}

func (c *Config) historyLen() int {
	n := int(c.Window.Seconds() * c.SampleRate)
	if n < 1 {
		n = 1
	}
	return n
}

// Update describes one decoded frame.
type Update struct {
	// Sample is the decoded conversion result.
	Sample uint16
	// X is the position assigned to the sample.
	X float64
	// Rate is the current sampling-rate estimate in Hz (0 until the
	// second sample).
	Rate float64
}

// UpdateHandler is called for every decoded frame.
type UpdateHandler interface {
	HandleUpdate(context.Context, Update)
}

// HandleUpdateFunc is the func form of UpdateHandler.
type HandleUpdateFunc func(context.Context, Update)

// HandleUpdate implements UpdateHandler.
func (f HandleUpdateFunc) HandleUpdate(ctx context.Context, u Update) {
	f(ctx, u)
}

// Session decodes one stream until it closes or the context is
// canceled. The history buffer and rate estimator live and die with
// the session.
type Session struct {
	Reader  io.Reader
	Handler UpdateHandler

	config  Config
	parser  wire.Parser
	history *History
	rate    *RateEstimator
	count   uint64
	lock    sync.RWMutex
}

// NewSession creates a Session over an opened byte source.
func NewSession(r io.Reader, config Config) *Session {
	return &Session{
		Reader:  r,
		config:  config,
		parser:  wire.Parser{Timestamps: config.Timestamps},
		history: NewHistory(config.historyLen(), config.Axis, config.SampleRate, config.Timestamps),
		rate:    NewRateEstimator(config.RateWindow),
	}
}

// Config returns the fixed session parameters.
func (s *Session) Config() Config {
	return s.config
}

// Count returns the number of frames decoded so far.
func (s *Session) Count() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.count
}

// Rate returns the current sampling-rate estimate in Hz.
func (s *Session) Rate() float64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rate.Rate()
}

// Snapshot returns the retained samples and their positions, oldest
// to newest. Unfilled slots are NaN.
func (s *Session) Snapshot() (x, y []float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.history.Positions(), s.history.Values()
}

// Run drains the byte source until end-of-stream, a read error, or
// context cancellation. End-of-stream is the normal session end and
// returns nil; a frame cut off mid-read is discarded, never emitted.
//
// The blocking read lives in its own goroutine so cancellation does
// not wait on the next byte; order is preserved and no byte is
// dropped or duplicated while suspended.
func (s *Session) Run(ctx context.Context) error {
	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.readLoop(subCtx, byteCh, errCh)

	for {
		select {
		case b := <-byteCh:
			if pr := s.parser.Parse(b); pr.Frame != nil {
				s.emit(ctx, pr.Frame)
			}
		case err := <-errCh:
			if err == io.EOF {
				if s.parser.State().InFrame() {
					glog.V(2).Infof("%s: stream closed mid-frame, partial frame discarded", s.config.Stream)
				}
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Session) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := s.Reader.Read(buf)
		if n > 0 {
			select {
			case byteCh <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}

func (s *Session) emit(ctx context.Context, f *wire.Frame) {
	s.lock.Lock()
	if s.config.Timestamps {
		delta := time.Duration(f.Delta) * time.Microsecond
		s.history.PushTimed(f.Sample, delta)
		if s.count > 0 {
			// The first frame has no previous frame to measure from.
			s.rate.ObserveDelta(delta)
		}
	} else {
		s.history.Push(f.Sample)
		s.rate.Observe()
	}
	s.count++
	u := Update{
		Sample: f.Sample,
		X:      s.history.LatestX(),
		Rate:   s.rate.Rate(),
	}
	s.lock.Unlock()

	glog.V(4).Infof("sample=%d x=%g rate=%.2f", u.Sample, u.X, u.Rate)
	if h := s.Handler; h != nil {
		h.HandleUpdate(ctx, u)
	}
}
