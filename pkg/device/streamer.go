// Package device runs the device-side superloop: timed one-shot
// conversions framed onto the outgoing stream.
package device

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/DevonLantagne/adc-baremetal/pkg/adc"
	"github.com/DevonLantagne/adc-baremetal/pkg/wire"
)

// DefaultInterval is the inter-sample delay when none is set (100 Hz).
const DefaultInterval = 10 * time.Millisecond

// Streamer initializes the converter once, then samples and transmits
// one frame per tick. The fixed tick enforces the converter's minimum
// conversion period.
type Streamer struct {
	ADC     *adc.Driver
	Channel uint8
	Out     io.Writer

	// Interval is the inter-sample delay. Zero means DefaultInterval.
	Interval time.Duration

	// Timestamps adds the microsecond delta field to each frame. Must
	// match the host's expectation.
	Timestamps bool

	// TxPin is a diagnostic output held high while a frame is being
	// written (optional).
	TxPin adc.Pin

	// Now overrides the timestamp clock (tests).
	Now func() time.Time

	lastTx time.Time
}

// New creates a Streamer with the default interval.
func New(drv *adc.Driver, out io.Writer) *Streamer {
	return &Streamer{
		ADC:      drv,
		Channel:  drv.Config().Channel,
		Out:      out,
		Interval: DefaultInterval,
		TxPin:    adc.NopPin,
	}
}

// Run implements framework.Runnable. It performs the one-time
// converter initialization, then loops until the context is canceled
// or the stream write fails.
func (s *Streamer) Run(ctx context.Context) error {
	s.ADC.Init()
	glog.V(2).Infof("converter ready, streaming channel %d", s.Channel)

	interval := s.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.emit(); err != nil {
				return err
			}
		}
	}
}

func (s *Streamer) emit() error {
	frame := wire.Frame{Sample: s.ADC.Sample(s.Channel)}
	if s.Timestamps {
		now := s.now()
		if !s.lastTx.IsZero() {
			frame.Delta = uint32(now.Sub(s.lastTx) / time.Microsecond)
		}
		s.lastTx = now
	}

	if pin := s.TxPin; pin != nil {
		pin.High()
		defer pin.Low()
	}
	_, err := frame.WriteTo(s.Out, s.Timestamps)
	if err == nil {
		glog.V(4).Infof("frame sample=%d delta=%dus", frame.Sample, frame.Delta)
	}
	return err
}

func (s *Streamer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
