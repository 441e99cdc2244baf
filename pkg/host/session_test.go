package host

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DevonLantagne/adc-baremetal/pkg/wire"
)

func encodeStream(timestamps bool, frames ...wire.Frame) []byte {
	var buf bytes.Buffer
	for i := range frames {
		buf.Write(frames[i].Bytes(timestamps))
	}
	return buf.Bytes()
}

func collectUpdates(t *testing.T, s *Session) []Update {
	t.Helper()
	var updates []Update
	s.Handler = HandleUpdateFunc(func(_ context.Context, u Update) {
		updates = append(updates, u)
	})
	require.NoError(t, s.Run(context.Background()))
	return updates
}

func TestSessionDecodesStream(t *testing.T) {
	stream := append([]byte{0x00, 0x42}, encodeStream(false,
		wire.Frame{Sample: 10},
		wire.Frame{Sample: 20},
		wire.Frame{Sample: 30},
	)...)

	config := DefaultConfig()
	config.Window = 40 * time.Millisecond // history of 4
	s := NewSession(bytes.NewReader(stream), config)
	updates := collectUpdates(t, s)

	require.Len(t, updates, 3)
	require.Equal(t, uint64(3), s.Count())
	require.Equal(t, uint16(10), updates[0].Sample)
	require.Equal(t, uint16(30), updates[2].Sample)
	// Index axis: every sample lands at the rightmost position.
	require.Equal(t, float64(3), updates[2].X)

	_, y := s.Snapshot()
	require.Equal(t, []float64{10, 20, 30}, y[1:])
}

func TestSessionNoPartialEmission(t *testing.T) {
	// Stream closes after the marker pair and half of the sample.
	s := NewSession(bytes.NewReader([]byte{0xAA, 0xAA, 0x12}), DefaultConfig())
	updates := collectUpdates(t, s)
	require.Empty(t, updates)
	require.Equal(t, uint64(0), s.Count())
}

func TestSessionTimestampRate(t *testing.T) {
	stream := encodeStream(true,
		wire.Frame{Sample: 1, Delta: 0},
		wire.Frame{Sample: 2, Delta: 10000},
		wire.Frame{Sample: 3, Delta: 20000},
	)

	config := DefaultConfig()
	config.Timestamps = true
	config.Axis = XAxisTime
	s := NewSession(bytes.NewReader(stream), config)
	updates := collectUpdates(t, s)

	require.Len(t, updates, 3)
	// Rate derives from the wire deltas, not arrival timing: mean of
	// 10ms and 20ms.
	require.InDelta(t, 1/0.015, s.Rate(), 1e-6)
	require.InDelta(t, 1/0.015, updates[2].Rate, 1e-6)
	// Newest sample is anchored at zero on a time axis.
	require.Equal(t, float64(0), updates[2].X)

	x, y := s.Snapshot()
	n := len(y)
	require.Equal(t, []float64{1, 2, 3}, y[n-3:])
	require.InDelta(t, -0.03, x[n-3], 1e-9)
	require.InDelta(t, -0.02, x[n-2], 1e-9)
	require.Equal(t, float64(0), x[n-1])
}

func TestSessionTimestampsIndexAxis(t *testing.T) {
	stream := encodeStream(true,
		wire.Frame{Sample: 1, Delta: 0},
		wire.Frame{Sample: 2, Delta: 10000},
		wire.Frame{Sample: 3, Delta: 20000},
	)

	// Timestamps on, axis left at the index default.
	config := DefaultConfig()
	config.Timestamps = true
	config.Window = 40 * time.Millisecond // history of 4
	s := NewSession(bytes.NewReader(stream), config)
	updates := collectUpdates(t, s)

	require.Len(t, updates, 3)
	// Index positions stay fixed; the deltas only feed the rate.
	x, y := s.Snapshot()
	require.Equal(t, []float64{0, 1, 2, 3}, x)
	require.Equal(t, []float64{1, 2, 3}, y[1:])
	require.Equal(t, float64(3), updates[2].X)
	require.InDelta(t, 1/0.015, s.Rate(), 1e-6)
}

func TestSessionResynchronizes(t *testing.T) {
	frame := wire.Frame{Sample: 0x3412}
	stream := append([]byte{0x01}, frame.Bytes(false)...)
	stream = append(stream, frame.Bytes(false)...)

	s := NewSession(bytes.NewReader(stream), DefaultConfig())
	updates := collectUpdates(t, s)
	require.Len(t, updates, 2)
	for _, u := range updates {
		require.Equal(t, uint16(0x3412), u.Sample)
	}
}

func TestSessionCancellation(t *testing.T) {
	blocked := make(chan struct{})
	s := NewSession(blockingReader{unblock: blocked}, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	require.Equal(t, context.Canceled, <-done)
	close(blocked)
}

type blockingReader struct {
	unblock chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.unblock
	return 0, io.EOF
}
