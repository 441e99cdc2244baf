package wire

import "io"

// SyncByte is the frame marker value. Two consecutive occurrences
// start a frame.
const SyncByte byte = 0xAA

const (
	syncLen   = 2
	sampleLen = 2
	deltaLen  = 4
)

// FrameLen returns the encoded size of one frame.
func FrameLen(timestamps bool) int {
	if timestamps {
		return syncLen + sampleLen + deltaLen
	}
	return syncLen + sampleLen
}

// Frame contains the information of one decoded frame.
type Frame struct {
	// Sample is the raw conversion result. Only the low resolution
	// bits are meaningful; upper bits are zero.
	Sample uint16
	// Delta is microseconds since the previous frame. Valid only in
	// timestamp mode.
	Delta uint32
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes(timestamps bool) []byte {
	b := make([]byte, FrameLen(timestamps))
	b[0], b[1] = SyncByte, SyncByte
	b[2], b[3] = byte(f.Sample), byte(f.Sample>>8)
	if timestamps {
		b[4] = byte(f.Delta)
		b[5] = byte(f.Delta >> 8)
		b[6] = byte(f.Delta >> 16)
		b[7] = byte(f.Delta >> 24)
	}
	return b
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer, timestamps bool) (int, error) {
	return w.Write(f.Bytes(timestamps))
}
