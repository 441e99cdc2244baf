package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameBytes(t *testing.T) {
	f := &Frame{Sample: 0x3412}
	require.Equal(t, []byte{0xAA, 0xAA, 0x12, 0x34}, f.Bytes(false))

	f = &Frame{Sample: 0x0FFF, Delta: 10000}
	require.Equal(t, []byte{0xAA, 0xAA, 0xFF, 0x0F, 0x10, 0x27, 0x00, 0x00}, f.Bytes(true))
}

func TestFrameWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&Frame{Sample: 0x0123}).WriteTo(&buf, false)
	require.NoError(t, err)
	require.Equal(t, FrameLen(false), n)
	require.Equal(t, []byte{0xAA, 0xAA, 0x23, 0x01}, buf.Bytes())
}

func TestFrameLen(t *testing.T) {
	require.Equal(t, 4, FrameLen(false))
	require.Equal(t, 8, FrameLen(true))
}
