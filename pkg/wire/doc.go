// Package wire implements the sample streaming wire protocol.
package wire

// The protocol is a one-directional push of self-contained frames over
// an unframed byte stream (e.g. serial port) with no flow control:
//
//   [sync=0xAA][sync=0xAA][sample_lo][sample_hi]{[ts0][ts1][ts2][ts3]}
//
// The timestamp field is present only when both ends agree out-of-band
// on timestamp mode; it is microseconds elapsed since the previous
// frame. There is no length prefix and no checksum. The marker pair is
// the only framing mechanism: the decoder discards bytes until it sees
// two consecutive marker bytes, so it recovers from dropped or
// corrupted bytes and from attaching to an in-progress stream, at the
// cost of occasionally locking onto payload bytes that alias the
// marker. When robustness matters, parity bits can be enabled on the
// serial port.
//
// Producer: sampling firmware
// Consumer: host decoder
