package wire

// Parser recovers frames from a raw byte stream.
//
// It is a resumable state machine driven one byte at a time, so the
// caller decides how bytes arrive (blocking read, channel, buffer).
// Suspending between bytes needs no extra bookkeeping: the parser
// itself is the only persisted context.
type Parser struct {
	// Timestamps selects the 8-byte frame layout with the
	// microsecond delta field. Must match the transmitter.
	Timestamps bool

	state   parseState
	frame   *Frame
	recvLen byte
}

// SyncState indicates where the parser is relative to frame
// boundaries.
type SyncState int

const (
	// SyncStateSearching means bytes are being discarded until a
	// marker byte is seen.
	SyncStateSearching SyncState = iota
	// SyncStateMarked means one marker byte matched and the second
	// is awaited.
	SyncStateMarked
	// SyncStateInFrame means the marker pair matched and payload
	// fields are being read.
	SyncStateInFrame
)

// InFrame indicates a frame is partially received. End-of-stream in
// this state means a truncated frame that must not be emitted.
func (s SyncState) InFrame() bool {
	return s == SyncStateInFrame
}

// ParseResult indicates the result after consuming one byte.
type ParseResult struct {
	State SyncState
	// Frame is non-nil exactly when the consumed byte completed a
	// frame.
	Frame *Frame
}

type parseState int

const (
	stateSeekFirst  parseState = iota // discarding until marker
	stateSeekSecond                   // one marker seen
	stateSample                       // reading sample field
	stateDelta                        // reading timestamp field
)

// State gets the current sync state.
func (p *Parser) State() SyncState {
	switch p.state {
	case stateSeekFirst:
		return SyncStateSearching
	case stateSeekSecond:
		return SyncStateMarked
	}
	return SyncStateInFrame
}

// Reset discards any partial frame and restarts the marker search.
func (p *Parser) Reset() (pr ParseResult) {
	p.state, p.frame, p.recvLen = stateSeekFirst, nil, 0
	pr.State = p.State()
	return
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	pr.Frame = p.parseByte(b)
	pr.State = p.State()
	return
}

func (p *Parser) parseByte(b byte) *Frame {
	switch p.state {
	case stateSeekFirst:
		if b == SyncByte {
			p.state = stateSeekSecond
		}
	case stateSeekSecond:
		if b != SyncByte {
			// The byte re-enters the search as a candidate first
			// marker. It just failed to match, so re-examining it
			// drops it without consuming anything further.
			p.state = stateSeekFirst
			return nil
		}
		p.frame, p.recvLen = &Frame{}, 0
		p.state = stateSample
	case stateSample:
		p.frame.Sample |= uint16(b) << (8 * p.recvLen)
		if p.recvLen++; p.recvLen == sampleLen {
			if !p.Timestamps {
				return p.frameReady()
			}
			p.recvLen, p.state = 0, stateDelta
		}
	case stateDelta:
		p.frame.Delta |= uint32(b) << (8 * p.recvLen)
		if p.recvLen++; p.recvLen == deltaLen {
			return p.frameReady()
		}
	}
	return nil
}

func (p *Parser) frameReady() (f *Frame) {
	f, p.frame = p.frame, nil
	p.state = stateSeekFirst
	return
}
