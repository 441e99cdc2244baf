package adc

// Sim is a software stand-in for the converter peripheral. Flag
// transitions complete after a configurable number of polls so the
// driver's spin waits are exercised the way real hardware would.
//
// Sim implements Peripheral.
type Sim struct {
	// Source produces the conversion input for a channel. A nil
	// source converts to zero.
	Source func(channel uint8) uint16

	// Poll counts before the corresponding flag settles.
	CalibrationPolls int
	ReadyPolls       int
	ConversionPolls  int

	clockOn       bool
	analogPins    [16]bool
	prescaler     Prescaler
	deepPowerDown bool
	regulator     bool
	calibrated    bool
	single        bool
	resolution    uint8
	samplingTime  [19]uint8
	seqLen        uint8
	channel       uint8

	enabled      bool
	ready        bool
	eoc          bool
	disablePolls int
	calPolls     int
	readyPolls   int
	convPolls    int
	result       uint16
}

// NewSim creates a simulated converter in its power-on state.
func NewSim(source func(channel uint8) uint16) *Sim {
	return &Sim{
		Source:           source,
		CalibrationPolls: 2,
		ReadyPolls:       2,
		ConversionPolls:  1,
		deepPowerDown:    true,
		resolution:       12,
	}
}

// EnableClock implements Peripheral.
func (s *Sim) EnableClock() { s.clockOn = true }

// ConnectAnalog implements Peripheral.
func (s *Sim) ConnectAnalog(pin uint8) {
	if int(pin) < len(s.analogPins) {
		s.analogPins[pin] = true
	}
}

// SetPrescaler implements Peripheral.
func (s *Sim) SetPrescaler(p Prescaler) { s.prescaler = p }

// Enabled implements Peripheral.
func (s *Sim) Enabled() bool {
	if s.disablePolls > 0 {
		if s.disablePolls--; s.disablePolls == 0 {
			s.enabled, s.ready = false, false
		}
		return true
	}
	return s.enabled
}

// Disable implements Peripheral.
func (s *Sim) Disable() {
	if s.enabled {
		s.disablePolls = 1
	}
}

// ExitDeepPowerDown implements Peripheral.
func (s *Sim) ExitDeepPowerDown() { s.deepPowerDown = false }

// EnableRegulator implements Peripheral.
func (s *Sim) EnableRegulator() { s.regulator = true }

// Calibrate implements Peripheral.
func (s *Sim) Calibrate() {
	if !s.deepPowerDown && s.regulator {
		s.calPolls = s.CalibrationPolls
		s.calibrated = false
	}
}

// Calibrating implements Peripheral.
func (s *Sim) Calibrating() bool {
	if s.calPolls > 0 {
		s.calPolls--
		return true
	}
	s.calibrated = true
	return false
}

// SetSingleConversion implements Peripheral.
func (s *Sim) SetSingleConversion() { s.single = true }

// SetResolution implements Peripheral.
func (s *Sim) SetResolution(bits uint8) { s.resolution = bits }

// SetSamplingTime implements Peripheral.
func (s *Sim) SetSamplingTime(channel, sel uint8) {
	if int(channel) < len(s.samplingTime) {
		s.samplingTime[channel] = sel
	}
}

// SetSequenceLength implements Peripheral.
func (s *Sim) SetSequenceLength(n uint8) { s.seqLen = n }

// Enable implements Peripheral.
func (s *Sim) Enable() {
	s.enabled = true
	s.readyPolls = s.ReadyPolls
}

// Ready implements Peripheral.
func (s *Sim) Ready() bool {
	if !s.enabled {
		return false
	}
	if s.readyPolls > 0 {
		s.readyPolls--
		return false
	}
	s.ready = true
	return true
}

// SelectChannel implements Peripheral.
func (s *Sim) SelectChannel(channel uint8) { s.channel = channel }

// ClearConversionFlag implements Peripheral.
func (s *Sim) ClearConversionFlag() { s.eoc = false }

// StartConversion implements Peripheral.
func (s *Sim) StartConversion() {
	if !s.ready {
		return
	}
	s.convPolls = s.ConversionPolls
	var v uint16
	if s.Source != nil {
		v = s.Source(s.channel)
	}
	s.result = v & (uint16(1)<<s.resolution - 1)
}

// ConversionDone implements Peripheral.
func (s *Sim) ConversionDone() bool {
	if s.convPolls > 0 {
		s.convPolls--
		return false
	}
	s.eoc = true
	return s.eoc
}

// Result implements Peripheral.
func (s *Sim) Result() uint16 { return s.result }
