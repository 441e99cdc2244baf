package adc

// Pin is a digital output toggled for timing diagnostics.
type Pin interface {
	High()
	Low()
}

type nopPin struct{}

func (nopPin) High() {}
func (nopPin) Low()  {}

// NopPin discards diagnostic toggles.
var NopPin Pin = nopPin{}

// Prescaler selects the conversion clock division factor.
type Prescaler uint8

// Prescaler values match the converter's PRESC bitfield.
const (
	PrescalerDiv1 Prescaler = 0x0
	PrescalerDiv2 Prescaler = 0x1
	PrescalerDiv4 Prescaler = 0x2
	PrescalerDiv6 Prescaler = 0x3
	PrescalerDiv8 Prescaler = 0x4
)

// Peripheral is the hardware face of the converter. Implementations
// map each method onto the target's register accesses. Methods are
// non-blocking; the Driver owns all waiting.
type Peripheral interface {
	// EnableClock enables the clock domain feeding the converter and
	// the input pin's port.
	EnableClock()
	// ConnectAnalog puts the input pin in analog mode and disconnects
	// its digital function.
	ConnectAnalog(pin uint8)
	// SetPrescaler applies the conversion clock prescaler.
	SetPrescaler(Prescaler)

	// Enabled reports whether the converter is currently enabled.
	Enabled() bool
	// Disable requests converter power-down. Completion is observed
	// through Enabled turning false.
	Disable()

	// ExitDeepPowerDown leaves deep-power-down mode.
	ExitDeepPowerDown()
	// EnableRegulator enables the internal voltage regulator. The
	// caller must wait the settling delay before calibrating.
	EnableRegulator()

	// Calibrate starts the self-calibration sequence. Completion is
	// observed through Calibrating turning false.
	Calibrate()
	Calibrating() bool

	// SetSingleConversion selects one conversion per trigger.
	SetSingleConversion()
	// SetResolution fixes the output resolution in bits.
	SetResolution(bits uint8)
	// SetSamplingTime sets the per-channel sampling duration bitfield.
	SetSamplingTime(channel, sel uint8)
	// SetSequenceLength fixes the regular sequence to n conversions.
	SetSequenceLength(n uint8)

	// Enable powers the converter up. Readiness is observed through
	// Ready turning true.
	Enable()
	Ready() bool

	// SelectChannel places the channel in the regular sequence.
	SelectChannel(channel uint8)
	// ClearConversionFlag clears a stale end-of-conversion flag.
	ClearConversionFlag()
	// StartConversion triggers one conversion. Completion is observed
	// through ConversionDone turning true.
	StartConversion()
	ConversionDone() bool
	// Result reads the raw conversion data register.
	Result() uint16
}
