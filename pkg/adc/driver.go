package adc

// Driver performs one-shot conversions against a Peripheral. It is
// the single owner of the converter hardware state and expects a
// single-threaded caller.
type Driver struct {
	hw     Peripheral
	config Config
	mask   uint16
}

// New creates a Driver for the given peripheral.
func New(hw Peripheral, opts ...Option) *Driver {
	if hw == nil {
		panic("peripheral cannot be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Driver{
		hw:     hw,
		config: cfg,
		mask:   uint16(1)<<cfg.Resolution - 1,
	}
}

// Config returns the effective configuration.
func (d *Driver) Config() Config {
	return d.config
}

// Init configures the converter. It must run once before the first
// Sample and is idempotent: an already enabled converter is disabled
// first and brought back up through the full sequence.
//
// All waits are fail-stop: a flag that never sets means a hardware
// fault, and the spin never returns.
func (d *Driver) Init() {
	hw := d.hw
	hw.EnableClock()
	hw.ConnectAnalog(d.config.InputPin)
	hw.SetPrescaler(d.config.Prescaler)

	if hw.Enabled() {
		hw.Disable()
		spinWhile(hw.Enabled)
	}

	hw.ExitDeepPowerDown()
	hw.EnableRegulator()
	settle(d.config.SettleLoops)

	hw.Calibrate()
	spinWhile(hw.Calibrating)

	hw.SetSingleConversion()
	hw.SetResolution(d.config.Resolution)
	hw.SetSamplingTime(d.config.Channel, d.config.SamplingTime)
	hw.SetSequenceLength(1)

	hw.Enable()
	spinUntil(hw.Ready)
}

// Sample performs one conversion on the given channel and returns the
// result masked to the configured resolution. The caller must respect
// the converter's minimum conversion period between calls.
func (d *Driver) Sample(channel uint8) uint16 {
	hw := d.hw
	d.config.SamplePin.High()

	hw.SelectChannel(channel)
	hw.ClearConversionFlag()
	hw.StartConversion()
	spinUntil(hw.ConversionDone)

	d.config.SamplePin.Low()
	return hw.Result() & d.mask
}

func spinUntil(set func() bool) {
	for !set() {
	}
}

func spinWhile(set func() bool) {
	for set() {
	}
}

// settle approximates the regulator settling delay with a busy-wait
// sized for timing headroom rather than cycle exactness.
func settle(loops int) {
	for i := 0; i < loops; i++ {
		settleSink++
	}
}

var settleSink int
