package adc

// Config holds the driver configuration.
type Config struct {
	// Channel is the converter channel whose sampling time is set at
	// initialization. Default is 5 (PA0 on the reference board).
	Channel uint8

	// InputPin is the pin connected to the channel on the analog
	// port. Default is 0.
	InputPin uint8

	// Resolution is the conversion resolution in bits. Results are
	// masked to this width. Default is 12.
	Resolution uint8

	// SamplingTime is the per-channel sampling duration bitfield.
	// Larger values spend more clock cycles sampling, trading speed
	// for noise immunity. Default is 0 (shortest).
	SamplingTime uint8

	// Prescaler divides the conversion clock. Default is divide by 8.
	Prescaler Prescaler

	// SettleLoops is the busy-wait iteration count after enabling the
	// internal regulator. The default is calibrated for the hardware
	// minimum with headroom; it is not cycle-exact.
	SettleLoops int

	// SamplePin is a diagnostic output held high for the duration of
	// each conversion (optional).
	SamplePin Pin
}

func defaultConfig() Config {
	return Config{
		Channel:      5,
		InputPin:     0,
		Resolution:   12,
		SamplingTime: 0,
		Prescaler:    PrescalerDiv8,
		SettleLoops:  1000,
		SamplePin:    NopPin,
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithChannel sets the converter channel configured at initialization.
func WithChannel(channel uint8) Option {
	return func(c *Config) {
		c.Channel = channel
	}
}

// WithInputPin sets the analog input pin.
func WithInputPin(pin uint8) Option {
	return func(c *Config) {
		c.InputPin = pin
	}
}

// WithResolution sets the conversion resolution in bits (max 16).
func WithResolution(bits uint8) Option {
	return func(c *Config) {
		if bits > 0 && bits <= 16 {
			c.Resolution = bits
		}
	}
}

// WithSamplingTime sets the per-channel sampling duration bitfield.
func WithSamplingTime(sel uint8) Option {
	return func(c *Config) {
		c.SamplingTime = sel
	}
}

// WithPrescaler sets the conversion clock prescaler.
func WithPrescaler(p Prescaler) Option {
	return func(c *Config) {
		c.Prescaler = p
	}
}

// WithSettleLoops overrides the regulator settling busy-wait count.
// Mainly useful against simulated hardware.
func WithSettleLoops(loops int) Option {
	return func(c *Config) {
		if loops >= 0 {
			c.SettleLoops = loops
		}
	}
}

// WithSamplePin sets the diagnostic pin toggled around conversions.
func WithSamplePin(pin Pin) Option {
	return func(c *Config) {
		if pin != nil {
			c.SamplePin = pin
		}
	}
}
