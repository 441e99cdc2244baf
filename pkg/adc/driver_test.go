package adc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingPeripheral logs operations in call order and settles every
// flag after one poll.
type recordingPeripheral struct {
	ops []string

	enabled     bool
	calibrating bool
	converting  bool
	result      uint16
}

func (r *recordingPeripheral) op(name string) { r.ops = append(r.ops, name) }

func (r *recordingPeripheral) EnableClock()              { r.op("clock") }
func (r *recordingPeripheral) ConnectAnalog(pin uint8)   { r.op("analog") }
func (r *recordingPeripheral) SetPrescaler(p Prescaler)  { r.op("prescaler") }
func (r *recordingPeripheral) ExitDeepPowerDown()        { r.op("exit-dpd") }
func (r *recordingPeripheral) EnableRegulator()          { r.op("regulator") }
func (r *recordingPeripheral) SetSingleConversion()      { r.op("single") }
func (r *recordingPeripheral) SetResolution(bits uint8)  { r.op("resolution") }
func (r *recordingPeripheral) SetSamplingTime(c, s uint8) {
	r.op("sampling-time")
}
func (r *recordingPeripheral) SetSequenceLength(n uint8) { r.op("seq-len") }

func (r *recordingPeripheral) Enabled() bool { return r.enabled }
func (r *recordingPeripheral) Disable() {
	r.op("disable")
	r.enabled = false
}
func (r *recordingPeripheral) Calibrate() {
	r.op("calibrate")
	r.calibrating = true
}
func (r *recordingPeripheral) Calibrating() bool {
	was := r.calibrating
	r.calibrating = false
	return was
}
func (r *recordingPeripheral) Enable() {
	r.op("enable")
	r.enabled = true
}
func (r *recordingPeripheral) Ready() bool { return r.enabled }

func (r *recordingPeripheral) SelectChannel(channel uint8) { r.op("select") }
func (r *recordingPeripheral) ClearConversionFlag()        { r.op("clear-eoc") }
func (r *recordingPeripheral) StartConversion() {
	r.op("start")
	r.converting = true
}
func (r *recordingPeripheral) ConversionDone() bool {
	was := r.converting
	r.converting = false
	return !was
}
func (r *recordingPeripheral) Result() uint16 {
	r.op("read")
	return r.result
}

var initOps = []string{
	"clock", "analog", "prescaler",
	"exit-dpd", "regulator",
	"calibrate",
	"single", "resolution", "sampling-time", "seq-len",
	"enable",
}

func TestDriverInitSequence(t *testing.T) {
	hw := &recordingPeripheral{}
	d := New(hw, WithSettleLoops(0))
	d.Init()
	require.Equal(t, initOps, hw.ops)
	require.True(t, hw.enabled)
}

func TestDriverInitIdempotent(t *testing.T) {
	hw := &recordingPeripheral{}
	d := New(hw, WithSettleLoops(0))
	d.Init()
	d.Init()

	// The second run must request disable before re-enabling; the end
	// state is the same enabled/ready state as a single run.
	second := hw.ops[len(initOps):]
	want := append([]string{"clock", "analog", "prescaler", "disable"}, initOps[3:]...)
	require.Equal(t, want, second)
	require.True(t, hw.enabled)
}

func TestDriverSample(t *testing.T) {
	hw := &recordingPeripheral{result: 0xF234}
	pin := &togglePin{}
	d := New(hw, WithSettleLoops(0), WithSamplePin(pin))
	d.Init()
	hw.ops = nil

	v := d.Sample(5)
	// Result masked to the 12-bit default resolution.
	require.Equal(t, uint16(0x0234), v)
	require.Equal(t, []string{"select", "clear-eoc", "start", "read"}, hw.ops)
	// Diagnostic pin went high then low around the conversion.
	require.Equal(t, []string{"high", "low"}, pin.events)
}

func TestDriverResolutionMask(t *testing.T) {
	hw := &recordingPeripheral{result: 0xFFFF}
	d := New(hw, WithSettleLoops(0), WithResolution(8))
	d.Init()
	require.Equal(t, uint16(0x00FF), d.Sample(1))
}

func TestDriverWithSim(t *testing.T) {
	sim := NewSim(func(channel uint8) uint16 {
		return 0x0FFF + uint16(channel) // overflows resolution on purpose
	})
	d := New(sim, WithSettleLoops(0), WithChannel(5))
	d.Init()
	d.Init() // re-init against live hardware must come back ready

	v := d.Sample(5)
	require.Equal(t, uint16(0x0004), v) // 0x1004 masked to 12 bits
}

type togglePin struct {
	events []string
}

func (p *togglePin) High() { p.events = append(p.events, "high") }
func (p *togglePin) Low()  { p.events = append(p.events, "low") }
