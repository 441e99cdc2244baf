// Package adc drives a single-owner analog-to-digital converter
// peripheral through a hardware abstraction.
package adc

// The Driver owns the converter for the process lifetime and performs
// one-shot conversions on demand. Initialization follows the power-up
// sequence of the STM32L4 family converter: clock enable, analog pin
// connect, prescaler, optional disable of a previously enabled
// converter, deep-power-down exit with regulator settling,
// self-calibration, single-conversion setup, then enable. Blocking
// waits are fail-stop spins: a calibration or enable flag that never
// sets indicates a hardware fault with no recovery path short of a
// reset, so no timeout is attempted.
//
// The Peripheral interface keeps the sequencing testable and lets the
// same driver run against real registers or the simulated converter in
// this package.
