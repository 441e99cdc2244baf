// Command adcsh is the interactive monitor: open a stream, watch or
// pause the live display, inspect history and the rate estimate.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/DevonLantagne/adc-baremetal/pkg/cli/sh"
	"github.com/DevonLantagne/adc-baremetal/pkg/host"
)

var (
	port       = "/dev/ttyACM0"
	baud       = 115200
	timestamps = false
	timeAxis   = false
	rate       = 100.0
	window     = time.Second
	rateWindow = 50
)

func init() {
	if val := os.Getenv("ADC_PORT"); val != "" {
		port = val
	}
	flag.StringVar(&port, "port", port, "Default serial port for open.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.BoolVar(&timestamps, "timestamps", timestamps, "Frames carry microsecond deltas.")
	flag.BoolVar(&timeAxis, "time-axis", timeAxis, "Position samples in seconds instead of by index.")
	flag.Float64Var(&rate, "rate", rate, "Assumed sample rate (Hz).")
	flag.DurationVar(&window, "window", window, "History window duration.")
	flag.IntVar(&rateWindow, "rate-window", rateWindow, "Intervals averaged for the rate estimate.")
}

func main() {
	flag.Parse()

	config := host.DefaultConfig()
	config.Stream = port
	config.Baud = baud
	config.Timestamps = timestamps
	config.SampleRate = rate
	config.Window = window
	config.RateWindow = rateWindow
	config.Present = false // start paused; use watch to stream
	if timeAxis {
		config.Axis = host.XAxisTime
	}

	sh.New(config).Run()
}
