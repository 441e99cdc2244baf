// Command adcsimd streams frames from a simulated converter, byte for
// byte what the reference firmware puts on the serial port. Useful for
// exercising the host tools without hardware:
//
//	adcsimd | adcmon -port -
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"time"

	"github.com/DevonLantagne/adc-baremetal/pkg/adc"
	"github.com/DevonLantagne/adc-baremetal/pkg/device"
	fx "github.com/DevonLantagne/adc-baremetal/pkg/framework"
)

var (
	out        = "-"
	rate       = 100.0
	signalFreq = 1.0
	channel    = 5
	resolution = 12
	timestamps = false
)

func init() {
	if val := os.Getenv("ADC_STREAM_OUT"); val != "" {
		out = val
	}
	flag.StringVar(&out, "out", out, "Output file, - for stdout.")
	flag.Float64Var(&rate, "rate", rate, "Sample rate (Hz).")
	flag.Float64Var(&signalFreq, "signal-freq", signalFreq, "Simulated input sine frequency (Hz).")
	flag.IntVar(&channel, "channel", channel, "Converter channel to sample.")
	flag.IntVar(&resolution, "resolution", resolution, "Conversion resolution (bits).")
	flag.BoolVar(&timestamps, "timestamps", timestamps, "Append microsecond deltas to frames.")
}

func main() {
	flag.Parse()

	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		w = f
	}

	full := float64(uint32(1)<<uint(resolution) - 1)
	start := time.Now()
	sim := adc.NewSim(func(uint8) uint16 {
		t := time.Since(start).Seconds()
		return uint16(full / 2 * (1 + math.Sin(2*math.Pi*signalFreq*t)))
	})

	drv := adc.New(sim,
		adc.WithChannel(uint8(channel)),
		adc.WithResolution(uint8(resolution)),
		adc.WithSettleLoops(0),
	)

	s := device.New(drv, w)
	s.Interval = time.Duration(float64(time.Second) / rate)
	s.Timestamps = timestamps

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("streamer", s))
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
