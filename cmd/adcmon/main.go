// Command adcmon attaches to a sample stream, decodes it and prints
// every sample with its position and the current rate estimate. With
// -mqtt it also republishes decoded updates for other consumers.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/tarm/serial"

	fx "github.com/DevonLantagne/adc-baremetal/pkg/framework"
	"github.com/DevonLantagne/adc-baremetal/pkg/host"
	"github.com/DevonLantagne/adc-baremetal/pkg/telemetry"
)

var (
	port       = "/dev/ttyACM0"
	baud       = 115200
	timestamps = false
	timeAxis   = false
	rate       = 100.0
	window     = time.Second
	resolution = 12
	rateWindow = 50
	quiet      = false
	mqttURL    = ""
)

func init() {
	if val := os.Getenv("ADC_PORT"); val != "" {
		port = val
	}
	if val := os.Getenv("ADC_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&port, "port", port, "Serial port, - for stdin.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.BoolVar(&timestamps, "timestamps", timestamps, "Frames carry microsecond deltas.")
	flag.BoolVar(&timeAxis, "time-axis", timeAxis, "Position samples in seconds instead of by index.")
	flag.Float64Var(&rate, "rate", rate, "Assumed sample rate (Hz).")
	flag.DurationVar(&window, "window", window, "History window duration.")
	flag.IntVar(&resolution, "resolution", resolution, "Converter resolution (bits).")
	flag.IntVar(&rateWindow, "rate-window", rateWindow, "Intervals averaged for the rate estimate.")
	flag.BoolVar(&quiet, "quiet", quiet, "Do not print samples (counters only).")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL to republish updates, empty to disable.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	config := host.DefaultConfig()
	config.Stream = port
	config.Baud = baud
	config.Timestamps = timestamps
	config.SampleRate = rate
	config.Window = window
	config.Resolution = uint8(resolution)
	config.RateWindow = rateWindow
	config.Present = !quiet
	if timeAxis {
		config.Axis = host.XAxisTime
	}

	var src io.ReadCloser
	if port == "-" {
		src = os.Stdin
		config.Stream = "stdin"
	} else {
		p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud})
		if err != nil {
			log.Fatalln(err)
		}
		src = p
	}

	var pub *telemetry.Publisher
	if mqttURL != "" {
		q, err := telemetry.NewQueueFromURL(mqttURL)
		if err != nil {
			log.Fatalln(err)
		}
		if err := q.Connect(); err != nil {
			log.Fatalln(err)
		}
		defer q.Close()
		pub = telemetry.NewPublisher(q)
		if err := pub.Announce(config); err != nil {
			log.Fatalln(err)
		}
	}

	sess := host.NewSession(src, config)
	sess.Handler = host.HandleUpdateFunc(func(ctx context.Context, u host.Update) {
		if config.Present {
			log.Printf("%6d  x=%-10g rate=%.2fHz", u.Sample, u.X, u.Rate)
		}
		if pub != nil {
			pub.HandleUpdate(ctx, u)
		}
	})

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("session", fx.RunnableFunc(func(ctx context.Context) error {
		// Closing the source on cancel unblocks the serial read.
		return fx.RunWithContextCloser(ctx, src, func() error {
			return sess.Run(ctx)
		})
	})))
	err := runner.Wait()
	log.Printf("session end: %d frames, %.2f Hz", sess.Count(), sess.Rate())
	if err != nil {
		log.Fatalln(err)
	}
}
