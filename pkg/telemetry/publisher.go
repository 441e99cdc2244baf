package telemetry

import (
	"context"
	"encoding/json"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/DevonLantagne/adc-baremetal/pkg/host"
)

// Topics under the queue prefix.
const (
	TopicSamples = "samples"
	TopicMeta    = "meta"
)

// Publisher forwards decoded updates to the queue.
//
// Publisher implements host.UpdateHandler.
type Publisher struct {
	Queue *Queue
}

// NewPublisher creates a Publisher over a connected queue.
func NewPublisher(q *Queue) *Publisher {
	return &Publisher{Queue: q}
}

type sampleDoc struct {
	Sample uint16  `json:"sample"`
	X      float64 `json:"x"`
	Rate   float64 `json:"rate"`
}

type metaDoc struct {
	Machine    string  `json:"machine"`
	Stream     string  `json:"stream"`
	Baud       int     `json:"baud"`
	Timestamps bool    `json:"timestamps"`
	SampleRate float64 `json:"sample_rate"`
	Resolution uint8   `json:"resolution"`
}

// Announce publishes the session parameters and host identity on the
// retained meta topic.
func (p *Publisher) Announce(config host.Config) error {
	id, err := machineid.ID()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(metaDoc{
		Machine:    id,
		Stream:     config.Stream,
		Baud:       config.Baud,
		Timestamps: config.Timestamps,
		SampleRate: config.SampleRate,
		Resolution: config.Resolution,
	})
	if err != nil {
		return err
	}
	return p.Queue.PubRetained(TopicMeta, payload)
}

// HandleUpdate implements host.UpdateHandler. Publish failures are
// logged and dropped: telemetry must never stall decoding.
func (p *Publisher) HandleUpdate(_ context.Context, u host.Update) {
	payload, err := json.Marshal(sampleDoc{Sample: u.Sample, X: u.X, Rate: u.Rate})
	if err != nil {
		glog.Errorf("encode update: %v", err)
		return
	}
	if err := p.Queue.Pub(TopicSamples, payload); err != nil {
		glog.Errorf("publish update: %v", err)
	}
}
