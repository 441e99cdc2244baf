// Package telemetry fans decoded updates out over MQTT for diagnostic
// consumers. The link itself stays one-directional; telemetry is a
// read-only tap on the host side.
package telemetry

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Queue wraps the MQTT client.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
}

// ClientOptionsFromURL creates ClientOptions from URL, e.g.
// mqtt://localhost:1883/adc/.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := u.Path
	if strings.HasPrefix(topicPrefix, "/") {
		topicPrefix = topicPrefix[1:]
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}

	return opts, topicPrefix, nil
}

// NewQueue creates a Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	return &Queue{Client: paho.NewClient(options), TopicPrefix: topicPrefix}
}

// NewQueueFromURL creates a Queue from a broker URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client and waits for the broker.
func (q *Queue) Connect() error {
	token := q.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(0)
	return nil
}

// Pub publishes a payload under the queue's topic prefix.
func (q *Queue) Pub(topic string, payload []byte) error {
	return q.publish(topic, payload, false)
}

// PubRetained publishes a retained payload, used for meta topics so
// late subscribers see the session parameters.
func (q *Queue) PubRetained(topic string, payload []byte) error {
	return q.publish(topic, payload, true)
}

func (q *Queue) publish(topic string, payload []byte, retained bool) error {
	token := q.Client.Publish(q.TopicPrefix+topic, 0, retained, payload)
	token.Wait()
	return token.Error()
}
