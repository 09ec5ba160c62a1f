// Package telemetry publishes attitude and posture samples over MQTT so
// external tooling can record or plot a simulation run. It is optional; the
// daemon runs without it when no broker is configured.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/quadrupedlab/go-a1/internal/log"
	"github.com/quadrupedlab/go-a1/pkg/control"
	"github.com/quadrupedlab/go-a1/pkg/robot"
)

// Default topics and sample interval.
const (
	TopicAttitude   = "a1/attitude"
	TopicPosture    = "a1/posture"
	DefaultInterval = 200 * time.Millisecond
)

// AttitudeSample is one published attitude record.
type AttitudeSample struct {
	Time     time.Time        `json:"time"`
	Snapshot control.Snapshot `json:"snapshot"`
}

// PostureSample is one published motor-state record.
type PostureSample struct {
	Time    time.Time     `json:"time"`
	Posture robot.Posture `json:"posture"`
}

// Publisher samples the control loop and publishes over MQTT.
type Publisher struct {
	client   mqtt.Client
	interval time.Duration
}

// New connects to the broker and returns a Publisher.
func New(broker, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	log.Info("telemetry connected", "broker", broker)
	return &Publisher{client: client, interval: DefaultInterval}, nil
}

// SetInterval overrides the sample interval. Call before Run.
func (p *Publisher) SetInterval(d time.Duration) {
	p.interval = d
}

// Run samples the manager and bridge until ctx is done.
func (p *Publisher) Run(ctx context.Context, mgr *control.Manager, bridge robot.PostureReader) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			p.publish(TopicAttitude, AttitudeSample{Time: t, Snapshot: mgr.Snapshot()})

			if pos, err := bridge.GetPosture(); err == nil {
				p.publish(TopicPosture, PostureSample{Time: t, Posture: pos})
			}
		}
	}
}

func (p *Publisher) publish(topic string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("telemetry marshal failed", "topic", topic, "error", err)
		return
	}
	p.client.Publish(topic, 0, false, data)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
