// Package mqtt publishes completed plans to an MQTT broker so dispatch
// boards and other live consumers can follow scheduling output.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/gasgrid/lcv-dispatch/core/plan"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "lcv-dispatch"
	}
	if c.Topic == "" {
		c.Topic = "lcv/dispatch/plans"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields when publication is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	return nil
}

// PahoPublisher implements notify.Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli     paho.Client
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	logg := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		logg.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logg.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoPublisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		log:     logg,
	}, nil
}

// PublishPlan serializes the plan and publishes it on the configured topic.
func (p *PahoPublisher) PublishPlan(ctx context.Context, res plan.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal plan %s: %w", res.RunID, err)
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish plan %s: timeout after %s", res.RunID, p.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish plan %s: %w", res.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.log.Debugw("plan published", map[string]any{"run_id": res.RunID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
