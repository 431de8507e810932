package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"

	"github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const (
	MqttSinkName = "mqtt"
	// Milliseconds the client waits for in-flight work when disconnecting
	mqttQuiesce = 250
)

// mqttClient is the subset of mqtt.Client used by the sink.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	IsConnectionOpen() bool
	Disconnect(quiesce uint)
}

// MqttSink publishes one JSON payload per record on <topic>/<device id>.
type MqttSink struct {
	client         mqttClient
	topic          string
	qos            byte
	retained       bool
	publishTimeout time.Duration
}

// DialMqtt connects to the configured broker.
func DialMqtt(cfg config.MqttConfig) (*MqttSink, error) {
	client := mqtt.NewClient(cfg.AsClientOptions())
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout(cfg)) {
		return nil, errors.Errorf("timed out connecting to mqtt broker %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, errors.WithMessagef(err, "error connecting to mqtt broker %s", cfg.Broker)
	}
	return newMqttSink(client, cfg), nil
}

func newMqttSink(client mqttClient, cfg config.MqttConfig) *MqttSink {
	return &MqttSink{
		client:         client,
		topic:          cfg.Topic,
		qos:            cfg.Qos,
		retained:       cfg.Retained,
		publishTimeout: cfg.PublishTimeout,
	}
}

func connectTimeout(cfg config.MqttConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return 30 * time.Second
}

func (s *MqttSink) Name() string {
	return MqttSinkName
}

func (s *MqttSink) InsertMany(ctx context.Context, records []model.SensorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return 0, newError(s.Name(), len(records), err)
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return 0, newError(s.Name(), len(records), err)
		}
		topic := fmt.Sprintf("%s/%s", s.topic, record.DeviceId)
		token := s.client.Publish(topic, s.qos, s.retained, payload)
		if !token.WaitTimeout(s.publishTimeout) {
			return 0, newError(s.Name(), len(records), errors.Errorf("timed out publishing to %s", topic))
		}
		if err := token.Error(); err != nil {
			return 0, newError(s.Name(), len(records), err)
		}
	}
	return len(records), nil
}

func (s *MqttSink) Ping(_ context.Context) error {
	if !s.client.IsConnectionOpen() {
		return errors.New("mqtt connection is not open")
	}
	return nil
}

func (s *MqttSink) Close(_ context.Context) error {
	s.client.Disconnect(mqttQuiesce)
	return nil
}
