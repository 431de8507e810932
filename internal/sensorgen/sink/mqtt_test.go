package sink

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

type publishedMessage struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeToken struct {
	completed bool
	err       error
}

func (t *fakeToken) Wait() bool                     { return t.completed }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.completed }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.completed {
		close(ch)
	}
	return ch
}

type fakeMqttClient struct {
	published    []publishedMessage
	token        *fakeToken
	connected    bool
	disconnected bool
}

func newFakeMqttClient() *fakeMqttClient {
	return &fakeMqttClient{token: &fakeToken{completed: true}, connected: true}
}

func (c *fakeMqttClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.published = append(c.published, publishedMessage{
		topic:    topic,
		qos:      qos,
		retained: retained,
		payload:  payload.([]byte),
	})
	return c.token
}

func (c *fakeMqttClient) IsConnectionOpen() bool { return c.connected }

func (c *fakeMqttClient) Disconnect(uint) { c.disconnected = true }

var testMqttConfig = config.MqttConfig{
	Broker:         "tcp://localhost:1883",
	Topic:          "sensors",
	Qos:            1,
	PublishTimeout: time.Second,
}

func TestMqttSink_InsertMany(t *testing.T) {
	client := newFakeMqttClient()
	s := newMqttSink(client, testMqttConfig)

	inserted, err := s.InsertMany(context.Background(), testRecords)

	require.NoError(t, err)
	assert.Equal(t, len(testRecords), inserted)
	require.Len(t, client.published, len(testRecords))
	assert.Equal(t, "sensors/SENSOR_1", client.published[0].topic)
	assert.Equal(t, "sensors/SENSOR_4", client.published[1].topic)
	for i, msg := range client.published {
		assert.Equal(t, byte(1), msg.qos)
		assert.False(t, msg.retained)
		var decoded model.SensorRecord
		require.NoError(t, json.Unmarshal(msg.payload, &decoded))
		assert.Equal(t, testRecords[i], decoded)
	}
}

func TestMqttSink_InsertMany_PublishError(t *testing.T) {
	client := newFakeMqttClient()
	client.token = &fakeToken{completed: true, err: errors.New("not connected")}
	s := newMqttSink(client, testMqttConfig)

	inserted, err := s.InsertMany(context.Background(), testRecords)

	assert.Equal(t, 0, inserted)
	assert.True(t, IsSinkError(err))
	assert.Len(t, client.published, 1)
}

func TestMqttSink_InsertMany_Timeout(t *testing.T) {
	client := newFakeMqttClient()
	client.token = &fakeToken{completed: false}
	s := newMqttSink(client, testMqttConfig)

	_, err := s.InsertMany(context.Background(), testRecords)

	assert.True(t, IsSinkError(err))
	assert.Contains(t, err.Error(), "timed out")
}

func TestMqttSink_InsertMany_CancelledContext(t *testing.T) {
	client := newFakeMqttClient()
	s := newMqttSink(client, testMqttConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.InsertMany(ctx, testRecords)

	assert.True(t, IsSinkError(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, client.published)
}

func TestMqttSink_PingAndClose(t *testing.T) {
	client := newFakeMqttClient()
	s := newMqttSink(client, testMqttConfig)

	assert.NoError(t, s.Ping(context.Background()))
	client.connected = false
	assert.Error(t, s.Ping(context.Background()))

	require.NoError(t, s.Close(context.Background()))
	assert.True(t, client.disconnected)
}
