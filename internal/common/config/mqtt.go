package config

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

type MqttConfig struct {
	// e.g. tcp://localhost:1883
	Broker string `validate:"required"`
	// Readings are published to <Topic>/<device id>
	Topic          string `validate:"required"`
	Qos            byte   `validate:"lte=2"`
	Retained       bool
	ClientIdPrefix string
	Username       string
	Password       string
	ConnectTimeout time.Duration
	PublishTimeout time.Duration `validate:"required"`
}

func (mc MqttConfig) AsClientOptions() *mqtt.ClientOptions {
	prefix := mc.ClientIdPrefix
	if prefix == "" {
		prefix = "sensorgen"
	}
	opts := mqtt.NewClientOptions().
		AddBroker(mc.Broker).
		SetClientID(fmt.Sprintf("%s-%s", prefix, uuid.NewString())).
		SetAutoReconnect(true)
	if mc.Username != "" {
		opts.SetUsername(mc.Username)
		opts.SetPassword(mc.Password)
	}
	if mc.ConnectTimeout > 0 {
		opts.SetConnectTimeout(mc.ConnectTimeout)
	}
	return opts
}
