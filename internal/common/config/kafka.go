package config

import (
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string `validate:"required"`
	Topic   string   `validate:"required"`
	// One of none, one or all
	RequiredAcks kafka.RequiredAcks
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

func (kc KafkaConfig) NewWriter() *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(kc.Brokers...),
		Topic:        kc.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kc.RequiredAcks,
		BatchTimeout: kc.BatchTimeout,
		WriteTimeout: kc.WriteTimeout,
	}
}
