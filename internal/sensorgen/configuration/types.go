package configuration

import (
	"time"

	"github.com/pkg/errors"

	"github.com/armadaproject/sensorgen/internal/common/config"
)

type Configuration struct {
	// Serves /health and /metrics
	Http HttpConfig
	// Controls how often the generation job fires
	Schedule ScheduleConfig
	// Controls the shape of each generated batch
	Generator GeneratorConfig
	// Where generated records are written
	Sink SinkConfig
}

type HttpConfig struct {
	Port uint16 `validate:"required"`
}

type ScheduleConfig struct {
	// Minimum time between the starts of two consecutive jobs
	Interval time.Duration `validate:"required"`
	// How often the scheduler checks whether the next job is due. Jobs may start up to this late.
	PollPeriod time.Duration `validate:"required"`
}

type GeneratorConfig struct {
	// Number of records per job
	BatchSize int `validate:"gte=0"`
	// Seed for the random source. Zero seeds from the current time.
	Seed int64
}

type SinkConfig struct {
	// One of mongo, kafka, mqtt, redis or log
	Kind string `validate:"required,oneof=mongo kafka mqtt redis log"`
	// Upper bound on a single insert. Zero means no bound beyond the backend's own timeouts.
	InsertTimeout time.Duration `validate:"gte=0"`
	// Only the sub-config matching Kind is validated
	Mongo config.MongoConfig `validate:"-"`
	Kafka config.KafkaConfig `validate:"-"`
	Mqtt  config.MqttConfig  `validate:"-"`
	Redis config.RedisConfig `validate:"-"`
}

// Validate checks the whole configuration and the sub-config of the selected sink.
func (c Configuration) Validate() error {
	if err := config.Validate(c); err != nil {
		return err
	}
	if c.Schedule.PollPeriod > c.Schedule.Interval {
		return errors.Errorf("schedule.pollPeriod (%s) must not exceed schedule.interval (%s)",
			c.Schedule.PollPeriod, c.Schedule.Interval)
	}
	switch c.Sink.Kind {
	case "mongo":
		return config.Validate(c.Sink.Mongo)
	case "kafka":
		return config.Validate(c.Sink.Kafka)
	case "mqtt":
		return config.Validate(c.Sink.Mqtt)
	case "redis":
		return config.Validate(c.Sink.Redis)
	}
	return nil
}
