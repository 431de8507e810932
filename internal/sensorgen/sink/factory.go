package sink

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/armadaproject/sensorgen/internal/sensorgen/configuration"
)

// New builds the sink selected by cfg.Kind. The caller owns the returned sink and must Close it.
func New(ctx context.Context, cfg configuration.SinkConfig) (Sink, error) {
	switch cfg.Kind {
	case MongoSinkName:
		log.Infof("Connecting to mongo collection %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
		mongoSink, err := DialMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return mongoSink, nil
	case KafkaSinkName:
		log.Infof("Writing to kafka topic %s on %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
		return NewKafkaSink(cfg.Kafka), nil
	case MqttSinkName:
		log.Infof("Connecting to mqtt broker %s", cfg.Mqtt.Broker)
		mqttSink, err := DialMqtt(cfg.Mqtt)
		if err != nil {
			return nil, err
		}
		return mqttSink, nil
	case RedisSinkName:
		log.Infof("Writing to redis stream %s", cfg.Redis.Stream)
		return DialRedis(cfg.Redis), nil
	case LogSinkName:
		log.Info("Dry run: records will be logged, not stored")
		return NewLogSink(log.StandardLogger()), nil
	default:
		return nil, errors.Errorf("unknown sink kind %q", cfg.Kind)
	}
}
