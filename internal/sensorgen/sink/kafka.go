package sink

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const KafkaSinkName = "kafka"

// messageWriter is the subset of *kafka.Writer used by the sink.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each record as a JSON message keyed by device id.
type KafkaSink struct {
	writer messageWriter
}

func NewKafkaSink(cfg config.KafkaConfig) *KafkaSink {
	return &KafkaSink{writer: cfg.NewWriter()}
}

func (s *KafkaSink) Name() string {
	return KafkaSinkName
}

// InsertMany hands every record to the writer in a single call. The batch is all-or-nothing from the caller's
// point of view: on error no records are reported as accepted.
func (s *KafkaSink) InsertMany(ctx context.Context, records []model.SensorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	msgs := make([]kafka.Message, len(records))
	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return 0, newError(s.Name(), len(records), err)
		}
		msgs[i] = kafka.Message{
			Key:   []byte(record.DeviceId),
			Value: payload,
			Time:  record.Timestamp,
		}
	}
	if err := s.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, newError(s.Name(), len(records), err)
	}
	return len(msgs), nil
}

func (s *KafkaSink) Close(_ context.Context) error {
	return s.writer.Close()
}
