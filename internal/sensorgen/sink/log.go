package sink

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/armadaproject/sensorgen/internal/sensorgen/generator"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const LogSinkName = "log"

// LogSink is a dry-run sink that writes every record to the log instead of a database.
type LogSink struct {
	log logrus.FieldLogger
}

func NewLogSink(log logrus.FieldLogger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string {
	return LogSinkName
}

func (s *LogSink) InsertMany(_ context.Context, records []model.SensorRecord) (int, error) {
	for _, record := range records {
		entry := s.log.WithFields(logrus.Fields{
			"timestamp":   record.Timestamp.Format(time.RFC3339Nano),
			"temperature": record.Temperature,
			"humidity":    record.Humidity,
			"pressure":    record.Pressure,
			"device_id":   record.DeviceId,
			"location":    record.Location,
		})
		if err := generator.Validate(record); err != nil {
			entry.WithError(err).Warn("Sensor record out of range")
			continue
		}
		entry.Info("Sensor record")
	}
	return len(records), nil
}

func (s *LogSink) Close(_ context.Context) error {
	return nil
}
