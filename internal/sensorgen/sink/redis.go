package sink

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/armadaproject/sensorgen/internal/common/config"
	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

const RedisSinkName = "redis"

// RedisSink appends each record as an entry of a Redis stream.
type RedisSink struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

func NewRedisSink(client redis.UniversalClient, stream string, maxLen int64) *RedisSink {
	return &RedisSink{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func DialRedis(cfg config.RedisConfig) *RedisSink {
	return NewRedisSink(redis.NewUniversalClient(cfg.AsUniversalOptions()), cfg.Stream, cfg.MaxLen)
}

func (s *RedisSink) Name() string {
	return RedisSinkName
}

// InsertMany sends one XADD per record in a single pipeline round trip.
func (s *RedisSink) InsertMany(ctx context.Context, records []model.SensorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	pipe := s.client.Pipeline()
	for _, record := range records {
		args := &redis.XAddArgs{
			Stream: s.stream,
			Values: streamValues(record),
		}
		if s.maxLen > 0 {
			args.MaxLen = s.maxLen
			args.Approx = true
		}
		pipe.XAdd(ctx, args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, newError(s.Name(), len(records), err)
	}
	return len(records), nil
}

func streamValues(record model.SensorRecord) map[string]interface{} {
	return map[string]interface{}{
		"timestamp":   record.Timestamp.Format(time.RFC3339Nano),
		"temperature": strconv.FormatFloat(record.Temperature, 'f', -1, 64),
		"humidity":    strconv.FormatFloat(record.Humidity, 'f', -1, 64),
		"pressure":    strconv.FormatFloat(record.Pressure, 'f', -1, 64),
		"device_id":   record.DeviceId,
		"location":    record.Location,
	}
}

func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSink) Close(_ context.Context) error {
	return s.client.Close()
}
