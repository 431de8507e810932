package sink

import (
	"context"

	"github.com/armadaproject/sensorgen/internal/sensorgen/model"
)

// Sink durably persists batches of sensor records.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	// InsertMany synchronously writes all records in one bulk operation and returns how many were accepted.
	// Any failure is returned as *Error.
	InsertMany(ctx context.Context, records []model.SensorRecord) (int, error)
	// Close releases the connection held by the sink.
	Close(ctx context.Context) error
}

// Pinger is implemented by sinks that can cheaply check connectivity to their backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
