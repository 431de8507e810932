package sensorgen

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/armadaproject/sensorgen/internal/sensorgen/generator"
	"github.com/armadaproject/sensorgen/internal/sensorgen/metrics"
	"github.com/armadaproject/sensorgen/internal/sensorgen/sink"
)

// Job generates one batch of sensor records and writes it to a sink.
type Job struct {
	generator     *generator.Generator
	sink          sink.Sink
	batchSize     int
	insertTimeout time.Duration
	metrics       *metrics.Metrics
	clock         clock.PassiveClock
}

func NewJob(
	generator *generator.Generator,
	sink sink.Sink,
	batchSize int,
	insertTimeout time.Duration,
	metrics *metrics.Metrics,
	clock clock.PassiveClock,
) *Job {
	return &Job{
		generator:     generator,
		sink:          sink,
		batchSize:     batchSize,
		insertTimeout: insertTimeout,
		metrics:       metrics,
		clock:         clock,
	}
}

// Run performs a single generate-and-insert cycle. Errors from the sink are returned unchanged and the batch is
// not retried.
func (j *Job) Run(ctx context.Context) error {
	log.Infof("Running data generation job at %s", j.clock.Now().Format(time.DateTime))

	records := j.generator.Generate(j.batchSize)

	insertCtx := ctx
	if j.insertTimeout > 0 {
		var cancel context.CancelFunc
		insertCtx, cancel = context.WithTimeout(ctx, j.insertTimeout)
		defer cancel()
	}

	inserted, err := j.sink.InsertMany(insertCtx, records)
	if err != nil {
		j.metrics.RecordFailure(j.sink.Name())
		return err
	}
	j.metrics.RecordSuccess(j.sink.Name(), inserted)
	log.WithField("sink", j.sink.Name()).Infof("Inserted %d sensor records", inserted)
	return nil
}
