package sensorgen

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaproject/sensorgen/internal/common/task"
	"github.com/armadaproject/sensorgen/internal/sensorgen/generator"
	"github.com/armadaproject/sensorgen/internal/sensorgen/sink"
)

func TestScheduledJob_KeepsFiringAfterSinkError(t *testing.T) {
	s := &recordingSink{err: &sink.Error{
		Sink:    "recording",
		Records: generator.DefaultBatchSize,
		Err:     errors.New("connection refused"),
	}}
	job, m := newTestJob(s, generator.DefaultBatchSize, 0)
	scheduler := task.NewScheduler(JobName, job.Run, time.Nanosecond, time.Nanosecond, m.JobLatency())
	ctx := context.Background()

	require.True(t, scheduler.Tick(ctx))
	require.Eventually(t, func() bool { return scheduler.Tick(ctx) }, 5*time.Second, time.Millisecond)

	assert.Len(t, s.batches, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FailedJobs()))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SinkErrors("recording")))
}
