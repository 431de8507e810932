package sensorgen

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"

	"github.com/armadaproject/sensorgen/internal/common"
	"github.com/armadaproject/sensorgen/internal/common/app"
	"github.com/armadaproject/sensorgen/internal/common/health"
	"github.com/armadaproject/sensorgen/internal/common/task"
	"github.com/armadaproject/sensorgen/internal/sensorgen/configuration"
	"github.com/armadaproject/sensorgen/internal/sensorgen/generator"
	"github.com/armadaproject/sensorgen/internal/sensorgen/metrics"
	"github.com/armadaproject/sensorgen/internal/sensorgen/sink"
)

const (
	JobName = "sensor-data-generation"

	sinkPingTimeout  = 5 * time.Second
	sinkCloseTimeout = 10 * time.Second
)

// Run starts the periodic generation job and serves /health and /metrics until a SIGINT or SIGTERM is received.
func Run(config configuration.Configuration) error {
	g, ctx := errgroup.WithContext(app.CreateContextWithShutdown())

	//////////////////////////////////////////////////////////////////////////
	// Health Checks
	//////////////////////////////////////////////////////////////////////////
	mux := common.NewHttpMux()
	startupCompleteCheck := health.NewStartupCompleteChecker()
	healthChecks := health.NewMultiChecker(startupCompleteCheck)
	health.SetupHttpMux(mux, healthChecks)
	shutdownHttpServer := common.ServeHttp(config.Http.Port, mux)
	defer shutdownHttpServer()

	//////////////////////////////////////////////////////////////////////////
	// Sink
	//////////////////////////////////////////////////////////////////////////
	s, err := sink.New(ctx, config.Sink)
	if err != nil {
		return errors.WithMessage(err, "error creating sink")
	}
	defer closeSink(s)
	if pinger, ok := s.(sink.Pinger); ok {
		healthChecks.Add(health.NewPingChecker(s.Name(), pinger.Ping, sinkPingTimeout))
	}

	//////////////////////////////////////////////////////////////////////////
	// Scheduler
	//////////////////////////////////////////////////////////////////////////
	m := metrics.New()
	prometheus.MustRegister(m)
	job := newJob(config, s, m)
	scheduler := task.NewScheduler(JobName, job.Run, config.Schedule.Interval, config.Schedule.PollPeriod, m.JobLatency())
	log.Infof("Generating %d records every %s", config.Generator.BatchSize, config.Schedule.Interval)
	g.Go(func() error { return scheduler.Run(ctx) })

	// Mark startup as complete, will allow the health check to return healthy
	startupCompleteCheck.MarkComplete()

	return g.Wait()
}

// RunOnce runs a single generation job and returns its error.
func RunOnce(config configuration.Configuration) error {
	ctx := app.CreateContextWithShutdown()
	s, err := sink.New(ctx, config.Sink)
	if err != nil {
		return errors.WithMessage(err, "error creating sink")
	}
	defer closeSink(s)
	return newJob(config, s, metrics.New()).Run(ctx)
}

func newJob(config configuration.Configuration, s sink.Sink, m *metrics.Metrics) *Job {
	seed := config.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	realClock := clock.RealClock{}
	gen := generator.New(rand.New(rand.NewSource(seed)), realClock)
	return NewJob(gen, s, config.Generator.BatchSize, config.Sink.InsertTimeout, m, realClock)
}

func closeSink(s sink.Sink) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkCloseTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.WithError(errors.WithStack(err)).Warnf("%s sink didn't close down cleanly", s.Name())
	}
}
