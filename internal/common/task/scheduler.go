package task

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/armadaproject/sensorgen/internal/common/logging"
)

// Task is the unit of work fired by a Scheduler. A returned error is logged and otherwise ignored.
type Task func(ctx context.Context) error

// Scheduler fires a task once on startup and then again every time at least interval has passed since the task
// last started. Readiness is polled every pollPeriod, so a firing may lag the nominal boundary by up to one
// poll period.
//
// Scheduler is not threadsafe. Checking and firing happen on the goroutine calling Run, so the task is never
// run concurrently with itself.
type Scheduler struct {
	name       string
	task       Task
	interval   time.Duration
	pollPeriod time.Duration
	// Observes how long each firing takes. May be nil.
	latency prometheus.Observer
	// Used for all timing decisions. Injected here so that we can mock out for testing
	clock     clock.Clock
	lastFired time.Time
	fired     bool
	// Called after every firing. Used in tests.
	onTaskCompleted func(err error)
}

func NewScheduler(name string, task Task, interval time.Duration, pollPeriod time.Duration, latency prometheus.Observer) *Scheduler {
	return &Scheduler{
		name:       name,
		task:       task,
		interval:   interval,
		pollPeriod: pollPeriod,
		latency:    latency,
		clock:      clock.RealClock{},
	}
}

// Run fires the task immediately and then polls until the supplied context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Infof("Starting %s: firing every %s, polling every %s", s.name, s.interval, s.pollPeriod)
	s.fire(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Infof("Stopping %s", s.name)
			return nil
		case <-s.clock.After(s.pollPeriod):
			s.Tick(ctx)
		}
	}
}

// Tick fires the task if it has never fired or if at least one interval has elapsed since it last started.
// It returns true if the task was fired.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.due() {
		return false
	}
	s.fire(ctx)
	return true
}

func (s *Scheduler) due() bool {
	return !s.fired || s.clock.Since(s.lastFired) >= s.interval
}

func (s *Scheduler) fire(ctx context.Context) {
	start := s.clock.Now()
	s.lastFired = start
	s.fired = true

	err := s.task(ctx)

	taken := s.clock.Since(start)
	if s.latency != nil {
		s.latency.Observe(taken.Seconds())
	}
	if err != nil {
		logging.WithStacktrace(log.WithField("task", s.name), err).Errorf("Task failed after %s", taken)
	} else {
		log.WithField("task", s.name).Debugf("Task completed in %s", taken)
	}
	if s.onTaskCompleted != nil {
		s.onTaskCompleted(err)
	}
}
