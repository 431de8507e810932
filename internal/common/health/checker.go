package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

type Checker interface {
	Check() error
}

// StartupCompleteChecker fails until MarkComplete is called.
type StartupCompleteChecker struct {
	complete atomic.Bool
}

func NewStartupCompleteChecker() *StartupCompleteChecker {
	return &StartupCompleteChecker{}
}

func (c *StartupCompleteChecker) MarkComplete() {
	c.complete.Store(true)
}

func (c *StartupCompleteChecker) Check() error {
	if c.complete.Load() {
		return nil
	}
	return errors.New("startup is not complete")
}

// PingChecker reports the result of pinging a backend, bounded by a timeout.
type PingChecker struct {
	name    string
	ping    func(ctx context.Context) error
	timeout time.Duration
}

func NewPingChecker(name string, ping func(ctx context.Context) error, timeout time.Duration) *PingChecker {
	return &PingChecker{
		name:    name,
		ping:    ping,
		timeout: timeout,
	}
}

func (c *PingChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.ping(ctx); err != nil {
		return errors.WithMessagef(err, "%s is unreachable", c.name)
	}
	return nil
}
