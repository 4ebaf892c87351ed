// Package headless hosts a scheduler without a terminal: a plain loop that
// polls at a fixed interval and runs control requests between polls. It
// backs benchmarks and tests.
package headless

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

// DefaultPollInterval is used when none is configured.
const DefaultPollInterval = time.Millisecond

// ErrStopped is returned by Submit and Do once Run has returned.
var ErrStopped = errors.New("headless: host stopped")

// Request is a control call executed on the host goroutine, the only one
// allowed to touch the scheduler.
type Request func(s *runner.Scheduler)

// Host drives one scheduler.
type Host struct {
	sched        *runner.Scheduler
	pollInterval time.Duration
	logger       *log.Logger

	requests chan Request
	done     chan struct{}
	ticks    atomic.Uint64
	polls    atomic.Uint64
}

// New creates a host for sched.
func New(sched *runner.Scheduler, pollInterval time.Duration, logger *log.Logger) *Host {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Host{
		sched:        sched,
		pollInterval: pollInterval,
		logger:       logger.With("component", "headless"),
		requests:     make(chan Request, 16),
		done:         make(chan struct{}),
	}
}

// Run polls the scheduler until ctx is done. Pending requests run before the
// next poll. It returns nil on cancellation.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.done)

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	h.logger.Debug("host started", "poll_interval", h.pollInterval)
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("host stopped", "ticks", h.ticks.Load(), "polls", h.polls.Load())
			return nil
		case req := <-h.requests:
			req(h.sched)
		case <-ticker.C:
			h.sched.Poll()
			h.polls.Add(1)
			h.ticks.Store(h.sched.Ticks())
		}
	}
}

// Submit queues req for the host goroutine without waiting for it to run.
func (h *Host) Submit(ctx context.Context, req Request) error {
	select {
	case <-h.done:
		return ErrStopped
	default:
	}
	select {
	case h.requests <- req:
		return nil
	case <-h.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs req on the host goroutine and waits for it to finish.
func (h *Host) Do(ctx context.Context, req Request) error {
	finished := make(chan struct{})
	err := h.Submit(ctx, func(s *runner.Scheduler) {
		defer close(finished)
		req(s)
	})
	if err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-h.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ticks returns the scheduler's tick count as of the last poll. Safe from
// any goroutine.
func (h *Host) Ticks() uint64 {
	return h.ticks.Load()
}

// Polls returns how many times the host re-entered the scheduler.
func (h *Host) Polls() uint64 {
	return h.polls.Load()
}
