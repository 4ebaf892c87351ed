// Package input provides the bounded event queue that carries controller
// events from any number of producer goroutines to the single goroutine that
// runs the games.
package input

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
)

const (
	// DefaultCapacity is the queue size used when none is configured.
	DefaultCapacity = 32
	// DefaultPushTimeout bounds how long a producer waits for the lock.
	DefaultPushTimeout = 10 * time.Millisecond

	dropLogEvery = 100
)

// Stats is a snapshot of the queue counters.
type Stats struct {
	Pushed    uint64 // Events accepted
	Dropped   uint64 // Events rejected because the queue was full or locked
	Contended uint64 // Lock acquisitions that gave up
}

// Queue is a fixed-capacity FIFO of input events. Push is safe from any
// goroutine and never blocks longer than the push timeout; Pop, Drain and
// HasEvents never wait at all and report "empty" when the lock is taken.
//
// When the queue is full the incoming event is dropped; events already
// queued are never evicted.
type Queue struct {
	lock *semaphore.Weighted // Weight 1; holding it is holding the lock
	buf  []core.InputEvent
	head int
	size int

	pushTimeout time.Duration
	logger      *log.Logger

	pushed    atomic.Uint64
	dropped   atomic.Uint64
	contended atomic.Uint64
}

// NewQueue creates a queue. A capacity <= 0 selects DefaultCapacity and a
// pushTimeout <= 0 makes Push give up immediately on contention. A nil
// logger discards drop reports.
func NewQueue(capacity int, pushTimeout time.Duration, logger *log.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if pushTimeout < 0 {
		pushTimeout = 0
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Queue{
		lock:        semaphore.NewWeighted(1),
		buf:         make([]core.InputEvent, capacity),
		pushTimeout: pushTimeout,
		logger:      logger.With("component", "input"),
	}
}

// tryLock takes the lock, waiting at most wait. The uncontended path never
// allocates a context.
func (q *Queue) tryLock(wait time.Duration) bool {
	if q.lock.TryAcquire(1) {
		return true
	}
	if wait <= 0 {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return q.lock.Acquire(ctx, 1) == nil
}

func (q *Queue) unlock() {
	q.lock.Release(1)
}

// Push appends ev. It returns false if the event was dropped. NONE events
// are ignored and not counted as drops.
func (q *Queue) Push(ev core.InputEvent) bool {
	if !ev.Actionable() {
		return false
	}

	if !q.tryLock(q.pushTimeout) {
		q.contended.Add(1)
		q.drop(ev, "lock timeout")
		return false
	}

	if q.size == len(q.buf) {
		q.unlock()
		q.drop(ev, "queue full")
		return false
	}
	q.buf[(q.head+q.size)%len(q.buf)] = ev
	q.size++
	q.unlock()

	q.pushed.Add(1)
	return true
}

func (q *Queue) drop(ev core.InputEvent, reason string) {
	n := q.dropped.Add(1)
	if n == 1 || n%dropLogEvery == 0 {
		q.logger.Warn("input event dropped",
			"reason", reason,
			"kind", ev.Kind,
			"player", ev.Player,
			"dropped_total", n)
	}
}

// Pop removes and returns the oldest event. It reports false when the queue
// is empty or another goroutine holds the lock.
func (q *Queue) Pop() (core.InputEvent, bool) {
	if !q.tryLock(0) {
		q.contended.Add(1)
		return core.InputEvent{}, false
	}
	defer q.unlock()

	if q.size == 0 {
		return core.InputEvent{}, false
	}
	ev := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return ev, true
}

// Drain appends every queued event to dst in FIFO order and empties the
// queue in one critical section. On contention it returns dst unchanged.
func (q *Queue) Drain(dst []core.InputEvent) []core.InputEvent {
	if !q.tryLock(0) {
		q.contended.Add(1)
		return dst
	}
	defer q.unlock()

	for i := 0; i < q.size; i++ {
		dst = append(dst, q.buf[(q.head+i)%len(q.buf)])
	}
	q.head = 0
	q.size = 0
	return dst
}

// HasEvents reports whether at least one event is queued. Contention counts
// as empty.
func (q *Queue) HasEvents() bool {
	if !q.tryLock(0) {
		q.contended.Add(1)
		return false
	}
	defer q.unlock()
	return q.size > 0
}

// Clear discards all queued events. It waits up to the push timeout for the
// lock and returns false if it could not get it.
func (q *Queue) Clear() bool {
	if !q.tryLock(q.pushTimeout) {
		q.contended.Add(1)
		q.logger.Warn("input queue clear timed out", "timeout", q.pushTimeout)
		return false
	}
	defer q.unlock()

	q.head = 0
	q.size = 0
	return true
}

// Len returns the number of queued events. It waits like Clear; on timeout
// it returns 0.
func (q *Queue) Len() int {
	if !q.tryLock(q.pushTimeout) {
		q.contended.Add(1)
		return 0
	}
	defer q.unlock()
	return q.size
}

// Cap returns the fixed capacity.
func (q *Queue) Cap() int {
	return len(q.buf)
}

// Stats returns the current counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Pushed:    q.pushed.Load(),
		Dropped:   q.dropped.Load(),
		Contended: q.contended.Load(),
	}
}
