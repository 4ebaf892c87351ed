package input

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func up(value int16) core.InputEvent {
	return core.NewInputEvent(core.KindUp, true, value)
}

func TestNewQueueDefaults(t *testing.T) {
	q := NewQueue(0, 0, nil)
	assert.Equal(t, DefaultCapacity, q.Cap())
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.HasEvents())
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue(8, DefaultPushTimeout, nil)

	e1 := core.NewInputEvent(core.KindLeft, true, 1)
	e2 := core.NewInputEvent(core.KindA, true, 2)
	e3 := core.NewInputEvent(core.KindLeft, false, 3)
	require.True(t, q.Push(e1))
	require.True(t, q.Push(e2))
	require.True(t, q.Push(e3))

	for _, want := range []core.InputEvent{e1, e2, e3} {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.Pop()
	assert.False(t, ok, "Pop on an empty queue reports empty")
}

// Overflow rejects the newest event and keeps what was already queued. This
// backpressure policy is intentional: a burst never displaces earlier input.
func TestQueueOverflowRejectsNewest(t *testing.T) {
	q := NewQueue(32, DefaultPushTimeout, nil)

	for i := 0; i < 40; i++ {
		accepted := q.Push(up(int16(i)))
		assert.Equal(t, i < 32, accepted, "push %d", i)
		assert.LessOrEqual(t, q.Len(), q.Cap())
	}

	assert.Equal(t, 32, q.Len())
	stats := q.Stats()
	assert.Equal(t, uint64(8), stats.Dropped)
	assert.Equal(t, uint64(32), stats.Pushed)

	for i := 0; i < 32; i++ {
		ev, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, int16(i), ev.Value)
	}
	assert.False(t, q.HasEvents())
}

func TestQueueWrapsAround(t *testing.T) {
	q := NewQueue(4, 0, nil)

	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, q.Push(up(int16(round*10+i))))
		}
		for i := 0; i < 3; i++ {
			ev, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, int16(round*10+i), ev.Value)
		}
	}
}

func TestQueueIgnoresNone(t *testing.T) {
	q := NewQueue(4, 0, nil)

	assert.False(t, q.Push(core.NewInputEvent(core.KindNone, true, 0)))
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, Stats{}, q.Stats(), "NONE is neither queued nor counted")
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue(8, 0, nil)
	for i := 0; i < 5; i++ {
		q.Push(up(int16(i)))
	}

	got := q.Drain(nil)
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, int16(i), ev.Value)
	}
	assert.Equal(t, 0, q.Len())

	// The buffer is reusable and keeps its prefix.
	q.Push(up(9))
	got = q.Drain(got[:1])
	assert.Equal(t, []int16{0, 9}, []int16{got[0].Value, got[1].Value})
}

func TestQueueClear(t *testing.T) {
	q := NewQueue(8, 0, nil)
	q.Push(up(1))
	q.Push(up(2))
	q.Push(up(3))

	assert.True(t, q.Clear())
	_, ok := q.Pop()
	assert.False(t, ok)
	assert.True(t, q.Push(up(4)), "queue accepts events after Clear")
}

func TestQueueContentionIsSoft(t *testing.T) {
	q := NewQueue(8, time.Millisecond, nil)
	q.Push(up(1))

	require.True(t, q.lock.TryAcquire(1)) // hold the lock as another goroutine would

	_, ok := q.Pop()
	assert.False(t, ok, "contended Pop reports empty")
	assert.False(t, q.HasEvents(), "contended HasEvents reports empty")
	assert.Empty(t, q.Drain(nil))
	assert.False(t, q.Push(up(2)), "Push gives up after the timeout")
	assert.False(t, q.Clear())

	stats := q.Stats()
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.Equal(t, uint64(5), stats.Contended)

	q.unlock()
	ev, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, int16(1), ev.Value, "queued events survive contention")
}

func TestQueuePushWaitsForReleasedLock(t *testing.T) {
	q := NewQueue(8, time.Second, nil)
	require.True(t, q.lock.TryAcquire(1))

	go func() {
		time.Sleep(5 * time.Millisecond)
		q.unlock()
	}()

	assert.True(t, q.Push(up(1)), "Push takes the lock once it is released within the timeout")
	assert.Equal(t, uint64(0), q.Stats().Contended)
	assert.Equal(t, 1, q.Len())
}

func TestQueueConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	const producers = 4
	const perProducer = 200

	q := NewQueue(producers*perProducer, 50*time.Millisecond, nil)

	var wg sync.WaitGroup
	for p := 1; p <= producers; p++ {
		wg.Add(1)
		go func(player uint8) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(core.InputEvent{Kind: core.KindRight, Player: player, Pressed: true, Value: int16(i)})
			}
		}(uint8(p))
	}
	wg.Wait()

	last := map[uint8]int16{}
	var events []core.InputEvent
	events = q.Drain(events)
	for _, ev := range events {
		if prev, seen := last[ev.Player]; seen {
			assert.Greater(t, ev.Value, prev, "player %d out of order", ev.Player)
		}
		last[ev.Player] = ev.Value
	}

	stats := q.Stats()
	assert.Equal(t, uint64(len(events)), stats.Pushed)
	assert.Equal(t, uint64(producers*perProducer), stats.Pushed+stats.Dropped)
}
