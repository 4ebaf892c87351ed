package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func TestMetricsWindowSummary(t *testing.T) {
	t0 := time.Unix(1000, 0)
	m := newMetricsWindow(time.Second, t0)
	target := 100 * time.Millisecond

	var got Summary
	var done bool
	for i := 1; i <= 10; i++ {
		step := 10 * time.Millisecond
		if i == 4 {
			step = 150 * time.Millisecond
		}
		got, done = m.record(t0.Add(time.Duration(i)*100*time.Millisecond), step, target, 3)
		if i < 10 {
			require.False(t, done, "window closed early at tick %d", i)
		}
	}
	require.True(t, done)

	assert.Equal(t, 10, got.Frames)
	assert.Equal(t, time.Second, got.Window)
	assert.InDelta(t, 10.0, got.EffectiveFPS, 1e-9)
	assert.InDelta(t, 10.0, got.TargetFPS, 1e-9)
	assert.Equal(t, 150*time.Millisecond, got.MaxStep)
	assert.Equal(t, 24*time.Millisecond, got.AvgStep)
	assert.Equal(t, 100*time.Millisecond, got.AvgLoop)
	assert.Equal(t, 1, got.Overruns)
	assert.Equal(t, uint64(3), got.Dropped)

	// Accumulators restart with the next window.
	next, done := m.record(t0.Add(1100*time.Millisecond), time.Millisecond, target, 5)
	assert.False(t, done)
	assert.Zero(t, next)
	assert.Equal(t, 1, m.frames)
	assert.Equal(t, 0, m.overruns)
	assert.Equal(t, uint64(3), m.dropBase)
}

func TestMetricsPauseIsNotALongFrame(t *testing.T) {
	t0 := time.Unix(1000, 0)
	m := newMetricsWindow(time.Minute, t0)

	m.record(t0.Add(100*time.Millisecond), 0, time.Second, 0)
	m.pause(t0.Add(150 * time.Millisecond))
	m.resume(t0.Add(30 * time.Second))
	m.record(t0.Add(30*time.Second+50*time.Millisecond), 0, time.Second, 0)

	assert.Equal(t, 100*time.Millisecond, m.loopMax, "the paused span is not a loop interval")
	assert.Equal(t, t0.Add(30*time.Second-150*time.Millisecond), m.windowStart)
}

func TestMetricsRepeatedPauseKeepsFirstPause(t *testing.T) {
	t0 := time.Unix(1000, 0)
	m := newMetricsWindow(time.Minute, t0)

	m.record(t0.Add(100*time.Millisecond), 0, time.Second, 0)
	m.pause(t0.Add(100 * time.Millisecond))
	m.pause(t0.Add(60 * time.Second))
	m.resume(t0.Add(61 * time.Second))
	m.record(t0.Add(61*time.Second+40*time.Millisecond), 0, time.Second, 0)

	assert.Equal(t, 100*time.Millisecond, m.loopMax, "the whole paused span is shifted out")
}

func TestSchedulerDoublePauseIsNotALongFrame(t *testing.T) {
	var summaries []Summary
	f := newFixture(t, 20, 10, func(o *Options) {
		o.FPS = 25
		o.Metrics = true
		o.MetricsPeriod = time.Second
		o.OnSummary = func(s Summary) { summaries = append(summaries, s) }
	})

	require.True(t, f.tick(40*time.Millisecond))
	f.sched.Pause()
	f.clock.Advance(60 * time.Second)
	f.sched.Pause()
	assert.False(t, f.sched.Running())
	f.clock.Advance(time.Second)
	f.sched.Resume()

	for i := 0; i < 200; i++ {
		f.tick(40 * time.Millisecond)
	}

	require.NotEmpty(t, summaries)
	first := summaries[0]
	assert.Equal(t, 40*time.Millisecond, first.MaxLoop, "the pause is not reported as a frame")
	assert.InDelta(t, 25.0, first.EffectiveFPS, 2.0)
}

func TestSchedulerEmitsSummaries(t *testing.T) {
	var summaries []Summary
	f := newFixture(t, 20, 10, func(o *Options) {
		o.FPS = 10
		o.Metrics = true
		o.MetricsPeriod = time.Second
		o.QueueCapacity = 2
		o.OnSummary = func(s Summary) { summaries = append(summaries, s) }
	})

	for i := 0; i < 5; i++ {
		f.sched.SendInput(core.KindA, true, 0)
	}
	for i := 0; i < 25; i++ {
		f.tick(100 * time.Millisecond)
	}

	require.Len(t, summaries, 2)
	assert.Equal(t, 10, summaries[0].Frames)
	assert.Equal(t, uint64(3), summaries[0].Dropped)
	assert.Equal(t, uint64(0), summaries[1].Dropped)

	last, ok := f.sched.LastSummary()
	require.True(t, ok)
	assert.Equal(t, summaries[1], last)
}

func TestMetricsDoNotChangeScheduling(t *testing.T) {
	run := func(metrics bool) []float64 {
		f := newFixture(t, 20, 10, func(o *Options) {
			o.Metrics = metrics
			o.MetricsPeriod = 100 * time.Millisecond
		})
		for _, d := range []time.Duration{40, 10, 30, 200, 33, 5000} {
			f.tick(d * time.Millisecond)
		}
		return f.snake.dts
	}

	assert.Equal(t, run(false), run(true))
}
