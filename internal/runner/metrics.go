package runner

import (
	"time"
)

// DefaultMetricsPeriod is the length of one metrics window.
const DefaultMetricsPeriod = 5 * time.Second

// Summary is the report for one metrics window.
type Summary struct {
	Window       time.Duration
	Frames       int
	EffectiveFPS float64
	TargetFPS    float64
	AvgStep      time.Duration
	MaxStep      time.Duration
	AvgLoop      time.Duration // Tick-to-tick interval
	MaxLoop      time.Duration
	Overruns     int    // Steps that took longer than the period
	Dropped      uint64 // Input events dropped during the window
}

// metricsWindow aggregates tick timings into one Summary per period. It only
// observes; nothing it computes feeds back into scheduling.
type metricsWindow struct {
	period      time.Duration
	windowStart time.Time
	lastTick    time.Time
	pausedAt    time.Time

	frames   int
	stepSum  time.Duration
	stepMax  time.Duration
	loopSum  time.Duration
	loopMax  time.Duration
	overruns int
	dropBase uint64
}

func newMetricsWindow(period time.Duration, now time.Time) *metricsWindow {
	if period <= 0 {
		period = DefaultMetricsPeriod
	}
	return &metricsWindow{period: period, windowStart: now, lastTick: now}
}

// record adds one tick that ended at end. It returns a summary when the tick
// closed the window.
func (m *metricsWindow) record(end time.Time, step, target time.Duration, droppedTotal uint64) (Summary, bool) {
	loop := end.Sub(m.lastTick)
	m.lastTick = end

	m.frames++
	m.stepSum += step
	m.loopSum += loop
	m.stepMax = max(m.stepMax, step)
	m.loopMax = max(m.loopMax, loop)
	if step > target {
		m.overruns++
	}

	if end.Sub(m.windowStart) < m.period {
		return Summary{}, false
	}
	return m.roll(end, target, droppedTotal), true
}

func (m *metricsWindow) roll(now time.Time, target time.Duration, droppedTotal uint64) Summary {
	win := now.Sub(m.windowStart)
	s := Summary{
		Window:   win,
		Frames:   m.frames,
		MaxStep:  m.stepMax,
		MaxLoop:  m.loopMax,
		Overruns: m.overruns,
		Dropped:  droppedTotal - m.dropBase,
	}
	if target > 0 {
		s.TargetFPS = float64(time.Second) / float64(target)
	}
	if m.frames > 0 {
		s.AvgStep = m.stepSum / time.Duration(m.frames)
		s.AvgLoop = m.loopSum / time.Duration(m.frames)
	}
	if win > 0 {
		s.EffectiveFPS = float64(m.frames) / win.Seconds()
	}

	m.windowStart = now
	m.frames = 0
	m.stepSum, m.stepMax = 0, 0
	m.loopSum, m.loopMax = 0, 0
	m.overruns = 0
	m.dropBase = droppedTotal
	return s
}

func (m *metricsWindow) pause(now time.Time) {
	if m.pausedAt.IsZero() {
		m.pausedAt = now
	}
}

// resume shifts the window past the paused span so that neither the
// effective fps nor the first loop interval count the time spent paused.
func (m *metricsWindow) resume(now time.Time) {
	if m.pausedAt.IsZero() {
		m.lastTick = now
		return
	}
	gap := now.Sub(m.pausedAt)
	m.windowStart = m.windowStart.Add(gap)
	m.lastTick = m.lastTick.Add(gap)
	m.pausedAt = time.Time{}
}

// logKeyvals renders a summary as logger key/value pairs.
func (s Summary) logKeyvals() []any {
	return []any{
		"eff_fps", round2(s.EffectiveFPS),
		"target_fps", round2(s.TargetFPS),
		"frames", s.Frames,
		"step_avg", s.AvgStep,
		"step_max", s.MaxStep,
		"loop_avg", s.AvgLoop,
		"loop_max", s.MaxLoop,
		"overruns", s.Overruns,
		"dropped", s.Dropped,
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
