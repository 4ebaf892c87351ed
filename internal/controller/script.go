package controller

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Step is one scripted event, pushed After the previous one.
type Step struct {
	After time.Duration
	Event core.InputEvent
}

// Script is a timed sequence of input events.
type Script []Step

// ParseScript reads one step per line:
//
//	<delay> <KIND> [press|release] [value=N] [p=N]
//
// e.g. "100ms LEFT press p=2". Blank lines and lines starting with # are
// skipped. Steps default to a press by seat 1.
func ParseScript(text string) (Script, error) {
	var script Script
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("controller: script line %d: %w", line, err)
		}
		script = append(script, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("controller: read script: %w", err)
	}
	return script, nil
}

func parseStep(fields []string) (Step, error) {
	if len(fields) < 2 {
		return Step{}, fmt.Errorf("want <delay> <KIND>, got %q", strings.Join(fields, " "))
	}

	after, err := time.ParseDuration(fields[0])
	if err != nil {
		return Step{}, err
	}
	if after < 0 {
		return Step{}, fmt.Errorf("negative delay %s", after)
	}

	kind, ok := core.ParseInputKind(strings.ToUpper(fields[1]))
	if !ok {
		return Step{}, fmt.Errorf("unknown input kind %q", fields[1])
	}

	ev := core.NewInputEvent(kind, true, 0)
	for _, f := range fields[2:] {
		switch {
		case f == "press":
			ev.Pressed = true
		case f == "release":
			ev.Pressed = false
		case strings.HasPrefix(f, "value="):
			v, err := strconv.ParseInt(strings.TrimPrefix(f, "value="), 10, 16)
			if err != nil {
				return Step{}, fmt.Errorf("bad value: %w", err)
			}
			ev.Value = int16(v)
		case strings.HasPrefix(f, "p="):
			p, err := strconv.ParseUint(strings.TrimPrefix(f, "p="), 10, 8)
			if err != nil || p < 1 || p > core.MaxPlayers {
				return Step{}, fmt.Errorf("bad player %q", f)
			}
			ev.Player = uint8(p)
		default:
			return Step{}, fmt.Errorf("unknown field %q", f)
		}
	}
	return Step{After: after, Event: ev}, nil
}

// Duration is the total time the script takes to play.
func (s Script) Duration() time.Duration {
	var total time.Duration
	for _, st := range s {
		total += st.After
	}
	return total
}

// Run plays the script into out, sleeping between steps. It returns how
// many events were accepted, and ctx.Err() if it was cancelled midway.
func (s Script) Run(ctx context.Context, out Pusher) (int, error) {
	accepted := 0
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for _, st := range s {
		if st.After > 0 {
			timer.Reset(st.After)
			select {
			case <-ctx.Done():
				return accepted, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return accepted, err
		}
		if out.Push(st.Event) {
			accepted++
		}
	}
	return accepted, nil
}
