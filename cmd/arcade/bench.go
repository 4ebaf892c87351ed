package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/platform/headless"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

var (
	flagDuration  time.Duration
	flagRate      float64
	flagProducers int
	flagAllocWait time.Duration
	flagNoSwitch  bool
	flagPanel     bool
)

var benchCmd = &cobra.Command{
	Use:   "bench [game]",
	Short: "Run a headless stress test",
	Long: `Run the scheduler without a terminal while producer goroutines flood
the input queue, then print a timing report.

The canvas is allocated after --alloc-wait, so the scheduler first runs
without a surface. Halfway through, the next game is switched in unless
--no-switch is set. The canvas takes the terminal size when there is one,
80x24 otherwise.

--panel adds a simulated hardware panel for seat 1: a bouncing push button
behind the debounce and a rotary encoder. --script plays a file of timed
input events, the same format as 'arcade play --script'.

Examples:
  arcade bench
  arcade bench pong --fps 120 --rate 5000 --producers 4
  arcade bench --duration 30s --log-level debug
  arcade bench --producers 0 --panel --script demo.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.DurationVar(&flagDuration, "duration", 5*time.Second, "How long to run")
	f.Float64Var(&flagRate, "rate", 2000, "Events per second per producer")
	f.IntVar(&flagProducers, "producers", 2, "Number of flooding producers")
	f.DurationVar(&flagAllocWait, "alloc-wait", 250*time.Millisecond, "Delay before the canvas gets a buffer")
	f.BoolVar(&flagNoSwitch, "no-switch", false, "Do not switch games halfway through")
	f.BoolVar(&flagPanel, "panel", false, "Drive a simulated button and encoder")
	f.StringVar(&flagScript, "script", "", "Play timed input events from this file")
}

// benchReport is collected on the host goroutine at the end of the run.
type benchReport struct {
	game    string
	ticks   uint64
	fps     float64
	summary runner.Summary
	hasSum  bool
	queue   input.Stats

	panel    *controller.PanelStats
	script   int // Script events accepted
	scripted bool
}

func runBench(cmd *cobra.Command, args []string) error {
	if flagDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", flagDuration)
	}
	if flagProducers < 0 {
		return fmt.Errorf("producers must not be negative, got %d", flagProducers)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := loadScript(flagScript)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LoggingOptions("bench"))
	if err != nil {
		return err
	}

	s := seed()
	dir, err := buildDirectory(cfg, s, logger)
	if err != nil {
		return err
	}
	key, err := resolveGame(dir, cfg, args)
	if err != nil {
		return err
	}

	w, h := 80, 24
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		w, h = tw, th
	}

	canvas := core.NewCanvas(0, 0)
	defer canvas.Close()

	opts := cfg.RunnerOptions()
	opts.Game = key
	opts.Logger = logger
	opts.OnSummary = func(sum runner.Summary) {
		logger.Info("window", "fps", fmt.Sprintf("%.1f", sum.EffectiveFPS), "frames", sum.Frames,
			"overruns", sum.Overruns, "dropped", sum.Dropped)
	}
	sched := runner.New(dir, canvas, opts)
	sched.LogConfig()
	host := headless.New(sched, cfg.Runner.PollInterval, logger)

	g, gctx := errgroup.WithContext(cmd.Context())
	hostCtx, stopHost := context.WithCancel(gctx)
	defer stopHost()
	runCtx, cancelRun := context.WithTimeout(gctx, flagDuration)
	defer cancelRun()

	g.Go(func() error {
		return host.Run(hostCtx)
	})

	g.Go(func() error {
		if !sleepCtx(runCtx, flagAllocWait) {
			return nil
		}
		logger.Info("allocating canvas", "w", w, "h", h)
		return ignoreDone(host.Submit(runCtx, func(*runner.Scheduler) {
			canvas.Resize(w, h)
		}))
	})

	if !flagNoSwitch {
		g.Go(func() error {
			if !sleepCtx(runCtx, flagDuration/2) {
				return nil
			}
			return ignoreDone(host.Submit(runCtx, func(sc *runner.Scheduler) {
				next := dir.Next(sc.GameKey())
				logger.Info("switching game", "from", sc.GameKey(), "to", next)
				sc.SetGame(next)
			}))
		})
	}

	floods := make([]controller.FloodStats, flagProducers)
	for i := range flagProducers {
		f := controller.Flood{
			Rate:   flagRate,
			Player: uint8(i%core.MaxPlayers) + 1,
			Seed:   s + uint64(i),
		}
		g.Go(func() error {
			floods[i] = f.Run(runCtx, sched.Input())
			return nil
		})
	}

	var panelStats controller.PanelStats
	if flagPanel {
		panel := controller.NewPanel(sched.Input(), controller.PanelConfig{
			Player: 1,
			Turn:   30 * time.Millisecond,
			Seed:   s,
		})
		g.Go(func() error {
			panelStats = panel.Run(runCtx)
			return nil
		})
	}

	scriptAccepted := 0
	if len(script) > 0 {
		g.Go(func() error {
			n, err := script.Run(runCtx, sched.Input())
			scriptAccepted = n
			return ignoreDone(err)
		})
	}

	var report benchReport
	g.Go(func() error {
		<-runCtx.Done()
		defer stopHost()
		return host.Do(gctx, func(sc *runner.Scheduler) {
			report = benchReport{
				game:  sc.GameKey(),
				ticks: sc.Ticks(),
				fps:   sc.FPS(),
				queue: sc.Input().Stats(),
			}
			report.summary, report.hasSum = sc.LastSummary()
		})
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("bench: %w", err)
	}

	if flagPanel {
		report.panel = &panelStats
	}
	report.script, report.scripted = scriptAccepted, len(script) > 0
	printReport(report, floods, host.Polls())
	return nil
}

func printReport(r benchReport, floods []controller.FloodStats, polls uint64) {
	fmt.Println("Bench report:")
	fmt.Println()
	fmt.Printf("  %-14s %s\n", "final game", r.game)
	fmt.Printf("  %-14s %.0f\n", "target fps", r.fps)
	fmt.Printf("  %-14s %d\n", "ticks", r.ticks)
	fmt.Printf("  %-14s %d\n", "polls", polls)
	fmt.Printf("  %-14s %d\n", "pushed", r.queue.Pushed)
	fmt.Printf("  %-14s %d\n", "dropped", r.queue.Dropped)
	fmt.Printf("  %-14s %d\n", "contended", r.queue.Contended)

	if len(floods) > 0 {
		fmt.Println()
		fmt.Println("  Producers:")
		for i, f := range floods {
			fmt.Printf("    #%d  sent %d  accepted %d  rejected %d\n", i+1, f.Sent, f.Accepted, f.Rejected())
		}
	}
	if r.panel != nil {
		fmt.Printf("  %-14s %d edges, %d turns\n", "panel", r.panel.Edges, r.panel.Turns)
	}
	if r.scripted {
		fmt.Printf("  %-14s %d accepted\n", "script", r.script)
	}

	fmt.Println()
	if !r.hasSum {
		fmt.Println("  No metrics window completed; run longer than metrics.period.")
		return
	}
	s := r.summary
	fmt.Println("  Last window:")
	fmt.Printf("    %-12s %s\n", "window", s.Window)
	fmt.Printf("    %-12s %d\n", "frames", s.Frames)
	fmt.Printf("    %-12s %.2f (target %.0f)\n", "fps", s.EffectiveFPS, s.TargetFPS)
	fmt.Printf("    %-12s avg %s  max %s\n", "step", s.AvgStep, s.MaxStep)
	fmt.Printf("    %-12s avg %s  max %s\n", "loop", s.AvgLoop, s.MaxLoop)
	fmt.Printf("    %-12s %d\n", "overruns", s.Overruns)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// ignoreDone drops the errors a request gets when the run ends under it.
func ignoreDone(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, headless.ErrStopped) {
		return nil
	}
	return err
}
