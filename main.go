package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"firesnake/ai"
	"firesnake/audio"
	"firesnake/config"
	"firesnake/game"
	"firesnake/game/manager"
	"firesnake/store"
	"firesnake/ui"
	"firesnake/ui/terminal"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "firesnake: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "firesnake: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	log, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var st store.Store
	file, err := store.OpenFile(cfg.StorePath())
	if err != nil {
		log.Warn("store unavailable, scores will not be kept", "path", cfg.StorePath(), "err", err)
		st = store.NewMemory()
	} else {
		defer file.Close()
		st = file
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if cfg.Train > 0 {
		return train(cfg, st, seed, log)
	}

	scores := manager.NewStateManager(st, log)
	stats := manager.NewStatsManager(st, log)

	var feedback game.Feedback = game.NopFeedback{}
	if cfg.Sound {
		sp := audio.NewSpeaker(cfg.Volume, log)
		if err := sp.Init(); err != nil {
			log.Warn("audio unavailable", "err", err)
		} else {
			defer sp.Close()
			feedback = sp
		}
	}

	var pilot game.Pilot
	if cfg.Autopilot {
		ap := ai.NewAutopilot(st, seed, log)
		defer func() {
			if err := ap.Save(); err != nil {
				log.Warn("autopilot table not saved", "err", err)
			}
		}()
		pilot = ap
	}

	opts := game.Options{
		Rules:    cfg.Rules(),
		Seed:     cfg.Seed,
		Scores:   scores,
		Stats:    stats,
		Feedback: feedback,
		Pilot:    pilot,
		Logger:   log,
	}
	log.Info("starting", "frontend", cfg.Frontend, "grid", cfg.Grid, "autopilot", cfg.Autopilot)

	switch cfg.Frontend {
	case config.FrontendTerminal:
		return runTerminal(cfg, opts, log)
	default:
		runWindow(cfg, opts, stats, log)
		return nil
	}
}

// train runs headless autopilot episodes until done or interrupted
func train(cfg config.Config, st store.Store, seed uint64, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ap := ai.NewAutopilot(st, seed, log)
	stats, err := ai.Train(ctx, ap, cfg.Rules(), cfg.Train, seed)
	if err != nil {
		return fmt.Errorf("train autopilot: %w", err)
	}
	log.Info("training finished", "episodes", stats.Episodes, "best", stats.Best, "avg", stats.Average)
	fmt.Printf("trained %d episodes: best %d, avg %.1f\n", stats.Episodes, stats.Best, stats.Average)
	return nil
}

func runWindow(cfg config.Config, opts game.Options, stats *manager.StatsManager, log *slog.Logger) {
	ctrl := game.NewController(opts)
	defer ctrl.Close()

	ui.NewWindow(ctrl, ui.WindowOptions{
		Title:          "Snake",
		SwipeThreshold: cfg.Swipe,
		DefaultName:    cfg.Name,
		Stats:          stats,
		Logger:         log,
	}).Run()
}

func runTerminal(cfg config.Config, opts game.Options, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	fe := terminal.New(screen, terminal.Options{
		SwipeThreshold: cfg.Swipe,
		DefaultName:    cfg.Name,
		Logger:         log,
	})
	opts.Frame = fe.OnFrame
	opts.Changed = fe.OnChange

	ctrl := game.NewController(opts)
	defer ctrl.Close()

	fe.Run(ctrl)
	return nil
}

// newLogger writes text logs to path, or to stderr for config.LogStderr
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" || path == config.LogStderr {
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(log)
	return log, func() { f.Close() }, nil
}
