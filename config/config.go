// Package config resolves runtime settings from defaults, a .env file,
// SNAKE_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"firesnake/game/types"
	"firesnake/input"

	"github.com/joho/godotenv"
)

const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"

	// LogStderr as the log path sends logs to standard error
	LogStderr = "-"

	minGrid = 5
)

type Config struct {
	Grid           int
	Speed          time.Duration
	MinSpeed       time.Duration
	SpeedStep      time.Duration
	ScoreIncrement int
	Frontend       string
	DataDir        string
	LogFile        string
	Sound          bool
	Volume         float64
	Swipe          float64
	Autopilot      bool
	Train          int
	Seed           uint64
	Name           string
}

func Default() Config {
	return Config{
		Grid:           types.DefaultGridSize,
		Speed:          types.DefaultInitialSpeed,
		MinSpeed:       types.DefaultMinSpeed,
		SpeedStep:      types.DefaultSpeedStep,
		ScoreIncrement: types.DefaultScoreIncrement,
		Frontend:       FrontendWindow,
		DataDir:        "data",
		LogFile:        filepath.Join("data", "firesnake.log"),
		Sound:          true,
		Volume:         0.5,
		Swipe:          input.DefaultSwipeThreshold,
	}
}

// Load reads .env from the working directory, then the environment, then args
func Load(args []string) (Config, error) {
	return LoadFrom(".env", args, os.LookupEnv)
}

// LoadFrom is Load with an explicit .env path and environment lookup
func LoadFrom(envFile string, args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read %s: %w", envFile, err)
		default:
			if err := cfg.applyEnv(func(k string) (string, bool) {
				v, ok := vars[k]
				return v, ok
			}); err != nil {
				return cfg, fmt.Errorf("%s: %w", envFile, err)
			}
		}
	}

	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return cfg, fmt.Errorf("environment: %w", err)
		}
	}

	if err := cfg.applyFlags(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"SNAKE_GRID":            &c.Grid,
		"SNAKE_SCORE_INCREMENT": &c.ScoreIncrement,
		"SNAKE_TRAIN":           &c.Train,
	}
	for k, dst := range ints {
		if v, ok := lookup(k); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = n
		}
	}

	millis := map[string]*time.Duration{
		"SNAKE_SPEED":      &c.Speed,
		"SNAKE_MIN_SPEED":  &c.MinSpeed,
		"SNAKE_SPEED_STEP": &c.SpeedStep,
	}
	for k, dst := range millis {
		if v, ok := lookup(k); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = time.Duration(n) * time.Millisecond
		}
	}

	strs := map[string]*string{
		"SNAKE_FRONTEND": &c.Frontend,
		"SNAKE_DATA":     &c.DataDir,
		"SNAKE_LOG":      &c.LogFile,
		"SNAKE_NAME":     &c.Name,
	}
	for k, dst := range strs {
		if v, ok := lookup(k); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"SNAKE_SOUND":     &c.Sound,
		"SNAKE_AUTOPILOT": &c.Autopilot,
	}
	for k, dst := range bools {
		if v, ok := lookup(k); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = b
		}
	}

	floats := map[string]*float64{
		"SNAKE_VOLUME": &c.Volume,
		"SNAKE_SWIPE":  &c.Swipe,
	}
	for k, dst := range floats {
		if v, ok := lookup(k); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			*dst = f
		}
	}

	if v, ok := lookup("SNAKE_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SNAKE_SEED: %w", err)
		}
		c.Seed = n
	}
	return nil
}

func (c *Config) applyFlags(args []string) error {
	flags := flag.NewFlagSet("firesnake", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	speed := flags.Int("speed", int(c.Speed/time.Millisecond), "Initial tick interval in milliseconds")
	minSpeed := flags.Int("min-speed", int(c.MinSpeed/time.Millisecond), "Fastest tick interval in milliseconds")
	step := flags.Int("speed-step", int(c.SpeedStep/time.Millisecond), "Interval reduction per food in milliseconds")
	flags.IntVar(&c.Grid, "grid", c.Grid, "Cells per side of the board")
	flags.StringVar(&c.Frontend, "frontend", c.Frontend, "Frontend: window or terminal")
	flags.StringVar(&c.DataDir, "data", c.DataDir, "Directory for saved scores and history")
	flags.StringVar(&c.LogFile, "log", c.LogFile, "Log file path, - for stderr")
	flags.BoolVar(&c.Sound, "sound", c.Sound, "Play feedback sounds")
	flags.Float64Var(&c.Volume, "volume", c.Volume, "Sound volume between 0 and 1")
	flags.Float64Var(&c.Swipe, "swipe", c.Swipe, "Minimum drag distance for a swipe in pixels")
	flags.BoolVar(&c.Autopilot, "autopilot", c.Autopilot, "Let the Q-learning agent play")
	flags.IntVar(&c.Train, "train", c.Train, "Train the autopilot headless for this many episodes, then exit")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "Food placement seed, 0 for the clock")
	flags.StringVar(&c.Name, "name", c.Name, "Default player name for new records")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	c.Speed = time.Duration(*speed) * time.Millisecond
	c.MinSpeed = time.Duration(*minSpeed) * time.Millisecond
	c.SpeedStep = time.Duration(*step) * time.Millisecond
	return nil
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	switch {
	case c.Grid < minGrid:
		return fmt.Errorf("grid must be at least %d, got %d", minGrid, c.Grid)
	case c.Speed <= 0 || c.MinSpeed <= 0:
		return fmt.Errorf("speeds must be positive, got %v and %v", c.Speed, c.MinSpeed)
	case c.MinSpeed > c.Speed:
		return fmt.Errorf("min speed %v is slower than initial speed %v", c.MinSpeed, c.Speed)
	case c.SpeedStep < 0:
		return fmt.Errorf("speed step must not be negative, got %v", c.SpeedStep)
	case c.ScoreIncrement < 0:
		return fmt.Errorf("score increment must not be negative, got %d", c.ScoreIncrement)
	case c.Frontend != FrontendWindow && c.Frontend != FrontendTerminal:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("volume must be between 0 and 1, got %v", c.Volume)
	case c.Swipe < 0:
		return fmt.Errorf("swipe threshold must not be negative, got %v", c.Swipe)
	case c.Train < 0:
		return fmt.Errorf("training episodes must not be negative, got %d", c.Train)
	}
	return nil
}

// Rules derives the engine rules
func (c Config) Rules() types.Rules {
	return types.Rules{
		Grid:           types.NewSquareGrid(c.Grid),
		InitialSpeed:   c.Speed,
		MinSpeed:       c.MinSpeed,
		SpeedStep:      c.SpeedStep,
		ScoreIncrement: c.ScoreIncrement,
	}
}

// StorePath is where scores, history and the autopilot table are kept
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.msgpack")
}
