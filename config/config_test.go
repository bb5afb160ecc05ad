package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"firesnake/game/types"
)

func noEnv(string) (string, bool) { return "", false }

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom("", nil, noEnv)
	if err != nil {
		t.Fatalf("Expected defaults to load, got: %v", err)
	}

	r := cfg.Rules()
	if r != types.DefaultRules() {
		t.Errorf("Expected default rules, got %+v", r)
	}
	if cfg.Frontend != FrontendWindow {
		t.Errorf("Expected window frontend, got %q", cfg.Frontend)
	}
	if cfg.StorePath() != filepath.Join("data", "store.msgpack") {
		t.Errorf("Unexpected store path %q", cfg.StorePath())
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if _, err := LoadFrom(missing, nil, noEnv); err != nil {
		t.Errorf("Expected a missing .env to be ignored, got: %v", err)
	}
}

func TestPrecedence(t *testing.T) {
	envFile := writeEnv(t, "SNAKE_GRID=30\nSNAKE_SPEED=200\nSNAKE_NAME=dotenv\nSNAKE_SOUND=false\n")
	env := map[string]string{
		"SNAKE_SPEED": "180",
		"SNAKE_NAME":  "environ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := LoadFrom(envFile, []string{"-name", "flag", "-frontend", "terminal"}, lookup)
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}

	if cfg.Grid != 30 {
		t.Errorf("Expected grid from .env, got %d", cfg.Grid)
	}
	if cfg.Speed != 180*time.Millisecond {
		t.Errorf("Expected speed from the environment, got %v", cfg.Speed)
	}
	if cfg.Name != "flag" {
		t.Errorf("Expected name from flags, got %q", cfg.Name)
	}
	if cfg.Sound {
		t.Errorf("Expected sound disabled by .env")
	}
	if cfg.Frontend != FrontendTerminal {
		t.Errorf("Expected terminal frontend, got %q", cfg.Frontend)
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("SNAKE_SEED", "1234")
	t.Setenv("SNAKE_AUTOPILOT", "true")
	chdir(t, t.TempDir())

	cfg, err := Load([]string{"-speed", "120", "-min-speed", "40"})
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Seed != 1234 || !cfg.Autopilot {
		t.Errorf("Expected seed and autopilot from env, got %d and %v", cfg.Seed, cfg.Autopilot)
	}
	if cfg.Speed != 120*time.Millisecond || cfg.MinSpeed != 40*time.Millisecond {
		t.Errorf("Expected speeds from flags, got %v and %v", cfg.Speed, cfg.MinSpeed)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"grid too small", "", []string{"-grid", "4"}},
		{"zero speed", "", []string{"-speed", "0"}},
		{"min slower than initial", "", []string{"-speed", "50", "-min-speed", "60"}},
		{"negative step", "", []string{"-speed-step", "-1"}},
		{"unknown frontend", "", []string{"-frontend", "web"}},
		{"volume out of range", "", []string{"-volume", "1.5"}},
		{"unknown flag", "", []string{"-nope"}},
		{"negative training", "", []string{"-train", "-5"}},
		{"bad env int", "SNAKE_GRID=big\n", nil},
		{"bad env bool", "SNAKE_SOUND=loud\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envFile := ""
			if tt.env != "" {
				envFile = writeEnv(t, tt.env)
			}
			if _, err := LoadFrom(envFile, tt.args, noEnv); err == nil {
				t.Errorf("Expected an error")
			}
		})
	}
}
