package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxGoes != 1 {
		t.Errorf("expected MaxGoes=1, got %d", cfg.MaxGoes)
	}
	if cfg.DrawCount != 3 {
		t.Errorf("expected DrawCount=3, got %d", cfg.DrawCount)
	}
	if cfg.NumPiles != 7 {
		t.Errorf("expected NumPiles=7, got %d", cfg.NumPiles)
	}
	if cfg.HasSeed {
		t.Error("no seed should be set by default")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KLONDIKE_MAX_GOES", "5")
	t.Setenv("KLONDIKE_DRAW_COUNT", "1")
	t.Setenv("KLONDIKE_SEED", "-12")
	t.Setenv("KLONDIKE_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxGoes != 5 {
		t.Errorf("expected MaxGoes=5, got %d", cfg.MaxGoes)
	}
	if cfg.DrawCount != 1 {
		t.Errorf("expected DrawCount=1, got %d", cfg.DrawCount)
	}
	if !cfg.HasSeed || cfg.Seed != -12 {
		t.Errorf("expected seed -12, got %d (set=%v)", cfg.Seed, cfg.HasSeed)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug level, got %q", cfg.LogLevel)
	}

	solver := cfg.Solver()
	if solver.MaxGoes != 5 || solver.DrawCount != 1 || solver.NumPiles != 7 {
		t.Errorf("unexpected solver config %+v", solver)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := map[string]string{
		"KLONDIKE_MAX_GOES":   "many",
		"KLONDIKE_SEED":       "0x",
		"KLONDIKE_DRAW_COUNT": "0",
		"KLONDIKE_PILES":      "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("expected an error for %s=%s", key, value)
			}
		})
	}
}
