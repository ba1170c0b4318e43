package model

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TimeLimitSeconds != 30 || cfg.Workers != 4 || cfg.MinGapMinutes != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MakespanWeight != 1 || cfg.TardinessWeight != 1 {
		t.Fatalf("unexpected weights: %+v", cfg)
	}
	if !cfg.Constraints.Precedence || !cfg.Constraints.NoOverlap || cfg.Constraints.SetupTime {
		t.Fatalf("unexpected toggles: %+v", cfg.Constraints)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestSetDefaultsKeepsExplicitZeroGap(t *testing.T) {
	cfg := SchedulerConfig{TimeLimitSeconds: 5, MinGapMinutes: 0, MakespanWeight: 1}
	cfg.SetDefaults()
	if cfg.MinGapMinutes != 0 {
		t.Fatalf("explicit zero gap was overridden to %d", cfg.MinGapMinutes)
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers default missing")
	}
}

func TestSetDefaultsKeepsExplicitZeroWeights(t *testing.T) {
	cfg := SchedulerConfig{TimeLimitSeconds: 5}
	cfg.SetDefaults()
	if cfg.MakespanWeight != 0 || cfg.TardinessWeight != 0 {
		t.Fatalf("explicit zero weights were overridden: %+v", cfg)
	}
}

func TestValidateRejectsAllZeroWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MakespanWeight = 0
	cfg.TardinessWeight = 0
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "weight") {
		t.Fatalf("expected weight rejection, got %v", err)
	}
	// A single zero weight stays legal.
	cfg = DefaultConfig()
	cfg.TardinessWeight = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("one positive weight must suffice: %v", err)
	}
}

func TestValidateRejectsDisabledCoreConstraints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Constraints.Precedence = false
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "precedence") {
		t.Fatalf("expected precedence rejection, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Constraints.NoOverlap = false
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "no_overlap") {
		t.Fatalf("expected no_overlap rejection, got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SchedulerConfig)
	}{
		{"zero time limit", func(c *SchedulerConfig) { c.TimeLimitSeconds = 0 }},
		{"zero workers", func(c *SchedulerConfig) { c.Workers = 0 }},
		{"negative gap", func(c *SchedulerConfig) { c.MinGapMinutes = -1 }},
		{"negative setup", func(c *SchedulerConfig) { c.SetupMinutes = -1 }},
		{"negative weight", func(c *SchedulerConfig) { c.MakespanWeight = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
