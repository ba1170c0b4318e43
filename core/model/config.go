package model

import "fmt"

// ConstraintToggles enables or disables individual constraint classes.
// Precedence and NoOverlap are required for a meaningful model; Validate
// rejects configurations that disable them.
type ConstraintToggles struct {
	MachineEligibility bool `json:"machine_eligibility" yaml:"machine_eligibility"`
	Precedence         bool `json:"precedence" yaml:"precedence"`
	NoOverlap          bool `json:"no_overlap" yaml:"no_overlap"`
	WorkingHours       bool `json:"working_hours" yaml:"working_hours"`
	DueDates           bool `json:"due_dates" yaml:"due_dates"`
	SetupTime          bool `json:"setup_time" yaml:"setup_time"`
}

// DefaultToggles enables every constraint class except setup time.
func DefaultToggles() ConstraintToggles {
	return ConstraintToggles{
		MachineEligibility: true,
		Precedence:         true,
		NoOverlap:          true,
		WorkingHours:       true,
		DueDates:           true,
	}
}

// SchedulerConfig is the immutable per-request solver configuration.
type SchedulerConfig struct {
	// TimeLimitSeconds is the hard wall-clock budget for the solve.
	TimeLimitSeconds float64 `json:"time_limit_seconds" yaml:"time_limit_seconds"`
	// Workers fixes the number of parallel search workers. Together with Seed
	// it makes runs reproducible.
	Workers int   `json:"workers" yaml:"workers"`
	Seed    int64 `json:"seed" yaml:"seed"`
	// MinGapMinutes separates consecutive operations of the same job.
	MinGapMinutes int `json:"min_gap_minutes" yaml:"min_gap_minutes"`
	// SetupMinutes is the delay between different product families on the
	// same machine when the setup_time toggle is on.
	SetupMinutes int `json:"setup_minutes" yaml:"setup_minutes"`
	// MakespanWeight and TardinessWeight compose the objective. Either may be
	// zero to drop its term, but at least one must be positive.
	MakespanWeight  float64 `json:"makespan_weight" yaml:"makespan_weight"`
	TardinessWeight float64 `json:"tardiness_weight" yaml:"tardiness_weight"`

	Constraints ConstraintToggles `json:"constraints" yaml:"constraints"`
}

// DefaultConfig returns the configuration used when a request carries none.
func DefaultConfig() SchedulerConfig {
	cfg := SchedulerConfig{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults applies sane defaults to unset fields. Explicitly configured
// zero values for the gap and the objective weights are respected; the
// 10-minute gap and the 1/1 weights only apply to an entirely empty config.
func (c *SchedulerConfig) SetDefaults() {
	if c.IsZero() {
		c.MinGapMinutes = 10
		c.MakespanWeight = 1
		c.TardinessWeight = 1
	}
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = 30
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.Constraints == (ConstraintToggles{}) {
		c.Constraints = DefaultToggles()
	}
}

// IsZero reports whether the config was left entirely unset.
func (c SchedulerConfig) IsZero() bool {
	return c == SchedulerConfig{}
}

// Validate checks mandatory fields and rejects meaningless toggle
// combinations.
func (c SchedulerConfig) Validate() error {
	if c.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time_limit_seconds must be positive")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.MinGapMinutes < 0 {
		return fmt.Errorf("min_gap_minutes must not be negative")
	}
	if c.SetupMinutes < 0 {
		return fmt.Errorf("setup_minutes must not be negative")
	}
	if c.MakespanWeight < 0 || c.TardinessWeight < 0 {
		return fmt.Errorf("objective weights must not be negative")
	}
	if c.MakespanWeight == 0 && c.TardinessWeight == 0 {
		return fmt.Errorf("at least one objective weight must be positive")
	}
	if !c.Constraints.Precedence {
		return fmt.Errorf("precedence constraint cannot be disabled")
	}
	if !c.Constraints.NoOverlap {
		return fmt.Errorf("no_overlap constraint cannot be disabled")
	}
	return nil
}
