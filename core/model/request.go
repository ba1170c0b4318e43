package model

import (
	"fmt"
	"time"
)

// Operation is an atomic unit of work within a job. It runs on exactly one of
// its eligible machines for a fixed number of minutes.
type Operation struct {
	ID               string   `json:"id" yaml:"id"`
	DurationMinutes  int      `json:"duration_minutes" yaml:"duration_minutes"`
	EligibleMachines []string `json:"eligible_machines" yaml:"eligible_machines"`
	// ProductFamily groups operations for setup-time purposes. Two operations
	// of different families scheduled back to back on the same machine incur
	// the configured setup delay. An operation following one with an unset
	// family never incurs setup; an unset family directly after a named one
	// counts as a family change.
	ProductFamily string `json:"product_family,omitempty" yaml:"product_family,omitempty"`
}

// Job is an ordered sequence of operations representing one production order.
// Operations execute strictly in slice order.
type Job struct {
	ID         string      `json:"id" yaml:"id"`
	Priority   float64     `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate    *time.Time  `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// WorkingWindow is a daily availability window expressed as wall-clock times
// in "15:04" format. The window repeats every calendar day.
type WorkingWindow struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Minutes returns the window bounds as minutes since midnight.
func (w WorkingWindow) Minutes() (int, int, error) {
	s, err := time.Parse("15:04", w.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("window start %q: %w", w.Start, err)
	}
	e, err := time.Parse("15:04", w.End)
	if err != nil {
		return 0, 0, fmt.Errorf("window end %q: %w", w.End, err)
	}
	return s.Hour()*60 + s.Minute(), e.Hour()*60 + e.Minute(), nil
}

// Machine is a workstation processing at most one operation at a time.
// An empty WorkingHours slice means the machine is available around the clock.
type Machine struct {
	ID           string          `json:"id" yaml:"id"`
	WorkingHours []WorkingWindow `json:"working_hours,omitempty" yaml:"working_hours,omitempty"`
}

// SchedulingRequest is an immutable snapshot of one scheduling problem
// instance. It owns its jobs, machines and configuration for the duration of
// a single solve; nothing in the pipeline mutates it.
type SchedulingRequest struct {
	// HorizonStart anchors minute offsets to absolute time. Zero means "now",
	// resolved by the planner.
	HorizonStart time.Time       `json:"horizon_start,omitempty" yaml:"horizon_start,omitempty"`
	Jobs         []Job           `json:"jobs" yaml:"jobs"`
	Machines     []Machine       `json:"machines" yaml:"machines"`
	Config       SchedulerConfig `json:"config" yaml:"config"`
}

// ValidationError reports a malformed scheduling request. It carries the
// offending identifiers so callers can surface the exact culprit.
type ValidationError struct {
	JobID       string
	OperationID string
	MachineID   string
	Reason      string
}

func (e *ValidationError) Error() string {
	msg := "invalid request: " + e.Reason
	if e.JobID != "" {
		msg += fmt.Sprintf(" (job %s", e.JobID)
		if e.OperationID != "" {
			msg += ", operation " + e.OperationID
		}
		msg += ")"
	} else if e.MachineID != "" {
		msg += fmt.Sprintf(" (machine %s)", e.MachineID)
	}
	return msg
}

// Validate checks structural soundness of the request. It never mutates the
// request and returns a *ValidationError describing the first problem found.
func (r SchedulingRequest) Validate() error {
	if len(r.Jobs) == 0 {
		return &ValidationError{Reason: "no jobs"}
	}
	if len(r.Machines) == 0 {
		return &ValidationError{Reason: "no machines"}
	}
	machines := make(map[string]bool, len(r.Machines))
	for _, m := range r.Machines {
		if m.ID == "" {
			return &ValidationError{Reason: "machine without id"}
		}
		if machines[m.ID] {
			return &ValidationError{MachineID: m.ID, Reason: "duplicate machine id"}
		}
		machines[m.ID] = true
		for _, w := range m.WorkingHours {
			s, e, err := w.Minutes()
			if err != nil {
				return &ValidationError{MachineID: m.ID, Reason: err.Error()}
			}
			if s >= e {
				return &ValidationError{MachineID: m.ID, Reason: fmt.Sprintf("working window %s-%s is empty", w.Start, w.End)}
			}
		}
	}
	jobs := make(map[string]bool, len(r.Jobs))
	for _, j := range r.Jobs {
		if j.ID == "" {
			return &ValidationError{Reason: "job without id"}
		}
		if jobs[j.ID] {
			return &ValidationError{JobID: j.ID, Reason: "duplicate job id"}
		}
		jobs[j.ID] = true
		if j.Priority < 0 {
			return &ValidationError{JobID: j.ID, Reason: "negative priority"}
		}
		if len(j.Operations) == 0 {
			return &ValidationError{JobID: j.ID, Reason: "job has no operations"}
		}
		if j.DueDate != nil && !r.HorizonStart.IsZero() && j.DueDate.Before(r.HorizonStart) {
			return &ValidationError{JobID: j.ID, Reason: "due date precedes horizon start"}
		}
		for _, op := range j.Operations {
			if op.ID == "" {
				return &ValidationError{JobID: j.ID, Reason: "operation without id"}
			}
			if op.DurationMinutes <= 0 {
				return &ValidationError{JobID: j.ID, OperationID: op.ID, Reason: "duration must be positive"}
			}
			if len(op.EligibleMachines) == 0 {
				return &ValidationError{JobID: j.ID, OperationID: op.ID, Reason: "no eligible machines"}
			}
			for _, mid := range op.EligibleMachines {
				if !machines[mid] {
					return &ValidationError{JobID: j.ID, OperationID: op.ID, Reason: fmt.Sprintf("unknown machine %s", mid)}
				}
			}
		}
	}
	return nil
}

// PriorityOf returns the job priority weight, defaulting to 1 when unset.
func (j Job) PriorityOf() float64 {
	if j.Priority == 0 {
		return 1
	}
	return j.Priority
}
