package model

import "time"

// Status is the outcome class reported by the solver driver.
type Status int

const (
	// StatusOptimal means the returned schedule is proven best.
	StatusOptimal Status = iota
	// StatusFeasible means a valid schedule was found but optimality was not
	// proven before the time budget expired.
	StatusFeasible
	// StatusInfeasible means no schedule exists under the current constraints.
	StatusInfeasible
	// StatusTimeoutNoSolution means the time budget expired with no incumbent.
	StatusTimeoutNoSolution
	// StatusError means the model was malformed or the engine failed.
	StatusError
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusTimeoutNoSolution:
		return "TIMEOUT_NO_SOLUTION"
	case StatusError:
		return "ERROR"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so statuses serialize as
// their wire names.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// HasSolution reports whether the status carries a usable schedule.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// ScheduleAssignment places one operation on one machine. End is always
// Start plus the operation duration. Created only by the solution extractor
// and immutable thereafter.
type ScheduleAssignment struct {
	OperationID string    `json:"operation_id"`
	JobID       string    `json:"job_id"`
	MachineID   string    `json:"machine_id"`
	Start       time.Time `json:"start_time"`
	End         time.Time `json:"end_time"`
	// StartMinute and EndMinute are offsets from the horizon start.
	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`
	IsLate      bool `json:"is_late"`
}

// BaselineSummary aggregates the FIFO reference schedule.
type BaselineSummary struct {
	MakespanMinutes       int `json:"makespan_minutes"`
	TotalTardinessMinutes int `json:"total_tardiness_minutes"`
	LateJobs              int `json:"late_jobs"`
}

// SchedulingResult is the aggregate outcome of one scheduling run. A new run
// produces a new result; results are never mutated in place.
type SchedulingResult struct {
	RunID            string  `json:"run_id"`
	Status           Status  `json:"status"`
	SolveTimeSeconds float64 `json:"solve_time_seconds"`

	Assignments           []ScheduleAssignment `json:"assignments"`
	MakespanMinutes       int                  `json:"makespan_minutes"`
	TotalTardinessMinutes int                  `json:"total_tardiness_minutes"`
	LateJobs              int                  `json:"late_jobs"`
	// MachineUtilization maps machine id to busy time over makespan, in [0,1].
	MachineUtilization map[string]float64 `json:"machine_utilization"`
	// MachineUtilizationPct is the fleet-wide mean utilization in percent.
	MachineUtilizationPct float64 `json:"machine_utilization_pct"`

	Baseline                BaselineSummary `json:"baseline"`
	ImprovementMakespanPct  float64         `json:"improvement_makespan_pct"`
	ImprovementLateJobsPct  float64         `json:"improvement_late_jobs_pct"`
	ImprovementTardinessPct float64         `json:"improvement_tardiness_pct"`

	// InfeasibleReason names the operation that cannot be placed when the
	// status is INFEASIBLE, or carries the engine error for ERROR.
	InfeasibleReason string `json:"infeasible_reason,omitempty"`
}
