package solver

import (
	"fmt"

	"github.com/prodflow/jobshop/core/calendar"
	"github.com/prodflow/jobshop/core/model"
)

// Interval is the decision variable for one operation: a start in
// [0, Horizon] with end = start + Duration, plus the machine domain.
type Interval struct {
	ID       string
	JobID    string
	Job      int
	Index    int
	Duration int
	// Machines holds the indices of the machines this interval may be
	// assigned to. With the eligibility constraint disabled it spans the
	// whole fleet.
	Machines []int
	Family   string
}

// Model is the constraint model produced by BuildModel. It is a read-only
// view of the request: the builder never mutates the request and the search
// never mutates the model.
type Model struct {
	// Horizon is an upper bound on the length of any left-shifted schedule:
	// total processing, gap and setup time, widened by calendar dead days and
	// the furthest due date. The search places every operation at its
	// earliest feasible start, so explored schedules respect the bound by
	// construction and no explicit start-domain cap is enforced.
	Horizon int
	Ops     []Interval
	// JobOps maps each job to its operation indices in precedence order.
	JobOps   [][]int
	JobIDs   []string
	Priority []float64
	// Due holds the per-job due offset in minutes from the horizon start,
	// or -1 when the job has no due date or due dates are disabled.
	Due []int
	// SuffixDuration[j][k] is the total processing time of job j's operations
	// from position k on, used by the search lower bound.
	SuffixDuration [][]int

	MachineIDs []string
	// Calendars holds the per-machine working-hours calendar, nil entries
	// meaning always available. All nil when working hours are disabled.
	Calendars []*calendar.Calendar

	Gap     int
	Setup   int
	Toggles model.ConstraintToggles
}

// UnschedulableError marks a model proven infeasible at build time: the named
// operation cannot run inside any eligible machine's working window.
type UnschedulableError struct {
	JobID       string
	OperationID string
}

func (e *UnschedulableError) Error() string {
	return fmt.Sprintf("operation %s of job %s fits no working window on any eligible machine", e.OperationID, e.JobID)
}
