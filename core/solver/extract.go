package solver

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/prodflow/jobshop/core/model"
)

// ExtractionError reports an internal invariant violation after a reported
// solver success. It is a bug, not a business outcome, and should be treated
// as fatal by callers.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "solution extraction failed: " + e.Reason
}

// Extraction is the schedule view of a solved model.
type Extraction struct {
	Assignments           []model.ScheduleAssignment
	MakespanMinutes       int
	TotalTardinessMinutes int
	LateJobs              int
	// MachineUtilization maps machine id to busy time over makespan in [0,1].
	MachineUtilization map[string]float64
	// MeanUtilizationPct is the fleet-wide mean utilization in percent.
	MeanUtilizationPct float64
}

// Extract converts solver variable values into schedule assignments. Only
// valid for results whose status carries a solution; every operation must
// have a resolved start and machine.
func Extract(m *Model, res *Result, horizonStart time.Time) (*Extraction, error) {
	if !res.Status.HasSolution() {
		return nil, &ExtractionError{Reason: fmt.Sprintf("status %s carries no solution", res.Status)}
	}
	if len(res.Starts) != len(m.Ops) || len(res.Machines) != len(m.Ops) {
		return nil, &ExtractionError{Reason: "assignment arrays do not cover the model"}
	}

	busy := make([]int, len(m.MachineIDs))
	completion := make([]int, len(m.JobOps))
	makespan := 0
	for i, iv := range m.Ops {
		start := res.Starts[i]
		mi := res.Machines[i]
		if start < 0 {
			return nil, &ExtractionError{Reason: fmt.Sprintf("operation %s has no start", iv.ID)}
		}
		if mi < 0 || mi >= len(m.MachineIDs) {
			return nil, &ExtractionError{Reason: fmt.Sprintf("operation %s has no machine", iv.ID)}
		}
		end := start + iv.Duration
		busy[mi] += iv.Duration
		if end > completion[iv.Job] {
			completion[iv.Job] = end
		}
		if end > makespan {
			makespan = end
		}
	}

	totalTardiness := 0
	lateJobs := 0
	late := make([]bool, len(m.JobOps))
	for j := range m.JobOps {
		if due := m.Due[j]; due >= 0 && completion[j] > due {
			late[j] = true
			lateJobs++
			totalTardiness += completion[j] - due
		}
	}

	assignments := make([]model.ScheduleAssignment, 0, len(m.Ops))
	for i, iv := range m.Ops {
		start := res.Starts[i]
		end := start + iv.Duration
		assignments = append(assignments, model.ScheduleAssignment{
			OperationID: iv.ID,
			JobID:       iv.JobID,
			MachineID:   m.MachineIDs[res.Machines[i]],
			Start:       horizonStart.Add(time.Duration(start) * time.Minute),
			End:         horizonStart.Add(time.Duration(end) * time.Minute),
			StartMinute: start,
			EndMinute:   end,
			IsLate:      late[iv.Job],
		})
	}
	sort.Slice(assignments, func(a, b int) bool {
		if assignments[a].StartMinute != assignments[b].StartMinute {
			return assignments[a].StartMinute < assignments[b].StartMinute
		}
		if assignments[a].JobID != assignments[b].JobID {
			return assignments[a].JobID < assignments[b].JobID
		}
		return assignments[a].OperationID < assignments[b].OperationID
	})

	utilization := make(map[string]float64, len(m.MachineIDs))
	utils := make([]float64, len(m.MachineIDs))
	for mi, id := range m.MachineIDs {
		u := 0.0
		if makespan > 0 {
			u = float64(busy[mi]) / float64(makespan)
		}
		if u < 0 {
			u = 0
		}
		if u > 1 {
			u = 1
		}
		utilization[id] = u
		utils[mi] = u
	}

	return &Extraction{
		Assignments:           assignments,
		MakespanMinutes:       makespan,
		TotalTardinessMinutes: totalTardiness,
		LateJobs:              lateJobs,
		MachineUtilization:    utilization,
		MeanUtilizationPct:    stat.Mean(utils, nil) * 100,
	}, nil
}
