package solver

import (
	"github.com/prodflow/jobshop/core/calendar"
	"github.com/prodflow/jobshop/core/model"
)

// BuildModel converts a validated request into a constraint model. The
// horizon is the sum of all processing times plus inter-operation gaps and
// worst-case setup delays, a safe upper bound, widened by the furthest due
// date and by calendar dead time when working hours are enabled. Returns *UnschedulableError when an
// operation provably fits no eligible machine's window.
func BuildModel(req model.SchedulingRequest) (*Model, error) {
	cfg := req.Config
	toggles := cfg.Constraints

	machineIdx := make(map[string]int, len(req.Machines))
	machineIDs := make([]string, len(req.Machines))
	calendars := make([]*calendar.Calendar, len(req.Machines))
	for i, mach := range req.Machines {
		machineIdx[mach.ID] = i
		machineIDs[i] = mach.ID
		if toggles.WorkingHours && len(mach.WorkingHours) > 0 {
			windows := make([]calendar.Window, 0, len(mach.WorkingHours))
			for _, w := range mach.WorkingHours {
				s, e, err := w.Minutes()
				if err != nil {
					return nil, err
				}
				windows = append(windows, calendar.Window{Start: s, End: e})
			}
			calendars[i] = calendar.New(windows)
		}
	}

	allMachines := make([]int, len(req.Machines))
	for i := range allMachines {
		allMachines[i] = i
	}

	m := &Model{
		JobOps:     make([][]int, len(req.Jobs)),
		JobIDs:     make([]string, len(req.Jobs)),
		Priority:   make([]float64, len(req.Jobs)),
		Due:        make([]int, len(req.Jobs)),
		MachineIDs: machineIDs,
		Calendars:  calendars,
		Gap:        cfg.MinGapMinutes,
		Toggles:    toggles,
	}
	if toggles.SetupTime {
		m.Setup = cfg.SetupMinutes
	}

	totalWork := 0
	maxDue := 0
	for j, job := range req.Jobs {
		m.JobIDs[j] = job.ID
		m.Priority[j] = job.PriorityOf()
		m.Due[j] = -1
		if toggles.DueDates && job.DueDate != nil {
			due := int(job.DueDate.Sub(req.HorizonStart).Minutes())
			m.Due[j] = due
			if due > maxDue {
				maxDue = due
			}
		}
		m.JobOps[j] = make([]int, 0, len(job.Operations))
		for k, op := range job.Operations {
			iv := Interval{
				ID:       op.ID,
				JobID:    job.ID,
				Job:      j,
				Index:    k,
				Duration: op.DurationMinutes,
				Family:   op.ProductFamily,
			}
			if toggles.MachineEligibility {
				iv.Machines = make([]int, 0, len(op.EligibleMachines))
				for _, mid := range op.EligibleMachines {
					iv.Machines = append(iv.Machines, machineIdx[mid])
				}
			} else {
				iv.Machines = allMachines
			}
			fits := false
			for _, mi := range iv.Machines {
				if calendars[mi].Fits(iv.Duration) {
					fits = true
					break
				}
			}
			if !fits {
				return nil, &UnschedulableError{JobID: job.ID, OperationID: op.ID}
			}
			m.JobOps[j] = append(m.JobOps[j], len(m.Ops))
			m.Ops = append(m.Ops, iv)
			// Each operation can incur at most one setup before it.
			totalWork += op.DurationMinutes + cfg.MinGapMinutes + m.Setup
		}
	}

	m.SuffixDuration = make([][]int, len(m.JobOps))
	for j, ops := range m.JobOps {
		suffix := make([]int, len(ops)+1)
		for k := len(ops) - 1; k >= 0; k-- {
			suffix[k] = suffix[k+1] + m.Ops[ops[k]].Duration
		}
		m.SuffixDuration[j] = suffix
	}

	m.Horizon = totalWork
	if toggles.WorkingHours {
		if capacity := shortestDailyCapacity(calendars); capacity > 0 {
			days := totalWork/capacity + 2
			m.Horizon = days * calendar.MinutesPerDay
		}
	}
	m.Horizon += maxDue
	return m, nil
}

// shortestDailyCapacity returns the smallest total daily availability across
// machines with a calendar, or 0 when no machine is calendar-constrained.
func shortestDailyCapacity(calendars []*calendar.Calendar) int {
	shortest := 0
	for _, c := range calendars {
		if c == nil {
			continue
		}
		if cap := c.DailyCapacity(); shortest == 0 || cap < shortest {
			shortest = cap
		}
	}
	return shortest
}
