// Package baseline computes a naive first-in-first-out reference schedule
// used to quantify optimization gains.
package baseline

import (
	"github.com/prodflow/jobshop/core/solver"
)

// Stats summarizes one schedule for comparison purposes.
type Stats struct {
	MakespanMinutes       int
	TotalTardinessMinutes int
	LateJobs              int
}

// Schedule is the FIFO reference schedule over a model. Indexing matches
// Model.Ops.
type Schedule struct {
	Starts   []int
	Machines []int
	Stats    Stats
}

// Compute greedily assigns operations in job-arrival order (the request's
// input order) to the earliest machine-available time, ties broken by machine
// id. It honors the same hard constraints as the optimizer but ignores the
// objective. The procedure is deterministic: identical inputs yield an
// identical schedule. Returns nil when no machine can host an operation.
func Compute(m *solver.Model) *Schedule {
	starts := make([]int, len(m.Ops))
	machines := make([]int, len(m.Ops))
	machFree := make([]int, len(m.MachineIDs))
	machFam := make([]string, len(m.MachineIDs))

	var stats Stats
	for j := range m.JobOps {
		ready := 0
		completion := 0
		for _, opIdx := range m.JobOps[j] {
			iv := m.Ops[opIdx]
			bestMach := -1
			bestStart := 0
			for _, mi := range iv.Machines {
				t := ready
				free := machFree[mi]
				if m.Setup > 0 && machFam[mi] != "" && machFam[mi] != iv.Family {
					free += m.Setup
				}
				if t < free {
					t = free
				}
				start, ok := m.Calendars[mi].Next(t, iv.Duration)
				if !ok {
					continue
				}
				if bestMach < 0 || start < bestStart ||
					(start == bestStart && m.MachineIDs[mi] < m.MachineIDs[bestMach]) {
					bestMach = mi
					bestStart = start
				}
			}
			if bestMach < 0 {
				return nil
			}
			end := bestStart + iv.Duration
			starts[opIdx] = bestStart
			machines[opIdx] = bestMach
			machFree[bestMach] = end
			machFam[bestMach] = iv.Family
			ready = end + m.Gap
			completion = end
			if end > stats.MakespanMinutes {
				stats.MakespanMinutes = end
			}
		}
		if due := m.Due[j]; due >= 0 && completion > due {
			stats.LateJobs++
			stats.TotalTardinessMinutes += completion - due
		}
	}
	return &Schedule{Starts: starts, Machines: machines, Stats: stats}
}

// Improvements returns the percentage gains of the optimized schedule over
// the baseline. Values may be negative when the optimizer did worse (possible
// under tight time budgets) and are surfaced as-is, never clamped. Ratios
// with a zero baseline are reported as 0.
func Improvements(optimized, base Stats) (makespanPct, lateJobsPct, tardinessPct float64) {
	if base.MakespanMinutes > 0 {
		makespanPct = float64(base.MakespanMinutes-optimized.MakespanMinutes) / float64(base.MakespanMinutes) * 100
	}
	if base.LateJobs > 0 {
		lateJobsPct = float64(base.LateJobs-optimized.LateJobs) / float64(base.LateJobs) * 100
	}
	if base.TotalTardinessMinutes > 0 {
		tardinessPct = float64(base.TotalTardinessMinutes-optimized.TotalTardinessMinutes) / float64(base.TotalTardinessMinutes) * 100
	}
	return makespanPct, lateJobsPct, tardinessPct
}
