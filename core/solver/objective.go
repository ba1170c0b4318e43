package solver

import "github.com/prodflow/jobshop/core/model"

// Objective is the weighted multi-objective function minimized by the solver:
//
//	Z = MakespanWeight*makespan + TardinessWeight*sum(priority[j]*T[j])
//
// A zero weight removes a term from the objective without removing its
// variables, so tardiness is still computed and reported when unweighted.
type Objective struct {
	MakespanWeight  float64
	TardinessWeight float64
}

// ComposeObjective derives the objective from the request configuration.
func ComposeObjective(cfg model.SchedulerConfig) Objective {
	return Objective{
		MakespanWeight:  cfg.MakespanWeight,
		TardinessWeight: cfg.TardinessWeight,
	}
}

// Value evaluates Z for a complete schedule.
func (o Objective) Value(makespan int, tardiness []int, priority []float64) float64 {
	z := o.MakespanWeight * float64(makespan)
	for j, t := range tardiness {
		if t > 0 {
			z += o.TardinessWeight * priority[j] * float64(t)
		}
	}
	return z
}

// bound evaluates Z from scalar lower bounds on both terms.
func (o Objective) bound(makespanLB int, weightedTardinessLB float64) float64 {
	return o.MakespanWeight*float64(makespanLB) + o.TardinessWeight*weightedTardinessLB
}
