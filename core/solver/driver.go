package solver

import (
	"context"
	"time"

	"github.com/prodflow/jobshop/core/logger"
	"github.com/prodflow/jobshop/core/model"
)

// Result carries the solver outcome. Solver outcomes are always results,
// never errors: infeasibility and timeouts are legitimate business outcomes
// the caller decides retry policy on.
type Result struct {
	Status model.Status
	// Starts and Machines hold per-operation assignments, indexed like
	// Model.Ops. Only populated when Status carries a solution.
	Starts   []int
	Machines []int
	Makespan int
	// Tardiness holds the per-job tardiness in minutes, zero for jobs
	// without a due date.
	Tardiness []int
	Objective float64
	Nodes     int64
	// Reason explains INFEASIBLE and ERROR statuses.
	Reason string
}

// Solver is the engine boundary. Implementations must honor the context
// deadline as a hard wall-clock budget. Engines are swappable behind this
// interface without touching the rest of the pipeline.
type Solver interface {
	Solve(ctx context.Context, m *Model, obj Objective) *Result
}

// searchFn points to the function used to run the branch-and-bound search.
// It can be overridden in tests to simulate engine failures.
var searchFn = runSearch

// BranchAndBound is the default engine: an exact branch-and-bound over
// active schedules with lower-bound pruning and parallel subtree workers.
// The worker count and seed are fixed per configuration for reproducibility.
type BranchAndBound struct {
	TimeLimit time.Duration
	Workers   int
	Seed      int64
	Log       logger.Logger
}

// NewBranchAndBound builds the engine from a request configuration.
func NewBranchAndBound(cfg model.SchedulerConfig, log logger.Logger) *BranchAndBound {
	return &BranchAndBound{
		TimeLimit: time.Duration(cfg.TimeLimitSeconds * float64(time.Second)),
		Workers:   cfg.Workers,
		Seed:      cfg.Seed,
		Log:       log,
	}
}

// Solve runs the search under the configured time budget and maps the
// outcome onto the five status classes.
func (b *BranchAndBound) Solve(ctx context.Context, m *Model, obj Objective) *Result {
	started := time.Now()
	res := b.solve(ctx, m, obj)
	elapsed := time.Since(started)
	observeSolve(res.Status, elapsed, res.Nodes)
	if b.Log != nil {
		b.Log.Debugw("solve finished", map[string]any{
			"status":    res.Status.String(),
			"objective": res.Objective,
			"nodes":     res.Nodes,
			"elapsed":   elapsed.Seconds(),
		})
	}
	return res
}

func (b *BranchAndBound) solve(ctx context.Context, m *Model, obj Objective) *Result {
	if m == nil || len(m.Ops) == 0 {
		return &Result{Status: model.StatusError, Reason: "empty model"}
	}
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	limit := b.TimeLimit
	if limit <= 0 {
		limit = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	inc, exhausted, nodes, err := searchFn(ctx, m, obj, workers, b.Seed)
	if err != nil {
		return &Result{Status: model.StatusError, Reason: err.Error(), Nodes: nodes}
	}
	switch {
	case inc == nil && exhausted:
		return &Result{Status: model.StatusInfeasible, Reason: "search space exhausted without a feasible schedule", Nodes: nodes}
	case inc == nil:
		return &Result{Status: model.StatusTimeoutNoSolution, Nodes: nodes}
	}
	status := model.StatusFeasible
	if exhausted {
		status = model.StatusOptimal
	}
	return &Result{
		Status:    status,
		Starts:    inc.starts,
		Machines:  inc.machines,
		Makespan:  inc.makespan,
		Tardiness: inc.tardiness,
		Objective: inc.value,
		Nodes:     nodes,
	}
}
