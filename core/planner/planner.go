// Package planner runs the full scheduling pipeline: request validation,
// model building, solving, extraction and baseline comparison, assembled
// into one immutable result per run.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/prodflow/jobshop/core/baseline"
	"github.com/prodflow/jobshop/core/logger"
	"github.com/prodflow/jobshop/core/model"
	"github.com/prodflow/jobshop/core/solver"
)

// Planner orchestrates scheduling runs. Concurrent runs over independent
// requests are safe: the planner holds no per-run state.
type Planner struct {
	log    logger.Logger
	engine solver.Solver
}

// New creates a planner that builds a branch-and-bound engine per request
// from the request configuration.
func New(log logger.Logger) *Planner {
	return &Planner{log: log}
}

// NewWithEngine creates a planner with a fixed solver engine, mainly for
// tests and alternative engines.
func NewWithEngine(log logger.Logger, engine solver.Solver) *Planner {
	return &Planner{log: log, engine: engine}
}

// Schedule runs one synchronous scheduling pass over the request. It blocks
// for at most the configured time budget. Validation and extraction problems
// are returned as errors; solver outcomes (including infeasibility and
// timeouts) are always encoded in the result status.
func (p *Planner) Schedule(ctx context.Context, req model.SchedulingRequest) (*model.SchedulingResult, error) {
	if req.HorizonStart.IsZero() {
		req.HorizonStart = time.Now().UTC().Truncate(time.Minute)
	}
	cfg := req.Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	req.Config = cfg
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &model.SchedulingResult{RunID: uuid.NewString()}

	m, err := solver.BuildModel(req)
	if err != nil {
		var unsched *solver.UnschedulableError
		if errors.As(err, &unsched) {
			result.Status = model.StatusInfeasible
			result.InfeasibleReason = unsched.Error()
			p.logRun(req, result)
			return result, nil
		}
		return nil, err
	}

	engine := p.engine
	if engine == nil {
		engine = solver.NewBranchAndBound(cfg, p.log)
	}
	obj := solver.ComposeObjective(cfg)

	started := time.Now()
	solved := engine.Solve(ctx, m, obj)
	result.SolveTimeSeconds = time.Since(started).Seconds()
	result.Status = solved.Status
	result.InfeasibleReason = solved.Reason

	if solved.Status.HasSolution() {
		ext, err := solver.Extract(m, solved, req.HorizonStart)
		if err != nil {
			return nil, err
		}
		result.Assignments = ext.Assignments
		result.MakespanMinutes = ext.MakespanMinutes
		result.TotalTardinessMinutes = ext.TotalTardinessMinutes
		result.LateJobs = ext.LateJobs
		result.MachineUtilization = ext.MachineUtilization
		result.MachineUtilizationPct = ext.MeanUtilizationPct
	}

	if fifo := baseline.Compute(m); fifo != nil {
		result.Baseline = model.BaselineSummary{
			MakespanMinutes:       fifo.Stats.MakespanMinutes,
			TotalTardinessMinutes: fifo.Stats.TotalTardinessMinutes,
			LateJobs:              fifo.Stats.LateJobs,
		}
		if solved.Status.HasSolution() {
			opt := baseline.Stats{
				MakespanMinutes:       result.MakespanMinutes,
				TotalTardinessMinutes: result.TotalTardinessMinutes,
				LateJobs:              result.LateJobs,
			}
			result.ImprovementMakespanPct, result.ImprovementLateJobsPct, result.ImprovementTardinessPct =
				baseline.Improvements(opt, fifo.Stats)
		}
	}

	p.logRun(req, result)
	return result, nil
}

func (p *Planner) logRun(req model.SchedulingRequest, res *model.SchedulingResult) {
	if p.log == nil {
		return
	}
	p.log.Infof("scheduling run %s finished: %s", res.RunID, res.Status)
	p.log.Debugw("scheduling run", map[string]any{
		"run_id":               res.RunID,
		"status":               res.Status.String(),
		"jobs":                 len(req.Jobs),
		"machines":             len(req.Machines),
		"makespan_minutes":     res.MakespanMinutes,
		"tardiness_minutes":    res.TotalTardinessMinutes,
		"late_jobs":            res.LateJobs,
		"solve_time_seconds":   res.SolveTimeSeconds,
		"improvement_makespan": res.ImprovementMakespanPct,
	})
}
