package solver

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prodflow/jobshop/core/model"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	observeSolve(model.StatusOptimal, 10*time.Millisecond, 128)
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"jobshop_solve_duration_seconds",
		"jobshop_solver_runs_total",
		"jobshop_search_nodes_total",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}
