package baseline

import (
	"reflect"
	"testing"
	"time"

	"github.com/prodflow/jobshop/core/model"
	"github.com/prodflow/jobshop/core/solver"
)

func buildModel(t *testing.T, req model.SchedulingRequest) *solver.Model {
	t.Helper()
	m, err := solver.BuildModel(req)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return m
}

func twoJobRequest() model.SchedulingRequest {
	return model.SchedulingRequest{
		HorizonStart: time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC),
		Machines:     []model.Machine{{ID: "M1"}, {ID: "M2"}},
		Jobs: []model.Job{
			{ID: "J1", Operations: []model.Operation{
				{ID: "J1-1", DurationMinutes: 30, EligibleMachines: []string{"M1"}},
				{ID: "J1-2", DurationMinutes: 20, EligibleMachines: []string{"M2"}},
			}},
			{ID: "J2", Operations: []model.Operation{
				{ID: "J2-1", DurationMinutes: 10, EligibleMachines: []string{"M1", "M2"}},
			}},
		},
		Config: model.SchedulerConfig{
			TimeLimitSeconds: 5,
			Workers:          1,
			MinGapMinutes:    0,
			MakespanWeight:   1,
			Constraints:      model.DefaultToggles(),
		},
	}
}

func TestComputeDeterministic(t *testing.T) {
	m := buildModel(t, twoJobRequest())
	first := Compute(m)
	second := Compute(m)
	if first == nil || second == nil {
		t.Fatalf("expected schedules")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("baseline must be deterministic: %+v vs %+v", first, second)
	}
}

func TestComputeRespectsInputOrder(t *testing.T) {
	m := buildModel(t, twoJobRequest())
	s := Compute(m)
	// J1 is placed first and in full: J1-1 on M1 at 0, J1-2 on M2 at 30.
	if s.Starts[0] != 0 || m.MachineIDs[s.Machines[0]] != "M1" {
		t.Fatalf("J1-1 expected on M1 at 0, got machine %s at %d", m.MachineIDs[s.Machines[0]], s.Starts[0])
	}
	if s.Starts[1] != 30 {
		t.Fatalf("J1-2 expected at 30 got %d", s.Starts[1])
	}
	// J2-1 then picks the earliest available machine: M1 frees at 30, M2 at 50.
	if s.Starts[2] != 30 || m.MachineIDs[s.Machines[2]] != "M1" {
		t.Fatalf("J2-1 expected on M1 at 30, got machine %s at %d", m.MachineIDs[s.Machines[2]], s.Starts[2])
	}
	if s.Stats.MakespanMinutes != 50 {
		t.Fatalf("expected makespan 50 got %d", s.Stats.MakespanMinutes)
	}
}

func TestComputeTardiness(t *testing.T) {
	req := twoJobRequest()
	due := req.HorizonStart.Add(20 * time.Minute)
	req.Jobs[0].DueDate = &due
	m := buildModel(t, req)
	s := Compute(m)
	if s.Stats.LateJobs != 1 {
		t.Fatalf("expected one late job got %d", s.Stats.LateJobs)
	}
	if s.Stats.TotalTardinessMinutes != 30 {
		t.Fatalf("expected tardiness 30 got %d", s.Stats.TotalTardinessMinutes)
	}
}

func TestImprovements(t *testing.T) {
	base := Stats{MakespanMinutes: 200, TotalTardinessMinutes: 50, LateJobs: 2}
	opt := Stats{MakespanMinutes: 150, TotalTardinessMinutes: 0, LateJobs: 0}
	mk, late, tard := Improvements(opt, base)
	if mk != 25 || late != 100 || tard != 100 {
		t.Fatalf("unexpected improvements %v %v %v", mk, late, tard)
	}
}

func TestImprovementsZeroBaseline(t *testing.T) {
	mk, late, tard := Improvements(Stats{MakespanMinutes: 10}, Stats{MakespanMinutes: 10})
	if mk != 0 || late != 0 || tard != 0 {
		t.Fatalf("expected zeros, got %v %v %v", mk, late, tard)
	}
}

func TestImprovementsCanBeNegative(t *testing.T) {
	base := Stats{MakespanMinutes: 100}
	opt := Stats{MakespanMinutes: 120}
	mk, _, _ := Improvements(opt, base)
	if mk != -20 {
		t.Fatalf("expected -20 got %v", mk)
	}
}
