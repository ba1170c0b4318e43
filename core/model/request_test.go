package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validRequest() SchedulingRequest {
	return SchedulingRequest{
		HorizonStart: time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC),
		Machines:     []Machine{{ID: "M1"}, {ID: "M2"}},
		Jobs: []Job{
			{ID: "J1", Operations: []Operation{
				{ID: "J1-1", DurationMinutes: 30, EligibleMachines: []string{"M1"}},
				{ID: "J1-2", DurationMinutes: 15, EligibleMachines: []string{"M1", "M2"}},
			}},
		},
		Config: DefaultConfig(),
	}
}

func TestValidateOK(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	past := time.Date(2025, 3, 3, 5, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		mutate func(*SchedulingRequest)
		want   string
	}{
		{"no jobs", func(r *SchedulingRequest) { r.Jobs = nil }, "no jobs"},
		{"no machines", func(r *SchedulingRequest) { r.Machines = nil }, "no machines"},
		{"job without operations", func(r *SchedulingRequest) { r.Jobs[0].Operations = nil }, "no operations"},
		{"zero duration", func(r *SchedulingRequest) { r.Jobs[0].Operations[0].DurationMinutes = 0 }, "duration"},
		{"negative duration", func(r *SchedulingRequest) { r.Jobs[0].Operations[0].DurationMinutes = -5 }, "duration"},
		{"empty eligible set", func(r *SchedulingRequest) { r.Jobs[0].Operations[1].EligibleMachines = nil }, "eligible"},
		{"unknown machine", func(r *SchedulingRequest) { r.Jobs[0].Operations[0].EligibleMachines = []string{"MX"} }, "unknown machine"},
		{"due before horizon", func(r *SchedulingRequest) { r.Jobs[0].DueDate = &past }, "due date"},
		{"negative priority", func(r *SchedulingRequest) { r.Jobs[0].Priority = -1 }, "priority"},
		{"duplicate job", func(r *SchedulingRequest) { r.Jobs = append(r.Jobs, r.Jobs[0]) }, "duplicate job"},
		{"duplicate machine", func(r *SchedulingRequest) { r.Machines = append(r.Machines, r.Machines[0]) }, "duplicate machine"},
		{"bad window", func(r *SchedulingRequest) {
			r.Machines[0].WorkingHours = []WorkingWindow{{Start: "17:00", End: "08:00"}}
		}, "empty"},
		{"unparseable window", func(r *SchedulingRequest) {
			r.Machines[0].WorkingHours = []WorkingWindow{{Start: "8am", End: "17:00"}}
		}, "window start"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidationErrorNamesCulprit(t *testing.T) {
	req := validRequest()
	req.Jobs[0].Operations[0].DurationMinutes = 0
	err := req.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError got %v", err)
	}
	if verr.JobID != "J1" || verr.OperationID != "J1-1" {
		t.Fatalf("expected culprit J1/J1-1 got %s/%s", verr.JobID, verr.OperationID)
	}
}

func TestPriorityDefaultsToOne(t *testing.T) {
	j := Job{ID: "J1"}
	if j.PriorityOf() != 1 {
		t.Fatalf("expected default priority 1")
	}
	j.Priority = 3
	if j.PriorityOf() != 3 {
		t.Fatalf("expected explicit priority 3")
	}
}
