package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	if r := Healthy("ok"); r.Status != StatusHealthy || r.Message != "ok" || r.Timestamp.IsZero() {
		t.Errorf("Healthy() = %+v", r)
	}
	if r := Degraded("slow"); r.Status != StatusDegraded {
		t.Errorf("Degraded() status = %v", r.Status)
	}

	err := errors.New("boom")
	r := Unhealthy("down", err)
	if r.Status != StatusUnhealthy || r.Error != err {
		t.Errorf("Unhealthy() = %+v", r)
	}

	r = Healthy("ok").WithDetails(map[string]any{"n": 1})
	if r.Details["n"] != 1 {
		t.Errorf("WithDetails lost data: %+v", r.Details)
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("probe", func(ctx context.Context) Result {
		return Healthy("ok")
	})

	if c.Name() != "probe" {
		t.Errorf("Name() = %q, want probe", c.Name())
	}
	if r := c.Check(context.Background()); r.Status != StatusHealthy {
		t.Errorf("Check() status = %v, want healthy", r.Status)
	}
}
