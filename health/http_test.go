package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		wantCode int
		wantBody string
	}{
		{"healthy", StatusHealthy, http.StatusOK, "OK"},
		{"degraded", StatusDegraded, http.StatusOK, "DEGRADED"},
		{"unhealthy", StatusUnhealthy, http.StatusServiceUnavailable, "UNHEALTHY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewAggregator()
			agg.Register("c", staticChecker(tt.status))

			rec := httptest.NewRecorder()
			ReadinessHandler(agg)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestDetailedHandler(t *testing.T) {
	agg := NewAggregator()
	agg.Register("cache", NewCacheChecker(fixedSizer(10), 100))
	agg.Register("bad", NewCheckerFunc("bad", func(ctx context.Context) Result {
		return Unhealthy("broken", ErrCheckFailed)
	}))

	rec := httptest.NewRecorder()
	DetailedHandler(agg)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("overall = %q, want unhealthy", resp.Status)
	}
	if len(resp.Checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(resp.Checks))
	}
	if resp.Checks["cache"].Status != "healthy" {
		t.Errorf("cache = %q, want healthy", resp.Checks["cache"].Status)
	}
	if resp.Checks["bad"].Error == "" {
		t.Error("bad check missing error text")
	}
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()
	agg := NewAggregator()
	agg.Register("c", staticChecker(StatusHealthy))
	RegisterHandlers(mux, agg)

	for _, path := range []string{"/healthz", "/readyz", "/health"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}
