package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonwraymond/waterjug/observe"
	"github.com/jonwraymond/waterjug/resilience"
	"github.com/jonwraymond/waterjug/solver"
)

// Validation errors. The messages are the response detail text, so they
// carry no package prefix.
var (
	ErrXCapacityNotPositive = errors.New("x_capacity must be greater than 0")
	ErrYCapacityNotPositive = errors.New("y_capacity must be greater than 0")
	ErrTargetNotPositive    = errors.New("z_amount_wanted must be greater than 0")
)

// SolveRequest is the body of POST /api/solve.
type SolveRequest struct {
	XCapacity     int `json:"x_capacity"`
	YCapacity     int `json:"y_capacity"`
	ZAmountWanted int `json:"z_amount_wanted"`
}

// Validate checks that all parameters are positive.
func (r SolveRequest) Validate() error {
	if r.XCapacity <= 0 {
		return ErrXCapacityNotPositive
	}
	if r.YCapacity <= 0 {
		return ErrYCapacityNotPositive
	}
	if r.ZAmountWanted <= 0 {
		return ErrTargetNotPositive
	}
	return nil
}

// SolveResponse is the success body of POST /api/solve.
type SolveResponse struct {
	Solution solver.Solution `json:"solution"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SolveHandler serves the solve endpoint.
type SolveHandler struct {
	solve    observe.SolveFunc
	limiter  *resilience.RateLimiter
	bulkhead *resilience.Bulkhead
	timeout  *resilience.Timeout
	logger   observe.Logger
}

// NewSolveHandler creates the handler. Guards may be nil, in which
// case the corresponding protection is skipped.
func NewSolveHandler(solve observe.SolveFunc, limiter *resilience.RateLimiter, bulkhead *resilience.Bulkhead, timeout *resilience.Timeout, logger observe.Logger) *SolveHandler {
	if logger == nil {
		logger = observe.NopLogger()
	}
	return &SolveHandler{
		solve:    solve,
		limiter:  limiter,
		bulkhead: bulkhead,
		timeout:  timeout,
		logger:   logger,
	}
}

func (h *SolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req SolveRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if h.limiter != nil && !h.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}

	var sol solver.Solution
	run := func(ctx context.Context) error {
		sol = h.solve(ctx, req.XCapacity, req.YCapacity, req.ZAmountWanted)
		return nil
	}

	err := h.execute(r.Context(), run)
	switch {
	case errors.Is(err, resilience.ErrBulkheadFull):
		writeError(w, http.StatusServiceUnavailable, "Server busy")
		return
	case errors.Is(err, resilience.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "Solve timed out")
		return
	case err != nil:
		h.logger.Error(r.Context(), "solve failed",
			observe.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if !sol.Solved() {
		writeError(w, http.StatusBadRequest, "No solution")
		return
	}

	writeJSON(w, http.StatusOK, SolveResponse{Solution: sol})
}

// execute layers the bulkhead and timeout guards around run.
func (h *SolveHandler) execute(ctx context.Context, run func(context.Context) error) error {
	wrapped := run
	if h.timeout != nil {
		inner := wrapped
		wrapped = func(ctx context.Context) error {
			return h.timeout.Execute(ctx, inner)
		}
	}
	if h.bulkhead != nil {
		return h.bulkhead.Execute(ctx, wrapped)
	}
	return wrapped(ctx)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, ErrorResponse{Detail: detail})
}
