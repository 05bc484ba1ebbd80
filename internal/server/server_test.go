package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/wire"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return New(nil, DefaultSettings())
}

const productionProblem = `{
	"problem_name": "production",
	"objective": {"direction": 1, "coefficients": [30, 50]},
	"variables": [
		{"kind": 0, "lower_bound": 0},
		{"kind": 0, "lower_bound": 0}
	],
	"constraints": [
		{"comparison": 0, "coefficients": [2, 3], "bound": 100},
		{"comparison": 0, "coefficients": [1, 1], "bound": 40}
	],
	"solver_config": {"backend": 2}
}`

func TestHandleSolve(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(productionProblem))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var result wire.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Status != int32(domain.StatusOptimal) {
		t.Fatalf("result status = %d, message = %q", result.Status, result.Message)
	}
	if result.OptimalValue == nil || math.Abs(*result.OptimalValue-5000.0/3.0) > 1e-6 {
		t.Errorf("optimal_value = %v, want 5000/3", result.OptimalValue)
	}
	if result.Statistics == nil || result.Statistics.SolverBackend != "Gonum Simplex" {
		t.Errorf("statistics = %+v", result.Statistics)
	}
}

func TestHandleSolveDefaultBackend(t *testing.T) {
	h := New(nil, Settings{
		DefaultBackend:       domain.BackendSimplex,
		IntegerWarnThreshold: domain.DefaultIntegerWarnThreshold,
		MaxBodyBytes:         1 << 20,
	})

	// No solver_config in the request: the server default applies.
	body := `{
		"objective": {"direction": 0, "coefficients": [1]},
		"constraints": [{"comparison": 2, "coefficients": [1], "bound": 5}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result wire.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Statistics.SolverBackend != "Gonum Simplex" {
		t.Errorf("solver_backend = %q, want injected default", result.Statistics.SolverBackend)
	}
	if result.OptimalValue == nil || math.Abs(*result.OptimalValue-5) > 1e-6 {
		t.Errorf("optimal_value = %v, want 5", result.OptimalValue)
	}
}

func TestHandleSolveErrors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{
			name: "malformed json",
			body: `{"objective": `,
			code: http.StatusBadRequest,
		},
		{
			name: "missing objective",
			body: `{"problem_name": "empty"}`,
			code: http.StatusBadRequest,
		},
		{
			name: "invalid enum discriminant",
			body: `{"objective": {"direction": 7, "coefficients": [1]}}`,
			code: http.StatusBadRequest,
		},
		{
			name: "constraint width mismatch",
			body: `{
				"objective": {"direction": 0, "coefficients": [1, 1]},
				"constraints": [{"comparison": 0, "coefficients": [1], "bound": 1}]
			}`,
			code: http.StatusBadRequest,
		},
		{
			name: "mip on lp-only engine",
			body: `{
				"objective": {"direction": 1, "coefficients": [1]},
				"variables": [{"kind": 2, "lower_bound": 0}],
				"constraints": [{"comparison": 0, "coefficients": [1], "bound": 1}],
				"solver_config": {"backend": 2}
			}`,
			code: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d; body = %s", rec.Code, tt.code, rec.Body.String())
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestHandleSolveStream(t *testing.T) {
	h := newTestHandler(t)

	// Same production problem, one tagged fragment per line.
	body := strings.Join([]string{
		`{"metadata": {"problem_name": "production"}}`,
		`{"solver_config": {"backend": 2}}`,
		`{"variable": {"kind": 0, "lower_bound": 0}}`,
		`{"variable": {"kind": 0, "lower_bound": 0}}`,
		`{"objective": {"direction": 1, "coefficients": [30, 50]}}`,
		`{"constraint": {"comparison": 0, "coefficients": [2, 3], "bound": 100}}`,
		`{"constraint": {"comparison": 0, "coefficients": [1, 1], "bound": 40}}`,
	}, "\n")

	req := httptest.NewRequest(http.MethodPost, "/v1/solve/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result wire.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Status != int32(domain.StatusOptimal) {
		t.Fatalf("result status = %d, message = %q", result.Status, result.Message)
	}
	if want := 5000.0 / 3.0; math.Abs(*result.OptimalValue-want) > 1e-6 {
		t.Errorf("optimal_value = %g, want %g", *result.OptimalValue, want)
	}
}

func TestHandleSolveStreamTruncated(t *testing.T) {
	h := newTestHandler(t)

	// Second line is cut off mid-object.
	body := "{\"metadata\": {\"problem_name\": \"partial\"}}\n{\"objective\": {\"direc"

	req := httptest.NewRequest(http.MethodPost, "/v1/solve/stream", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleValidate(t *testing.T) {
	h := newTestHandler(t)

	t.Run("valid problem", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(productionProblem))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var report wire.ValidationReport
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !report.IsValid {
			t.Errorf("is_valid = false, errors = %v", report.Errors)
		}
		if report.NumVariables != 2 || report.NumConstraints != 2 {
			t.Errorf("counts = %d vars / %d constraints", report.NumVariables, report.NumConstraints)
		}
	})

	t.Run("structurally invalid problem reports errors", func(t *testing.T) {
		body := `{
			"objective": {"direction": 0, "coefficients": [1, 1]},
			"constraints": [{"comparison": 0, "coefficients": [1], "bound": 1}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		// Structural violations are report content, not transport errors.
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var report wire.ValidationReport
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if report.IsValid || len(report.Errors) == 0 {
			t.Errorf("report = %+v, want invalid with errors", report)
		}
	})
}

func TestHandleSolvers(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/solvers", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out wire.AvailableSolvers
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Solvers) != 2 {
		t.Fatalf("solvers = %d, want 2", len(out.Solvers))
	}
	for _, s := range out.Solvers {
		if s.Name == "" || s.Version == "" {
			t.Errorf("incomplete solver entry: %+v", s)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/solve", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestUpdateSettings(t *testing.T) {
	h := newTestHandler(t)
	h.UpdateSettings(Settings{
		DefaultBackend:       domain.BackendSimplex,
		IntegerWarnThreshold: 1,
		MaxBodyBytes:         1 << 20,
	})

	body := `{
		"objective": {"direction": 0, "coefficients": [1]},
		"constraints": [{"comparison": 2, "coefficients": [1], "bound": 5}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result wire.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Statistics.SolverBackend != "Gonum Simplex" {
		t.Errorf("solver_backend = %q, want the reloaded default", result.Statistics.SolverBackend)
	}
}

func TestMaxBodyBytes(t *testing.T) {
	h := New(nil, Settings{
		DefaultBackend:       domain.BackendSimplex,
		IntegerWarnThreshold: domain.DefaultIntegerWarnThreshold,
		MaxBodyBytes:         16,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/solve", strings.NewReader(productionProblem))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized body", rec.Code)
	}
}
