package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/ports"
	"github.com/opt-labs/solverd/internal/solver"
	"github.com/opt-labs/solverd/internal/wire"
	"github.com/opt-labs/solverd/pkg/log"
)

// Settings are the server-level solve defaults. They are swapped atomically
// on config reload; the per-request core never shares mutable state.
type Settings struct {
	// DefaultBackend is injected when a request carries no solver config.
	DefaultBackend domain.Backend

	// DefaultTimeLimit is the solve time limit in seconds injected when a
	// request carries no solver config. Non-positive means no limit.
	DefaultTimeLimit float64

	// DefaultGapTolerance is the relative MIP gap injected when a request
	// carries no solver config. Non-positive means engine default.
	DefaultGapTolerance float64

	// Verbose enables engine output for requests without a solver config.
	Verbose bool

	// IntegerWarnThreshold tunes the validation performance warning.
	IntegerWarnThreshold int

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64
}

// DefaultSettings returns the settings used when no configuration is given.
func DefaultSettings() Settings {
	return Settings{
		DefaultBackend:       domain.BackendAuto,
		IntegerWarnThreshold: domain.DefaultIntegerWarnThreshold,
		MaxBodyBytes:         32 << 20, // 32MB
	}
}

// Handler serves the solve API. Each request is an independent unit of
// work: assemble, map, validate, dispatch, solve, map back.
type Handler struct {
	logger   log.Logger
	settings atomic.Pointer[Settings]
	mux      *http.ServeMux
}

// New constructs the API handler.
func New(logger log.Logger, settings Settings) *Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	h := &Handler{logger: logger}
	h.settings.Store(&settings)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/solve", h.handleSolve)
	mux.HandleFunc("POST /v1/solve/stream", h.handleSolveStream)
	mux.HandleFunc("POST /v1/validate", h.handleValidate)
	mux.HandleFunc("GET /v1/solvers", h.handleSolvers)
	h.mux = mux

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// UpdateSettings swaps the solve defaults. Safe to call concurrently with
// request handling; in-flight requests keep the settings they started with.
func (h *Handler) UpdateSettings(settings Settings) {
	h.settings.Store(&settings)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Load()

	var problem wire.Problem
	body := http.MaxBytesReader(w, r.Body, settings.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&problem); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	h.solve(w, r, problem, *settings)
}

func (h *Handler) handleSolveStream(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Load()

	body := http.MaxBytesReader(w, r.Body, settings.MaxBodyBytes)
	problem, err := wire.Assemble(NewNDJSONStream(body))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	h.solve(w, r, problem, *settings)
}

// solve runs the shared request flow for both the single-message and the
// chunked entry points.
func (h *Handler) solve(w http.ResponseWriter, r *http.Request, problem wire.Problem, settings Settings) {
	if problem.SolverConfig == nil {
		problem.SolverConfig = &wire.SolverConfig{
			Backend:      int32(settings.DefaultBackend),
			TimeLimit:    settings.DefaultTimeLimit,
			GapTolerance: settings.DefaultGapTolerance,
			Verbose:      settings.Verbose,
		}
	}

	domainProblem, err := wire.ToDomain(problem)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	engine := solver.ForProblem(domainProblem)
	h.logger.Info("solving problem",
		log.String("problem", domainProblem.Name),
		log.String("engine", engine.Name()),
		log.Int("variables", domainProblem.NumVariables()),
		log.Int("constraints", len(domainProblem.Constraints)),
		log.Bool("mip", domainProblem.IsMixedInteger()))

	start := time.Now()
	solution, err := engine.Solve(r.Context(), domainProblem)
	if err != nil {
		h.logger.Warn("solve failed",
			log.String("problem", domainProblem.Name),
			log.Err(err))
		h.writeError(w, solveErrorStatus(err), err)
		return
	}

	h.logger.Info("solve finished",
		log.String("problem", domainProblem.Name),
		log.String("status", solution.Status.String()),
		log.Duration("elapsed", time.Since(start)))

	h.writeJSON(w, http.StatusOK, wire.ToWire(solution, engine.Name()))
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Load()

	var problem wire.Problem
	body := http.MaxBytesReader(w, r.Body, settings.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&problem); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	domainProblem, err := wire.ToDomain(problem)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	report := domain.BuildReport(domainProblem, settings.IntegerWarnThreshold)
	h.writeJSON(w, http.StatusOK, wire.ToWireReport(report))
}

func (h *Handler) handleSolvers(w http.ResponseWriter, r *http.Request) {
	infos := solver.Catalog()
	out := wire.AvailableSolvers{Solvers: make([]wire.SolverInfo, len(infos))}
	for i, info := range infos {
		out.Solvers[i] = wire.SolverInfo{
			Name:         info.Name,
			Version:      info.Version,
			SupportsLP:   info.SupportsLP,
			SupportsMIP:  info.SupportsMIP,
			Capabilities: info.Capabilities,
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// solveErrorStatus maps the solver error taxonomy onto HTTP status codes.
// Caller faults are 4xx, configuration mismatches 409, engine faults 500.
func solveErrorStatus(err error) int {
	var invalid *ports.InvalidProblemError
	var notAvailable *ports.NotAvailableError

	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notAvailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", log.Err(err))
	}
}
