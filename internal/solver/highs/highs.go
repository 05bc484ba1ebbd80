// Package highs adapts the HiGHS engine (via the gohighs cgo bindings) to
// the solver contract. Handles both linear and mixed-integer programs and
// is the default engine for Auto dispatch.
package highs

import (
	"context"
	"fmt"
	"math"
	"time"

	gohighs "github.com/bartolsthoorn/gohighs/highs"

	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/ports"
)

// Engine solves LP and MIP problems with HiGHS.
// Stateless; each Solve builds a fresh native model.
type Engine struct{}

// New creates a HiGHS engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the engine's display name.
func (e *Engine) Name() string {
	return "HiGHS"
}

// SupportsMIP reports that HiGHS handles mixed-integer problems.
func (e *Engine) SupportsMIP() bool {
	return true
}

// Validate delegates to the shared validation engine.
func (e *Engine) Validate(problem *domain.Problem) ([]string, error) {
	return ports.ValidateProblem(problem)
}

// Solve translates the problem into a HiGHS model, runs it, and maps the
// native model status onto the canonical solution status.
func (e *Engine) Solve(ctx context.Context, problem *domain.Problem) (*domain.Solution, error) {
	if _, err := e.Validate(problem); err != nil {
		return nil, err
	}

	model := buildModel(problem)

	opts := []gohighs.SolveOption{gohighs.WithOutput(problem.Config.Verbose)}
	if problem.Config.HasTimeLimit() {
		opts = append(opts, gohighs.WithTimeLimit(problem.Config.TimeLimit))
	}
	if problem.Config.HasGapTolerance() {
		opts = append(opts, gohighs.WithMIPRelGap(problem.Config.GapTolerance))
	}

	start := time.Now()
	native, err := model.Solve(opts...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return nil, &ports.ExecutionFailedError{Detail: fmt.Sprintf("HiGHS: %v", err)}
	}

	stats := domain.Statistics{
		SolveTimeMs:    elapsed,
		NumVariables:   uint32(problem.NumVariables()),
		NumConstraints: uint32(len(problem.Constraints)),
		NumIntegerVars: uint32(problem.NumIntegerVariables()),
		NumBinaryVars:  uint32(problem.NumBinaryVariables()),
	}

	return mapSolution(problem, native, stats)
}

// buildModel lowers the domain problem to a dense-row gohighs model.
func buildModel(problem *domain.Problem) gohighs.Model {
	n := problem.NumVariables()

	model := gohighs.Model{
		Maximize: problem.Objective.Direction == domain.Maximize,
		ColCosts: problem.Objective.Coefficients,
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
	}

	if len(problem.Variables) == 0 {
		// Default synthesis mirror: non-negative continuous, unbounded above.
		for i := 0; i < n; i++ {
			model.ColUpper[i] = math.Inf(1)
		}
	} else {
		for i, v := range problem.Variables {
			model.ColLower[i] = v.LowerBound
			model.ColUpper[i] = v.UpperBound
		}
		if problem.IsMixedInteger() {
			model.VarTypes = make([]gohighs.VariableType, n)
			for i, v := range problem.Variables {
				if v.IsIntegral() {
					model.VarTypes[i] = gohighs.Integer
				}
			}
		}
	}

	for _, c := range problem.Constraints {
		switch c.Comparison {
		case domain.LessOrEqual:
			model.AddLeRow(c.Coefficients, c.Bound)
		case domain.Equal:
			model.AddEqRow(c.Coefficients, c.Bound)
		case domain.GreaterOrEqual:
			model.AddGeRow(c.Coefficients, c.Bound)
		}
	}

	return model
}

// mapSolution maps a native HiGHS result onto the canonical Solution.
// Unmapped terminal statuses become ExecutionFailedError; they are never
// coerced to an optimistic status.
func mapSolution(problem *domain.Problem, native *gohighs.Solution, stats domain.Statistics) (*domain.Solution, error) {
	switch native.Status {
	case gohighs.ModelStatusOptimal:
		values := native.ColValues
		objective := objectiveValue(problem, values)

		solution := domain.OptimalSolution(objective, values)
		solution.Message = fmt.Sprintf("Optimal solution found for %q", problem.Name)
		solution.Statistics = stats
		solution.Quality = domain.EvaluateQuality(problem, values)
		solution.Quality.Reliability = 1.0
		if !problem.IsMixedInteger() {
			solution.DualValues = native.RowDuals
		}
		return solution, nil

	case gohighs.ModelStatusInfeasible:
		solution := domain.NewSolution(domain.StatusInfeasible,
			"Problem is infeasible: no solution satisfies all constraints")
		solution.Statistics = stats
		return solution, nil

	case gohighs.ModelStatusUnbounded, gohighs.ModelStatusUnboundedOrInfeasible:
		solution := domain.NewSolution(domain.StatusUnbounded,
			"Problem is unbounded: objective can be improved infinitely")
		solution.Statistics = stats
		return solution, nil

	case gohighs.ModelStatusTimeLimit, gohighs.ModelStatusIterationLimit:
		if !native.Status.HasSolution() || len(native.ColValues) == 0 {
			return nil, &ports.ExecutionFailedError{
				Detail: fmt.Sprintf("HiGHS hit %s with no incumbent solution", native.Status),
			}
		}
		status := domain.StatusTimeLimit
		message := "Time limit reached with a feasible incumbent"
		if native.Status == gohighs.ModelStatusIterationLimit {
			status = domain.StatusIterationLimit
			message = "Iteration limit reached with a feasible incumbent"
		}

		values := native.ColValues
		objective := objectiveValue(problem, values)
		solution := domain.NewSolution(status, message)
		solution.OptimalValue = &objective
		solution.VariableValues = values
		solution.Statistics = stats
		solution.Quality = domain.EvaluateQuality(problem, values)
		return solution, nil

	default:
		return nil, &ports.ExecutionFailedError{
			Detail: fmt.Sprintf("HiGHS returned status %s", native.Status),
		}
	}
}

// objectiveValue recomputes the objective from the coefficient vector so
// the reported value always matches the domain problem, not the engine's
// internal (possibly transformed) objective.
func objectiveValue(problem *domain.Problem, values []float64) float64 {
	total := 0.0
	for i, coeff := range problem.Objective.Coefficients {
		if i < len(values) {
			total += coeff * values[i]
		}
	}
	return total
}
