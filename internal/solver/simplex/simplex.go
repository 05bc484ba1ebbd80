// Package simplex adapts the gonum dense simplex method to the solver
// contract. Pure Go, no cgo; linear programs only.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/ports"
)

// Engine solves linear programs with gonum's two-phase simplex.
// Stateless; safe for concurrent use.
type Engine struct{}

// New creates a simplex engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the engine's display name.
func (e *Engine) Name() string {
	return "Gonum Simplex"
}

// SupportsMIP reports that this engine cannot solve mixed-integer problems.
func (e *Engine) SupportsMIP() bool {
	return false
}

// Validate delegates to the shared validation engine.
func (e *Engine) Validate(problem *domain.Problem) ([]string, error) {
	return ports.ValidateProblem(problem)
}

// Solve runs the problem through gonum's simplex. Integer-constrained
// problems are rejected with NotAvailableError.
func (e *Engine) Solve(ctx context.Context, problem *domain.Problem) (*domain.Solution, error) {
	if _, err := e.Validate(problem); err != nil {
		return nil, err
	}

	if problem.IsMixedInteger() {
		return nil, &ports.NotAvailableError{
			Detail: fmt.Sprintf("%s supports linear programs only; problem has %d integer variables",
				e.Name(), problem.NumIntegerVariables()),
		}
	}

	start := time.Now()
	values, err := e.run(problem)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	stats := domain.Statistics{
		SolveTimeMs:    elapsed,
		NumVariables:   uint32(problem.NumVariables()),
		NumConstraints: uint32(len(problem.Constraints)),
	}

	switch {
	case err == nil:
		objective := 0.0
		for i, coeff := range problem.Objective.Coefficients {
			objective += coeff * values[i]
		}

		solution := domain.OptimalSolution(objective, values)
		solution.Message = fmt.Sprintf("Optimal solution found for %q", problem.Name)
		solution.Statistics = stats
		solution.Quality = domain.EvaluateQuality(problem, values)
		solution.Quality.Reliability = 1.0
		return solution, nil

	case errors.Is(err, lp.ErrInfeasible):
		solution := domain.NewSolution(domain.StatusInfeasible,
			"Problem is infeasible: no solution satisfies all constraints")
		solution.Statistics = stats
		return solution, nil

	case errors.Is(err, lp.ErrUnbounded):
		solution := domain.NewSolution(domain.StatusUnbounded,
			"Problem is unbounded: objective can be improved infinitely")
		solution.Statistics = stats
		return solution, nil

	default:
		return nil, &ports.ExecutionFailedError{
			Detail: fmt.Sprintf("simplex terminated abnormally: %v", err),
		}
	}
}

// run converts the problem to standard form and solves it.
//
// The general form (free variables, mixed comparisons, bounds) is lowered
// to min c'z s.t. Az = h, z >= 0 by splitting each variable into a
// positive and a negative part and adding one slack per inequality row:
//
//	z = [x+ ; x- ; s],  x = x+ - x-
func (e *Engine) run(problem *domain.Problem) ([]float64, error) {
	n := problem.NumVariables()

	// Gather every row as "dense coefficients, comparison, bound",
	// including variable bounds, so a single lowering handles all of them.
	type row struct {
		coeffs []float64
		cmp    domain.Comparison
		bound  float64
	}
	var rows []row

	for _, c := range problem.Constraints {
		rows = append(rows, row{coeffs: c.Coefficients, cmp: c.Comparison, bound: c.Bound})
	}
	if len(problem.Variables) == 0 {
		// Default synthesis mirror: non-negative continuous, unbounded above.
		for i := 0; i < n; i++ {
			coeffs := make([]float64, n)
			coeffs[i] = 1
			rows = append(rows, row{coeffs: coeffs, cmp: domain.GreaterOrEqual, bound: 0})
		}
	}
	for i, v := range problem.Variables {
		if !math.IsInf(v.LowerBound, -1) {
			coeffs := make([]float64, n)
			coeffs[i] = 1
			rows = append(rows, row{coeffs: coeffs, cmp: domain.GreaterOrEqual, bound: v.LowerBound})
		}
		if v.Bounded() {
			coeffs := make([]float64, n)
			coeffs[i] = 1
			rows = append(rows, row{coeffs: coeffs, cmp: domain.LessOrEqual, bound: v.UpperBound})
		}
	}

	numIneq := 0
	for _, r := range rows {
		if r.cmp != domain.Equal {
			numIneq++
		}
	}

	m := len(rows)
	cols := 2*n + numIneq

	c := make([]float64, cols)
	for i, coeff := range problem.Objective.Coefficients {
		v := coeff
		if problem.Objective.Direction == domain.Maximize {
			v = -coeff
		}
		c[i] = v
		c[n+i] = -v
	}

	if m == 0 {
		// No rows at all: any nonzero objective direction is unbounded,
		// an all-zero objective is trivially optimal at the origin.
		for _, coeff := range problem.Objective.Coefficients {
			if coeff != 0 {
				return nil, lp.ErrUnbounded
			}
		}
		return make([]float64, n), nil
	}

	a := mat.NewDense(m, cols, nil)
	h := make([]float64, m)
	slack := 0
	for ri, r := range rows {
		sign := 1.0
		if r.cmp == domain.GreaterOrEqual {
			// Flip to <= so every slack enters with +1.
			sign = -1.0
		}
		for i, coeff := range r.coeffs {
			a.Set(ri, i, sign*coeff)
			a.Set(ri, n+i, -sign*coeff)
		}
		h[ri] = sign * r.bound
		if r.cmp != domain.Equal {
			a.Set(ri, 2*n+slack, 1)
			slack++
		}
	}

	_, z, err := lp.Simplex(c, a, h, 0, nil)
	if err != nil {
		return nil, err
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = z[i] - z[n+i]
	}
	return values, nil
}
