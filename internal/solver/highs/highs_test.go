package highs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	gohighs "github.com/bartolsthoorn/gohighs/highs"

	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/ports"
)

func TestEngineMetadata(t *testing.T) {
	e := New()
	if e.Name() != "HiGHS" {
		t.Errorf("Name() = %q", e.Name())
	}
	if !e.SupportsMIP() {
		t.Error("HiGHS engine must claim MIP support")
	}
}

func TestSolveKnapsack(t *testing.T) {
	weights := []float64{7, 3, 4, 5, 2}
	values := []float64{150, 90, 120, 100, 80}
	const capacity = 15

	vars := make([]domain.Variable, len(weights))
	for i := range vars {
		vars[i] = domain.BinaryVariable(fmt.Sprintf("item%d", i))
	}

	p := domain.NewProblem(domain.NewObjective(domain.Maximize, values)).
		WithName("knapsack").
		WithVariables(vars).
		AddConstraint(domain.NewConstraint(domain.LessOrEqual, weights, capacity))

	solution, err := New().Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if solution.Status != domain.StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", solution.Status)
	}

	want := bruteForceKnapsack(weights, values, capacity)
	if solution.OptimalValue == nil || math.Abs(*solution.OptimalValue-want) > 1e-6 {
		t.Errorf("OptimalValue = %v, want %g", solution.OptimalValue, want)
	}

	q := domain.EvaluateQuality(p, solution.VariableValues)
	if q.MaxConstraintViolation > 1e-6 {
		t.Errorf("capacity violated by %g", q.MaxConstraintViolation)
	}
	if q.MaxIntegralityViolation > 1e-6 {
		t.Errorf("binary variables off-integer by %g", q.MaxIntegralityViolation)
	}
	if solution.DualValues != nil {
		t.Error("MIP solution must not carry dual values")
	}
}

// bruteForceKnapsack enumerates all item subsets.
func bruteForceKnapsack(weights, values []float64, capacity float64) float64 {
	best := 0.0
	for mask := 0; mask < 1<<len(weights); mask++ {
		weight, value := 0.0, 0.0
		for i := range weights {
			if mask&(1<<i) != 0 {
				weight += weights[i]
				value += values[i]
			}
		}
		if weight <= capacity && value > best {
			best = value
		}
	}
	return best
}

func TestSolveLPWithDuals(t *testing.T) {
	p := domain.NewProblem(domain.NewObjective(domain.Maximize, []float64{30, 50})).
		WithVariables([]domain.Variable{
			domain.ContinuousVariable("x0"),
			domain.ContinuousVariable("x1"),
		}).
		AddConstraint(domain.NewConstraint(domain.LessOrEqual, []float64{2, 3}, 100)).
		AddConstraint(domain.NewConstraint(domain.LessOrEqual, []float64{1, 1}, 40))

	solution, err := New().Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if solution.Status != domain.StatusOptimal {
		t.Fatalf("Status = %v, want Optimal", solution.Status)
	}
	if want := 5000.0 / 3.0; math.Abs(*solution.OptimalValue-want) > 1e-6 {
		t.Errorf("OptimalValue = %g, want %g", *solution.OptimalValue, want)
	}
	if len(solution.DualValues) != 2 {
		t.Errorf("DualValues = %v, want one per constraint", solution.DualValues)
	}
}

func TestSolveRejectsInvalidProblem(t *testing.T) {
	p := domain.NewProblem(domain.NewObjective(domain.Minimize, nil))

	_, err := New().Solve(context.Background(), p)
	var invalid *ports.InvalidProblemError
	if !errors.As(err, &invalid) {
		t.Fatalf("Solve() error = %v, want InvalidProblemError", err)
	}
}

func TestBuildModel(t *testing.T) {
	p := domain.NewProblem(domain.NewObjective(domain.Maximize, []float64{1, 2, 3})).
		WithVariables([]domain.Variable{
			domain.ContinuousVariable("a").WithBounds(0, 10),
			domain.IntegerVariable("b"),
			domain.BinaryVariable("c"),
		}).
		AddConstraint(domain.NewConstraint(domain.LessOrEqual, []float64{1, 1, 1}, 5)).
		AddConstraint(domain.NewConstraint(domain.Equal, []float64{1, 0, 0}, 2)).
		AddConstraint(domain.NewConstraint(domain.GreaterOrEqual, []float64{0, 1, 0}, 1))

	model := buildModel(p)

	if !model.Maximize {
		t.Error("Maximize not set")
	}
	if got := model.ColUpper[0]; got != 10 {
		t.Errorf("ColUpper[0] = %g, want 10", got)
	}
	if got := model.ColUpper[2]; got != 1 {
		t.Errorf("ColUpper[2] = %g, want 1 for binary", got)
	}
	wantTypes := []gohighs.VariableType{gohighs.Continuous, gohighs.Integer, gohighs.Integer}
	for i, want := range wantTypes {
		if model.VarTypes[i] != want {
			t.Errorf("VarTypes[%d] = %v, want %v", i, model.VarTypes[i], want)
		}
	}
	if len(model.RowLower) != 3 || len(model.RowUpper) != 3 {
		t.Fatalf("rows = %d/%d, want 3 each", len(model.RowLower), len(model.RowUpper))
	}
	if !math.IsInf(model.RowLower[0], -1) || model.RowUpper[0] != 5 {
		t.Errorf("LE row bounds = [%g, %g]", model.RowLower[0], model.RowUpper[0])
	}
	if model.RowLower[1] != 2 || model.RowUpper[1] != 2 {
		t.Errorf("EQ row bounds = [%g, %g]", model.RowLower[1], model.RowUpper[1])
	}
	if model.RowLower[2] != 1 || !math.IsInf(model.RowUpper[2], 1) {
		t.Errorf("GE row bounds = [%g, %g]", model.RowLower[2], model.RowUpper[2])
	}
}

func TestBuildModelDefaultVariables(t *testing.T) {
	p := domain.NewProblem(domain.NewObjective(domain.Minimize, []float64{1, 1}))

	model := buildModel(p)

	if model.VarTypes != nil {
		t.Errorf("VarTypes = %v, want nil for pure LP", model.VarTypes)
	}
	for i := range model.ColLower {
		if model.ColLower[i] != 0 || !math.IsInf(model.ColUpper[i], 1) {
			t.Errorf("default bounds[%d] = [%g, %g], want [0, +inf)",
				i, model.ColLower[i], model.ColUpper[i])
		}
	}
}

func TestMapSolutionStatuses(t *testing.T) {
	p := domain.NewProblem(domain.NewObjective(domain.Maximize, []float64{2})).
		WithVariables([]domain.Variable{domain.ContinuousVariable("x0").WithBounds(0, 3)}).
		AddConstraint(domain.NewConstraint(domain.LessOrEqual, []float64{1}, 3))
	stats := domain.Statistics{NumVariables: 1, NumConstraints: 1}

	t.Run("optimal", func(t *testing.T) {
		native := &gohighs.Solution{
			Status:    gohighs.ModelStatusOptimal,
			ColValues: []float64{3},
			RowDuals:  []float64{2},
		}
		solution, err := mapSolution(p, native, stats)
		if err != nil {
			t.Fatalf("mapSolution() error = %v", err)
		}
		if solution.Status != domain.StatusOptimal {
			t.Errorf("Status = %v", solution.Status)
		}
		if *solution.OptimalValue != 6 {
			t.Errorf("OptimalValue = %g, want recomputed 6", *solution.OptimalValue)
		}
		if *solution.Gap != 0 {
			t.Errorf("Gap = %g, want 0", *solution.Gap)
		}
	})

	t.Run("infeasible", func(t *testing.T) {
		native := &gohighs.Solution{Status: gohighs.ModelStatusInfeasible}
		solution, err := mapSolution(p, native, stats)
		if err != nil {
			t.Fatalf("mapSolution() error = %v", err)
		}
		if solution.Status != domain.StatusInfeasible {
			t.Errorf("Status = %v", solution.Status)
		}
	})

	t.Run("unbounded or infeasible maps to unbounded", func(t *testing.T) {
		native := &gohighs.Solution{Status: gohighs.ModelStatusUnboundedOrInfeasible}
		solution, err := mapSolution(p, native, stats)
		if err != nil {
			t.Fatalf("mapSolution() error = %v", err)
		}
		if solution.Status != domain.StatusUnbounded {
			t.Errorf("Status = %v", solution.Status)
		}
	})

	t.Run("time limit without incumbent fails", func(t *testing.T) {
		native := &gohighs.Solution{Status: gohighs.ModelStatusTimeLimit}
		_, err := mapSolution(p, native, stats)
		var failed *ports.ExecutionFailedError
		if !errors.As(err, &failed) {
			t.Fatalf("error = %v, want ExecutionFailedError", err)
		}
	})

	t.Run("unmapped status fails", func(t *testing.T) {
		native := &gohighs.Solution{Status: gohighs.ModelStatusNotSet}
		_, err := mapSolution(p, native, stats)
		var failed *ports.ExecutionFailedError
		if !errors.As(err, &failed) {
			t.Fatalf("error = %v, want ExecutionFailedError", err)
		}
	})
}
