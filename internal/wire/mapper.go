package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/opt-labs/solverd/internal/domain"
)

// ErrMissingObjective is returned by ToDomain when the wire problem has no
// objective function.
var ErrMissingObjective = errors.New("wire: objective is required")

// InvalidEnumError means an enum field carried an out-of-range discriminant.
type InvalidEnumError struct {
	// Field is the offending field, e.g. "variable kind".
	Field string

	// Value is the rejected discriminant.
	Value int32
}

// Error implements the error interface.
func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("wire: invalid %s discriminant %d", e.Field, e.Value)
}

// ToDomain converts a wire problem to the domain model, filling defaults
// for absent structure.
//
// Default filling is not validation: an empty variable list synthesizes one
// non-negative continuous variable per objective coefficient, and an absent
// config resolves to Auto with no limits. Structural consistency of the
// result is checked later by the validation engine.
func ToDomain(p Problem) (*domain.Problem, error) {
	if p.Objective == nil {
		return nil, ErrMissingObjective
	}

	objective, err := toDomainObjective(*p.Objective)
	if err != nil {
		return nil, err
	}

	var variables []domain.Variable
	if len(p.Variables) == 0 {
		variables = make([]domain.Variable, objective.NumVariables())
		for i := range variables {
			variables[i] = domain.ContinuousVariable(fmt.Sprintf("x%d", i))
		}
	} else {
		variables = make([]domain.Variable, len(p.Variables))
		for i, v := range p.Variables {
			variables[i], err = toDomainVariable(v)
			if err != nil {
				return nil, err
			}
		}
	}

	constraints := make([]domain.Constraint, len(p.Constraints))
	for i, c := range p.Constraints {
		constraints[i], err = toDomainConstraint(c)
		if err != nil {
			return nil, err
		}
	}

	return &domain.Problem{
		Name:        p.Name,
		Description: p.Description,
		Objective:   objective,
		Constraints: constraints,
		Variables:   variables,
		Config:      toDomainConfig(p.SolverConfig),
	}, nil
}

func toDomainVariable(v Variable) (domain.Variable, error) {
	if v.Kind < int32(domain.Continuous) || v.Kind > int32(domain.Binary) {
		return domain.Variable{}, &InvalidEnumError{Field: "variable kind", Value: v.Kind}
	}

	upper := math.Inf(1)
	if v.UpperBound != nil {
		upper = *v.UpperBound
	}

	return domain.Variable{
		Kind:       domain.VariableKind(v.Kind),
		LowerBound: v.LowerBound,
		UpperBound: upper,
		Name:       v.Name,
	}, nil
}

func toDomainConstraint(c Constraint) (domain.Constraint, error) {
	if c.Comparison < int32(domain.LessOrEqual) || c.Comparison > int32(domain.GreaterOrEqual) {
		return domain.Constraint{}, &InvalidEnumError{Field: "constraint comparison", Value: c.Comparison}
	}

	return domain.Constraint{
		Comparison:   domain.Comparison(c.Comparison),
		Coefficients: c.Coefficients,
		Bound:        c.Bound,
		Name:         c.Name,
	}, nil
}

func toDomainObjective(o Objective) (domain.Objective, error) {
	if o.Direction < int32(domain.Minimize) || o.Direction > int32(domain.Maximize) {
		return domain.Objective{}, &InvalidEnumError{Field: "optimization direction", Value: o.Direction}
	}

	objective := domain.NewObjective(domain.Direction(o.Direction), o.Coefficients)
	if len(o.VariableNames) > 0 {
		objective = objective.WithNames(o.VariableNames)
	}
	return objective, nil
}

// toDomainConfig applies the sentinel encoding: non-positive limits mean
// "unset". An unknown backend discriminant falls back to Auto rather than
// failing, so that newer clients degrade gracefully.
func toDomainConfig(c *SolverConfig) domain.SolverConfig {
	if c == nil {
		return domain.DefaultSolverConfig()
	}

	backend := domain.BackendAuto
	if c.Backend >= int32(domain.BackendAuto) && c.Backend <= int32(domain.BackendSimplex) {
		backend = domain.Backend(c.Backend)
	}

	cfg := domain.SolverConfig{Backend: backend, Verbose: c.Verbose}
	if c.TimeLimit > 0 {
		cfg.TimeLimit = c.TimeLimit
	}
	if c.GapTolerance > 0 {
		cfg.GapTolerance = c.GapTolerance
	}
	return cfg
}

// ToWire converts a solution to its wire form. Total: it never fails.
// backendName attributes the result to the engine that produced it.
func ToWire(s *domain.Solution, backendName string) Result {
	return Result{
		Status:         int32(s.Status),
		OptimalValue:   s.OptimalValue,
		BestBound:      s.BestBound,
		Gap:            s.Gap,
		SolutionValues: s.VariableValues,
		DualValues:     s.DualValues,
		Message:        s.Message,
		Statistics: &Statistics{
			SimplexIterations: s.Statistics.SimplexIterations,
			NodesExplored:     s.Statistics.NodesExplored,
			SolveTimeMs:       s.Statistics.SolveTimeMs,
			NumVariables:      s.Statistics.NumVariables,
			NumConstraints:    s.Statistics.NumConstraints,
			NumIntegerVars:    s.Statistics.NumIntegerVars,
			NumBinaryVars:     s.Statistics.NumBinaryVars,
			SolverBackend:     backendName,
		},
		Quality: &Quality{
			MaxConstraintViolation:  s.Quality.MaxConstraintViolation,
			MaxIntegralityViolation: s.Quality.MaxIntegralityViolation,
			Reliability:             s.Quality.Reliability,
		},
	}
}

// ToWireReport converts a validation report to its wire form.
func ToWireReport(r domain.Report) ValidationReport {
	return ValidationReport{
		IsValid:             r.IsValid,
		Errors:              r.Errors,
		Warnings:            r.Warnings,
		NumVariables:        r.NumVariables,
		NumConstraints:      r.NumConstraints,
		NumIntegerVars:      r.NumIntegerVars,
		EstimatedDifficulty: r.EstimatedDifficulty,
	}
}
