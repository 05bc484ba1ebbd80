package domain

import (
	"fmt"
	"math"
)

// Variable is a decision variable in an optimization problem.
// Immutable after construction. An upper bound of +Inf means unbounded above.
type Variable struct {
	// Kind is the variable kind (continuous, integer, binary).
	Kind VariableKind

	// LowerBound is the smallest value the variable may take.
	LowerBound float64

	// UpperBound is the largest value the variable may take.
	// math.Inf(1) means no upper bound.
	UpperBound float64

	// Name is the display name of the variable.
	Name string
}

// ContinuousVariable creates a non-negative continuous variable,
// unbounded above.
func ContinuousVariable(name string) Variable {
	return Variable{
		Kind:       Continuous,
		LowerBound: 0,
		UpperBound: math.Inf(1),
		Name:       name,
	}
}

// IntegerVariable creates a non-negative integer variable, unbounded above.
func IntegerVariable(name string) Variable {
	return Variable{
		Kind:       Integer,
		LowerBound: 0,
		UpperBound: math.Inf(1),
		Name:       name,
	}
}

// BinaryVariable creates a 0/1 variable.
func BinaryVariable(name string) Variable {
	return Variable{
		Kind:       Binary,
		LowerBound: 0,
		UpperBound: 1,
		Name:       name,
	}
}

// WithBounds returns a copy of the variable with the given bounds.
func (v Variable) WithBounds(lower, upper float64) Variable {
	v.LowerBound = lower
	v.UpperBound = upper
	return v
}

// Bounded reports whether the variable has a finite upper bound.
func (v Variable) Bounded() bool {
	return !math.IsInf(v.UpperBound, 1)
}

// IsIntegral reports whether the variable is integer or binary constrained.
func (v Variable) IsIntegral() bool {
	return v.Kind == Integer || v.Kind == Binary
}

// Objective is a linear objective function. The number of coefficients
// defines the problem's variable dimensionality.
type Objective struct {
	// Direction is the optimization direction.
	Direction Direction

	// Coefficients are the per-variable objective coefficients.
	Coefficients []float64

	// VariableNames are positionally aligned display names.
	VariableNames []string
}

// NewObjective creates an objective with positional variable names x0..x(n-1).
func NewObjective(direction Direction, coefficients []float64) Objective {
	names := make([]string, len(coefficients))
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return Objective{
		Direction:     direction,
		Coefficients:  coefficients,
		VariableNames: names,
	}
}

// WithNames returns a copy of the objective with explicit variable names.
func (o Objective) WithNames(names []string) Objective {
	o.VariableNames = names
	return o
}

// NumVariables returns the problem dimensionality defined by this objective.
func (o Objective) NumVariables() int {
	return len(o.Coefficients)
}

// Constraint is a single linear constraint row.
type Constraint struct {
	// Comparison is the row's comparison operator.
	Comparison Comparison

	// Coefficients are the per-variable row coefficients.
	Coefficients []float64

	// Bound is the right-hand side of the comparison.
	Bound float64

	// Name is an optional display name for diagnostics.
	Name string
}

// NewConstraint creates an unnamed constraint.
func NewConstraint(cmp Comparison, coefficients []float64, bound float64) Constraint {
	return Constraint{
		Comparison:   cmp,
		Coefficients: coefficients,
		Bound:        bound,
	}
}

// WithName returns a copy of the constraint with a display name.
func (c Constraint) WithName(name string) Constraint {
	c.Name = name
	return c
}

// NumVariables returns the number of coefficients in the row.
func (c Constraint) NumVariables() int {
	return len(c.Coefficients)
}

// SolverConfig selects and tunes the solving engine.
// Zero or negative limit values mean "unset"; see the wire package for the
// sentinel encoding this mirrors.
type SolverConfig struct {
	// Backend selects the engine. BackendAuto defers to the dispatcher.
	Backend Backend

	// TimeLimit is the advisory wall-clock limit in seconds. <= 0 means none.
	TimeLimit float64

	// GapTolerance is the relative MIP gap at which the engine may stop.
	// <= 0 means none.
	GapTolerance float64

	// Verbose enables engine log output.
	Verbose bool
}

// DefaultSolverConfig returns the configuration used when a request carries
// none: Auto backend, no limits, non-verbose.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{Backend: BackendAuto}
}

// HasTimeLimit reports whether a time limit is configured.
func (c SolverConfig) HasTimeLimit() bool {
	return c.TimeLimit > 0
}

// HasGapTolerance reports whether a gap tolerance is configured.
func (c SolverConfig) HasGapTolerance() bool {
	return c.GapTolerance > 0
}

// Problem is the aggregate root for one solve request.
//
// Variables is either empty (callers rely on default synthesis in the wire
// layer) or has exactly NumVariables entries aligned positionally with the
// objective coefficients. A Problem is owned by a single request flow and
// must not be mutated by solver backends.
type Problem struct {
	// Name identifies the problem in logs and messages.
	Name string

	// Description is free-text documentation carried through unmodified.
	Description string

	// Objective is the linear objective. Required.
	Objective Objective

	// Constraints are the linear constraint rows.
	Constraints []Constraint

	// Variables are the decision variables, positionally aligned with the
	// objective coefficients, or empty.
	Variables []Variable

	// Config selects and tunes the engine.
	Config SolverConfig
}

// NewProblem creates a problem with the given objective and default config.
func NewProblem(objective Objective) *Problem {
	return &Problem{
		Objective: objective,
		Config:    DefaultSolverConfig(),
	}
}

// WithName sets the problem name.
func (p *Problem) WithName(name string) *Problem {
	p.Name = name
	return p
}

// WithDescription sets the problem description.
func (p *Problem) WithDescription(description string) *Problem {
	p.Description = description
	return p
}

// AddConstraint appends a constraint row.
func (p *Problem) AddConstraint(c Constraint) *Problem {
	p.Constraints = append(p.Constraints, c)
	return p
}

// WithVariables sets the variable list.
func (p *Problem) WithVariables(vars []Variable) *Problem {
	p.Variables = vars
	return p
}

// WithConfig sets the solver configuration.
func (p *Problem) WithConfig(cfg SolverConfig) *Problem {
	p.Config = cfg
	return p
}

// NumVariables returns the problem dimensionality.
func (p *Problem) NumVariables() int {
	return p.Objective.NumVariables()
}

// NumIntegerVariables counts integer and binary variables.
func (p *Problem) NumIntegerVariables() int {
	n := 0
	for _, v := range p.Variables {
		if v.IsIntegral() {
			n++
		}
	}
	return n
}

// NumBinaryVariables counts binary variables.
func (p *Problem) NumBinaryVariables() int {
	n := 0
	for _, v := range p.Variables {
		if v.Kind == Binary {
			n++
		}
	}
	return n
}

// IsMixedInteger reports whether any variable is integer constrained.
func (p *Problem) IsMixedInteger() bool {
	return p.NumIntegerVariables() > 0
}
