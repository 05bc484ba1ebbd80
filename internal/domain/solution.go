package domain

// Statistics aggregates counters describing one solve.
// Populated by the solving engine and passed through unmodified.
type Statistics struct {
	// SimplexIterations is the number of simplex iterations performed.
	SimplexIterations uint64

	// NodesExplored is the number of branch-and-bound nodes explored.
	NodesExplored uint64

	// SolveTimeMs is the wall-clock solve time in milliseconds.
	SolveTimeMs float64

	// NumVariables is the number of decision variables in the model.
	NumVariables uint32

	// NumConstraints is the number of constraint rows in the model.
	NumConstraints uint32

	// NumIntegerVars counts integer and binary variables.
	NumIntegerVars uint32

	// NumBinaryVars counts binary variables.
	NumBinaryVars uint32
}

// Quality holds diagnostic ratios describing solution accuracy.
type Quality struct {
	// MaxConstraintViolation is the largest absolute row violation.
	MaxConstraintViolation float64

	// MaxIntegralityViolation is the largest distance of an integral
	// variable's value from the nearest integer.
	MaxIntegralityViolation float64

	// Reliability is an engine-reported confidence score in [0, 1].
	Reliability float64
}

// Solution is the outcome of one solve. Produced exclusively by a solver
// backend and immutable once returned.
type Solution struct {
	// Status is the canonical termination status.
	Status Status

	// OptimalValue is the objective value of the best solution, if any.
	OptimalValue *float64

	// BestBound is the best proven objective bound, if any.
	BestBound *float64

	// Gap is the relative difference between OptimalValue and BestBound,
	// if both are known.
	Gap *float64

	// VariableValues are the primal values, positionally aligned with the
	// problem's variables. Empty when no solution exists.
	VariableValues []float64

	// DualValues are the constraint dual values when the engine provides
	// them (LP only). Empty otherwise.
	DualValues []float64

	// Message is a human-readable summary of the outcome.
	Message string

	// Statistics describes the solve process.
	Statistics Statistics

	// Quality describes solution accuracy.
	Quality Quality
}

// NewSolution creates a solution with only a status and message.
func NewSolution(status Status, message string) *Solution {
	return &Solution{Status: status, Message: message}
}

// OptimalSolution creates an optimal solution with a zero gap.
func OptimalSolution(value float64, variableValues []float64) *Solution {
	bound := value
	gap := 0.0
	return &Solution{
		Status:         StatusOptimal,
		OptimalValue:   &value,
		BestBound:      &bound,
		Gap:            &gap,
		VariableValues: variableValues,
		Message:        "Optimal solution found",
	}
}

// IsOptimal reports whether the solve proved optimality.
func (s *Solution) IsOptimal() bool {
	return s.Status == StatusOptimal
}

// IsFeasible reports whether the solution values satisfy the constraints.
func (s *Solution) IsFeasible() bool {
	return s.Status == StatusOptimal || s.Status == StatusFeasible
}
