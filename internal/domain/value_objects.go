package domain

// VariableKind is the kind of a decision variable.
type VariableKind int

const (
	// Continuous is a real-valued variable.
	Continuous VariableKind = iota
	// Integer is an integer-valued variable.
	Integer
	// Binary is a 0/1 variable.
	Binary
)

// String returns a human-readable representation of the kind.
func (k VariableKind) String() string {
	switch k {
	case Continuous:
		return "Continuous"
	case Integer:
		return "Integer"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Comparison is the comparison operator of a linear constraint.
type Comparison int

const (
	// LessOrEqual constrains the row to be <= the bound.
	LessOrEqual Comparison = iota
	// Equal constrains the row to be == the bound.
	Equal
	// GreaterOrEqual constrains the row to be >= the bound.
	GreaterOrEqual
)

// String returns a human-readable representation of the comparison.
func (c Comparison) String() string {
	switch c {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Direction is the optimization direction of an objective function.
type Direction int

const (
	// Minimize seeks the smallest objective value.
	Minimize Direction = iota
	// Maximize seeks the largest objective value.
	Maximize
)

// String returns a human-readable representation of the direction.
func (d Direction) String() string {
	switch d {
	case Minimize:
		return "Minimize"
	case Maximize:
		return "Maximize"
	default:
		return "Unknown"
	}
}

// Status is the canonical termination status of a solve.
type Status int

const (
	// StatusOptimal means an optimal solution was found.
	StatusOptimal Status = iota
	// StatusFeasible means a feasible but possibly suboptimal solution was found.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies all constraints.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusTimeLimit means the configured time limit was reached.
	StatusTimeLimit
	// StatusIterationLimit means the iteration limit was reached.
	StatusIterationLimit
	// StatusNodeLimit means the branch-and-bound node limit was reached.
	StatusNodeLimit
	// StatusError means the engine reported an internal error.
	StatusError
	// StatusInterrupted means the solve was interrupted.
	StatusInterrupted
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusTimeLimit:
		return "Time Limit Reached"
	case StatusIterationLimit:
		return "Iteration Limit Reached"
	case StatusNodeLimit:
		return "Node Limit Reached"
	case StatusError:
		return "Error"
	case StatusInterrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// Backend identifies a solving engine.
type Backend int

const (
	// BackendAuto lets the dispatcher pick the default engine.
	BackendAuto Backend = iota
	// BackendHiGHS selects the HiGHS engine (LP and MIP).
	BackendHiGHS
	// BackendSimplex selects the pure-Go simplex engine (LP only).
	BackendSimplex
)

// String returns a human-readable representation of the backend.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "Auto"
	case BackendHiGHS:
		return "HiGHS"
	case BackendSimplex:
		return "Gonum Simplex"
	default:
		return "Unknown"
	}
}
