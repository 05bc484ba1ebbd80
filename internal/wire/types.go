package wire

// Wire DTOs for the solve API. Enum fields carry integer discriminants
// matching the domain value objects; out-of-range discriminants are
// rejected during mapping. These types stay JSON-only so that transport
// concerns never leak into the domain package.

// Variable is the wire form of a decision variable.
type Variable struct {
	Kind       int32    `json:"kind"`
	LowerBound float64  `json:"lower_bound"`
	UpperBound *float64 `json:"upper_bound,omitempty"`
	Name       string   `json:"name,omitempty"`
}

// Objective is the wire form of the objective function.
type Objective struct {
	Direction     int32     `json:"direction"`
	Coefficients  []float64 `json:"coefficients"`
	VariableNames []string  `json:"variable_names,omitempty"`
}

// Constraint is the wire form of one constraint row.
type Constraint struct {
	Comparison   int32     `json:"comparison"`
	Coefficients []float64 `json:"coefficients"`
	Bound        float64   `json:"bound"`
	Name         string    `json:"name,omitempty"`
}

// SolverConfig is the wire form of the engine configuration.
//
// The wire format has no native optionals for scalars, so limits use a
// sentinel encoding: zero or negative means "unset". A gap tolerance of
// exactly zero therefore cannot be configured over the wire.
type SolverConfig struct {
	Backend      int32   `json:"backend"`
	TimeLimit    float64 `json:"time_limit,omitempty"`
	GapTolerance float64 `json:"gap_tolerance,omitempty"`
	Verbose      bool    `json:"verbose,omitempty"`
}

// Problem is the wire form of a complete solve request.
type Problem struct {
	Name         string        `json:"problem_name,omitempty"`
	Description  string        `json:"description,omitempty"`
	Objective    *Objective    `json:"objective,omitempty"`
	Constraints  []Constraint  `json:"constraints,omitempty"`
	Variables    []Variable    `json:"variables,omitempty"`
	SolverConfig *SolverConfig `json:"solver_config,omitempty"`
}

// Statistics is the wire form of the solve statistics block.
type Statistics struct {
	SimplexIterations uint64  `json:"simplex_iterations"`
	NodesExplored     uint64  `json:"nodes_explored"`
	SolveTimeMs       float64 `json:"solve_time_ms"`
	NumVariables      uint32  `json:"num_variables"`
	NumConstraints    uint32  `json:"num_constraints"`
	NumIntegerVars    uint32  `json:"num_integer_vars"`
	NumBinaryVars     uint32  `json:"num_binary_vars"`
	SolverBackend     string  `json:"solver_backend"`
}

// Quality is the wire form of the solution quality block.
type Quality struct {
	MaxConstraintViolation  float64 `json:"max_constraint_violation"`
	MaxRelativeViolation    float64 `json:"max_relative_violation"`
	MaxIntegralityViolation float64 `json:"max_integrality_violation"`
	Reliability             float64 `json:"reliability"`
}

// Result is the wire form of a solve outcome.
// ReducedCosts and SlackValues are reserved fields, currently always empty.
type Result struct {
	Status         int32       `json:"status"`
	OptimalValue   *float64    `json:"optimal_value,omitempty"`
	BestBound      *float64    `json:"best_bound,omitempty"`
	Gap            *float64    `json:"gap,omitempty"`
	SolutionValues []float64   `json:"solution_values,omitempty"`
	DualValues     []float64   `json:"dual_values,omitempty"`
	ReducedCosts   []float64   `json:"reduced_costs,omitempty"`
	SlackValues    []float64   `json:"slack_values,omitempty"`
	Message        string      `json:"message"`
	Statistics     *Statistics `json:"statistics,omitempty"`
	Quality        *Quality    `json:"quality,omitempty"`
}

// ValidationReport is the wire form of the validate-only response.
type ValidationReport struct {
	IsValid             bool     `json:"is_valid"`
	Errors              []string `json:"errors,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
	NumVariables        uint32   `json:"num_variables"`
	NumConstraints      uint32   `json:"num_constraints"`
	NumIntegerVars      uint32   `json:"num_integer_vars"`
	EstimatedDifficulty float64  `json:"estimated_difficulty"`
}

// SolverInfo describes one available engine in the static catalog.
type SolverInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	SupportsLP   bool     `json:"supports_lp"`
	SupportsMIP  bool     `json:"supports_mip"`
	Capabilities []string `json:"capabilities"`
}

// AvailableSolvers is the wire form of the solver catalog response.
type AvailableSolvers struct {
	Solvers []SolverInfo `json:"solvers"`
}
