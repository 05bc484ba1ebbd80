package ports

import (
	"context"

	"github.com/opt-labs/solverd/internal/domain"
)

// Solver is the contract every solving engine implements.
//
// Solve is a blocking, CPU-bound call. The context is passed through for
// the engine's own use; a configured time limit is advisory and enforced
// (or not) entirely by the engine. Implementations must be safe for
// concurrent use and must not mutate the problem.
type Solver interface {
	// Solve translates the problem into the engine's native representation,
	// runs it, and maps the engine result onto the canonical Solution.
	Solve(ctx context.Context, problem *domain.Problem) (*domain.Solution, error)

	// Validate checks the problem without solving it, returning non-fatal
	// warnings. Most engines delegate to ValidateProblem.
	Validate(problem *domain.Problem) ([]string, error)

	// Name returns the engine's display name.
	Name() string

	// SupportsMIP reports whether the engine can solve mixed-integer
	// problems.
	SupportsMIP() bool
}

// ValidateProblem is the default Validate implementation: it delegates to
// the domain validation engine and wraps structural failures in
// InvalidProblemError so callers can distinguish them from engine faults.
func ValidateProblem(problem *domain.Problem) ([]string, error) {
	warnings, err := domain.Validate(problem)
	if err != nil {
		return nil, &InvalidProblemError{Detail: err.Error(), Cause: err}
	}
	return warnings, nil
}
