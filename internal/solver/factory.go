package solver

import (
	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/ports"
	"github.com/opt-labs/solverd/internal/solver/highs"
	"github.com/opt-labs/solverd/internal/solver/simplex"
)

// ForProblem selects an engine for the problem's configuration. Dispatch
// is a pure mapping from the backend enum: problem shape is not inspected,
// the same engine serves LP and MIP unless explicitly swapped.
func ForProblem(p *domain.Problem) ports.Solver {
	return ForBackend(p.Config.Backend)
}

// ForBackend resolves a backend enum to a concrete engine.
// Auto resolves to the default engine.
func ForBackend(b domain.Backend) ports.Solver {
	switch b {
	case domain.BackendSimplex:
		return simplex.New()
	case domain.BackendHiGHS:
		return highs.New()
	default:
		return Default()
	}
}

// Default returns the engine Auto resolves to.
func Default() ports.Solver {
	return highs.New()
}
