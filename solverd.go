// Package solverd provides an embeddable linear and mixed-integer
// optimization service.
//
// Example usage:
//
//	cfg := solverd.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	handler := solverd.NewHandler(nil, solverd.DefaultSettings())
//	log.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
package solverd

import (
	"context"

	"github.com/opt-labs/solverd/internal/cliconfig"
	"github.com/opt-labs/solverd/internal/domain"
	"github.com/opt-labs/solverd/internal/server"
	"github.com/opt-labs/solverd/internal/solver"
	"github.com/opt-labs/solverd/pkg/log"
)

// Config holds the daemon configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Settings are the server-level solve defaults.
type Settings = server.Settings

// Problem is a complete optimization problem.
type Problem = domain.Problem

// Solution is the outcome of one solve.
type Solution = domain.Solution

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// DefaultSettings returns the solve defaults used when no configuration
// is given.
func DefaultSettings() Settings {
	return server.DefaultSettings()
}

// NewHandler constructs the solve API handler. A nil logger disables
// logging.
func NewHandler(logger log.Logger, settings Settings) *server.Handler {
	return server.New(logger, settings)
}

// Solve dispatches the problem to the engine its configuration selects
// and blocks until the engine returns.
func Solve(ctx context.Context, problem *Problem) (*Solution, error) {
	return solver.ForProblem(problem).Solve(ctx, problem)
}

// DefaultListenAddr is the default bind address for the solve API.
const DefaultListenAddr = cliconfig.DefaultListenAddr
