// Package solver dispatches solve requests to concrete engines and exposes
// the static engine catalog.
//
// Engines live in the highs and simplex subpackages and implement the
// ports.Solver contract. Dispatch is a pure mapping from the configured
// backend enum to a constructed instance; no plugin discovery.
package solver
