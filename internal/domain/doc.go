// Package domain contains the canonical model for linear and mixed-integer
// optimization problems and their solutions.
//
// This is the innermost layer of solverd. It has no dependency on transport,
// engines, or logging and contains only structure and invariants.
//
// # Entities
//
//   - [Problem]: the aggregate root for one solve request
//   - [Variable], [Objective], [Constraint], [SolverConfig]: its parts
//   - [Solution], [Statistics], [Quality]: the outcome of one solve
//
// A Problem is owned by a single request flow for the duration of one solve;
// engines receive it read-only and must not mutate it. [Validate] checks
// structural consistency and is a pure function of the model.
package domain
