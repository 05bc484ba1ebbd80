// Package ports defines the boundary contracts between the solverd core
// and its solving engines.
//
// [Solver] is the capability-polymorphic contract every engine implements.
// Engines are stateless adapters: constructed per dispatch decision, safe
// to share read-only across concurrent requests.
//
// The error kinds an engine may surface are:
//
//   - [InvalidProblemError]: validation failed, caller's fault
//   - [NotAvailableError]: engine cannot handle this problem shape
//   - [ExecutionFailedError]: the engine reported an internal error
package ports
