// Package server exposes the solve API over HTTP.
//
// Endpoints:
//
//	POST /v1/solve        solve one complete problem message
//	POST /v1/solve/stream solve a problem streamed as NDJSON chunk frames
//	POST /v1/validate     validate without solving
//	GET  /v1/solvers      the static engine catalog
//
// Requests are independent units of work and are served concurrently
// without locking; only the server-level defaults are shared, behind an
// atomic pointer swapped on config reload.
package server
