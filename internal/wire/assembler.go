package wire

import (
	"errors"
	"fmt"
	"io"
)

// Metadata is the name/description fragment of a chunked problem.
type Metadata struct {
	ProblemName string `json:"problem_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Chunk is one tagged fragment of a streamed problem. Exactly one field
// should be set; a chunk with no field set is skipped.
type Chunk struct {
	Metadata     *Metadata     `json:"metadata,omitempty"`
	SolverConfig *SolverConfig `json:"solver_config,omitempty"`
	Variable     *Variable     `json:"variable,omitempty"`
	Constraint   *Constraint   `json:"constraint,omitempty"`
	Objective    *Objective    `json:"objective,omitempty"`
}

// ChunkStream yields the fragments of one streamed problem.
// Next returns io.EOF when the stream ends normally; any other error is a
// transport failure and aborts assembly.
type ChunkStream interface {
	Next() (Chunk, error)
}

// TruncatedError means the chunk stream failed before completion. The
// partial problem is discarded; there is no partial-result fallback.
type TruncatedError struct {
	// Cause is the transport error that interrupted the stream.
	Cause error
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wire: chunk stream truncated: %v", e.Cause)
}

// Unwrap returns the transport error.
func (e *TruncatedError) Unwrap() error {
	return e.Cause
}

// Assemble reconstructs one wire problem from a finite sequence of tagged
// fragments.
//
// Singleton tags (metadata, solver config, objective) are last-write-wins
// when repeated. Repeatable tags (variable, constraint) append in arrival
// order; that order is semantically significant because it determines
// positional alignment with the objective coefficients. Order between
// different tags does not matter. Assemble performs no validation; unset
// singleton slots are left empty for the mapper's default filling.
func Assemble(stream ChunkStream) (Problem, error) {
	var p Problem

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return Problem{}, &TruncatedError{Cause: err}
		}

		switch {
		case chunk.Metadata != nil:
			p.Name = chunk.Metadata.ProblemName
			p.Description = chunk.Metadata.Description
		case chunk.SolverConfig != nil:
			p.SolverConfig = chunk.SolverConfig
		case chunk.Variable != nil:
			p.Variables = append(p.Variables, *chunk.Variable)
		case chunk.Constraint != nil:
			p.Constraints = append(p.Constraints, *chunk.Constraint)
		case chunk.Objective != nil:
			p.Objective = chunk.Objective
		}
	}
}
