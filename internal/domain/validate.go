package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultIntegerWarnThreshold is the integer-variable count above which
// validation emits a performance warning.
const DefaultIntegerWarnThreshold = 100

// ValidationError carries the full list of violated structural invariants.
type ValidationError struct {
	// Violations are the individual invariant failures, in check order.
	Violations []string
}

// Error joins all violations into one message.
func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Validate checks the structural consistency of a problem. It is a pure
// function of the domain model: no side effects, idempotent.
//
// All checks are evaluated; if any fails the returned error joins every
// violation. Warnings never block solving and are returned alongside a nil
// error. Uses DefaultIntegerWarnThreshold for the integer-count warning.
func Validate(p *Problem) ([]string, error) {
	return ValidateThreshold(p, DefaultIntegerWarnThreshold)
}

// ValidateThreshold is Validate with an explicit integer-variable warning
// threshold.
func ValidateThreshold(p *Problem, integerWarnThreshold int) ([]string, error) {
	var violations []string

	if len(p.Objective.Coefficients) == 0 {
		violations = append(violations, "objective must have at least one coefficient")
	}

	numVars := p.NumVariables()

	if len(p.Variables) != 0 && len(p.Variables) != numVars {
		violations = append(violations, fmt.Sprintf(
			"number of variables (%d) doesn't match objective coefficients (%d)",
			len(p.Variables), numVars))
	}

	for i, c := range p.Constraints {
		if c.NumVariables() != numVars {
			violations = append(violations, fmt.Sprintf(
				"constraint %d has %d coefficients but problem has %d variables",
				i, c.NumVariables(), numVars))
		}
	}

	for i, v := range p.Variables {
		if v.Bounded() && v.LowerBound > v.UpperBound {
			violations = append(violations, fmt.Sprintf(
				"variable %d %q has lower bound (%g) > upper bound (%g)",
				i, v.Name, v.LowerBound, v.UpperBound))
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	var warnings []string

	if len(p.Constraints) == 0 {
		warnings = append(warnings, "problem has no constraints (may be unbounded)")
	}

	for i, c := range p.Constraints {
		if allZero(c.Coefficients) {
			warnings = append(warnings, fmt.Sprintf(
				"constraint %d has all-zero coefficients (degenerate row)", i))
		}
	}

	if n := p.NumIntegerVariables(); n > integerWarnThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"problem has %d integer variables, may be slow to solve", n))
	}

	return warnings, nil
}

func allZero(coefficients []float64) bool {
	for _, c := range coefficients {
		if c != 0 {
			return false
		}
	}
	return true
}

// Difficulty estimates how hard a problem is to solve as a normalized score
// in [0, 1]. Advisory only; dispatch never consults it.
func Difficulty(p *Problem) float64 {
	if p.IsMixedInteger() {
		return min(float64(p.NumIntegerVariables())/1000.0, 1.0)
	}
	return min(float64(p.NumVariables())/10000.0, 0.5)
}

// Report is the outcome of the validate-only entry point.
type Report struct {
	// IsValid is true when no structural invariant is violated.
	IsValid bool

	// Errors are the violated invariants, empty when IsValid.
	Errors []string

	// Warnings are non-fatal observations; they never block solving.
	Warnings []string

	// NumVariables is the problem dimensionality.
	NumVariables uint32

	// NumConstraints is the constraint row count.
	NumConstraints uint32

	// NumIntegerVars counts integer and binary variables.
	NumIntegerVars uint32

	// EstimatedDifficulty is the advisory difficulty score in [0, 1].
	EstimatedDifficulty float64
}

// BuildReport runs validation and collects the counts and difficulty
// estimate into a Report.
func BuildReport(p *Problem, integerWarnThreshold int) Report {
	report := Report{
		NumVariables:        uint32(p.NumVariables()),
		NumConstraints:      uint32(len(p.Constraints)),
		NumIntegerVars:      uint32(p.NumIntegerVariables()),
		EstimatedDifficulty: Difficulty(p),
	}

	warnings, err := ValidateThreshold(p, integerWarnThreshold)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			report.Errors = verr.Violations
		} else {
			report.Errors = []string{err.Error()}
		}
		return report
	}

	report.IsValid = true
	report.Warnings = warnings
	return report
}
