package domain

import "math"

// EvaluateQuality computes violation diagnostics for candidate variable
// values against the problem's constraints and integrality requirements.
// Engines use it to fill the quality block of a feasible solution.
func EvaluateQuality(p *Problem, values []float64) Quality {
	var q Quality

	for _, c := range p.Constraints {
		lhs := 0.0
		for i, coeff := range c.Coefficients {
			if i < len(values) {
				lhs += coeff * values[i]
			}
		}

		var violation float64
		switch c.Comparison {
		case LessOrEqual:
			violation = lhs - c.Bound
		case GreaterOrEqual:
			violation = c.Bound - lhs
		case Equal:
			violation = math.Abs(lhs - c.Bound)
		}
		if violation > q.MaxConstraintViolation {
			q.MaxConstraintViolation = violation
		}
	}

	for i, v := range p.Variables {
		if !v.IsIntegral() || i >= len(values) {
			continue
		}
		frac := math.Abs(values[i] - math.Round(values[i]))
		if frac > q.MaxIntegralityViolation {
			q.MaxIntegralityViolation = frac
		}
	}

	return q
}
