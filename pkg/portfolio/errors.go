package portfolio

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	"github.com/c9s/riskstat/pkg/types"
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInfeasible       = errors.New("infeasible constraint set")
	ErrMisaligned       = errors.New("weights are not aligned with the return matrix")
	ErrInvalidParams    = errors.New("invalid optimizer parameters")

	// ErrNonFinite is returned for a return matrix that still carries missing or infinite values,
	// the optimizer does not clean its input.
	ErrNonFinite = types.ErrNonFinite
)

// ConvergenceError reports a solver that terminated without converging.
// Status and Message are the solver's own diagnostics.
type ConvergenceError struct {
	Method     Method
	Status     optimize.Status
	Iterations int
	Message    string
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("%s did not converge after %d iterations: %s", e.Method, e.Iterations, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
