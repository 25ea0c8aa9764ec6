package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

const (
	armijoC1       = 1e-4
	initialStep    = 1.0
	maxStep        = 1e6
	minStep        = 1e-20
	backtrackRatio = 0.5

	// stallIterationsPerDimension sizes the Nelder-Mead stall window, a step replaces
	// one vertex so the best value changes rarely in high dimensions.
	stallIterationsPerDimension = 20
	minStallIterations          = 100

	// stationarityTol bounds the relative decrease a projected gradient step may
	// still find at a point reported as converged.
	stationarityTol = 1e-6
)

type solution struct {
	X          []float64
	F          float64
	Iterations int
	Status     optimize.Status
}

// minimizeProjectedGradient runs projected gradient descent with Armijo backtracking along the
// projection arc. Every iterate is feasible.
func minimizeProjectedGradient(obj *Objective, w0 []float64, cap float64, maxIterations int, tol float64) (*solution, error) {
	n := len(w0)
	x := ProjectCappedSimplex(w0, cap)
	f := obj.Func(x)
	grad := make([]float64, n)
	trial := make([]float64, n)
	step := initialStep

	for iter := 1; iter <= maxIterations; iter++ {
		obj.Grad(grad, x)

		var y []float64
		fy := f
		t := step
		for {
			floats.AddScaledTo(trial, x, -t, grad)
			y = ProjectCappedSimplex(trial, cap)
			fy = obj.Func(y)

			// grad . (y - x) <= 0 for a projected step
			decrease := floats.Dot(grad, y) - floats.Dot(grad, x)
			if fy <= f+armijoC1*decrease {
				break
			}

			t *= backtrackRatio
			if t < minStep {
				y, fy = x, f
				break
			}
		}

		moved := floats.Distance(y, x, 2)
		change := math.Abs(f - fy)
		x, f = y, fy

		log.Debugf("iteration %d: objective=%.12f step=%g moved=%g", iter, f, t, moved)

		if moved <= tol*(1+floats.Norm(x, 2)) {
			return &solution{X: x, F: f, Iterations: iter, Status: optimize.StepConvergence}, nil
		}

		if change <= tol*(1+math.Abs(f)) {
			return &solution{X: x, F: f, Iterations: iter, Status: optimize.FunctionConvergence}, nil
		}

		step = math.Min(t/backtrackRatio, maxStep)
	}

	return &solution{X: x, F: f, Iterations: maxIterations, Status: optimize.IterationLimit},
		&ConvergenceError{
			Method:     MethodProjectedGradient,
			Status:     optimize.IterationLimit,
			Iterations: maxIterations,
			Message:    "iteration limit reached",
		}
}

// descentGap returns how much one Armijo projected gradient step from x lowers f, 0 when no step does.
func descentGap(obj *Objective, x []float64, f, cap float64) float64 {
	grad := make([]float64, len(x))
	obj.Grad(grad, x)

	trial := make([]float64, len(x))
	for t := initialStep; t >= minStep; t *= backtrackRatio {
		floats.AddScaledTo(trial, x, -t, grad)
		y := ProjectCappedSimplex(trial, cap)
		fy := obj.Func(y)

		decrease := floats.Dot(grad, y) - floats.Dot(grad, x)
		if fy <= f+armijoC1*decrease {
			return f - fy
		}
	}
	return 0
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}

// minimizeNelderMead runs gonum's Nelder-Mead over the unconstrained z with the objective
// evaluated at the projection of z onto the capped simplex.
func minimizeNelderMead(obj *Objective, w0 []float64, cap float64, maxIterations int, tol float64) (*solution, error) {
	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			return obj.Func(ProjectCappedSimplex(z, cap))
		},
	}

	settings := &optimize.Settings{
		MajorIterations: maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: max(minStallIterations, stallIterationsPerDimension*len(w0)),
		},
	}

	result, err := optimize.Minimize(problem, ProjectCappedSimplex(w0, cap), settings, &optimize.NelderMead{})
	if result == nil {
		if err == nil {
			err = &ConvergenceError{Method: MethodNelderMead, Status: optimize.Failure}
		}
		return nil, err
	}

	sol := &solution{
		X:          ProjectCappedSimplex(result.X, cap),
		Iterations: result.Stats.MajorIterations,
		Status:     result.Status,
	}
	sol.F = obj.Func(sol.X)

	if err != nil || !converged(result.Status) {
		cerr := &ConvergenceError{
			Method:     MethodNelderMead,
			Status:     result.Status,
			Iterations: result.Stats.MajorIterations,
		}
		if err != nil {
			cerr.Message = err.Error()
		}
		return sol, cerr
	}

	// the simplex can stall far from a minimum, confirm the point is stationary
	if gap := descentGap(obj, sol.X, sol.F, cap); gap > stationarityTol*(1+math.Abs(sol.F)) {
		return sol, &ConvergenceError{
			Method:     MethodNelderMead,
			Status:     result.Status,
			Iterations: result.Stats.MajorIterations,
			Message:    fmt.Sprintf("not stationary, a projected gradient step lowers the objective by %g", gap),
		}
	}

	return sol, nil
}
