package portfolio

import (
	"math"

	"github.com/pkg/errors"

	"github.com/c9s/riskstat/pkg/statistics"
)

type Method string

const (
	MethodProjectedGradient Method = "projected-gradient"
	MethodNelderMead        Method = "nelder-mead"
)

const (
	DefaultAnnualRiskFreeRate = 0.03
	DefaultWeightCap          = 0.05
	DefaultMaxDrawdown        = 0.7
	DefaultPenaltyFactor      = 100.0
	DefaultMaxIterations      = 1000
	DefaultTolerance          = 1e-10
)

// Params is the optimizer policy.
type Params struct {
	// RiskFreeRate is per period, the same granularity as the rows of the return matrix.
	RiskFreeRate float64 `json:"riskFreeRate" yaml:"riskFreeRate"`

	// WeightCap is the upper bound of every weight.
	WeightCap float64 `json:"weightCap" yaml:"weightCap"`

	// MaxDrawdown is the drawdown threshold above which the objective is penalized.
	MaxDrawdown float64 `json:"maxDrawdown" yaml:"maxDrawdown"`

	PenaltyFactor float64 `json:"penaltyFactor" yaml:"penaltyFactor"`

	Method        Method  `json:"method" yaml:"method"`
	MaxIterations int     `json:"maxIterations" yaml:"maxIterations"`
	Tolerance     float64 `json:"tolerance" yaml:"tolerance"`
}

func DefaultParams() Params {
	return Params{
		RiskFreeRate:  statistics.PeriodicRiskFreeRate(DefaultAnnualRiskFreeRate, statistics.DailyToAnnualFactor),
		WeightCap:     DefaultWeightCap,
		MaxDrawdown:   DefaultMaxDrawdown,
		PenaltyFactor: DefaultPenaltyFactor,
		Method:        MethodProjectedGradient,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

func (p Params) withDefaults() Params {
	if p.Method == "" {
		p.Method = MethodProjectedGradient
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = DefaultMaxIterations
	}
	return p
}

func (p Params) Validate() error {
	switch p.Method {
	case "", MethodProjectedGradient, MethodNelderMead:
	default:
		return errors.Wrapf(ErrInvalidParams, "unknown method %q", p.Method)
	}

	if math.IsNaN(p.RiskFreeRate) || math.IsInf(p.RiskFreeRate, 0) {
		return errors.Wrapf(ErrInvalidParams, "risk-free rate %v", p.RiskFreeRate)
	}

	if !(p.MaxDrawdown >= 0 && p.MaxDrawdown <= 1) {
		return errors.Wrapf(ErrInvalidParams, "max drawdown %v is out of [0, 1]", p.MaxDrawdown)
	}

	if !(p.PenaltyFactor >= 0) {
		return errors.Wrapf(ErrInvalidParams, "penalty factor %v is negative", p.PenaltyFactor)
	}

	if !(p.Tolerance >= 0) {
		return errors.Wrapf(ErrInvalidParams, "tolerance %v is negative", p.Tolerance)
	}

	return nil
}
