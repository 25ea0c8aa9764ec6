package optimizer

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/c9s/riskstat/pkg/portfolio"
	"github.com/c9s/riskstat/pkg/types"
)

var log = logrus.WithField("component", "optimizer")

// Executor runs one trial from the JSON serialized portfolio.Params.
type Executor interface {
	Execute(configJson []byte) (*portfolio.Result, error)
}

// PortfolioExecutor runs the portfolio optimizer in process over a fixed return window.
type PortfolioExecutor struct {
	Returns        *types.ReturnMatrix
	InitialWeights []float64
}

func (e *PortfolioExecutor) Execute(configJson []byte) (*portfolio.Result, error) {
	var params portfolio.Params
	if err := json.Unmarshal(configJson, &params); err != nil {
		return nil, err
	}

	log.Debugf("trial params: %+v", params)
	return portfolio.Optimize(e.Returns, e.InitialWeights, params)
}
