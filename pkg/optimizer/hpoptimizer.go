package optimizer

import (
	"context"
	"fmt"
	"math"

	"github.com/c-bata/goptuna"
	goptunaCMAES "github.com/c-bata/goptuna/cmaes"
	goptunaSOBOL "github.com/c-bata/goptuna/sobol"
	goptunaTPE "github.com/c-bata/goptuna/tpe"
	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"github.com/c9s/riskstat/pkg/portfolio"
)

// WARNING: the text here could only be lower cases
const (
	// HpOptimizerObjectiveSharpe optimize the parameters to maximize the realized sharpe ratio
	HpOptimizerObjectiveSharpe = "sharpe"
	// HpOptimizerObjectiveReturn optimize the parameters to maximize the expected return
	HpOptimizerObjectiveReturn = "return"
	// HpOptimizerObjectiveDrawdown optimize the parameters to minimize the max drawdown
	HpOptimizerObjectiveDrawdown = "drawdown"
)

const (
	// HpOptimizerAlgorithmTPE is the implementation of Tree-structured Parzen Estimators
	HpOptimizerAlgorithmTPE = "tpe"
	// HpOptimizerAlgorithmCMAES is the implementation Covariance Matrix Adaptation Evolution Strategy
	HpOptimizerAlgorithmCMAES = "cmaes"
	// HpOptimizerAlgorithmSOBOL is the implementation Quasi-monte carlo sampling based on Sobol sequence
	HpOptimizerAlgorithmSOBOL = "sobol"
	// HpOptimizerAlgorithmRandom is the implementation random search
	HpOptimizerAlgorithmRandom = "random"
	// HpOptimizerAlgorithmGrid walks every combination of the matrix, see GridOptimizer
	HpOptimizerAlgorithmGrid = "grid"
)

// FailedTrialValue is the score of a trial whose optimization failed or whose metric is undefined.
const FailedTrialValue = -1e6

// MetricValueFunc scores a converged portfolio, higher is better.
type MetricValueFunc func(result *portfolio.Result) float64

func SharpeMetricValueFunc(result *portfolio.Result) float64 {
	if v, ok := result.Sharpe.Float64(); ok {
		return v
	}
	return FailedTrialValue
}

func ExpectedReturnMetricValueFunc(result *portfolio.Result) float64 {
	return result.ExpectedReturn
}

func DrawdownMetricValueFunc(result *portfolio.Result) float64 {
	return -result.MaxDrawdown
}

func metricValueFuncOf(objective string) MetricValueFunc {
	switch objective {
	case HpOptimizerObjectiveReturn:
		return ExpectedReturnMetricValueFunc
	case HpOptimizerObjectiveDrawdown:
		return DrawdownMetricValueFunc
	default:
		return SharpeMetricValueFunc
	}
}

type HyperparameterOptimizeTrialResult struct {
	Value      float64                `json:"value"`
	Parameters map[string]interface{} `json:"parameters"`
	ID         *int                   `json:"id,omitempty"`
	State      string                 `json:"state,omitempty"`
}

type HyperparameterOptimizeReport struct {
	Name       string                               `json:"studyName"`
	Objective  string                               `json:"objective"`
	Parameters map[string]string                    `json:"domains"`
	Best       *HyperparameterOptimizeTrialResult   `json:"best"`
	Trials     []*HyperparameterOptimizeTrialResult `json:"trials,omitempty"`
}

func buildBestHyperparameterOptimizeResult(study *goptuna.Study) *HyperparameterOptimizeTrialResult {
	val, _ := study.GetBestValue()
	params, _ := study.GetBestParams()
	return &HyperparameterOptimizeTrialResult{
		Value:      val,
		Parameters: params,
	}
}

func buildHyperparameterOptimizeTrialResults(study *goptuna.Study) []*HyperparameterOptimizeTrialResult {
	trials, _ := study.GetTrials()
	results := make([]*HyperparameterOptimizeTrialResult, len(trials))
	for i, trial := range trials {
		trialId := trial.ID
		results[i] = &HyperparameterOptimizeTrialResult{
			ID:         &trialId,
			Value:      trial.Value,
			Parameters: trial.Params,
			State:      fmt.Sprint(trial.State),
		}
	}
	return results
}

type HyperparameterOptimizer struct {
	SessionName string
	Config      *Config

	// HideProgressBar disables the terminal progress bar, for tests and non-interactive runs.
	HideProgressBar bool
}

func (o *HyperparameterOptimizer) buildStudy() (*goptuna.Study, error) {
	var studyOpts = make([]goptuna.StudyOption, 0, 3)

	// maximize the sharpe ratio, the return or the negative drawdown
	studyOpts = append(studyOpts, goptuna.StudyOptionDirection(goptuna.StudyDirectionMaximize))

	// disable search log, progress is reported by the bar
	studyOpts = append(studyOpts, goptuna.StudyOptionLogger(nil))

	// the search algorithm
	var sampler goptuna.Sampler = nil
	var relativeSampler goptuna.RelativeSampler = nil
	switch o.Config.Algorithm {
	case HpOptimizerAlgorithmRandom:
		sampler = goptuna.NewRandomSampler()
	case HpOptimizerAlgorithmCMAES:
		relativeSampler = goptunaCMAES.NewSampler(goptunaCMAES.SamplerOptionNStartupTrials(5))
	case HpOptimizerAlgorithmSOBOL:
		relativeSampler = goptunaSOBOL.NewSampler()
	default:
		sampler = goptunaTPE.NewSampler()
	}
	if sampler != nil {
		studyOpts = append(studyOpts, goptuna.StudyOptionSampler(sampler))
	} else {
		studyOpts = append(studyOpts, goptuna.StudyOptionRelativeSampler(relativeSampler))
	}

	return goptuna.CreateStudy(o.SessionName, studyOpts...)
}

func (o *HyperparameterOptimizer) buildObjective(executor Executor, configJson []byte, paramDomains []paramDomain, bar *pb.ProgressBar) goptuna.FuncObjective {
	metricValueFunc := metricValueFuncOf(o.Config.Objective)
	bestVal := math.Inf(-1)

	return func(trial goptuna.Trial) (float64, error) {
		trialConfig := configJson
		for _, domain := range paramDomains {
			patch, err := domain.buildPatch(&trial)
			if err != nil {
				return 0.0, err
			}

			if trialConfig, err = patch.Apply(trialConfig); err != nil {
				return 0.0, err
			}
		}

		value := FailedTrialValue
		result, err := executor.Execute(trialConfig)
		if err != nil {
			log.WithError(err).WithField("trial", trial.ID).Warn("trial failed")
		} else {
			// By config, the Goptuna optimize the parameters by maximize the objective output.
			value = metricValueFunc(result)
		}

		log.WithFields(logrus.Fields{"ID": trial.ID, "evaluation": value}).Debug("trial finished")

		if value > bestVal {
			bestVal = value
		}
		if bar != nil {
			bar.Set("log", fmt.Sprintf("best value: %v", bestVal))
			bar.Increment()
		}
		return value, nil
	}
}

// Run searches the parameter matrix over configJson, the JSON serialized base portfolio.Params.
// Trials run one after another.
func (o *HyperparameterOptimizer) Run(ctx context.Context, executor Executor, configJson []byte) (*HyperparameterOptimizeReport, error) {
	labelPaths, paramDomains := buildParamDomains(o.Config.Matrix)

	var bar *pb.ProgressBar
	if !o.HideProgressBar {
		bar = pb.Full.Start(o.Config.MaxEvaluation)
		bar.SetTemplateString(`{{ string . "log" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }} {{rtime . "ETA %s"}}`)
		defer bar.Finish()
	}

	objective := o.buildObjective(executor, configJson, paramDomains, bar)

	study, err := o.buildStudy()
	if err != nil {
		return nil, err
	}

	study.WithContext(ctx)
	if err := study.Optimize(objective, o.Config.MaxEvaluation); err != nil && ctx.Err() != context.Canceled {
		return nil, err
	}

	return &HyperparameterOptimizeReport{
		Name:       o.SessionName,
		Objective:  o.Config.Objective,
		Parameters: labelPaths,
		Best:       buildBestHyperparameterOptimizeResult(study),
		Trials:     buildHyperparameterOptimizeTrialResults(study),
	}, nil
}
