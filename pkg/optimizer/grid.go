package optimizer

import (
	"math"
	"sort"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// defaultGridSteps is the number of intervals of a float range without an explicit step.
const defaultGridSteps = 4

type gridAxis struct {
	label  string
	values []interface{}
	build  func(v interface{}) (jsonpatch.Patch, error)
}

type GridOptimizer struct {
	Config *Config
}

func (o *GridOptimizer) buildAxes() []gridAxis {
	var axes []gridAxis
	for _, selector := range o.Config.Matrix {
		base := paramDomainBase{label: selector.Label, path: selector.Path}

		var values []interface{}
		switch selector.Type {
		case selectorTypeRangeFloat:
			step := selector.Step
			if step <= 0 {
				step = (selector.Max - selector.Min) / defaultGridSteps
			}
			if step <= 0 {
				values = append(values, selector.Min)
				break
			}
			for val := selector.Min; val <= selector.Max+step*1e-9; val += step {
				values = append(values, math.Min(val, selector.Max))
			}

		case selectorTypeRangeInt:
			step := int(selector.Step)
			if step <= 0 {
				step = 1
			}
			for val := int(selector.Min); val <= int(selector.Max); val += step {
				values = append(values, val)
			}

		case selectorTypeString:
			for _, val := range selector.Values {
				values = append(values, val)
			}

		default:
			continue
		}

		log.Debugf("grid values of %s: %v", selector.Label, values)
		axes = append(axes, gridAxis{label: selector.Label, values: values, build: base.replace})
	}
	return axes
}

// Run evaluates every combination of the matrix values, at most Config.MaxEvaluation of them,
// and reports every trial along with the best one.
func (o *GridOptimizer) Run(executor Executor, configJson []byte) (*HyperparameterOptimizeReport, error) {
	labelPaths := make(map[string]string)
	for _, selector := range o.Config.Matrix {
		labelPaths[selector.Label] = selector.Path
	}

	metricValueFunc := metricValueFuncOf(o.Config.Objective)
	axes := o.buildAxes()

	var trials []*HyperparameterOptimizeTrialResult
	var walk func(depth int, configJson []byte, params map[string]interface{}) error
	walk = func(depth int, configJson []byte, params map[string]interface{}) error {
		if o.Config.MaxEvaluation > 0 && len(trials) >= o.Config.MaxEvaluation {
			return nil
		}

		if depth == len(axes) {
			id := len(trials)
			trial := &HyperparameterOptimizeTrialResult{
				ID:         &id,
				Value:      FailedTrialValue,
				Parameters: copyParams(params),
				State:      "Complete",
			}

			result, err := executor.Execute(configJson)
			if err != nil {
				log.WithError(err).Warnf("grid trial #%d failed", id)
				trial.State = "Fail"
			} else {
				trial.Value = metricValueFunc(result)
			}

			trials = append(trials, trial)
			return nil
		}

		axis := axes[depth]
		for _, val := range axis.values {
			patch, err := axis.build(val)
			if err != nil {
				return err
			}

			patched, err := patch.Apply(configJson)
			if err != nil {
				return err
			}

			params[axis.label] = val
			if err := walk(depth+1, patched, params); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0, configJson, make(map[string]interface{})); err != nil {
		return nil, err
	}

	report := &HyperparameterOptimizeReport{
		Name:       "grid",
		Objective:  o.Config.Objective,
		Parameters: labelPaths,
		Trials:     trials,
	}

	sorted := append([]*HyperparameterOptimizeTrialResult(nil), trials...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	if len(sorted) > 0 {
		report.Best = &HyperparameterOptimizeTrialResult{
			Value:      sorted[0].Value,
			Parameters: sorted[0].Parameters,
		}
	}
	return report, nil
}

func copyParams(params map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(params))
	for k, v := range params {
		c[k] = v
	}
	return c
}
