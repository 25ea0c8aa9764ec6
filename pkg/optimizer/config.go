package optimizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	selectorTypeRangeFloat = "rangeFloat"
	selectorTypeRangeInt   = "rangeInt"
	selectorTypeString     = "string"
)

// SelectorConfig describes the search domain of one optimizer parameter.
// Path is the JSON pointer of the parameter in the serialized portfolio.Params.
type SelectorConfig struct {
	Type   string   `json:"type" yaml:"type"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty"`
	Path   string   `json:"path" yaml:"path"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
	Min    float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Step   float64  `json:"step,omitempty" yaml:"step,omitempty"`
}

type Config struct {
	Matrix        []SelectorConfig `json:"matrix" yaml:"matrix"`
	Algorithm     string           `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Objective     string           `json:"objectiveBy,omitempty" yaml:"objectiveBy,omitempty"`
	MaxEvaluation int              `json:"maxEvaluation" yaml:"maxEvaluation"`
}

// DefaultMatrix searches the policy knobs of the drawdown penalized optimizer.
var DefaultMatrix = []SelectorConfig{
	{Type: selectorTypeRangeFloat, Label: "weightCap", Path: "/weightCap", Min: 0.02, Max: 0.2},
	{Type: selectorTypeRangeFloat, Label: "maxDrawdown", Path: "/maxDrawdown", Min: 0.1, Max: 0.9},
	{Type: selectorTypeRangeFloat, Label: "penaltyFactor", Path: "/penaltyFactor", Min: 1, Max: 1000},
}

func LoadConfig(yamlConfigFileName string) (*Config, error) {
	configYaml, err := os.ReadFile(yamlConfigFileName)
	if err != nil {
		return nil, err
	}

	return ParseConfig(configYaml)
}

func ParseConfig(configYaml []byte) (*Config, error) {
	var optConfig Config
	if err := yaml.Unmarshal(configYaml, &optConfig); err != nil {
		return nil, err
	}

	switch alg := strings.ToLower(optConfig.Algorithm); alg {
	case "", "default":
		optConfig.Algorithm = HpOptimizerAlgorithmTPE
	case HpOptimizerAlgorithmTPE, HpOptimizerAlgorithmCMAES, HpOptimizerAlgorithmSOBOL, HpOptimizerAlgorithmRandom, HpOptimizerAlgorithmGrid:
		optConfig.Algorithm = alg
	default:
		return nil, fmt.Errorf(`unknown algorithm "%s"`, optConfig.Algorithm)
	}

	switch objective := strings.ToLower(optConfig.Objective); objective {
	case "", "default":
		optConfig.Objective = HpOptimizerObjectiveSharpe
	case HpOptimizerObjectiveSharpe, HpOptimizerObjectiveReturn, HpOptimizerObjectiveDrawdown:
		optConfig.Objective = objective
	default:
		return nil, fmt.Errorf(`unknown objective "%s"`, optConfig.Objective)
	}

	if optConfig.MaxEvaluation <= 0 {
		optConfig.MaxEvaluation = 100
	}

	if len(optConfig.Matrix) == 0 {
		optConfig.Matrix = DefaultMatrix
	}

	for i, selector := range optConfig.Matrix {
		if selector.Label == "" {
			optConfig.Matrix[i].Label = strings.TrimPrefix(selector.Path, "/")
		}

		switch selector.Type {
		case selectorTypeRangeFloat, selectorTypeRangeInt:
			if selector.Min > selector.Max {
				return nil, fmt.Errorf("selector %s: min %v is greater than max %v", selector.Path, selector.Min, selector.Max)
			}
		case selectorTypeString:
			if len(selector.Values) == 0 {
				return nil, fmt.Errorf("selector %s: no values", selector.Path)
			}
		default:
			return nil, fmt.Errorf(`selector %s: unknown type "%s"`, selector.Path, selector.Type)
		}
	}

	return &optConfig, nil
}
