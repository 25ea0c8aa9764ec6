package optimizer

import (
	"fmt"

	"github.com/c-bata/goptuna"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

type paramDomain interface {
	Label() string
	buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error)
}

type paramDomainBase struct {
	label string
	path  string
}

func (d paramDomainBase) Label() string {
	return d.label
}

func (d paramDomainBase) replace(value interface{}) (jsonpatch.Patch, error) {
	var op string
	switch v := value.(type) {
	case string:
		op = fmt.Sprintf(`[{"op": "replace", "path": "%s", "value": "%s"}]`, d.path, v)
	default:
		op = fmt.Sprintf(`[{"op": "replace", "path": "%s", "value": %v}]`, d.path, v)
	}
	return jsonpatch.DecodePatch([]byte(op))
}

type floatRangeDomain struct {
	paramDomainBase
	min, max float64
}

func (d *floatRangeDomain) buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error) {
	val, err := trial.SuggestFloat(d.label, d.min, d.max)
	if err != nil {
		return nil, err
	}
	return d.replace(val)
}

type floatDiscreteRangeDomain struct {
	paramDomainBase
	min, max, step float64
}

func (d *floatDiscreteRangeDomain) buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error) {
	val, err := trial.SuggestDiscreteFloat(d.label, d.min, d.max, d.step)
	if err != nil {
		return nil, err
	}
	return d.replace(val)
}

type intRangeDomain struct {
	paramDomainBase
	min, max int
}

func (d *intRangeDomain) buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error) {
	val, err := trial.SuggestInt(d.label, d.min, d.max)
	if err != nil {
		return nil, err
	}
	return d.replace(val)
}

type intStepRangeDomain struct {
	paramDomainBase
	min, max, step int
}

func (d *intStepRangeDomain) buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error) {
	val, err := trial.SuggestStepInt(d.label, d.min, d.max, d.step)
	if err != nil {
		return nil, err
	}
	return d.replace(val)
}

type stringDomain struct {
	paramDomainBase
	options []string
}

func (d *stringDomain) buildPatch(trial *goptuna.Trial) (jsonpatch.Patch, error) {
	val, err := trial.SuggestCategorical(d.label, d.options)
	if err != nil {
		return nil, err
	}
	return d.replace(val)
}

func buildParamDomains(matrix []SelectorConfig) (map[string]string, []paramDomain) {
	labelPaths := make(map[string]string)
	domains := make([]paramDomain, 0, len(matrix))

	for _, selector := range matrix {
		base := paramDomainBase{label: selector.Label, path: selector.Path}

		var domain paramDomain
		switch selector.Type {
		case selectorTypeRangeFloat:
			if selector.Step == 0 {
				domain = &floatRangeDomain{paramDomainBase: base, min: selector.Min, max: selector.Max}
			} else {
				domain = &floatDiscreteRangeDomain{paramDomainBase: base, min: selector.Min, max: selector.Max, step: selector.Step}
			}
		case selectorTypeRangeInt:
			if selector.Step == 0 {
				domain = &intRangeDomain{paramDomainBase: base, min: int(selector.Min), max: int(selector.Max)}
			} else {
				domain = &intStepRangeDomain{paramDomainBase: base, min: int(selector.Min), max: int(selector.Max), step: int(selector.Step)}
			}
		case selectorTypeString:
			domain = &stringDomain{paramDomainBase: base, options: selector.Values}
		default:
			// unknown parameter type, skip
			continue
		}

		labelPaths[selector.Label] = selector.Path
		domains = append(domains, domain)
	}
	return labelPaths, domains
}
