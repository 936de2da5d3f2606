package classify

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a rule cascade from a YAML file, replacing the built-in
// table for deployments that need a tighter taxonomy. File order is cascade
// order.
//
// Format:
//
//	rules:
//	  - any: [press]
//	    label: Hydraulic Press
//	  - all: [pot, mill]
//	    label: Pot Mill
func LoadRules(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read rules %s", path)
	}

	var wrapper struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "classify: parse rules")
	}
	if len(wrapper.Rules) == 0 {
		return nil, eris.Errorf("classify: rules file %s defines no rules", path)
	}

	for i, r := range wrapper.Rules {
		if r.Label == "" {
			return nil, eris.Errorf("classify: rule %d has no label", i)
		}
		if len(r.All) == 0 && len(r.Any) == 0 {
			return nil, eris.Errorf("classify: rule %d (%s) has no keywords", i, r.Label)
		}
	}

	return &Ruleset{rules: wrapper.Rules}, nil
}
