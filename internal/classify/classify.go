// Package classify maps free-text enquiry descriptions to the machine-type
// taxonomy via an ordered keyword rule cascade.
package classify

import (
	"sort"
	"strings"

	"github.com/metwiz/leads-cli/internal/model"
)

// Rule is one entry in the cascade. A rule matches when every keyword in All
// is present and, if Any is non-empty, at least one keyword in Any is present.
// Matching is case-insensitive substring containment.
type Rule struct {
	All   []string          `yaml:"all,omitempty"`
	Any   []string          `yaml:"any,omitempty"`
	Label model.MachineType `yaml:"label"`
}

// defaultRules is the built-in cascade. Order matters: rules are evaluated
// top to bottom and the first match wins. The bare "ss" rule is intentionally
// broad (it matches "glass", "business", ...) and is kept as the upstream
// sheet owners expect it.
var defaultRules = []Rule{
	{Any: []string{"press"}, Label: model.MachineHydraulicPress},
	{All: []string{"pot", "mill"}, Label: model.MachinePotMill},
	{All: []string{"jar", "mill"}, Label: model.MachineJarMill},
	{Any: []string{"peristaltic"}, Label: model.MachinePeristalticPump},
	{Any: []string{"media"}, Label: model.MachineGrindingMedia},
	{Any: []string{"die"}, Label: model.MachineDieSets},
	{Any: []string{"ss"}, Label: model.MachineStainlessSteel},
	{Any: []string{"aluminium", "alumina"}, Label: model.MachineAlumina},
	{Any: []string{"autoclave"}, Label: model.MachineAutoClave},
	{Any: []string{"quartz"}, Label: model.MachineQuartz},
	{Any: []string{"furnace"}, Label: model.MachineFurnace},
	{Any: []string{"silicon", "silicone"}, Label: model.MachineSilicon},
	{Any: []string{"vacuum"}, Label: model.MachineVacuum},
	{All: []string{"spray", "dryer"}, Label: model.MachineSprayDryer},
}

// Ruleset is an ordered rule cascade with first-match-wins semantics.
type Ruleset struct {
	rules []Rule
}

// Default returns the built-in ruleset.
func Default() *Ruleset {
	return &Ruleset{rules: defaultRules}
}

// Classify evaluates the cascade against a description. It always returns a
// taxonomy value; no rule matching yields MachineOther.
func (rs *Ruleset) Classify(description string) model.MachineType {
	t := strings.ToLower(description)

	for _, rule := range rs.rules {
		if rule.matches(t) {
			return rule.Label
		}
	}

	return model.MachineOther
}

func (r Rule) matches(lowered string) bool {
	for _, kw := range r.All {
		if !strings.Contains(lowered, strings.ToLower(kw)) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return len(r.All) > 0
	}
	for _, kw := range r.Any {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Classify runs the built-in cascade. Deterministic and total.
func Classify(description string) model.MachineType {
	return Default().Classify(description)
}

// Count is one bar of the enquiry clustering chart.
type Count struct {
	MachineType model.MachineType `json:"machine_type"`
	Count       int               `json:"count"`
}

// CountByMachineType tallies enquiries per machine type, most frequent first
// (ties broken by name for stable chart ordering).
func CountByMachineType(leads []model.Lead) []Count {
	tally := make(map[model.MachineType]int)
	for _, l := range leads {
		tally[l.MachineType]++
	}

	counts := make([]Count, 0, len(tally))
	for mt, n := range tally {
		counts = append(counts, Count{MachineType: mt, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].MachineType < counts[j].MachineType
	})

	return counts
}
