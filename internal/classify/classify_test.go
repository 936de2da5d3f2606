package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metwiz/leads-cli/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		description string
		want        model.MachineType
	}{
		{"Hydraulic Press Model X", model.MachineHydraulicPress},
		{"HYDRAULIC PRESS 40T", model.MachineHydraulicPress},
		{"Pot Mill 5L", model.MachinePotMill},
		{"PP Jar for ball mill", model.MachineJarMill},
		{"Peristaltic pump head", model.MachinePeristalticPump},
		{"Zirconia grinding media 10mm", model.MachineGrindingMedia},
		{"Die set 25mm", model.MachineDieSets},
		{"SS storage tank", model.MachineStainlessSteel},
		{"Alumina crucible", model.MachineAlumina},
		{"Aluminium tray", model.MachineAlumina},
		{"Autoclave 50L", model.MachineAutoClave},
		{"Quartz tube 80mm", model.MachineQuartz},
		{"Muffle furnace 1200C", model.MachineFurnace},
		{"Silicone gasket sheet", model.MachineSilicon},
		{"Vacuum oven chamber", model.MachineVacuum},
		{"Spray dryer nozzle", model.MachineSprayDryer},
		{"Packing material enquiry", model.MachineOther},
		{"", model.MachineOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

// Earlier rules shadow later ones; the cascade stops at the first match.
func TestClassify_FirstMatchWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		want        model.MachineType
	}{
		{"press beats mill", "press for pot mill plant", model.MachineHydraulicPress},
		{"pot mill beats jar", "pot mill with jar attachment", model.MachinePotMill},
		{"die beats ss", "die set in SS finish", model.MachineDieSets},
		{"media beats aluminium", "aluminium oxide media", model.MachineGrindingMedia},
		// "spray dryer" is the last rule, so any earlier keyword hijacks it.
		{"ss hijacks spray dryer", "stainless spray dryer", model.MachineStainlessSteel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

// The bare "ss" substring rule deliberately over-matches; this pins the
// behavior so nobody "fixes" it without coordinating with the sheet owners.
func TestClassify_BareSSRuleIsBroad(t *testing.T) {
	t.Parallel()

	for _, desc := range []string{
		"glass beaker set",
		"business card holder",
		"stainless wire",
	} {
		assert.Equal(t, model.MachineStainlessSteel, Classify(desc), desc)
	}
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
rules:
  - all: [stainless, steel]
    label: Stainless Steel Products
  - any: [press]
    label: Hydraulic Press
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := LoadRules(path)
	require.NoError(t, err)

	// Override tightened the ss rule and reordered the cascade.
	assert.Equal(t, model.MachineStainlessSteel, rs.Classify("stainless steel tank"))
	assert.Equal(t, model.MachineOther, rs.Classify("glass beaker"))
	assert.Equal(t, model.MachineHydraulicPress, rs.Classify("press 40T"))
}

func TestLoadRules_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no rules", "rules: []", "defines no rules"},
		{"missing label", "rules:\n  - any: [press]\n", "has no label"},
		{"missing keywords", "rules:\n  - label: Furnace\n", "has no keywords"},
		{"bad yaml", "rules: [", "parse rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "rules.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadRules(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCountByMachineType(t *testing.T) {
	t.Parallel()

	leads := []model.Lead{
		{MachineType: model.MachineFurnace},
		{MachineType: model.MachineHydraulicPress},
		{MachineType: model.MachineFurnace},
		{MachineType: model.MachineOther},
	}

	counts := CountByMachineType(leads)
	require.Len(t, counts, 3)
	assert.Equal(t, Count{model.MachineFurnace, 2}, counts[0])
	// Tie between Hydraulic Press and Other resolves alphabetically.
	assert.Equal(t, Count{model.MachineHydraulicPress, 1}, counts[1])
	assert.Equal(t, Count{model.MachineOther, 1}, counts[2])

	assert.Empty(t, CountByMachineType(nil))
}
