package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMachineTypeValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mt   MachineType
		want string
	}{
		{MachineHydraulicPress, "Hydraulic Press"},
		{MachinePotMill, "Pot Mill"},
		{MachineJarMill, "Jar Mill or PP Jar"},
		{MachinePeristalticPump, "Peristaltic Pump"},
		{MachineGrindingMedia, "Grinding Media"},
		{MachineDieSets, "Die Sets"},
		{MachineStainlessSteel, "Stainless Steel Products"},
		{MachineAlumina, "Alumina Products"},
		{MachineAutoClave, "Auto Clave"},
		{MachineQuartz, "Quartz Products"},
		{MachineFurnace, "Furnace"},
		{MachineSilicon, "Silicon Products"},
		{MachineVacuum, "Vacuum Related Products"},
		{MachineSprayDryer, "Spray Dryer"},
		{MachineOther, "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.mt))
		})
	}
}

func TestSeverityValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sev  Severity
		want string
	}{
		{SeveritySuccess, "success"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.sev))
		})
	}
}

func TestLeadLabel(t *testing.T) {
	t.Parallel()

	l := Lead{ID: "7", Company: "Acme Ceramics"}
	assert.Equal(t, "Lead 7 - Acme Ceramics", l.Label())
}

func TestOutcomeDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No Response", Lead{}.OutcomeDisplay())
	assert.Equal(t, "bought", Lead{Outcome: "bought"}.OutcomeDisplay())
	assert.False(t, Lead{}.HasOutcome())
	assert.True(t, Lead{Outcome: "called back"}.HasOutcome())
}

func TestTonesOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Tone{TonePoliteReminder, ToneUrgentFollowUp, ToneFriendlyCheckIn}, Tones())
}
