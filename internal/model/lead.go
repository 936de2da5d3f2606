package model

import (
	"fmt"
	"time"
)

// MachineType is the fixed product-category taxonomy assigned to a lead
// by keyword classification of its enquiry description.
type MachineType string

const (
	MachineHydraulicPress  MachineType = "Hydraulic Press"
	MachinePotMill         MachineType = "Pot Mill"
	MachineJarMill         MachineType = "Jar Mill or PP Jar"
	MachinePeristalticPump MachineType = "Peristaltic Pump"
	MachineGrindingMedia   MachineType = "Grinding Media"
	MachineDieSets         MachineType = "Die Sets"
	MachineStainlessSteel  MachineType = "Stainless Steel Products"
	MachineAlumina         MachineType = "Alumina Products"
	MachineAutoClave       MachineType = "Auto Clave"
	MachineQuartz          MachineType = "Quartz Products"
	MachineFurnace         MachineType = "Furnace"
	MachineSilicon         MachineType = "Silicon Products"
	MachineVacuum          MachineType = "Vacuum Related Products"
	MachineSprayDryer      MachineType = "Spray Dryer"
	MachineOther           MachineType = "Other"
)

// Severity color-codes an assessment for the presentation layer.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Tone selects the template used when composing an outreach message.
type Tone string

const (
	TonePoliteReminder  Tone = "Polite Reminder"
	ToneUrgentFollowUp  Tone = "Urgent Follow-Up"
	ToneFriendlyCheckIn Tone = "Friendly Check-In"
)

// Tones lists the valid message tones in menu order.
func Tones() []Tone {
	return []Tone{TonePoliteReminder, ToneUrgentFollowUp, ToneFriendlyCheckIn}
}

// Lead is one normalized spreadsheet row representing a sales enquiry.
// Optional string fields hold "" when the source cell is missing.
// DaysSince, MachineType, and OutcomeClean are derived once at load time
// and never mutated afterward.
type Lead struct {
	ID           string      `json:"id"`
	Company      string      `json:"company"`
	Date         time.Time   `json:"date"`
	Description  string      `json:"description"`
	QuotationNo  string      `json:"quotation_no"`
	Outcome      string      `json:"outcome"`
	Place        string      `json:"place,omitempty"`
	Industry     string      `json:"industry,omitempty"`
	DaysSince    int         `json:"days_since"`
	MachineType  MachineType `json:"machine_type"`
	OutcomeClean string      `json:"outcome_clean"`
}

// Label returns the display label used by lead pickers.
func (l Lead) Label() string {
	return fmt.Sprintf("Lead %s - %s", l.ID, l.Company)
}

// HasOutcome reports whether the source recorded any outcome for the lead.
func (l Lead) HasOutcome() bool {
	return l.Outcome != ""
}

// OutcomeDisplay returns the raw outcome, or "No Response" when absent.
func (l Lead) OutcomeDisplay() string {
	if l.Outcome == "" {
		return "No Response"
	}
	return l.Outcome
}

// Assessment is the lead scorer's purchase-likelihood verdict for one lead.
type Assessment struct {
	Narrative string   `json:"narrative"`
	Percent   int      `json:"percent"`
	Severity  Severity `json:"severity"`
}
