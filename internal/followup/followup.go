// Package followup selects the actionable lead buckets: pending follow-ups
// inside the day window, and call/response reminders keyed off outcome text.
package followup

import (
	"fmt"
	"strings"

	"github.com/metwiz/leads-cli/internal/model"
)

// Window is the pending follow-up day range: exclusive of MinDays, inclusive
// of MaxDays. A lead at exactly MinDays is excluded; at exactly MaxDays it is
// included.
type Window struct {
	MinDays int
	MaxDays int
}

// DefaultWindow returns the standard (20, 30] day window.
func DefaultWindow() Window {
	return Window{MinDays: 20, MaxDays: 30}
}

// reminderKeywords trigger a call/response reminder when found anywhere in
// the cleaned outcome text.
var reminderKeywords = []string{
	"call", "respond", "follow", "inform", "later", "week", "change", "changes",
}

// Pending returns leads due for outreach: no outcome recorded (or explicitly
// "no response") and inside the window. The pending count is len(result).
// The result is never nil, so an empty bucket encodes as a JSON array.
func Pending(leads []model.Lead, w Window) []model.Lead {
	out := make([]model.Lead, 0)
	for _, l := range leads {
		if !pending(l, w) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func pending(l model.Lead, w Window) bool {
	noOutcome := !l.HasOutcome() || l.OutcomeClean == "" || l.OutcomeClean == "no response"
	return noOutcome && l.DaysSince > w.MinDays && l.DaysSince <= w.MaxDays
}

// Reminder is one call/response alert.
type Reminder struct {
	Lead  model.Lead `json:"lead"`
	Alert string     `json:"alert"`
}

// CallReminders returns one alert per lead whose outcome mentions a reminder
// keyword, regardless of how old the quotation is. Never nil.
func CallReminders(leads []model.Lead) []Reminder {
	out := make([]Reminder, 0)
	for _, l := range leads {
		if !mentionsReminder(l.OutcomeClean) {
			continue
		}
		out = append(out, Reminder{
			Lead:  l,
			Alert: fmt.Sprintf("%s - %s", l.Company, l.Outcome),
		})
	}
	return out
}

func mentionsReminder(outcomeClean string) bool {
	if outcomeClean == "" {
		return false
	}
	for _, kw := range reminderKeywords {
		if strings.Contains(outcomeClean, kw) {
			return true
		}
	}
	return false
}

// NothingPending reports whether the dashboard should show the all-clear:
// only when both buckets are empty at once.
func NothingPending(pending []model.Lead, reminders []Reminder) bool {
	return len(pending) == 0 && len(reminders) == 0
}
