// Package compose fills tone-selected templates with lead fields to produce
// draft outreach messages.
package compose

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/metwiz/leads-cli/internal/model"
)

// ErrInvalidTone indicates a tone outside the fixed menu. Tones come from an
// enumerated picker, so hitting this is a programming error.
var ErrInvalidTone = eris.New("compose: invalid tone")

// Message fills the tone's template with the lead's company, description,
// and (for the polite reminder) quotation date.
func Message(lead model.Lead, tone model.Tone) (string, error) {
	switch tone {
	case model.TonePoliteReminder:
		return fmt.Sprintf(
			"Hello %s,\n\nThis is a gentle reminder regarding your quotation request for %s dated %s.\n\nRegards,\nMetwiz Sales",
			lead.Company, lead.Description, lead.Date.Format("2006-01-02"),
		), nil
	case model.ToneUrgentFollowUp:
		return fmt.Sprintf(
			"Hello %s,\n\nWe are following up on your quotation for %s. Kindly update us.\n\nRegards,\nMetwiz Sales",
			lead.Company, lead.Description,
		), nil
	case model.ToneFriendlyCheckIn:
		return fmt.Sprintf(
			"Hi %s,\n\nJust checking in regarding your enquiry for %s.\n\nThanks,\nMetwiz",
			lead.Company, lead.Description,
		), nil
	default:
		return "", eris.Wrapf(ErrInvalidTone, "%q", tone)
	}
}
