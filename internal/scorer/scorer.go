// Package scorer assigns a heuristic purchase-likelihood assessment to a
// single lead from its outcome and quotation age.
package scorer

import "github.com/metwiz/leads-cli/internal/model"

// Score evaluates the lead in strict priority order: a recorded purchase is
// terminal and wins over any staleness, then the day bands partition [0, inf)
// at 7, 20, and 35 days. Total: every lead gets exactly one band.
func Score(lead model.Lead) model.Assessment {
	if lead.OutcomeClean == "bought" {
		return model.Assessment{
			Narrative: "Customer has already bought the product!",
			Percent:   95,
			Severity:  model.SeveritySuccess,
		}
	}

	days := lead.DaysSince
	switch {
	case days < 7:
		return model.Assessment{
			Narrative: "High chance, no follow-up needed.",
			Percent:   80,
			Severity:  model.SeveritySuccess,
		}
	case days < 20:
		return model.Assessment{
			Narrative: "Medium chance, monitor closely.",
			Percent:   55,
			Severity:  model.SeverityInfo,
		}
	case days <= 35:
		return model.Assessment{
			Narrative: "Low chance, follow-up recommended.",
			Percent:   40,
			Severity:  model.SeverityWarning,
		}
	default:
		return model.Assessment{
			Narrative: "Very low chance, customer likely inactive.",
			Percent:   25,
			Severity:  model.SeverityError,
		}
	}
}
