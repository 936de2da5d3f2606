// Package normalize turns raw spreadsheet rows into typed Lead records:
// canonical field names, day-first date parsing, and the derived
// days_since / machine_type / outcome_clean fields.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/metwiz/leads-cli/internal/classify"
	"github.com/metwiz/leads-cli/internal/model"
	"github.com/metwiz/leads-cli/internal/source"
)

// headerAliases maps the provider's column headers to canonical field names.
// Keys are matched after trimming surrounding whitespace.
var headerAliases = map[string]string{
	"COMPANY":       "company",
	"DATES":         "date",
	"DESCRIPTION":   "description",
	"QUOTATION NO.": "quotation_no",
	"OUTCOME":       "outcome",
	"PLACE":         "place",
	"INDUSTRY_TYPE": "industry",
	"lead_id":       "lead_id",
}

// dateLayouts are probed in order. Day-first: "5/8/2025" is 5 August, and
// ambiguous day/month values resolve toward day-first.
var dateLayouts = []string{
	"2/1/2006",
	"02/01/2006",
	"2-1-2006",
	"02-01-2006",
	"2.1.2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01-02",
}

// Options configures a normalization pass.
type Options struct {
	// Now fixes "today" for the pass. Zero means time.Now().
	Now time.Time
	// Classifier maps descriptions to machine types. Nil means the built-in
	// cascade.
	Classifier *classify.Ruleset
}

// Leads converts a raw table into Lead records. Malformed rows are never
// rejected: missing fields stay empty and bad dates clamp to today. Given the
// same "today" the pass is idempotent.
func Leads(table *source.Table, opts Options) []model.Lead {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rules := opts.Classifier
	if rules == nil {
		rules = classify.Default()
	}

	leads := make([]model.Lead, 0, len(table.Rows))
	for i, row := range table.Rows {
		fields := canonical(row)

		lead := model.Lead{
			ID:          fields["lead_id"],
			Company:     fields["company"],
			Description: fields["description"],
			QuotationNo: fields["quotation_no"],
			Outcome:     fields["outcome"],
			Place:       fields["place"],
			Industry:    fields["industry"],
		}
		if lead.ID == "" {
			// Row index is the stable fallback identifier.
			lead.ID = strconv.Itoa(i)
		}

		lead.Date = parseDate(fields["date"], now, lead.ID)
		lead.DaysSince = daysBetween(lead.Date, now)
		lead.MachineType = rules.Classify(lead.Description)
		lead.OutcomeClean = strings.ToLower(strings.TrimSpace(lead.Outcome))

		leads = append(leads, lead)
	}

	return leads
}

// canonical renames provider headers and drops empty values so "" uniformly
// means missing.
func canonical(row source.Row) map[string]string {
	fields := make(map[string]string, len(row))
	for header, value := range row {
		name, ok := headerAliases[strings.TrimSpace(header)]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		fields[name] = value
	}
	return fields
}

// parseDate probes the day-first layouts. Unparseable or future dates clamp
// to "today", so their days_since is 0. That policy conflates bad data with
// fresh leads; it is what the sheet owners rely on, so we log instead of fix.
func parseDate(raw string, now time.Time, leadID string) time.Time {
	if raw == "" {
		zap.L().Warn("normalize: missing date, clamping to today",
			zap.String("lead_id", leadID),
		)
		return now
	}

	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if d.After(now) {
			zap.L().Warn("normalize: future date, clamping to today",
				zap.String("lead_id", leadID),
				zap.String("raw", raw),
			)
			return now
		}
		return d
	}

	zap.L().Warn("normalize: unparseable date, clamping to today",
		zap.String("lead_id", leadID),
		zap.String("raw", raw),
	)
	return now
}

// daysBetween counts whole calendar days from date to now, never negative.
// Both instants reduce to their own calendar date first: parsed dates carry
// UTC midnight while now is usually local, and subtracting the raw instants
// would let the zone offset shift the day boundary.
func daysBetween(date, now time.Time) int {
	days := int(calendarDate(now).Sub(calendarDate(date)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
