package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/metwiz/leads-cli/internal/classify"
	"github.com/metwiz/leads-cli/internal/config"
	"github.com/metwiz/leads-cli/internal/followup"
	"github.com/metwiz/leads-cli/internal/model"
	"github.com/metwiz/leads-cli/internal/normalize"
	"github.com/metwiz/leads-cli/internal/resilience"
	"github.com/metwiz/leads-cli/internal/session"
	"github.com/metwiz/leads-cli/internal/source"
	"github.com/metwiz/leads-cli/pkg/sheets"
)

// buildSource constructs the configured spreadsheet source.
func buildSource(cfg *config.Config) (source.Source, error) {
	retry := resilience.RetryConfig{MaxAttempts: cfg.Source.MaxAttempts}

	switch cfg.Source.Driver {
	case "sheets":
		opts := []sheets.Option{sheets.WithRateLimit(cfg.Sheets.RatePerSec)}
		if cfg.Sheets.BaseURL != "" {
			opts = append(opts, sheets.WithBaseURL(cfg.Sheets.BaseURL))
		}
		if cfg.Sheets.Token != "" {
			opts = append(opts, sheets.WithToken(cfg.Sheets.Token))
		}
		client := sheets.NewClient(cfg.Sheets.APIKey, opts...)
		return source.NewSheetsSource(client, cfg.Sheets.SpreadsheetID, cfg.Sheets.Worksheet, retry), nil
	case "xlsx", "csv":
		return source.NewFileSource(cfg.Source.Path,
			source.WithWorksheet(cfg.Source.Worksheet),
			source.WithEncoding(cfg.Source.Encoding),
			source.WithRetry(retry),
		), nil
	default:
		return nil, eris.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
}

// normalizeOptions builds the normalization pass options, loading a rule
// override file when one is configured.
func normalizeOptions(cfg *config.Config) (normalize.Options, error) {
	var opts normalize.Options
	if cfg.Classify.RulesPath != "" {
		rules, err := classify.LoadRules(cfg.Classify.RulesPath)
		if err != nil {
			return opts, err
		}
		opts.Classifier = rules
	}
	return opts, nil
}

// loadSession builds the configured source and loads the table once. Every
// command starts from a fresh session; nothing is cached across invocations.
func loadSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}

	opts, err := normalizeOptions(cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New(src, opts)
	if err := sess.Refresh(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// followupWindow returns the configured pending window.
func followupWindow(cfg *config.Config) followup.Window {
	return followup.Window{MinDays: cfg.Followup.MinDays, MaxDays: cfg.Followup.MaxDays}
}

// openOutput opens the --output target, defaulting to stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

var leadColumns = []string{"lead_id", "quotation_no", "company", "description", "date", "days_since", "machine_type", "outcome"}

func leadRecord(l model.Lead) []string {
	return []string{
		l.ID,
		l.QuotationNo,
		l.Company,
		l.Description,
		l.Date.Format("2006-01-02"),
		fmt.Sprintf("%d", l.DaysSince),
		string(l.MachineType),
		l.Outcome,
	}
}

// writeLeadTable renders leads with text/tabwriter.
func writeLeadTable(w io.Writer, leads []model.Lead) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEAD\tQUOTATION\tCOMPANY\tDESCRIPTION\tDATE\tDAYS\tMACHINE TYPE\tOUTCOME")
	for _, l := range leads {
		rec := leadRecord(l)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec[0], rec[1], rec[2], rec[3], rec[4], rec[5], rec[6], rec[7])
	}
	return tw.Flush()
}

// writeLeadCSV renders leads as CSV with a header row.
func writeLeadCSV(w io.Writer, leads []model.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(leadColumns); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, l := range leads {
		if err := cw.Write(leadRecord(l)); err != nil {
			return eris.Wrap(err, "write csv record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

func writeLeads(w io.Writer, leads []model.Lead, format string) error {
	switch format {
	case "csv":
		return writeLeadCSV(w, leads)
	case "table":
		return writeLeadTable(w, leads)
	default:
		return eris.Errorf("unsupported format %q (want table or csv)", format)
	}
}
