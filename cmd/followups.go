package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metwiz/leads-cli/internal/followup"
	"github.com/metwiz/leads-cli/internal/model"
)

var followupsCmd = &cobra.Command{
	Use:   "followups",
	Short: "List pending follow-ups and call/response reminders",
	Long: `The follow-up dashboard page: leads with no outcome (or "no response")
inside the follow-up day window, plus call/response reminders for any lead
whose outcome asks for a call, response, or change.

Examples:
  # Pending follow-ups in the default (20, 30] day window
  leads-cli followups

  # Widen the window and export to CSV
  leads-cli followups --min-days 15 --max-days 45 --format csv --output due.csv`,
	RunE: runFollowups,
}

func init() {
	f := followupsCmd.Flags()
	f.Int("min-days", 0, "window lower bound, exclusive (overrides config)")
	f.Int("max-days", 0, "window upper bound, inclusive (overrides config)")
	f.String("format", "table", "output format: table or csv (csv carries both buckets, see the alert column)")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(followupsCmd)
}

func runFollowups(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}

	window := followupWindow(cfg)
	if v, _ := cmd.Flags().GetInt("min-days"); v > 0 {
		window.MinDays = v
	}
	if v, _ := cmd.Flags().GetInt("max-days"); v > 0 {
		window.MaxDays = v
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	leads := sess.Leads()
	pending := followup.Pending(leads, window)
	reminders := followup.CallReminders(leads)

	zap.L().Info("followups computed",
		zap.Int("pending", len(pending)),
		zap.Int("reminders", len(reminders)),
		zap.Int("min_days", window.MinDays),
		zap.Int("max_days", window.MaxDays),
	)

	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if format == "csv" {
		return writeFollowupCSV(w, pending, reminders)
	}

	fmt.Fprintf(w, "Total Follow-Ups Required: %d\n\n", len(pending))
	if len(pending) > 0 {
		if err := writeLeadTable(w, pending); err != nil {
			return err
		}
	}

	if len(reminders) > 0 {
		fmt.Fprintf(w, "\nCall / Response Reminders (%d):\n", len(reminders))
		for _, r := range reminders {
			fmt.Fprintf(w, "  %s\n", r.Alert)
		}
	}

	if followup.NothingPending(pending, reminders) {
		fmt.Fprintln(w, "No follow-ups or reminders pending.")
	}

	return nil
}

// writeFollowupCSV exports the whole page as one rectangle: pending rows with
// an empty alert column, then one row per reminder carrying its alert. A lead
// can appear in both buckets.
func writeFollowupCSV(w io.Writer, pending []model.Lead, reminders []followup.Reminder) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, leadColumns...), "alert")); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, l := range pending {
		if err := cw.Write(append(leadRecord(l), "")); err != nil {
			return eris.Wrap(err, "write csv record")
		}
	}
	for _, r := range reminders {
		if err := cw.Write(append(leadRecord(r.Lead), r.Alert)); err != nil {
			return eris.Wrap(err, "write csv record")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}
