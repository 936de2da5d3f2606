package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/metwiz/leads-cli/internal/classify"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Dump the normalized lead table",
	Long: `The live dataset page: every lead after normalization, including the
derived days_since, machine_type, and outcome_clean fields.`,
	RunE: runDataset,
}

func init() {
	f := datasetCmd.Flags()
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("summary", false, "append machine-type counts after the table")

	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	leads := sess.Leads()
	if err := writeLeads(w, leads, format); err != nil {
		return err
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary && format == "table" {
		fmt.Fprintf(w, "\n%d leads loaded at %s\n", len(leads), sess.LoadedAt().Format("2006-01-02 15:04:05"))
		for _, c := range classify.CountByMachineType(leads) {
			fmt.Fprintf(w, "  %-28s %d\n", c.MachineType, c.Count)
		}
	}

	return nil
}
