package main

import (
	"encoding/csv"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/metwiz/leads-cli/internal/classify"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Count enquiries per machine type",
	Long: `The customer clustering page: enquiry counts per product category,
the data behind the dashboard's bar chart.`,
	RunE: runCluster,
}

func init() {
	f := clusterCmd.Flags()
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}

	counts := classify.CountByMachineType(sess.Leads())

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"machine_type", "count"}); err != nil {
			return eris.Wrap(err, "write csv header")
		}
		for _, c := range counts {
			if err := cw.Write([]string{string(c.MachineType), fmt.Sprintf("%d", c.Count)}); err != nil {
				return eris.Wrap(err, "write csv record")
			}
		}
		cw.Flush()
		return eris.Wrap(cw.Error(), "flush csv")
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MACHINE TYPE\tENQUIRIES")
		for _, c := range counts {
			fmt.Fprintf(tw, "%s\t%d\n", c.MachineType, c.Count)
		}
		return tw.Flush()
	default:
		return eris.Errorf("unsupported format %q (want table or csv)", format)
	}
}
