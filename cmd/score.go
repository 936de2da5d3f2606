package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/metwiz/leads-cli/internal/scorer"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Assess purchase likelihood for a single lead",
	Long: `The lead intelligence page: a rule-based purchase-likelihood assessment
for one lead, from its recorded outcome and quotation age.

Examples:
  # Assess lead 12
  leads-cli score --lead 12

  # List available leads with their picker labels
  leads-cli score --list`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("lead", "", "lead identifier to assess")
	f.Bool("list", false, "list lead picker labels instead of scoring")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, l := range sess.Leads() {
			fmt.Println(l.Label())
		}
		return nil
	}

	id, _ := cmd.Flags().GetString("lead")
	if id == "" {
		return eris.New("score: --lead is required (use --list to see identifiers)")
	}

	lead, ok := sess.Lead(id)
	if !ok {
		return eris.Errorf("score: lead %q not found", id)
	}

	a := scorer.Score(lead)

	fmt.Printf("%s\n", lead.Label())
	fmt.Printf("Assessment: %s (%d%%) [%s]\n\n", a.Narrative, a.Percent, a.Severity)
	fmt.Printf("Quotation No:         %s\n", lead.QuotationNo)
	fmt.Printf("Company:              %s\n", lead.Company)
	fmt.Printf("Description:          %s\n", lead.Description)
	fmt.Printf("Days Since Quotation: %d\n", lead.DaysSince)
	fmt.Printf("Outcome:              %s\n", lead.OutcomeDisplay())

	return nil
}
