package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/metwiz/leads-cli/internal/compose"
	"github.com/metwiz/leads-cli/internal/model"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Draft a tone-templated outreach message for a lead",
	Long: `The assistant page: fills a tone-selected template with the lead's
company, description, and quotation date.

Tones: "Polite Reminder", "Urgent Follow-Up", "Friendly Check-In".

Example:
  leads-cli compose --lead 12 --tone "Urgent Follow-Up"`,
	RunE: runCompose,
}

func init() {
	f := composeCmd.Flags()
	f.String("lead", "", "lead identifier")
	f.String("tone", string(model.TonePoliteReminder), "message tone")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	id, _ := cmd.Flags().GetString("lead")
	if id == "" {
		return eris.New("compose: --lead is required")
	}
	tone, _ := cmd.Flags().GetString("tone")

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}

	lead, ok := sess.Lead(id)
	if !ok {
		return eris.Errorf("compose: lead %q not found", id)
	}

	msg, err := compose.Message(lead, model.Tone(tone))
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}
