package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/config"
	"github.com/spf13/cobra"
)

var contactLead client.Lead

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a contact lead to the lead API",
	Long: `Send a contact lead to the lead API, the same way the site's contact form does.

Examples:
  aisite contact --name "Dana" --email dana@example.com --service sales --message "Pricing?"
  aisite contact --name "Dana" --email dana@example.com --service support \
    --message "Call me" --mode appointment --date 2026-01-02 --time 10:00`,
	RunE: runContact,
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactLead.Name, "name", "", "your name (required)")
	f.StringVar(&contactLead.Email, "email", "", "your email (required)")
	f.StringVar(&contactLead.Message, "message", "", "message (required)")
	f.StringVar((*string)(&contactLead.Service), "service", "", "topic: sales, support, partnership, general (required)")
	f.StringVar((*string)(&contactLead.FormType), "mode", string(client.ModeMessage), "message or appointment")
	f.StringVar(&contactLead.Phone, "phone", "", "phone number")
	f.StringVar(&contactLead.Company, "company", "", "company")
	f.StringVar(&contactLead.Date, "date", "", "preferred callback date (appointment mode)")
	f.StringVar(&contactLead.Time, "time", "", "preferred callback time (appointment mode)")
}

func runContact(cmd *cobra.Command, args []string) error {
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = closeLog() }()

	lead := contactLead
	lead.Source = "cli"
	lead.Timezone = time.Local.String()

	c := client.New(cfg.APIURL, cfg.LeadTimeout, logger)
	return sendLead(cmd.Context(), c, lead, cmd.OutOrStdout())
}

// leadSender is the part of the lead client the command uses.
type leadSender interface {
	SubmitLead(ctx context.Context, lead client.Lead) (*client.Ack, error)
}

func sendLead(ctx context.Context, s leadSender, lead client.Lead, out io.Writer) error {
	ack, err := s.SubmitLead(ctx, lead)
	switch {
	case errors.Is(err, client.ErrMissingField):
		return fmt.Errorf("%w (see --help)", err)
	case err != nil:
		return err
	}

	fmt.Fprintln(out, defaultTheme.successStyle().Render("✓ Message sent!"))
	fmt.Fprintf(out, "  Lead ID: %d\n", ack.ID)
	if ack.Mode == client.ModeAppointment && ack.Saved.CallbackDate != nil {
		fmt.Fprintf(out, "  Callback: %s", *ack.Saved.CallbackDate)
		if ack.Saved.CallbackTimeStart != nil {
			fmt.Fprintf(out, " %s", *ack.Saved.CallbackTimeStart)
			if ack.Saved.CallbackTimeEnd != nil {
				fmt.Fprintf(out, "-%s", *ack.Saved.CallbackTimeEnd)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
