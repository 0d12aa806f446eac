package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/bulksms/bulksms"
)

// statusConcurrency bounds parallel delivery lookups
const statusConcurrency = 5

var sendOpts struct {
	to         []string
	from       string
	message    string
	templateID string
	schedule   string
}

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an SMS to one or more recipients",
	Long: `Send a quick SMS. The message can be given inline with --message or taken
from a stored template with --template. Use --schedule to deliver later.`,
	Example: `  bulksms send --to 0241234567 --to 0201234567 -m "Hello"
  bulksms send --to 0241234567 --template 12 --schedule "2025-01-01 09:00"`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <message-id>...",
	Short: "Show delivery reports for sent messages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statusCmd)

	sendCmd.Flags().StringSliceVarP(&sendOpts.to, "to", "t", nil, "recipient phone number (repeatable or comma separated)")
	sendCmd.Flags().StringVar(&sendOpts.from, "from", "", "sender ID (defaults to sms.default_sender)")
	sendCmd.Flags().StringVarP(&sendOpts.message, "message", "m", "", "message text")
	sendCmd.Flags().StringVar(&sendOpts.templateID, "template", "", "use the content of a stored template")
	sendCmd.Flags().StringVar(&sendOpts.schedule, "schedule", "", "schedule date, e.g. \"2025-01-01 09:00\"")
	sendCmd.MarkFlagsMutuallyExclusive("message", "template")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	message := sendOpts.message
	if sendOpts.templateID != "" {
		tpl, err := client.Templates.Get(ctx, sendOpts.templateID)
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
		message = tpl.Content
	}

	req := bulksms.SendSMSRequest{
		Recipients:   bulksms.Recipients(sendOpts.to),
		Sender:       valueOr(sendOpts.from, cfg.SMS.DefaultSender),
		Message:      message,
		IsSchedule:   sendOpts.schedule != "",
		ScheduleDate: sendOpts.schedule,
	}

	logger.Info().
		Int("recipients", len(req.Recipients)).
		Str("sender", req.Sender).
		Bool("scheduled", req.IsSchedule).
		Msg("Sending SMS")

	resp, err := client.SMS.Send(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return render(cmd, resp, func(w io.Writer) {
		s := resp.Summary
		fmt.Fprintf(w, "✓ %s\n", valueOr(resp.Message, "Message accepted"))
		fmt.Fprintf(w, "  Message ID: %s\n", s.ID)
		fmt.Fprintf(w, "  Sent: %d  Rejected: %d\n", s.TotalSent, s.TotalRejected)
		fmt.Fprintf(w, "  Credit used: %g  Credit left: %g\n", s.CreditUsed, s.CreditLeft)
	})
}

// statusResult pairs a message id with its reports or lookup error
type statusResult struct {
	MessageID string                   `json:"message_id"`
	Reports   []bulksms.DeliveryReport `json:"reports,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	results := make([]statusResult, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(statusConcurrency)

	errs := make([]error, len(args))
	for i, id := range args {
		g.Go(func() error {
			results[i].MessageID = id
			reports, err := client.SMS.Status(ctx, id)
			if err != nil {
				logger.Warn().Err(err).Str("message_id", id).Msg("Failed to get delivery status")
				results[i].Error = err.Error()
				errs[i] = fmt.Errorf("%s: %w", id, err)
				// keep looking up the remaining ids
				return nil
			}
			results[i].Reports = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := render(cmd, results, func(w io.Writer) { printStatus(w, results) }); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func printStatus(w io.Writer, results []statusResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MESSAGE\tRECIPIENT\tSTATUS\tSENT\tDELIVERED")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t-\terror: %s\t\t\n", r.MessageID, r.Error)
			continue
		}
		for _, rep := range r.Reports {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.MessageID, rep.Recipient, strings.ToUpper(rep.Status),
				valueOr(rep.SentAt, "-"), valueOr(rep.DeliveredAt, "-"))
		}
	}
	tw.Flush()
}
