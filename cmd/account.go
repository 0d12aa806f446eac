package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/bulksms/bulksms"
)

var senderPurpose string

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the remaining SMS credit",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

// senderCmd groups the sender ID subcommands
var senderCmd = &cobra.Command{
	Use:   "sender",
	Short: "Register sender IDs and check their approval",
}

var senderRegisterCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Submit a sender ID for approval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSenderRegister,
}

var senderStatusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the approval status of a sender ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runSenderStatus,
}

var senderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sender IDs (not offered by the API)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := client.Account.ListSenders(cmd.Context())
		return err
	},
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the API connection and credentials",
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(balanceCmd, senderCmd, testCmd)
	senderCmd.AddCommand(senderRegisterCmd, senderStatusCmd, senderListCmd)

	senderRegisterCmd.Flags().StringVar(&senderPurpose, "purpose", "", "what messages from this sender are for")
	senderRegisterCmd.MarkFlagRequired("purpose")
}

func runBalance(cmd *cobra.Command, args []string) error {
	bal, err := client.Account.Balance(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	return render(cmd, bal, func(w io.Writer) {
		fmt.Fprintf(w, "Balance: %g %s\n", bal.Balance, bal.Currency)
		if bal.Bonus > 0 {
			fmt.Fprintf(w, "Bonus:   %g\n", bal.Bonus)
		}
	})
}

func runSenderRegister(cmd *cobra.Command, args []string) error {
	sender, err := client.Account.RegisterSender(cmd.Context(), bulksms.RegisterSenderRequest{
		Name:    args[0],
		Purpose: senderPurpose,
	})
	if err != nil {
		return fmt.Errorf("failed to register sender ID: %w", err)
	}

	return render(cmd, sender, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Submitted sender ID %s (status: %s)\n", sender.Name, sender.Status)
	})
}

func runSenderStatus(cmd *cobra.Command, args []string) error {
	sender, err := client.Account.SenderStatus(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get sender ID status: %w", err)
	}

	return render(cmd, sender, func(w io.Writer) {
		mark := "•"
		if sender.IsApproved() {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, sender.Name, sender.Status)
		if sender.Purpose != "" {
			fmt.Fprintf(w, "  Purpose: %s\n", sender.Purpose)
		}
	})
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to %s...\n", client.BaseURL())

	if err := client.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "- Timeout: %s\n", cfg.API.Timeout)
	fmt.Fprintf(out, "- Max retries on rate limit: %d\n", cfg.API.MaxRetries)
	fmt.Fprintf(out, "- Default sender: %s\n", valueOr(cfg.SMS.DefaultSender, "(none)"))
	return nil
}
