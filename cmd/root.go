package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/bulksms/bulksms"
	"github.com/s0up4200/bulksms/config"
	"github.com/s0up4200/bulksms/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *bulksms.Client

	jsonOutput bool

	// Version information
	appVersion = "dev"
	buildTime  = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bulksms",
	Short: "Send SMS and manage contacts, groups and templates from the command line",
	Long: `bulksms is a CLI for a bulk messaging REST API. It sends quick and scheduled
SMS, tracks delivery, and manages the contacts, groups, templates and sender
IDs of your account.

Configuration is read from ./config.yaml, ~/.bulksms/ or /etc/bulksms/, a .env
file in the working directory, and BULKSMS_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information
func SetVersion(v, bt string) {
	appVersion = v
	buildTime = bt
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var apiErr *bulksms.Error
		if errors.As(err, &apiErr) {
			logger.Debug().Str("detail", apiErr.Detail()).Msg("Request failed")
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	client, err = newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	logger.Debug().Str("base_url", client.BaseURL()).Msg("Client initialized")
	return nil
}

func newClient(cfg *config.Config, logger zerolog.Logger) (*bulksms.Client, error) {
	return bulksms.NewClient(cfg.API.Key, logger,
		bulksms.WithBaseURL(cfg.API.BaseURL),
		bulksms.WithTimeout(cfg.API.Timeout),
		bulksms.WithMaxRetries(cfg.API.MaxRetries),
		bulksms.WithUserAgent("bulksms-cli/"+appVersion),
	)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Colour only when asked for and writing to a terminal
	color := cfg.Color && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()))

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// filterFlags holds the --filter/--preset pair shared by list commands
type filterFlags struct {
	expression string
	preset     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.expression, "filter", "f", "", "filter expression, e.g. 'status == \"pending\"'")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "use a preset filter from config")
}

// resolve determines the filter to use. No filter means keep everything.
func (f *filterFlags) resolve(presets config.FilterConfig) (*filter.Filter, error) {
	// Priority: command line filter > preset
	expression := f.expression
	if expression == "" && f.preset != "" {
		preset, ok := presets.Preset(f.preset)
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", f.preset)
		}
		expression = preset
	}
	if expression == "" {
		return nil, nil
	}

	compiled, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", expression).Msg("Filtering results")
	return compiled, nil
}

func applyFilter[T any](flags *filterFlags, items []T) ([]T, error) {
	f, err := flags.resolve(cfg.Filter)
	if err != nil {
		return nil, err
	}
	return filter.Apply(f, items)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render prints v as JSON with --json, otherwise through text
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, v)
	}
	text(out)
	return nil
}

// confirm asks a yes/no question on stdin
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
