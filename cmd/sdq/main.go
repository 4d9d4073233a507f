package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/h0rv/sdq/internal/auth"
	"github.com/h0rv/sdq/internal/config"
	"github.com/h0rv/sdq/internal/jira"
	"github.com/h0rv/sdq/internal/queue"
	"github.com/h0rv/sdq/internal/queueurl"
	"github.com/h0rv/sdq/internal/tui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// errFetchFailed signals a failed result that has already been printed.
var errFetchFailed = errors.New("queue fetch failed")

var (
	// CLI flags
	configFlag      string
	siteFlag        string
	timeoutFlag     time.Duration
	logLevelFlag    string
	outputFlag      string
	payloadFlag     string
	interactiveFlag bool
	openFlag        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sdq [queue-url]",
		Short: "Look up the JQL behind a Jira Service Management queue",
		Long: `sdq resolves a Jira Service Management queue URL such as

  https://example.atlassian.net/jira/servicedesk/projects/SD/queues/custom/42

into the queue's name, JQL filter, issue types and columns.

Authentication:
  1. Environment variables: JIRA_EMAIL and JIRA_API_TOKEN (preferred)
  2. Config file: email and api_token in ~/.config/sdq/config.yaml`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define CLI flags
	rootCmd.Flags().StringVar(&configFlag, "config", config.DefaultPath(), "Path to the config file.")
	rootCmd.Flags().StringVar(&siteFlag, "site", "", "Jira site base URL. Defaults to the host of the queue URL.")
	rootCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Upstream request timeout (e.g. 10s). 0 means no timeout.")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error.")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", outputText, "Output format: text or json.")
	rootCmd.Flags().StringVar(&payloadFlag, "payload", "", `Read a {"queueUrl": "..."} request from a file, or "-" for stdin.`)
	rootCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Show the result in an interactive view.")
	rootCmd.Flags().BoolVar(&openFlag, "open", false, "Open the queue in the browser after a successful lookup.")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFetchFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Validate flags
	if outputFlag != outputText && outputFlag != outputJSON {
		return fmt.Errorf("--output must be %q or %q, got %q", outputText, outputJSON, outputFlag)
	}
	if len(args) > 0 && payloadFlag != "" {
		return fmt.Errorf("pass either a queue URL argument or --payload, not both")
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	queueURL := ""
	if len(args) > 0 {
		queueURL = args[0]
	}
	if payloadFlag != "" {
		req, err := readPayload(payloadFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}
		queueURL = req.QueueURL
	}

	logger := zap.NewNop()
	if !interactiveFlag {
		// stderr belongs to the TUI in interactive mode
		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
	}
	defer logger.Sync() //nolint:errcheck

	transport, err := newTransport(cfg, queueURL, logger)
	if err != nil {
		return err
	}
	fetcher := queue.NewFetcher(transport, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if interactiveFlag {
		return runInteractive(ctx, fetcher, queueURL)
	}

	result := fetcher.Fetch(ctx, queue.Request{QueueURL: queueURL})
	if err := writeResult(cmd.OutOrStdout(), result, outputFlag); err != nil {
		return err
	}
	if !result.OK() {
		return errFetchFailed
	}

	if openFlag {
		if err := browser.OpenURL(queueURL); err != nil {
			logger.Warn("failed to open browser", zap.Error(err))
		}
	}
	return nil
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("site") {
		cfg.Site = siteFlag
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeoutFlag
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
}

// newTransport builds the authenticated Jira client for the configured
// site, or for the queue URL's own host when no site is configured.
// It returns a nil Transport for URLs the fetcher rejects before any request.
func newTransport(cfg *config.Config, queueURL string, logger *zap.Logger) (jira.Transport, error) {
	if _, err := queueurl.Parse(queueURL); err != nil {
		return nil, nil
	}

	site := cfg.Site
	if site == "" {
		s, err := queueurl.Site(queueURL)
		if err != nil {
			return nil, err
		}
		site = s
	}

	creds, err := auth.GetCredentials(cfg)
	if err != nil {
		return nil, err
	}

	client, err := jira.New(site, creds, cfg.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Jira client: %w", err)
	}
	return client, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

func runInteractive(ctx context.Context, fetcher *queue.Fetcher, queueURL string) error {
	app := tui.NewAppModel(fetcher, ctx, queueURL)

	// Run Bubble Tea program
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	if m, ok := final.(tui.AppModel); ok {
		if result, done := m.Result(); done && !result.OK() {
			return errFetchFailed
		}
	}
	return nil
}
