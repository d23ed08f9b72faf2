package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/clarity"
	"github.com/pthm/tonelint/internal/classifier"
	"github.com/pthm/tonelint/internal/config"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/reporter"
	"github.com/pthm/tonelint/internal/store"
	"github.com/pthm/tonelint/internal/ui"
	"github.com/pthm/tonelint/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string

	cfg    *config.Config
	output *ui.UI
)

// RootCmd is the tonelint command tree
var RootCmd = &cobra.Command{
	Use:   "tonelint",
	Short: "A tone and clarity checker for outgoing messages",
	Long: `tonelint checks emails and support replies before they are sent.

It classifies the tone of each message as harsh, polite or neutral, scores
how clear it is, and can rewrite messages that need a friendlier tone.
The same analysis is available over HTTP (tonelint serve) and as MCP tools
(tonelint mcp).`,
	Version:           version.Short(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default tonelint.yaml)")
}

// setup loads configuration and logging before any subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	switch format {
	case "terminal", "json":
	default:
		return fmt.Errorf("unknown format %q (want terminal or json)", format)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = c

	config.ConfigureLogging(cfg.LogLevel)
	if verbose {
		config.SetLogLevel(slog.LevelDebug)
	}

	output = ui.New(os.Stdout, os.Stderr, format)
	return nil
}

// GetUI returns the UI configured for this run
func GetUI() *ui.UI {
	if output == nil {
		output = ui.New(os.Stdout, os.Stderr, format)
	}
	return output
}

// newReporter returns the reporter for the selected output format
func newReporter(u *ui.UI) reporter.Reporter {
	if u.IsJSON() {
		return reporter.NewJSONReporter(u.Writer)
	}
	return reporter.NewTerminalReporter(u.Writer, u.Styles)
}

// loadAnalyzer builds the tone and clarity engines from config. Missing
// model artifacts degrade to rule-only scoring; bad rule tables are fatal.
func loadAnalyzer() (*analyzer.Analyzer, error) {
	tables, err := cfg.Tables()
	if err != nil {
		return nil, err
	}
	scorers := classifier.LoadScorers(cfg.ScorerPaths())
	return analyzer.New(classifier.NewAnalyzer(tables, scorers), clarity.NewEngine(nil)), nil
}

// newFixer builds the rewrite collaborator. A provider that cannot be
// configured is only an error when a real rewrite will be attempted.
func newFixer(dryRun bool) (*fixer.Fixer, error) {
	opts := fixer.Options{
		DryRun:    dryRun,
		Retries:   cfg.RewriteRetries,
		BaseDelay: cfg.RewriteBaseDelay,
	}

	provider, err := fixer.NewProvider(cfg.RewriteProvider, cfg.AnthropicAPIKey, cfg.RewriteModel, cfg.RewriteMaxTokens)
	if err != nil {
		if dryRun {
			return fixer.New(nil, opts), nil
		}
		return nil, err
	}
	return fixer.New(provider, opts), nil
}

// openStore opens the history database named by config
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("history store opened", "path", cfg.DBPath)
	return st, nil
}
