package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pthm/tonelint/internal/reporter"
	"github.com/spf13/cobra"
)

var (
	historyUser  string
	historyClear bool
	historyStats bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear a user's stored analyses",
	Long: `Query the analysis history saved by tonelint serve and check --user.

Examples:
  tonelint history --user alice
  tonelint history --user alice --stats
  tonelint history --user alice --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyUser, "user", "u", "", "User ID (required)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the user's history")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show per-tone counts instead of entries")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyUser == "" {
		return errors.New("--user is required")
	}
	if historyClear && historyStats {
		return errors.New("--clear and --stats cannot be combined")
	}

	u := GetUI()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	term := reporter.NewTerminalReporter(u.Writer, u.Styles)

	switch {
	case historyClear:
		n, err := st.Clear(ctx, historyUser)
		if err != nil {
			return err
		}
		if u.IsJSON() {
			return writeJSON(u.Writer, map[string]any{"message": "History cleared successfully", "removed": n})
		}
		fmt.Fprintln(u.Writer, u.Styles.Success.Render(
			fmt.Sprintf("%s Removed %d analyses for %s", u.Styles.IconSuccess, n, historyUser)))
		return nil

	case historyStats:
		d, err := st.Dashboard(ctx, historyUser)
		if err != nil {
			return err
		}
		if u.IsJSON() {
			return writeJSON(u.Writer, d)
		}
		term.ReportDashboard(historyUser, d)
		return nil

	default:
		entries, err := st.History(ctx, historyUser)
		if err != nil {
			return err
		}
		if u.IsJSON() {
			return writeJSON(u.Writer, entries)
		}
		term.ReportHistory(historyUser, entries)
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
