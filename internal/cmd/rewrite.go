package cmd

import (
	"fmt"
	"log/slog"

	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/fixer"
	"github.com/pthm/tonelint/internal/reporter"
	"github.com/pthm/tonelint/internal/ui"
	"github.com/spf13/cobra"
)

var (
	rewriteTone string
	dryRun      bool
	rewriteAll  bool
	rewriteText string
	rewriteUser string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [file|-]...",
	Short: "Rewrite messages in a professional tone",
	Long: `Analyze messages, then rewrite the ones that need it.

The detected tone picks the rewrite guidance unless --tone overrides it.
Clarity issues found during analysis are passed along to the rewrite.

Examples:
  tonelint rewrite draft.txt
  tonelint rewrite --all --tone polite replies.yaml
  tonelint rewrite --dry-run --text "Send it now."`,
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVar(&rewriteTone, "tone", "", "Tone guidance to use (harsh, firm, polite, neutral)")
	rewriteCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the rewrite prompt without calling the provider")
	rewriteCmd.Flags().BoolVar(&rewriteAll, "all", false, "Rewrite every message, not only those that need it")
	rewriteCmd.Flags().StringVarP(&rewriteText, "text", "t", "", "Rewrite this text instead of files")
	rewriteCmd.Flags().StringVarP(&rewriteUser, "user", "u", "", "Save analyses and rewrites to the history of this user")
	RootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	u := GetUI()

	f, err := newFixer(dryRun)
	if err != nil {
		return fmt.Errorf("rewrite provider: %w", err)
	}

	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	progress.SetStage(ui.StageLoadModels)
	a, err := loadAnalyzer()
	if err != nil {
		return err
	}

	progress.SetStage(ui.StageParse)
	files, err := readInputs(cmd, args, rewriteText, progress)
	if err != nil {
		return err
	}

	progress.SetStage(ui.StageAnalyze)
	targets := analyzer.Targets(files...)
	progress.SetTotal(len(targets))
	reports, err := a.AnalyzeAll(cmd.Context(), targets, func(r analyzer.Report) { progress.ItemTone(r.Tone.Label, r.Tone.NeedsRewrite) })
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	var pending []analyzer.Report
	for _, r := range reports {
		if rewriteAll || rewriteText != "" || r.Tone.NeedsRewrite {
			pending = append(pending, r)
		}
	}

	progress.SetStage(ui.StageRewrite)
	progress.SetTotal(len(pending))

	rewrites := make([]reporter.Rewrite, 0, len(pending))
	for _, r := range pending {
		progress.ItemStart(r.ID)

		tone := string(r.Tone.Label)
		if rewriteTone != "" {
			tone = fixer.NormalizeTone(rewriteTone)
		}
		res, err := f.Rewrite(cmd.Context(), fixer.Request{
			Text:          r.Text,
			Tone:          tone,
			ClarityIssues: r.Clarity.Issues,
		})
		if err != nil {
			slog.Debug("rewrite failed", "id", r.ID, "err", err)
		}
		rewrites = append(rewrites, reporter.Rewrite{Report: r, Result: res})

		progress.ItemRewritten(r.ID, res.Success)
	}

	if rewriteUser != "" && !dryRun {
		if err := saveRewrites(cmd, rewriteUser, rewrites); err != nil {
			return err
		}
	}

	if progress != nil {
		progress.Done(nil)
		progress = nil
	}

	return newReporter(u).ReportRewrites(rewrites)
}

// saveRewrites stores each analysis with its successful rewrite
func saveRewrites(cmd *cobra.Command, user string, rewrites []reporter.Rewrite) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, rw := range rewrites {
		id, err := saveReport(cmd.Context(), st, user, rw.Report)
		if err != nil {
			return err
		}
		if rw.Result.Success {
			if err := st.SetRewrite(cmd.Context(), id, rw.Result.RewrittenText); err != nil {
				return err
			}
		}
	}
	return nil
}
