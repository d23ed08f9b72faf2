package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/parser"
	"github.com/pthm/tonelint/internal/reporter"
	"github.com/pthm/tonelint/internal/store"
	"github.com/pthm/tonelint/internal/ui"
	"github.com/spf13/cobra"
)

// errRewriteNeeded makes check exit non-zero under --fail-on-rewrite
var errRewriteNeeded = errors.New("one or more messages need a rewrite")

var (
	inlineText    string
	failOnRewrite bool
	saveUser      string
)

var checkCmd = &cobra.Command{
	Use:   "check [file|-]...",
	Short: "Check the tone and clarity of messages",
	Long: `Analyze messages for tone and clarity.

Files may be plain text, markdown (one message per top-level section),
or YAML/JSON batches of messages. Use - or no argument to read stdin.

Examples:
  tonelint check draft.md
  tonelint check --text "Why haven't you replied yet?"
  tonelint check --format json inbox.yaml > report.json
  git log -1 --format=%B | tonelint check --fail-on-rewrite`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&inlineText, "text", "t", "", "Analyze this text instead of files")
	checkCmd.Flags().BoolVar(&failOnRewrite, "fail-on-rewrite", false, "Exit non-zero when any message needs a rewrite")
	checkCmd.Flags().StringVarP(&saveUser, "user", "u", "", "Save analyses to the history of this user")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	u := GetUI()

	// Start progress tracking if in interactive mode
	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	// Stage 1: Load models
	progress.SetStage(ui.StageLoadModels)

	a, err := loadAnalyzer()
	if err != nil {
		return err
	}

	// Stage 2: Read messages
	progress.SetStage(ui.StageParse)

	files, err := readInputs(cmd, args, inlineText, progress)
	if err != nil {
		return err
	}
	targets := analyzer.Targets(files...)
	slog.Debug("messages loaded", "files", len(files), "messages", len(targets))

	// Stage 3: Analyze
	progress.SetStage(ui.StageAnalyze)
	progress.SetTotal(len(targets))

	reports, err := a.AnalyzeAll(cmd.Context(), targets, func(r analyzer.Report) { progress.ItemTone(r.Tone.Label, r.Tone.NeedsRewrite) })
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	if saveUser != "" {
		if err := saveReports(cmd.Context(), saveUser, reports); err != nil {
			return err
		}
	}

	// Stop progress before reporting
	if progress != nil {
		progress.Done(nil)
		progress = nil // Prevent double-done in defer
	}

	// Stage 4: Report results
	if err := newReporter(u).Report(reports); err != nil {
		return err
	}

	if failOnRewrite && reporter.NeedsRewrite(reports) {
		return errRewriteNeeded
	}
	return nil
}

// readInputs parses every named input. No arguments means stdin unless
// inline text was given.
func readInputs(cmd *cobra.Command, args []string, text string, progress *ui.ProgressController) ([]*parser.ParsedFile, error) {
	if text != "" {
		return []*parser.ParsedFile{parser.ParseText(text)}, nil
	}
	if len(args) == 0 {
		args = []string{parser.StdinPath}
	}

	files := make([]*parser.ParsedFile, 0, len(args))
	for _, path := range args {
		progress.SetOperation(path)

		var (
			f   *parser.ParsedFile
			err error
		)
		if path == parser.StdinPath {
			f, err = parser.ParseReader(path, cmd.InOrStdin())
		} else {
			f, err = parser.Parse(path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(f.Messages) == 0 {
			GetUI().Warn("%s contains no messages", path)
		}
		files = append(files, f)
	}
	return files, nil
}

// saveReports records reports in the history store of user
func saveReports(ctx context.Context, user string, reports []analyzer.Report) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, r := range reports {
		if _, err := saveReport(ctx, st, user, r); err != nil {
			return err
		}
	}
	return nil
}

func saveReport(ctx context.Context, st *store.Store, user string, r analyzer.Report) (string, error) {
	a := &store.Analysis{
		UserID:        user,
		Text:          r.Text,
		Tone:          string(r.Tone.Label),
		Confidence:    r.Tone.Confidence,
		Explanation:   r.Tone.Explanation,
		ClarityScore:  r.Clarity.Score,
		ClarityIssues: r.Clarity.Issues,
	}
	if err := st.Save(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}
