package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/tonelint/internal/analyzer"
	"github.com/pthm/tonelint/internal/clarity"
	"github.com/pthm/tonelint/internal/classifier"
	"github.com/pthm/tonelint/internal/store"
	"github.com/pthm/tonelint/internal/ui"
)

// quoteLength is the longest message excerpt printed under a header
const quoteLength = 160

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter. A nil styles value
// prints plain text.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs reports grouped by source
func (r *TerminalReporter) Report(reports []analyzer.Report) error {
	s := r.styles

	if len(reports) == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No messages to analyze"))
		return nil
	}

	bySource := make(map[string][]analyzer.Report)
	var sources []string
	for _, rep := range reports {
		if _, ok := bySource[rep.Source]; !ok {
			sources = append(sources, rep.Source)
		}
		bySource[rep.Source] = append(bySource[rep.Source], rep)
	}
	sort.Strings(sources)

	for _, source := range sources {
		if source != "" {
			fmt.Fprintln(r.w)
			fmt.Fprintln(r.w, s.Header.Render(filepath.Base(source)))
			fmt.Fprintln(r.w, s.Path.Render("  "+source))
		}
		for _, rep := range bySource[source] {
			r.printReport(rep)
		}
	}

	r.printSummary(analyzer.ComputeMetrics(reports))
	return nil
}

func (r *TerminalReporter) printReport(rep analyzer.Report) {
	s := r.styles

	fmt.Fprintln(r.w)
	header := rep.ID
	if header == "" {
		header = "message"
	}
	if rep.User != "" {
		header += s.Subheader.Render(" (" + rep.User + ")")
	}
	fmt.Fprintf(r.w, "  %s\n", s.Header.Render(header))
	if quote := excerpt(rep.Text); quote != "" {
		fmt.Fprintf(r.w, "    %s\n", s.Quote.Render("> "+quote))
	}

	r.printTone(rep.Tone)
	r.printClarity(rep.Clarity)
}

func (r *TerminalReporter) printTone(v classifier.Verdict) {
	s := r.styles

	icon := s.IconSuccess
	iconStyle := s.Success
	if v.NeedsRewrite {
		icon, iconStyle = s.IconWarning, s.Warning
	}

	fmt.Fprintf(r.w, "    %s Tone %s %s",
		iconStyle.Render(icon),
		s.Tone(v.Label).Render(string(v.Label)),
		s.Subheader.Render(fmt.Sprintf("%.0f%%", v.Confidence*100)))
	if v.ModelUsed != classifier.CategoryNone {
		fmt.Fprint(r.w, s.Check.Render(" ["+string(v.ModelUsed)+"]"))
	}
	fmt.Fprintln(r.w)

	if len(v.StyleTags) > 0 {
		fmt.Fprintf(r.w, "      %s\n", s.Subheader.Render(strings.Join(v.StyleTags, ", ")))
	}
	if v.Explanation != "" {
		fmt.Fprintf(r.w, "      %s\n", v.Explanation)
	}
	if v.NeedsRewrite {
		fmt.Fprintf(r.w, "      %s %s\n",
			s.Suggestion.Render(s.IconSuggestion),
			v.RecommendedTone.Note)
	}
}

func (r *TerminalReporter) printClarity(v clarity.Verdict) {
	s := r.styles

	score := s.Score(v.Score).Render(fmt.Sprintf("%d/100", v.Score))
	fmt.Fprintf(r.w, "    %s Clarity %s %s\n", s.Info.Render(s.IconInfo), score, s.Subheader.Render(v.Summary))

	if len(v.Findings) > 0 {
		for _, f := range v.Findings {
			icon, style := r.severity(f.Severity)
			fmt.Fprintf(r.w, "      %s %s%s\n", style.Render(icon), f.Message, s.Check.Render(" ["+f.Check+"]"))
		}
		return
	}
	for _, issue := range v.Issues {
		fmt.Fprintf(r.w, "      %s %s\n", s.Warning.Render(s.IconWarning), issue)
	}
}

func (r *TerminalReporter) severity(sev clarity.Severity) (string, lipgloss.Style) {
	s := r.styles
	switch sev {
	case clarity.Warning:
		return s.IconWarning, s.Warning
	case clarity.Suggestion:
		return s.IconSuggestion, s.Suggestion
	default:
		return s.IconInfo, s.Info
	}
}

func (r *TerminalReporter) printSummary(m *analyzer.Metrics) {
	s := r.styles

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	var parts []string
	for _, label := range []classifier.Label{classifier.Harsh, classifier.Firm, classifier.Neutral, classifier.Polite} {
		if n := m.ByTone[label]; n > 0 {
			parts = append(parts, s.Tone(label).Render(fmt.Sprintf("%d %s", n, label)))
		}
	}

	noun := "messages"
	if m.TotalMessages == 1 {
		noun = "message"
	}
	fmt.Fprintf(r.w, "Analyzed %d %s: %s\n", m.TotalMessages, noun, strings.Join(parts, ", "))
	fmt.Fprintf(r.w, "Clarity mean %.1f (min %d, max %d), %d issues\n",
		m.MeanClarity, m.MinClarity, m.MaxClarity, m.ClarityIssues)

	if m.NeedsRewrite > 0 {
		fmt.Fprintln(r.w, s.Warning.Render(fmt.Sprintf("%s %d need a rewrite", s.IconWarning, m.NeedsRewrite)))
	} else {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No rewrites needed"))
	}
}

// ReportRewrites outputs each original message followed by its rewrite
func (r *TerminalReporter) ReportRewrites(rewrites []Rewrite) error {
	s := r.styles

	if len(rewrites) == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" Nothing to rewrite"))
		return nil
	}

	failed := 0
	for _, rw := range rewrites {
		rep := rw.Report
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "%s %s\n", s.Header.Render(rep.ID), s.Tone(rep.Tone.Label).Render(string(rep.Tone.Label)))
		fmt.Fprintf(r.w, "  %s\n", s.Quote.Render("> "+excerpt(rep.Text)))

		res := rw.Result
		switch {
		case res.Prompt != "":
			fmt.Fprintln(r.w, s.Subheader.Render("  prompt:"))
			for _, line := range strings.Split(res.Prompt, "\n") {
				fmt.Fprintf(r.w, "    %s\n", line)
			}
		case res.Success:
			fmt.Fprintf(r.w, "  %s\n", s.Success.Render(s.IconSuccess+" rewritten"))
			for _, line := range strings.Split(res.RewrittenText, "\n") {
				fmt.Fprintf(r.w, "    %s\n", line)
			}
		default:
			failed++
			fmt.Fprintf(r.w, "  %s %s\n", s.Error.Render(s.IconError), res.RewrittenText)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d rewrites failed", failed, len(rewrites))
	}
	return nil
}

// ReportHistory outputs stored analyses for a user
func (r *TerminalReporter) ReportHistory(user string, entries []store.HistoryEntry) {
	s := r.styles

	if len(entries) == 0 {
		fmt.Fprintf(r.w, "No history for %s\n", user)
		return
	}

	fmt.Fprintln(r.w, s.Header.Render(fmt.Sprintf("History for %s", user)))
	for _, e := range entries {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  %s %s %s\n",
			s.Subheader.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
			s.Tone(classifier.Label(e.Tone)).Render(e.Tone),
			s.Score(e.ClarityScore).Render(fmt.Sprintf("%d/100", e.ClarityScore)))
		fmt.Fprintf(r.w, "    %s\n", s.Quote.Render("> "+e.Text))
		for _, issue := range e.ClarityIssues {
			fmt.Fprintf(r.w, "    %s %s\n", s.Warning.Render(s.IconWarning), issue)
		}
	}
}

// ReportDashboard outputs the per-tone counts for a user
func (r *TerminalReporter) ReportDashboard(user string, d store.Dashboard) {
	s := r.styles

	fmt.Fprintln(r.w, s.Header.Render(fmt.Sprintf("Tone summary for %s", user)))
	fmt.Fprintf(r.w, "  total   %d\n", d.Total)
	fmt.Fprintf(r.w, "  %s  %d\n", s.Polite.Render("polite "), d.Polite)
	fmt.Fprintf(r.w, "  %s  %d\n", s.Neutral.Render("neutral"), d.Neutral)
	fmt.Fprintf(r.w, "  %s  %d\n", s.Harsh.Render("harsh  "), d.Harsh)
}

// excerpt flattens text to one line and shortens it for display
func excerpt(text string) string {
	return store.Truncate(strings.Join(strings.Fields(text), " "), quoteLength)
}
