package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pthm/tonelint/internal/classifier"
)

// Stage represents the current stage of a check or rewrite run
type Stage int

const (
	StageLoadModels Stage = iota
	StageParse
	StageAnalyze
	StageRewrite
	StageDone
)

// Message types for updating the model
type (
	StageMsg     Stage
	OperationMsg string
	ItemStartMsg string
	DoneMsg      struct{ Err error }
	TotalMsg     int
)

// ToneMsg reports the tone verdict of one analyzed message
type ToneMsg struct {
	Label        classifier.Label
	NeedsRewrite bool
}

// RewriteMsg reports the outcome of one rewrite
type RewriteMsg struct {
	ID string
	OK bool
}

var tallyOrder = []classifier.Label{classifier.Harsh, classifier.Firm, classifier.Polite, classifier.Neutral}

// Model is the Bubbletea model for progress display
type Model struct {
	stage     Stage
	styles    *Styles
	spinner   spinner.Model
	progress  progress.Model
	currentOp string
	total     int
	done      int

	// per-message results of the current run
	tones     map[classifier.Label]int
	flagged   int
	rewritten int
	failed    int

	width    int
	quitting bool
	err      error
}

// NewModel creates a new progress model. A nil styles renders plain text.
func NewModel(styles *Styles) Model {
	if styles == nil {
		styles = NewStyles(false)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		stage:    StageLoadModels,
		styles:   styles,
		spinner:  s,
		progress: p,
		tones:    make(map[classifier.Label]int),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StageMsg:
		if Stage(msg) != m.stage {
			m.done = 0
			m.currentOp = ""
		}
		m.stage = Stage(msg)
		return m, nil

	case OperationMsg:
		m.currentOp = string(msg)
		return m, nil

	case ItemStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case TotalMsg:
		m.total = int(msg)
		return m, nil

	case ToneMsg:
		m.done++
		m.tones[msg.Label]++
		if msg.NeedsRewrite {
			m.flagged++
		}
		return m, nil

	case RewriteMsg:
		m.done++
		if msg.OK {
			m.rewritten++
		} else {
			m.failed++
		}
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	switch m.stage {
	case StageLoadModels:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading tone models...")

	case StageParse:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Reading messages")
		if m.currentOp != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.currentOp))
		}

	case StageAnalyze, StageRewrite:
		if m.total > 0 {
			pct := float64(m.done) / float64(m.total)
			sb.WriteString(m.progress.ViewAs(pct))
			sb.WriteString(fmt.Sprintf(" %d/%d\n", m.done, m.total))
		}
		if tally := m.tally(); tally != "" {
			sb.WriteString(tally)
			sb.WriteString("\n")
		}
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		switch {
		case m.currentOp != "":
			sb.WriteString(m.currentOp)
		case m.stage == StageRewrite:
			sb.WriteString("Rewriting messages...")
		default:
			sb.WriteString("Analyzing messages...")
		}
	}

	return sb.String()
}

// tally summarizes the results seen so far in the current stage
func (m Model) tally() string {
	if m.stage == StageRewrite {
		if m.rewritten+m.failed == 0 {
			return ""
		}
		line := fmt.Sprintf("%d rewritten", m.rewritten)
		if m.failed > 0 {
			line += ", " + m.styles.Error.Render(fmt.Sprintf("%d failed", m.failed))
		}
		return line
	}

	var parts []string
	for _, label := range tallyOrder {
		if n := m.tones[label]; n > 0 {
			parts = append(parts, m.styles.Tone(label).Render(fmt.Sprintf("%s %d", label, n)))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	line := strings.Join(parts, "  ")
	if m.flagged > 0 {
		line += fmt.Sprintf("  (%d need rewrite)", m.flagged)
	}
	return line
}
