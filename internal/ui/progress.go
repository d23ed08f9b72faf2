package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pthm/tonelint/internal/classifier"
)

// ProgressController manages the bubbletea program for progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode.
// Returns nil if not in interactive mode. The program never reads stdin,
// which may be carrying the messages being checked.
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	p := tea.NewProgram(NewModel(ui.Styles), tea.WithOutput(ui.ErrWriter), tea.WithInput(nil))
	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	go func() {
		if _, err := p.Run(); err != nil {
			slog.Debug("progress display stopped", "err", err)
		}
	}()

	return ctrl
}

// SetStage updates the current stage
func (pc *ProgressController) SetStage(stage Stage) {
	if pc != nil && pc.program != nil {
		pc.program.Send(StageMsg(stage))
	}
}

// SetOperation updates the current operation description
func (pc *ProgressController) SetOperation(op string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(OperationMsg(op))
	}
}

// SetTotal sets the number of messages to process
func (pc *ProgressController) SetTotal(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(TotalMsg(count))
	}
}

// ItemStart indicates a message has started processing
func (pc *ProgressController) ItemStart(id string) {
	if pc != nil && pc.program != nil {
		pc.program.Send(ItemStartMsg(fmt.Sprintf("Processing %s...", id)))
	}
}

// ItemTone records the tone verdict of an analyzed message
func (pc *ProgressController) ItemTone(label classifier.Label, needsRewrite bool) {
	if pc != nil && pc.program != nil {
		pc.program.Send(ToneMsg{Label: label, NeedsRewrite: needsRewrite})
	}
}

// ItemRewritten records the outcome of a rewrite
func (pc *ProgressController) ItemRewritten(id string, ok bool) {
	if pc != nil && pc.program != nil {
		pc.program.Send(RewriteMsg{ID: id, OK: ok})
	}
}

// Done signals that all work is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
