package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"bucketcopy/internal/app"
	"bucketcopy/internal/domain"
)

// Reporter forwards run events to a running tea.Program.
type Reporter struct {
	send func(tea.Msg)
}

var _ app.Reporter = (*Reporter)(nil)

func NewReporter(p *tea.Program) *Reporter {
	return &Reporter{send: p.Send}
}

func (r *Reporter) RunStarted(runID string, cfg domain.RunConfig) {
	r.send(RunStartedMsg{RunID: runID, Config: cfg})
}

func (r *Reporter) FileQueued(_ domain.FileEntry, queued int) {
	r.send(FileQueuedMsg{Queued: queued})
}

func (r *Reporter) FileDone(outcome domain.CopyOutcome, processed int) {
	r.send(FileDoneMsg{Outcome: outcome, Processed: processed})
}

func (r *Reporter) WalkFailed(walkErr domain.WalkError) {
	r.send(WalkFailedMsg{WalkError: walkErr})
}

func (r *Reporter) RunFinished(report domain.Report) {
	r.send(RunFinishedMsg{Report: report})
}
