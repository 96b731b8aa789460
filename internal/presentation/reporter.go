package presentation

import (
	"bucketcopy/internal/app"
	"bucketcopy/internal/domain"
	"bucketcopy/internal/logging"
)

// LogReporter streams run events as log lines: one warning per skipped or
// failed file as soon as it happens, then the summary.
type LogReporter struct {
	Logger  logging.Logger
	Printer Printer
}

var _ app.Reporter = (*LogReporter)(nil)

func (r *LogReporter) RunStarted(runID string, cfg domain.RunConfig) {
	r.Logger.Infof("Run %s: copying %s into %s (%d workers)", runID, cfg.Source, cfg.Out, cfg.Concurrency)
}

func (r *LogReporter) FileQueued(domain.FileEntry, int) {}

func (r *LogReporter) FileDone(outcome domain.CopyOutcome, processed int) {
	if outcome.Status == domain.StatusSuccess {
		r.Logger.Verbosef("%s", ProblemMessage(outcome))
	} else {
		r.Logger.Warnf("%s", ProblemMessage(outcome))
	}
	r.Logger.Verbosef("Processed files: %d", processed)
}

func (r *LogReporter) WalkFailed(walkErr domain.WalkError) {
	r.Logger.Warnf("%s", WalkErrorMessage(walkErr))
}

func (r *LogReporter) RunFinished(report domain.Report) {
	if report.Cancelled {
		r.Logger.Infof("Operation cancelled.")
	}
	if r.Printer.Writer != nil {
		r.Printer.PrintSummary(report)
	}
	r.Logger.Infof("Completed.")
}
