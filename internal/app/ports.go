package app

import (
	"io/fs"

	"bucketcopy/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
}

// Reporter receives run events. Calls are serialized by the Scheduler.
type Reporter interface {
	RunStarted(runID string, cfg domain.RunConfig)
	FileQueued(entry domain.FileEntry, queued int)
	FileDone(outcome domain.CopyOutcome, processed int)
	WalkFailed(walkErr domain.WalkError)
	RunFinished(report domain.Report)
}

type NoopReporter struct{}

var _ Reporter = NoopReporter{}

func (NoopReporter) RunStarted(string, domain.RunConfig) {}
func (NoopReporter) FileQueued(domain.FileEntry, int)    {}
func (NoopReporter) FileDone(domain.CopyOutcome, int)    {}
func (NoopReporter) WalkFailed(domain.WalkError)         {}
func (NoopReporter) RunFinished(domain.Report)           {}
