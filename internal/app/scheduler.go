package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"bucketcopy/internal/domain"
	"bucketcopy/internal/logging"
)

// Scheduler walks the source tree and copies every regular file it finds,
// keeping at most RunConfig.Concurrency copies in flight.
type Scheduler struct {
	FS       FileSystem
	Reporter Reporter
	Logger   logging.Logger
	NewRunID func() string

	// Exclude lists files that live in the source tree but are not part of
	// it, such as the run lock.
	Exclude []string
}

// Run copies the tree described by cfg and returns one outcome per file that
// was started. Cancelling ctx stops new copies from starting; copies already
// in flight finish and are included in the report.
func (s *Scheduler) Run(ctx context.Context, cfg domain.RunConfig) (domain.Report, error) {
	if s.FS == nil {
		return domain.Report{}, errors.New("scheduler requires FS")
	}
	reporter := s.Reporter
	if reporter == nil {
		reporter = NoopReporter{}
	}
	newID := s.NewRunID
	if newID == nil {
		newID = uuid.NewString
	}

	source := absOrClean(cfg.Source)
	out := absOrClean(cfg.Out)
	limit := max(cfg.Concurrency, 1)
	excluded := make(map[string]struct{}, len(s.Exclude))
	for _, path := range s.Exclude {
		excluded[absOrClean(path)] = struct{}{}
	}

	report := domain.Report{
		RunID:       newID(),
		Source:      source,
		Out:         out,
		Concurrency: limit,
		StartedAt:   time.Now(),
	}
	reporter.RunStarted(report.RunID, domain.RunConfig{Source: source, Out: out, Concurrency: limit})

	stop := s.Logger.Measure("Copying " + source)
	defer stop()

	copier := Copier{FS: s.FS}
	sem := semaphore.NewWeighted(int64(limit))
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
		cancelled bool
		queued    int
	)

	// The trailing separator makes a symlinked source root resolve to its directory.
	walkRoot := source
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	walkErr := s.FS.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			failure := domain.WalkError{Path: path, Err: err}
			mu.Lock()
			report.WalkErrors = append(report.WalkErrors, failure)
			reporter.WalkFailed(failure)
			mu.Unlock()
			return nil
		}
		if ctx.Err() != nil {
			cancelled = true
			return fs.SkipAll
		}
		if d.IsDir() {
			if filepath.Clean(path) == out {
				return fs.SkipDir
			}
			return nil
		}
		if _, skip := excluded[filepath.Clean(path)]; skip {
			return nil
		}
		if !s.isRegular(path, d) {
			return nil
		}

		entry := domain.NewFileEntry(path)
		if err := sem.Acquire(ctx, 1); err != nil {
			cancelled = true
			return fs.SkipAll
		}
		mu.Lock()
		queued++
		reporter.FileQueued(entry, queued)
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			outcome := copier.Copy(entry, out)

			mu.Lock()
			defer mu.Unlock()
			report.Outcomes = append(report.Outcomes, outcome)
			processed++
			reporter.FileDone(outcome, processed)
		}()
		return nil
	})
	wg.Wait()

	if walkErr != nil {
		failure := domain.WalkError{Path: source, Err: walkErr}
		report.WalkErrors = append(report.WalkErrors, failure)
		reporter.WalkFailed(failure)
	}

	// A cancel that lands after the walk still interrupts the run.
	report.Cancelled = cancelled || ctx.Err() != nil
	report.FinishedAt = time.Now()
	s.Logger.Verbosef("Started %d copies from %s (%d walk errors)", queued, source, len(report.WalkErrors))
	reporter.RunFinished(report)
	return report, nil
}

// isRegular reports whether the entry names a regular file. Symlinks are
// followed for the check only; links to directories are never descended.
func (s *Scheduler) isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := s.FS.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func absOrClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
