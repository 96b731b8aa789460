package app

import (
	"errors"
	"io/fs"

	"bucketcopy/internal/domain"
)

const bucketPerm fs.FileMode = 0o755

// Copier copies one file into its extension bucket. It never returns an
// error; every failure becomes a CopyOutcome.
type Copier struct {
	FS FileSystem
}

func (c Copier) Copy(entry domain.FileEntry, outRoot string) domain.CopyOutcome {
	if _, err := c.FS.Stat(entry.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Skipped(entry, err)
		}
		return c.classify(entry, "", err)
	}

	bucket := entry.Bucket(outRoot)
	target := entry.Target(outRoot)

	if err := c.FS.MkdirAll(bucket, bucketPerm); err != nil {
		return c.classify(entry, target, err)
	}
	if err := c.FS.CopyFile(entry.Path, target); err != nil {
		return c.classify(entry, target, err)
	}
	return domain.Success(entry, target)
}

func (c Copier) classify(entry domain.FileEntry, target string, err error) domain.CopyOutcome {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return domain.Failed(entry, domain.ReasonPermissionDenied, target, err)
	case errors.Is(err, fs.ErrNotExist) && c.sourceGone(entry):
		return domain.Skipped(entry, err)
	default:
		return domain.Failed(entry, domain.ReasonIOError, target, err)
	}
}

// sourceGone separates a vanished source from a missing destination
// directory; both surface as fs.ErrNotExist.
func (c Copier) sourceGone(entry domain.FileEntry) bool {
	exists, err := c.FS.Exists(entry.Path)
	return err == nil && !exists
}
