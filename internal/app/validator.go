package app

import (
	"errors"
	"path/filepath"

	appErrors "bucketcopy/internal/errors"
)

var (
	errNotDirectory = errors.New("not a directory")
	errSameAsSource = errors.New("output directory is the source directory")
)

// ValidatePaths checks that source is a directory and that out can be
// created: its parent must be a directory and out itself, when present, must
// be a directory too.
func ValidatePaths(fsys FileSystem, source, out string) error {
	info, err := fsys.Stat(source)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidSource, "stat", source, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidSource, "stat", source, errNotDirectory)
	}

	cleanOut := filepath.Clean(out)
	parent := filepath.Dir(cleanOut)
	info, err = fsys.Stat(parent)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidOutput, "stat", parent, err)
	}
	if !info.IsDir() {
		return appErrors.Wrap(appErrors.InvalidOutput, "stat", parent, errNotDirectory)
	}

	exists, err := fsys.Exists(cleanOut)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidOutput, "stat", cleanOut, err)
	}
	if exists {
		info, err = fsys.Stat(cleanOut)
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidOutput, "stat", cleanOut, err)
		}
		if !info.IsDir() {
			return appErrors.Wrap(appErrors.InvalidOutput, "stat", cleanOut, errNotDirectory)
		}
	}

	if samePath(source, cleanOut) {
		return appErrors.Wrap(appErrors.InvalidOutput, "compare", cleanOut, errSameAsSource)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
