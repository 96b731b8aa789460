package app

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bucketcopy/internal/domain"
)

type mockFS struct {
	mu        sync.Mutex
	entries   []mockEntry
	walkErrs  map[string]error
	statErrs  map[string]error
	mkdirErrs map[string]error
	copyErrs  map[string]error
	dirs      map[string]bool
	copied    map[string]string
}

type mockEntry struct {
	path  string
	isDir bool
	mode  fs.FileMode
}

func newMockFS(entries ...mockEntry) *mockFS {
	return &mockFS{
		entries:   entries,
		walkErrs:  map[string]error{},
		statErrs:  map[string]error{},
		mkdirErrs: map[string]error{},
		copyErrs:  map[string]error{},
		dirs:      map[string]bool{},
		copied:    map[string]string{},
	}
}

func dir(path string) mockEntry  { return mockEntry{path: path, isDir: true} }
func file(path string) mockEntry { return mockEntry{path: path} }

func (m *mockFS) snapshot() []mockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mockEntry(nil), m.entries...)
}

func (m *mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	root = filepath.Clean(root)
	var skipped []string
	for _, entry := range m.snapshot() {
		if entry.path != root && !strings.HasPrefix(entry.path, root+string(filepath.Separator)) {
			continue
		}
		if isUnder(entry.path, skipped) {
			continue
		}
		dirEntry := mockDirEntry{name: filepath.Base(entry.path), isDir: entry.isDir, mode: entry.mode}
		err := fn(entry.path, dirEntry, m.walkErrs[entry.path])
		switch {
		case errors.Is(err, fs.SkipAll):
			return nil
		case errors.Is(err, fs.SkipDir):
			skipped = append(skipped, entry.path)
		case err != nil:
			return err
		}
	}
	return nil
}

func isUnder(path string, dirs []string) bool {
	for _, d := range dirs {
		if path == d || strings.HasPrefix(path, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (m *mockFS) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.statErrs[path]; err != nil {
		return nil, err
	}
	for _, entry := range m.entries {
		if entry.path == path {
			return mockFileInfo{name: filepath.Base(path), isDir: entry.isDir, mode: entry.mode}, nil
		}
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *mockFS) Exists(path string) (bool, error) {
	_, err := m.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (m *mockFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.mkdirErrs[path]; err != nil {
		return err
	}
	m.dirs[path] = true
	return nil
}

// CopyFile fails with copyErrs[src] when set. A not-exist error also removes
// src, like a file deleted while it was being copied.
func (m *mockFS) CopyFile(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.copyErrs[src]; err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			kept := m.entries[:0]
			for _, entry := range m.entries {
				if entry.path != src {
					kept = append(kept, entry)
				}
			}
			m.entries = kept
		}
		return err
	}
	m.copied[dst] = src
	return nil
}

func (m *mockFS) copiedTo(dst string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.copied[dst]
	return src, ok
}

type mockDirEntry struct {
	name  string
	isDir bool
	mode  fs.FileMode
}

func (m mockDirEntry) Name() string { return m.name }
func (m mockDirEntry) IsDir() bool  { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode {
	if m.isDir {
		return fs.ModeDir
	}
	return m.mode.Type()
}
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockFileInfo struct {
	name  string
	isDir bool
	mode  fs.FileMode
}

func (m mockFileInfo) Name() string { return m.name }
func (m mockFileInfo) Size() int64  { return 0 }
func (m mockFileInfo) Mode() fs.FileMode {
	if m.isDir {
		return fs.ModeDir | 0o755
	}
	return m.mode
}
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() interface{}   { return nil }

type recordingReporter struct {
	mu        sync.Mutex
	started   int
	finished  int
	queued    int
	processed []int
	outcomes  []domain.CopyOutcome
	walkErrs  []domain.WalkError
}

func (r *recordingReporter) RunStarted(string, domain.RunConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recordingReporter) FileQueued(domain.FileEntry, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued++
}

func (r *recordingReporter) FileDone(outcome domain.CopyOutcome, processed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.processed = append(r.processed, processed)
}

func (r *recordingReporter) WalkFailed(walkErr domain.WalkError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.walkErrs = append(r.walkErrs, walkErr)
}

func (r *recordingReporter) RunFinished(domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
}
