package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFileCopiesContentAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "out", "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o640))
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out"), 0o755))

	require.NoError(t, OSFS{}.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v", info.ModTime())
}

func TestCopyFileOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	out := filepath.Join(dir, "out")
	dst := filepath.Join(out, "a.txt")
	require.NoError(t, os.Mkdir(out, 0o755))
	require.NoError(t, os.WriteFile(dst, []byte("old content that is longer"), 0o644))
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))

	require.NoError(t, OSFS{}.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := OSFS{}.CopyFile(filepath.Join(dir, "gone"), filepath.Join(dir, "gone.copy"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, statErr := os.Stat(filepath.Join(dir, "gone.copy"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCopyFileMissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	err := OSFS{}.CopyFile(src, filepath.Join(dir, "nope", "a.txt"))
	assert.Error(t, err)
}

func TestConcurrentWritersProduceOneWholeFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	contents := map[string]bool{}
	var sources []string
	for i := 0; i < 8; i++ {
		body := make([]byte, 64*1024)
		for j := range body {
			body[j] = byte('a' + i)
		}
		src := filepath.Join(dir, "src", string(rune('a'+i)), "same.bin")
		require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
		require.NoError(t, os.WriteFile(src, body, 0o644))
		sources = append(sources, src)
		contents[string(body)] = true
	}

	dst := filepath.Join(out, "same.bin")
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			assert.NoError(t, OSFS{}.CopyFile(src, dst))
		}(src)
	}
	wg.Wait()

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, contents[string(data)], "destination is not one of the sources")
}

func TestMkdirAllIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "txt")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, OSFS{}.MkdirAll(dir, 0o755))
		}()
	}
	wg.Wait()

	exists, err := OSFS{}.Exists(dir)
	require.NoError(t, err)
	assert.True(t, exists)
}
