package domain

import (
	"path/filepath"
	"strings"
)

type FileEntry struct {
	Path string
	Name string
	Ext  string
}

func NewFileEntry(path string) FileEntry {
	name := filepath.Base(path)
	return FileEntry{
		Path: path,
		Name: name,
		Ext:  Extension(name),
	}
}

// Extension returns the suffix after the last dot of name without the dot.
// A dot in the first or last position does not start an extension, so
// ".bashrc" and "notes." have none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// Bucket is the directory under outRoot that receives the entry.
func (e FileEntry) Bucket(outRoot string) string {
	if e.Ext == "" {
		return outRoot
	}
	return filepath.Join(outRoot, e.Ext)
}

func (e FileEntry) Target(outRoot string) string {
	return filepath.Join(e.Bucket(outRoot), e.Name)
}
