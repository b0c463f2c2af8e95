// Package adapter contains the filesystem and storage adapters for the gitsync CLI.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

// RepoMarkerDir is the version-control metadata directory that marks a repository root.
const RepoMarkerDir = ".git"

// hashChunkSize is the size of the scratch buffer used while streaming files into the digest.
const hashChunkSize = 32 * 1024

// ErrRepoRootNotFound is returned when no marker directory exists in any parent of the start path.
var ErrRepoRootNotFound = errors.New("not a git repository (or any of the parent directories): " + RepoMarkerDir)

// SourceFSAdapter abstracts the read-only filesystem operations the status
// engine relies on. It hides direct `os` access so the domain logic can be
// tested against an in-memory filesystem.
type SourceFSAdapter interface {
	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// IsFile reports whether path exists and is not a directory. A missing
	// path is not an error.
	IsFile(path m.Path) (bool, error)

	// IsDir reports whether path exists and is a directory. A missing path is
	// not an error.
	IsDir(path m.Path) (bool, error)

	// Open opens a file for streaming reads.
	Open(path m.Path) (io.ReadCloser, error)

	// ReadFile loads a file and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns the hex SHA-256 digest of the file at path.
	HashFile(path m.Path) (string, error)

	// FindRepoRoot walks upward from startPath until a directory containing
	// RepoMarkerDir is found.
	FindRepoRoot(startPath m.Path) (m.Path, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter on top of an afero filesystem.
type LocalSourceFSAdapter struct {
	fs      afero.Fs
	buffers sync.Pool
}

// NewLocalSourceFSAdapter constructs an adapter backed by the operating system filesystem.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewSourceFSAdapter(afero.NewOsFs())
}

// NewSourceFSAdapter constructs an adapter backed by fs.
func NewSourceFSAdapter(fs afero.Fs) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{
		fs: fs,
		buffers: sync.Pool{
			New: func() any {
				buf := make([]byte, hashChunkSize)
				return &buf
			},
		},
	}
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return a.fs.Stat(string(path))
}

// IsFile reports whether path names an existing non-directory entry.
func (a *LocalSourceFSAdapter) IsFile(path m.Path) (bool, error) {
	info, err := a.fs.Stat(string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return !info.IsDir(), nil
}

// IsDir reports whether path names an existing directory.
func (a *LocalSourceFSAdapter) IsDir(path m.Path) (bool, error) {
	ok, err := afero.IsDir(a.fs, string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return ok, nil
}

// Open opens path for reading.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	return a.fs.Open(string(path))
}

// ReadFile loads file contents.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return afero.ReadFile(a.fs, string(path))
}

// HashFile streams the file through SHA-256 in fixed-size chunks.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := a.fs.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	bufPtr, _ := a.buffers.Get().(*[]byte)
	defer a.buffers.Put(bufPtr)

	h := sha256.New()
	// Hide WriterTo/ReaderFrom so the copy always goes through the chunk buffer.
	if _, err := io.CopyBuffer(struct{ io.Writer }{h}, struct{ io.Reader }{f}, *bufPtr); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FindRepoRoot searches startPath and its parents for RepoMarkerDir.
func (a *LocalSourceFSAdapter) FindRepoRoot(startPath m.Path) (m.Path, error) {
	dir, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", err
	}

	for {
		isRepo, err := a.IsDir(m.Path(filepath.Join(dir, RepoMarkerDir)))
		if err != nil {
			return "", err
		}

		if isRepo {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRepoRootNotFound
		}

		dir = parent
	}
}
