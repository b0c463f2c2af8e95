package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"gitsync.dev/pkg/gitsync/internal/adapter"
	m "gitsync.dev/pkg/gitsync/internal/model"
	"golang.org/x/sync/errgroup"
)

// Engine classifies every mapping of a resolved repository.
type Engine interface {
	// Evaluate returns one entry per mapping, in manifest order. When the
	// repository root is not a directory it returns a *BlockError and no entries.
	Evaluate(ctx context.Context, repo m.ResolvedRepo) ([]m.Entry, error)
}

type engine struct {
	cfg      *Config
	fs       adapter.SourceFSAdapter
	parallel int
}

// NewEngine constructs an Engine. parallel bounds how many pairs are hashed
// at once; values below 1 mean sequential evaluation.
func NewEngine(cfg *Config, fsAdapter adapter.SourceFSAdapter, parallel int) Engine {
	if parallel < 1 {
		parallel = 1
	}

	return &engine{cfg: cfg, fs: fsAdapter, parallel: parallel}
}

func (e *engine) Evaluate(ctx context.Context, repo m.ResolvedRepo) ([]m.Entry, error) {
	isDir, err := e.fs.IsDir(repo.Root)
	if err != nil {
		return nil, fmt.Errorf("stat source repository %s: %w", repo.Root, err)
	}

	if !isDir {
		return nil, &BlockError{Name: repo.Name, Path: repo.Root}
	}

	entries := make([]m.Entry, len(repo.Mappings))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.parallel)

	for i, mapping := range repo.Mappings {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			entry, err := e.evaluateMapping(repo.Root, mapping)
			if err != nil {
				return err
			}

			entries[i] = entry

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (e *engine) evaluateMapping(sourceRoot m.Path, mapping m.Mapping) (m.Entry, error) {
	srcPath := RepoPath(sourceRoot, mapping.Source)
	dstPath := RepoPath(e.cfg.RepoRoot, mapping.Destination)

	dstIsDir, err := e.fs.IsDir(dstPath)
	if err != nil {
		return m.Entry{}, fmt.Errorf("stat %s: %w", dstPath, err)
	}

	if dstIsDir {
		dstPath = m.Path(filepath.Join(string(dstPath), filepath.Base(string(srcPath))))
	}

	entry := m.Entry{
		Mapping:         mapping,
		SourcePath:      srcPath,
		DestinationPath: dstPath,
	}

	srcExists, err := e.fs.IsFile(srcPath)
	if err != nil {
		return m.Entry{}, fmt.Errorf("stat %s: %w", srcPath, err)
	}

	dstExists, err := e.fs.IsFile(dstPath)
	if err != nil {
		return m.Entry{}, fmt.Errorf("stat %s: %w", dstPath, err)
	}

	hashesEqual := false

	if srcExists && dstExists {
		if entry.SourceHash, entry.SourceSize, err = e.fingerprint(srcPath); err != nil {
			return m.Entry{}, err
		}

		if entry.DestinationHash, entry.DestinationSize, err = e.fingerprint(dstPath); err != nil {
			return m.Entry{}, err
		}

		hashesEqual = entry.SourceHash == entry.DestinationHash
	}

	entry.Status = m.Classify(srcExists, dstExists, hashesEqual)

	slog.Debug("evaluated mapping",
		"source", srcPath,
		"destination", dstPath,
		"status", entry.Status.String())

	return entry, nil
}

func (e *engine) fingerprint(path m.Path) (string, int64, error) {
	hash, err := e.fs.HashFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}

	info, err := e.fs.FileInfo(path)
	if err != nil {
		return "", 0, fmt.Errorf("stat %s: %w", path, err)
	}

	return hash, info.Size(), nil
}
