// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replica

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/internal/workers"
	"github.com/MKhiriev/go-replica-sync/models"
)

// tempPrefix marks partially written files. Scan skips them so an interrupted
// write never shows up as a change.
const tempPrefix = ".replsync-tmp-"

// FileSystem is a Replica rooted at a local directory.
type FileSystem struct {
	root        string
	scanWorkers int
	logger      *logger.Logger
}

// NewFileSystem opens the directory root as a replica. The directory must
// already exist. Scans hash files on one goroutine per CPU.
func NewFileSystem(root string, log *logger.Logger) (*FileSystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve replica root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open replica root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADir, abs)
	}

	return &FileSystem{root: abs, scanWorkers: runtime.NumCPU(), logger: log}, nil
}

// Root returns the absolute path of the replica root.
func (f *FileSystem) Root() string {
	return f.root
}

func (f *FileSystem) Scan(ctx context.Context) ([]models.FileState, error) {
	var paths []string

	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		paths = append(paths, p)
		return nil
	})
	if err == nil {
		var states []models.FileState
		states, err = f.hashAll(ctx, paths)
		if err == nil {
			sort.Slice(states, func(i, j int) bool { return states[i].Path < states[j].Path })
			return states, nil
		}
	}

	f.logger.Err(err).Str("func", "FileSystem.Scan").Str("root", f.root).Msg("scan failed")
	return nil, fmt.Errorf("scan %s: %w", f.root, err)
}

// hashAll stats and hashes every file of paths on the scan worker pool.
func (f *FileSystem) hashAll(ctx context.Context, paths []string) ([]models.FileState, error) {
	states := make([]models.FileState, len(paths))

	pool := workers.New(f.scanWorkers)
	for i, full := range paths {
		pool.Add(workers.WorkerFunc(func(context.Context) error {
			rel, err := filepath.Rel(f.root, full)
			if err != nil {
				return err
			}
			states[i], err = f.stat(full, filepath.ToSlash(rel))
			return err
		}))
	}

	if err := pool.Run(ctx); err != nil {
		return nil, err
	}
	return states, nil
}

func (f *FileSystem) Open(_ context.Context, relPath string) (io.ReadCloser, error) {
	full, err := f.resolve(relPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", relPath, err)
	}
	return file, nil
}

func (f *FileSystem) Write(ctx context.Context, state models.FileState, r io.Reader) error {
	relPath, modTime := state.Path, state.ModTime
	full, err := f.resolve(relPath)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(full)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", relPath, err)
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", relPath, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, utils.NewVerifyingReader(r, state.Hash)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	if err = os.Chtimes(tmpName, modTime, modTime); err != nil {
		return fmt.Errorf("set mtime of %s: %w", relPath, err)
	}
	if err = os.Rename(tmpName, full); err != nil {
		return fmt.Errorf("replace %s: %w", relPath, err)
	}

	f.logger.Debug().Str("root", f.root).Str("path", relPath).Msg("file written")
	return nil
}

func (f *FileSystem) Remove(_ context.Context, relPath string) error {
	full, err := f.resolve(relPath)
	if err != nil {
		return err
	}

	if err = os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	f.pruneEmptyParents(filepath.Dir(full))

	f.logger.Debug().Str("root", f.root).Str("path", relPath).Msg("file removed")
	return nil
}

func (f *FileSystem) Close() error {
	return nil
}

// pruneEmptyParents removes directories emptied by a deletion, stopping at
// the root.
func (f *FileSystem) pruneEmptyParents(dir string) {
	for dir != f.root && strings.HasPrefix(dir, f.root) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

func (f *FileSystem) resolve(relPath string) (string, error) {
	clean := path.Clean(relPath)
	if relPath == "" || clean == "." || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, relPath)
	}
	return filepath.Join(f.root, filepath.FromSlash(clean)), nil
}

func (f *FileSystem) stat(full, rel string) (models.FileState, error) {
	info, err := os.Stat(full)
	if err != nil {
		return models.FileState{}, err
	}
	hash, err := hashFile(full)
	if err != nil {
		return models.FileState{}, err
	}

	return models.FileState{
		Path:    rel,
		Hash:    hash,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC().Truncate(time.Second),
	}, nil
}

func hashFile(full string) (string, error) {
	file, err := os.Open(full)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return utils.HashReader(file)
}
