package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Backend loads and saves whole-repository snapshots.
// Load on a backend with nothing saved yet returns a new empty repository anchored at the current time.
type Backend interface {
	Load(ctx context.Context) (*Repository, error)
	Save(ctx context.Context, repo *Repository) error
}

// FileBackend keeps the snapshot as a single JSON file.
type FileBackend struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// NewFileBackend returns a backend that reads and writes path.
func NewFileBackend(path string, logger *slog.Logger) *FileBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileBackend{path: path, logger: logger, now: time.Now}
}

// Path returns the snapshot file path.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the snapshot file. A missing file yields a new empty repository.
func (b *FileBackend) Load(ctx context.Context) (*Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			b.logger.Debug("no snapshot found, starting empty repository", "path", b.path)
			return New(b.now()), nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	repo := &Repository{}
	if err := json.Unmarshal(data, repo); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", b.path, err)
	}
	b.logger.Debug("loaded snapshot", "path", b.path, "facts", repo.Count())
	return repo, nil
}

// Save writes the snapshot to a temp file and renames it over the target,
// so a failed write leaves the previous snapshot intact.
func (b *FileBackend) Save(ctx context.Context, repo *Repository) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(repo, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	success = true

	b.logger.Debug("saved snapshot", "path", b.path, "facts", repo.Count())
	return nil
}
