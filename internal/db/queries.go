package db

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/store"
)

// LoadSnapshot reads the stored repository snapshot.
// found is false when nothing has been saved yet.
func LoadSnapshot(ctx context.Context, db *sql.DB) (repo *store.Repository, found bool, err error) {
	var body string
	err = db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = 1`).Scan(&body)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewInternal(err)
	}

	repo = &store.Repository{}
	if err := json.Unmarshal([]byte(body), repo); err != nil {
		return nil, false, errors.NewInternal(err)
	}
	return repo, true, nil
}

// SaveSnapshot stores repo as the single snapshot row, replacing any previous one.
func SaveSnapshot(ctx context.Context, db *sql.DB, repo *store.Repository) error {
	body, err := json.Marshal(repo)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO snapshots (id, created_at, fact_count, saved_at, body)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			fact_count = excluded.fact_count,
			saved_at   = excluded.saved_at,
			body       = excluded.body
	`
	_, err = db.ExecContext(ctx, query,
		repo.CreatedAt().Unix(), repo.Count(), time.Now().Unix(), string(body),
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Backend stores repository snapshots in SQLite. It implements store.Backend.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewBackend wraps an initialized database.
func NewBackend(db *sql.DB, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{db: db, logger: logger, now: time.Now}
}

// Load returns the saved repository, or a new empty one if nothing was saved.
func (b *Backend) Load(ctx context.Context) (*store.Repository, error) {
	repo, found, err := LoadSnapshot(ctx, b.db)
	if err != nil {
		return nil, err
	}
	if !found {
		b.logger.Debug("no snapshot row, starting empty repository")
		return store.New(b.now()), nil
	}
	b.logger.Debug("loaded snapshot", "facts", repo.Count())
	return repo, nil
}

// Save replaces the stored snapshot.
func (b *Backend) Save(ctx context.Context, repo *store.Repository) error {
	if err := SaveSnapshot(ctx, b.db, repo); err != nil {
		return err
	}
	b.logger.Debug("saved snapshot", "facts", repo.Count())
	return nil
}

var _ store.Backend = (*Backend)(nil)
