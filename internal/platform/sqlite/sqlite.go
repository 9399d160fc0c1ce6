// Package sqlite implements the annotation store on a local SQLite
// database, the sole durable state of the pipeline.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/mkarren/feedlens/internal/domain"
	"github.com/mkarren/feedlens/internal/store"
)

// schemaVersion is the single integer gate for schema creation. Opening
// a database whose user_version is behind creates the missing tables
// and advances the version; there is no further migration machinery.
const schemaVersion = 1

// Store implements store.AnnotationStore using SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the annotation database at path
// with WAL mode enabled and the schema initialized.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation database: %w", err)
	}

	// WAL mode for better concurrency between scheduler workers
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_store")),
	}, nil
}

// Ensure Store implements store.AnnotationStore
var _ store.AnnotationStore = (*Store)(nil)

// initSchema creates tables when the stored user_version is behind.
func initSchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version >= schemaVersion {
		return nil
	}

	schema := `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	classification TEXT,
	summary TEXT
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	summary TEXT
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	stmt := fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// GetPost implements store.AnnotationStore.GetPost.
func (s *Store) GetPost(ctx context.Context, id string) (domain.PostRecord, bool, error) {
	if id == "" {
		return domain.PostRecord{}, false, nil
	}

	var classification, summary sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT classification, summary FROM posts WHERE id = ?", id,
	).Scan(&classification, &summary)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.PostRecord{}, false, nil
	}
	if err != nil {
		return domain.PostRecord{}, false, fmt.Errorf("failed to read post record: %w", err)
	}

	rec := domain.PostRecord{}
	if classification.Valid {
		if err := json.Unmarshal([]byte(classification.String), &rec.Tags); err != nil {
			// A corrupt row is treated as a miss so the item can be
			// reclassified and the row overwritten.
			s.logger.Warn("discarding unreadable classification row",
				slog.String("post_id", id),
				slog.String("error", err.Error()))
			return domain.PostRecord{}, false, nil
		}
	}
	if summary.Valid {
		rec.Summary = summary.String
	}

	return rec, true, nil
}

// PutPostClassification implements store.AnnotationStore.PutPostClassification.
// The upsert updates only the classification column, so an existing
// summary on the same row is preserved.
func (s *Store) PutPostClassification(ctx context.Context, id string, tags []string) error {
	if id == "" {
		return store.ErrEmptyKey
	}

	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode classification: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO posts (id, classification) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET classification = excluded.classification`,
		id, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to write classification: %w", err)
	}

	return nil
}

// PutPostSummary implements store.AnnotationStore.PutPostSummary.
func (s *Store) PutPostSummary(ctx context.Context, id string, summary string) error {
	if id == "" {
		return store.ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO posts (id, summary) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET summary = excluded.summary`,
		id, summary)
	if err != nil {
		return fmt.Errorf("failed to write post summary: %w", err)
	}

	return nil
}

// GetComment implements store.AnnotationStore.GetComment.
func (s *Store) GetComment(ctx context.Context, id string) (domain.CommentRecord, bool, error) {
	if id == "" {
		return domain.CommentRecord{}, false, nil
	}

	var summary sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT summary FROM comments WHERE id = ?", id,
	).Scan(&summary)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.CommentRecord{}, false, nil
	}
	if err != nil {
		return domain.CommentRecord{}, false, fmt.Errorf("failed to read comment record: %w", err)
	}

	rec := domain.CommentRecord{}
	if summary.Valid {
		rec.Summary = summary.String
	}

	return rec, true, nil
}

// PutCommentSummary implements store.AnnotationStore.PutCommentSummary.
func (s *Store) PutCommentSummary(ctx context.Context, id string, summary string) error {
	if id == "" {
		return store.ErrEmptyKey
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO comments (id, summary) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET summary = excluded.summary`,
		id, summary)
	if err != nil {
		return fmt.Errorf("failed to write comment summary: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
