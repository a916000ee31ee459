package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mr1hm/go-emergency-prep/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			is_active INTEGER NOT NULL,
			location TEXT,
			source TEXT,
			external_ref TEXT
		);

		CREATE TABLE IF NOT EXISTS lesson_progress (
			module TEXT PRIMARY KEY,
			current_index INTEGER NOT NULL,
			completed TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS feed_items (
			ref TEXT PRIMARY KEY,
			seen_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_seq ON alerts(seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) SaveAlert(ctx context.Context, a *models.Alert) error {
	query := `
		INSERT INTO alerts (id, seq, type, title, message, timestamp, is_active, location, source, external_ref)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM alerts), ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			message = excluded.message,
			timestamp = excluded.timestamp,
			is_active = excluded.is_active,
			location = excluded.location,
			source = excluded.source,
			external_ref = excluded.external_ref
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, string(a.Type), a.Title, a.Message, a.Timestamp.UnixNano(),
		a.IsActive, a.Location, a.Source, a.ExternalRef,
	)
	if err != nil {
		return fmt.Errorf("error saving alert %s: %w", a.ID, err)
	}
	return nil
}

func (s *SQLiteDB) DeleteAlert(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("error deleting alert %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteDB) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, message, timestamp, is_active, location, source, external_ref
		FROM alerts
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.Alert, 0)
	for rows.Next() {
		var (
			a                            models.Alert
			typ                          string
			ts                           int64
			location, source, externalID sql.NullString
		)
		if err := rows.Scan(&a.ID, &typ, &a.Title, &a.Message, &ts, &a.IsActive, &location, &source, &externalID); err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		a.Type = models.AlertType(typ)
		a.Timestamp = time.Unix(0, ts)
		a.Location = location.String
		a.Source = source.String
		a.ExternalRef = externalID.String
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *SQLiteDB) RecordFeedItem(ctx context.Context, ref string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO feed_items (ref, seen_at) VALUES (?, ?)`,
		ref, time.Now().UnixNano(),
	)
	if err != nil {
		return false, fmt.Errorf("error recording feed item %s: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQLiteDB) ForgetFeedItem(ctx context.Context, ref string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM feed_items WHERE ref = ?`, ref); err != nil {
		return fmt.Errorf("error forgetting feed item %s: %w", ref, err)
	}
	return nil
}

func (s *SQLiteDB) SaveProgress(ctx context.Context, p *models.LessonProgress) error {
	completed, err := json.Marshal(p.CompletedIndices)
	if err != nil {
		return fmt.Errorf("error encoding completed lessons: %w", err)
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lesson_progress (module, current_index, completed, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(module) DO UPDATE SET
			current_index = excluded.current_index,
			completed = excluded.completed,
			updated_at = excluded.updated_at
	`, string(p.Module), p.CurrentLessonIndex, string(completed), updatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("error saving progress for %s: %w", p.Module, err)
	}
	return nil
}

func (s *SQLiteDB) ListProgress(ctx context.Context) ([]models.LessonProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT module, current_index, completed, updated_at
		FROM lesson_progress
		ORDER BY module
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying progress: %w", err)
	}
	defer rows.Close()

	var out []models.LessonProgress
	for rows.Next() {
		var (
			p         models.LessonProgress
			module    string
			completed string
			updatedAt int64
		)
		if err := rows.Scan(&module, &p.CurrentLessonIndex, &completed, &updatedAt); err != nil {
			return nil, fmt.Errorf("error scanning progress: %w", err)
		}
		if err := json.Unmarshal([]byte(completed), &p.CompletedIndices); err != nil {
			return nil, fmt.Errorf("error decoding completed lessons for %s: %w", module, err)
		}
		p.Module = models.ModuleType(module)
		p.UpdatedAt = time.Unix(0, updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}
