// Package store archives dictation sessions in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/dictstat/internal/logger"
	"github.com/verte-zerg/dictstat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// sessionNamespace scopes the name-based session ids.
var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/verte-zerg/dictstat/session"))

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// ImportRun describes one sync of the history file into the store.
type ImportRun struct {
	Source   string
	At       time.Time
	Seen     int
	Inserted int
	Skipped  int
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Get().Warn().Err(cerr).Msg("failed to close database after migration error")
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			recorded_ns INTEGER NOT NULL,
			text TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			wpm REAL,
			mode TEXT NOT NULL,
			sentiment REAL
		);`,
		`CREATE TABLE IF NOT EXISTS imports (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			seen INTEGER NOT NULL,
			inserted INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_recorded_ns ON sessions(recorded_ns);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SessionID is the deterministic id of a record: the same timestamp, mode
// and text always map to the same id.
func SessionID(rec model.SessionRecord) string {
	name := rec.Timestamp.UTC().Format(time.RFC3339Nano) + "\x00" + string(rec.Mode) + "\x00" + rec.Text
	return uuid.NewSHA1(sessionNamespace, []byte(name)).String()
}

// UpsertSessions stores records that are not archived yet and returns how
// many were new.
func (s *Store) UpsertSessions(ctx context.Context, records []model.SessionRecord) (inserted int, err error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
				logger.Get().Warn().Err(rerr).Msg("failed to roll back sessions")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO sessions (id, recorded_at, recorded_ns, text, word_count, duration_seconds, wpm, mode, sentiment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			logger.Get().Warn().Err(cerr).Msg("failed to close insert statement")
		}
	}()

	for _, rec := range records {
		res, err := stmt.ExecContext(ctx,
			SessionID(rec),
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
			rec.Timestamp.UnixNano(),
			rec.Text,
			rec.WordCount,
			rec.DurationSeconds,
			nullFloat(rec.WPM),
			string(rec.Mode),
			nullFloat(rec.Sentiment),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sessions: %w", err)
	}
	return inserted, nil
}

// ListSessions returns archived records ascending by timestamp, filtered by
// cfg. Last keeps only the most recent records.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "recorded_ns >= ?")
		args = append(args, cfg.Since.UnixNano())
	}
	if cfg.Mode != "" {
		clauses = append(clauses, "COALESCE(NULLIF(mode, ''), ?) = ?")
		args = append(args, string(model.ModeTranscribe), string(cfg.Mode.Resolve()))
	}
	query := fmt.Sprintf(`SELECT id, recorded_at, text, word_count, duration_seconds, wpm, mode, sentiment, recorded_ns
		FROM sessions
		WHERE %s
		ORDER BY recorded_ns DESC, id`, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	query = "SELECT recorded_at, text, word_count, duration_seconds, wpm, mode, sentiment FROM (" + query + ") ORDER BY recorded_ns ASC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logger.Get().Warn().Err(cerr).Msg("failed to close session rows")
		}
	}()

	var records []model.SessionRecord
	for rows.Next() {
		var (
			rec        model.SessionRecord
			recordedAt string
			mode       string
			wpm        sql.NullFloat64
			sentiment  sql.NullFloat64
		)
		if err := rows.Scan(&recordedAt, &rec.Text, &rec.WordCount, &rec.DurationSeconds, &wpm, &mode, &sentiment); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session timestamp: %w", err)
		}
		rec.Timestamp = ts
		rec.Mode = model.Mode(mode)
		rec.WPM = floatPtr(wpm)
		rec.Sentiment = floatPtr(sentiment)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return records, nil
}

// CountSessions returns the number of archived sessions.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

// RecordImport logs a completed sync.
func (s *Store) RecordImport(ctx context.Context, run ImportRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (source, imported_at, seen, inserted, skipped) VALUES (?, ?, ?, ?, ?)`,
		run.Source, run.At.UTC().Format(time.RFC3339Nano), run.Seen, run.Inserted, run.Skipped)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// LastImport returns the most recent sync; ok is false when none happened.
func (s *Store) LastImport(ctx context.Context) (run ImportRun, ok bool, err error) {
	var at string
	err = s.db.QueryRowContext(ctx,
		`SELECT source, imported_at, seen, inserted, skipped FROM imports ORDER BY id DESC LIMIT 1`,
	).Scan(&run.Source, &at, &run.Seen, &run.Inserted, &run.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return ImportRun{}, false, nil
	}
	if err != nil {
		return ImportRun{}, false, fmt.Errorf("failed to load last import: %w", err)
	}
	run.At, err = time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return ImportRun{}, false, fmt.Errorf("failed to parse import time: %w", err)
	}
	return run, true, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return model.Float(v.Float64)
}
