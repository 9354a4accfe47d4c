package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"MarketWrap/internal/model"
)

// SQLiteStore persists reports to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block report writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id          TEXT PRIMARY KEY,
			type        TEXT NOT NULL,
			report_date TEXT NOT NULL,
			status      TEXT NOT NULL,
			asof        TEXT NOT NULL,
			payload     TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			deleted_at  TEXT
		)`,
		// Partial index: soft-deleted rows must not block a re-run.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reports_unique
			ON reports(type, report_date, status) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(report_date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// HasLockedReport reports whether a non-deleted locked report exists for
// the given type and date.
func (s *SQLiteStore) HasLockedReport(reportType, reportDate string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(1) FROM reports
		 WHERE type = ? AND report_date = ? AND status = 'locked' AND deleted_at IS NULL`,
		reportType, reportDate,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query locked report: %w", err)
	}
	return n > 0, nil
}

// Insert stores a report record, assigning an ID and created_at if unset.
// A uniqueness violation is returned as ErrAlreadyExists.
func (s *SQLiteStore) Insert(rec *model.ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO reports (id, type, report_date, status, asof, payload, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		rec.ID, rec.Type, rec.ReportDate, rec.Status, rec.AsOf, string(payload), rec.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanOne(row *sql.Row) (*model.ReportRecord, error) {
	var rec model.ReportRecord
	var payload string
	var deletedAt sql.NullString
	err := row.Scan(&rec.ID, &rec.Type, &rec.ReportDate, &rec.Status, &rec.AsOf, &payload, &rec.CreatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}
	if deletedAt.Valid {
		rec.DeletedAt = deletedAt.String
	}
	var p model.ReportPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	rec.Payload = &p
	return &rec, nil
}

// Latest returns the most recent non-deleted report of the given type.
func (s *SQLiteStore) Latest(reportType string) (*model.ReportRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, type, report_date, status, asof, payload, created_at, deleted_at
		 FROM reports WHERE type = ? AND deleted_at IS NULL
		 ORDER BY report_date DESC, created_at DESC LIMIT 1`,
		reportType,
	)
	return s.scanOne(row)
}

// ByDate returns the non-deleted report for the given type and date.
func (s *SQLiteStore) ByDate(reportType, reportDate string) (*model.ReportRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, type, report_date, status, asof, payload, created_at, deleted_at
		 FROM reports WHERE type = ? AND report_date = ? AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`,
		reportType, reportDate,
	)
	return s.scanOne(row)
}

// SoftDelete marks a report deleted without removing the row.
func (s *SQLiteStore) SoftDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`UPDATE reports SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("soft delete report: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
