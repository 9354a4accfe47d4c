package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"MarketWrap/internal/model"
)

// MemoryStore is an in-memory Store used when no database is configured
// and throughout tests. It enforces the same uniqueness rule as the
// SQLite schema.
type MemoryStore struct {
	mu      sync.Mutex
	records []*model.ReportRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) HasLockedReport(reportType, reportDate string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Type == reportType && r.ReportDate == reportDate && r.Status == "locked" && r.DeletedAt == "" {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Insert(rec *model.ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Type == rec.Type && r.ReportDate == rec.ReportDate && r.Status == rec.Status && r.DeletedAt == "" {
			return ErrAlreadyExists
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	clone := *rec
	s.records = append(s.records, &clone)
	return nil
}

func (s *MemoryStore) Latest(reportType string) (*model.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.ReportRecord
	for _, r := range s.records {
		if r.Type != reportType || r.DeletedAt != "" {
			continue
		}
		if latest == nil || r.ReportDate > latest.ReportDate {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (s *MemoryStore) ByDate(reportType, reportDate string) (*model.ReportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Type == reportType && r.ReportDate == reportDate && r.DeletedAt == "" {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SoftDelete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id && r.DeletedAt == "" {
			r.DeletedAt = time.Now().UTC().Format(time.RFC3339)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
