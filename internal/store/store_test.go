package store

import (
	"errors"
	"path/filepath"
	"testing"

	"MarketWrap/internal/model"
)

func record(date string) *model.ReportRecord {
	return &model.ReportRecord{
		Type:       "daily",
		ReportDate: date,
		Status:     "locked",
		AsOf:       date + "T21:00:00Z",
		Payload: &model.ReportPayload{
			Regime:   model.RegimeNeutral,
			Summary5: []string{"Market regime: NEUTRAL", "SPY 0.10%", "Top setup: AAPL (TREND)", "Hold horizon: 3–7 days", "News items: 0"},
		},
	}
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{"sqlite": sqlite, "memory": NewMemoryStore()}
}

func TestInsertAndLookup(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := s.HasLockedReport("daily", "2025-06-03")
			if err != nil || ok {
				t.Fatalf("expected no report yet, got ok=%v err=%v", ok, err)
			}

			rec := record("2025-06-03")
			if err := s.Insert(rec); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if rec.ID == "" {
				t.Error("expected generated ID")
			}

			ok, err = s.HasLockedReport("daily", "2025-06-03")
			if err != nil || !ok {
				t.Errorf("expected locked report, got ok=%v err=%v", ok, err)
			}

			got, err := s.ByDate("daily", "2025-06-03")
			if err != nil || got == nil {
				t.Fatalf("ByDate: got %v err=%v", got, err)
			}
			if got.Payload == nil || len(got.Payload.Summary5) != 5 {
				t.Errorf("expected payload round-trip with 5 summary lines, got %+v", got.Payload)
			}
		})
	}
}

func TestInsertConflict(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Insert(record("2025-06-03")); err != nil {
				t.Fatalf("first insert: %v", err)
			}
			err := s.Insert(record("2025-06-03"))
			if !errors.Is(err, ErrAlreadyExists) {
				t.Errorf("expected ErrAlreadyExists, got %v", err)
			}
			// A different date is fine.
			if err := s.Insert(record("2025-06-04")); err != nil {
				t.Errorf("insert for other date: %v", err)
			}
		})
	}
}

func TestSoftDeleteUnblocksReinsert(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec := record("2025-06-03")
			if err := s.Insert(rec); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := s.SoftDelete(rec.ID); err != nil {
				t.Fatalf("soft delete: %v", err)
			}

			ok, err := s.HasLockedReport("daily", "2025-06-03")
			if err != nil || ok {
				t.Errorf("soft-deleted report should be invisible, got ok=%v err=%v", ok, err)
			}
			if err := s.Insert(record("2025-06-03")); err != nil {
				t.Errorf("reinsert after soft delete: %v", err)
			}
		})
	}
}

func TestLatest(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Latest("daily")
			if err != nil || got != nil {
				t.Fatalf("expected no latest yet, got %v err=%v", got, err)
			}
			if err := s.Insert(record("2025-06-02")); err != nil {
				t.Fatal(err)
			}
			if err := s.Insert(record("2025-06-03")); err != nil {
				t.Fatal(err)
			}
			got, err = s.Latest("daily")
			if err != nil || got == nil {
				t.Fatalf("Latest: got %v err=%v", got, err)
			}
			if got.ReportDate != "2025-06-03" {
				t.Errorf("expected latest 2025-06-03, got %s", got.ReportDate)
			}
		})
	}
}
