// Package store persists daily wrap reports. The uniqueness constraint on
// (type, report_date, status) for non-deleted rows is the serialization
// point between concurrent run triggers; a conflicting insert surfaces as
// ErrAlreadyExists and callers treat it as a benign skip.
package store

import (
	"errors"

	"MarketWrap/internal/model"
)

// ErrAlreadyExists is returned by Insert when a non-deleted report with
// the same (type, report_date, status) is already stored.
var ErrAlreadyExists = errors.New("report already exists")

// Store persists and retrieves report records. Lookup methods return
// (nil, nil) when no matching non-deleted row exists.
type Store interface {
	HasLockedReport(reportType, reportDate string) (bool, error)
	Insert(rec *model.ReportRecord) error
	Latest(reportType string) (*model.ReportRecord, error)
	ByDate(reportType, reportDate string) (*model.ReportRecord, error)
	SoftDelete(id string) error
	Close() error
}
