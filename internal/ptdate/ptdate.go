// Package ptdate holds the Pacific-calendar rules for the daily wrap:
// the run window and the target report date.
package ptdate

import "time"

// Wrap window bounds in minutes since midnight Pacific (13:05-13:25,
// inclusive on both ends).
const (
	windowOpenMins  = 13*60 + 5
	windowCloseMins = 13*60 + 25
)

var pacific *time.Location

func init() {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic("ptdate: load America/Los_Angeles: " + err.Error())
	}
	pacific = loc
}

// Location returns the Pacific time zone.
func Location() *time.Location {
	return pacific
}

// InWrapWindow reports whether now falls inside the daily wrap window.
func InWrapWindow(now time.Time) bool {
	pt := now.In(pacific)
	mins := pt.Hour()*60 + pt.Minute()
	return mins >= windowOpenMins && mins <= windowCloseMins
}

// TargetReportDate returns the report date (YYYY-MM-DD) for a run at
// now: the Pacific calendar day, rolled forward to Monday on weekends.
func TargetReportDate(now time.Time) string {
	pt := now.In(pacific)
	switch pt.Weekday() {
	case time.Saturday:
		pt = pt.AddDate(0, 0, 2)
	case time.Sunday:
		pt = pt.AddDate(0, 0, 1)
	}
	return pt.Format("2006-01-02")
}
