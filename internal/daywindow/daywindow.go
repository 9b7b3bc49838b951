// Package daywindow computes the accounting-day boundary for the daily write
// quota. All callers share one fixed reference timezone so that "today" means
// the same thing on every node regardless of server-local time.
package daywindow

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// Window resolves day keys and reset instants in a fixed reference timezone.
type Window struct {
	loc *time.Location
}

// Load builds a Window for the given IANA timezone name.
func Load(tz string) (*Window, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load quota timezone %q: %w", tz, err)
	}
	return &Window{loc: loc}, nil
}

// MustLoad is Load for static timezone names.
func MustLoad(tz string) *Window {
	w, err := Load(tz)
	if err != nil {
		panic(err)
	}
	return w
}

// DayKey returns the canonical YYYY-MM-DD identifier of the accounting day
// containing t.
func (w *Window) DayKey(t time.Time) string {
	return t.In(w.loc).Format(dayKeyLayout)
}

// NextMidnight returns the UTC instant at which the accounting day containing
// t ends and the next window becomes eligible.
func (w *Window) NextMidnight(t time.Time) time.Time {
	local := t.In(w.loc)
	year, month, day := local.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, w.loc).UTC()
}

// NextMidnightISO renders NextMidnight as an RFC3339 UTC timestamp, the form
// stored in QuotaRecord.ResumeAt.
func (w *Window) NextMidnightISO(t time.Time) string {
	return w.NextMidnight(t).Format(time.RFC3339)
}
