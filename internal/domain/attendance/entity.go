package attendance

import (
	"time"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Breaks []Break

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
}

type Break struct {
	ID           string
	AttendanceID string
	BreakIn      time.Time
	BreakOut     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Duration returns the length of a closed break, zero while it is open.
func (b Break) Duration() time.Duration {
	if b.BreakOut == nil {
		return 0
	}
	return b.BreakOut.Sub(b.BreakIn)
}

// IsOpen reports whether the session has not been checked out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// OpenBreak returns the currently open break, if any.
func (a Attendance) OpenBreak() *Break {
	for i := range a.Breaks {
		if a.Breaks[i].BreakOut == nil {
			return &a.Breaks[i]
		}
	}
	return nil
}

// SessionDuration is the raw span between check-in and check-out.
// Zero while the session is still open.
func (a Attendance) SessionDuration() time.Duration {
	if a.CheckOut == nil {
		return 0
	}
	return a.CheckOut.Sub(a.CheckIn)
}

// BreakTotal sums the durations of all closed breaks. Open breaks
// contribute nothing until they are closed.
func (a Attendance) BreakTotal() time.Duration {
	var total time.Duration
	for _, b := range a.Breaks {
		total += b.Duration()
	}
	return total
}

// WorkingDuration is the session duration minus break time, floored at zero.
func (a Attendance) WorkingDuration() time.Duration {
	working := a.SessionDuration() - a.BreakTotal()
	if working < 0 {
		return 0
	}
	return working
}

// EndOfDay returns 23:59:59 on the record's date, in the record's location.
// Stale open sessions are force-closed at this instant.
func (a Attendance) EndOfDay() time.Time {
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 23, 59, 59, 0, a.Date.Location())
}
