package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Break errors
	ErrBreakAlreadyOpen = errors.New("you already have an open break")
	ErrNoOpenBreak      = errors.New("you have no open break")
	ErrBreakNotFound    = errors.New("break record not found")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrCheckOutBeforeIn   = errors.New("check-out must not be before check-in")
	ErrBreakOutBeforeIn   = errors.New("break end must not be before break start")
)
