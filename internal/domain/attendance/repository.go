package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for day sessions and their breaks.
type AttendanceRepository interface {
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// ListStaleOpen returns open records dated before the given day.
	ListStaleOpen(ctx context.Context, employeeID string, before time.Time) ([]Attendance, error)

	SetCheckOut(ctx context.Context, id string, checkOut time.Time) error
	Update(ctx context.Context, att Attendance) error
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter AttendanceFilter) ([]Attendance, int64, error)
	Delete(ctx context.Context, id string) error

	// DeleteByEmployee removes the employee's records and their breaks.
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

// BreakRepository defines data access for the break sub-ledger.
type BreakRepository interface {
	Create(ctx context.Context, newBreak Break) (Break, error)
	GetByID(ctx context.Context, id string) (Break, error)
	GetOpenByAttendance(ctx context.Context, attendanceID string) (*Break, error)
	ListByAttendance(ctx context.Context, attendanceID string) ([]Break, error)
	SetBreakOut(ctx context.Context, id string, breakOut time.Time) error
	Update(ctx context.Context, b Break) error
	Delete(ctx context.Context, id string) error

	// CloseOpenByAttendance force-closes any open break on the record.
	CloseOpenByAttendance(ctx context.Context, attendanceID string, breakOut time.Time) error
}
