package attendance

import (
	"context"
)

type AttendanceService interface {
	CheckIn(ctx context.Context) (CheckInResponse, error)
	CheckOut(ctx context.Context) (AttendanceResponse, error)
	BreakStart(ctx context.Context) (AttendanceResponse, error)
	BreakEnd(ctx context.Context) (AttendanceResponse, error)
	Today(ctx context.Context) (TodayResponse, error)
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Admin operations
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListByEmployeeCode(ctx context.Context, employeeCode string, filter AttendanceFilter) (ListAttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error
	UpdateBreak(ctx context.Context, req UpdateBreakRequest) (AttendanceResponse, error)
	DeleteBreak(ctx context.Context, id string) error
}
