package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db  *database.DB
	loc *time.Location
	attendance.AttendanceRepository
	attendance.BreakRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	db *database.DB,
	loc *time.Location,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		loc:                  loc,
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		EmployeeRepository:   employeeRepo,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", employee.ErrNoEmployeeProfile
	}
	return employeeID, nil
}

// today returns midnight of the current day in the service timezone.
func (a *AttendanceServiceImpl) today() time.Time {
	now := time.Now().In(a.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc)
}

// closeStaleSessions force-closes open records from previous days at
// 23:59:59 of their own date, open breaks included. Returns the dates
// that were closed.
func (a *AttendanceServiceImpl) closeStaleSessions(ctx context.Context, employeeID string) ([]string, error) {
	stale, err := a.AttendanceRepository.ListStaleOpen(ctx, employeeID, a.today())
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil, nil
	}

	closedDates := make([]string, 0, len(stale))
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, rec := range stale {
			endOfDay := rec.EndOfDay()
			if err := a.BreakRepository.CloseOpenByAttendance(txCtx, rec.ID, endOfDay); err != nil {
				return fmt.Errorf("failed to close open breaks: %w", err)
			}
			if err := a.AttendanceRepository.SetCheckOut(txCtx, rec.ID, endOfDay); err != nil {
				return fmt.Errorf("failed to close stale session: %w", err)
			}
			closedDates = append(closedDates, rec.Date.Format("2006-01-02"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return closedDates, nil
}

// CheckIn implements attendance.AttendanceService. Checking in twice on
// the same day returns the existing record instead of failing.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.CheckInResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	autoClosed, err := a.closeStaleSessions(ctx, employeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	today := a.today()
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if existing != nil {
		return attendance.CheckInResponse{
			Attendance:       mapAttendanceToResponse(*existing),
			AlreadyCheckedIn: true,
			AutoClosed:       autoClosed,
		}, nil
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    time.Now().In(a.loc),
	})
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		// Lost a concurrent insert for the same day; the winner's row
		// is the record of the day.
		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return attendance.CheckInResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
		}
		if existing == nil {
			return attendance.CheckInResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.CheckInResponse{
			Attendance:       mapAttendanceToResponse(*existing),
			AlreadyCheckedIn: true,
			AutoClosed:       autoClosed,
		}, nil
	}
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.CheckInResponse{
		Attendance:       mapAttendanceToResponse(created),
		AlreadyCheckedIn: false,
		AutoClosed:       autoClosed,
	}, nil
}

// CheckOut implements attendance.AttendanceService. Any break still open
// is closed at the checkout instant.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.closeStaleSessions(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	todayRecord, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if todayRecord == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if !todayRecord.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := time.Now().In(a.loc)
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.BreakRepository.CloseOpenByAttendance(txCtx, todayRecord.ID, now); err != nil {
			return fmt.Errorf("failed to close open break: %w", err)
		}
		if err := a.AttendanceRepository.SetCheckOut(txCtx, todayRecord.ID, now); err != nil {
			return fmt.Errorf("failed to set check-out: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, todayRecord.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// BreakStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.closeStaleSessions(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	todayRecord, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if todayRecord == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if !todayRecord.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	openBreak, err := a.BreakRepository.GetOpenByAttendance(ctx, todayRecord.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}
	if openBreak != nil {
		return attendance.AttendanceResponse{}, attendance.ErrBreakAlreadyOpen
	}

	if _, err := a.BreakRepository.Create(ctx, attendance.Break{
		AttendanceID: todayRecord.ID,
		BreakIn:      time.Now().In(a.loc),
	}); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create break record: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, todayRecord.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// BreakEnd implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.AttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	todayRecord, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if todayRecord == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	openBreak, err := a.BreakRepository.GetOpenByAttendance(ctx, todayRecord.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}
	if openBreak == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenBreak
	}

	if err := a.BreakRepository.SetBreakOut(ctx, openBreak.ID, time.Now().In(a.loc)); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to set break end: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, todayRecord.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// Today implements attendance.AttendanceService. Stale sessions from
// earlier days are swept here too, so the dashboard never shows them open.
func (a *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	autoClosed, err := a.closeStaleSessions(ctx, employeeID)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	todayRecord, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if todayRecord == nil {
		return attendance.TodayResponse{AutoClosed: autoClosed}, nil
	}

	response := mapAttendanceToResponse(*todayRecord)
	return attendance.TodayResponse{
		HasCheckedIn: true,
		HasOpenBreak: todayRecord.OpenBreak() != nil,
		CanCheckOut:  todayRecord.IsOpen(),
		Attendance:   &response,
		AutoClosed:   autoClosed,
	}, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// ListByEmployeeCode implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployeeCode(ctx context.Context, employeeCode string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	employeeData, err := a.EmployeeRepository.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ListAttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeData.ID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance by employee: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// parseClockValue resolves HH:MM:SS values against the record date.
func parseClockValue(value string, date time.Time) (time.Time, error) {
	if parsed, err := time.ParseInLocation("2006-01-02 15:04:05", value, date.Location()); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("15:04:05", value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, date.Location()), nil
}

// UpdateAttendance implements attendance.AttendanceService. Admins use
// this to fix records where an employee forgot to check in or out.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.CheckInTime != nil && *req.CheckInTime != "" {
		checkIn, err := parseClockValue(*req.CheckInTime, att.Date)
		if err == nil {
			att.CheckIn = checkIn
		}
	}

	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		checkOut, err := parseClockValue(*req.CheckOutTime, att.Date)
		if err == nil {
			att.CheckOut = &checkOut
		}
	}

	if att.CheckOut != nil && att.CheckOut.Before(att.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeIn
	}

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// UpdateBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateBreak(ctx context.Context, req attendance.UpdateBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	breakData, err := a.BreakRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrBreakNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrBreakNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get break: %w", err)
	}

	att, err := a.AttendanceRepository.GetByID(ctx, breakData.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.BreakInTime != nil && *req.BreakInTime != "" {
		breakIn, err := parseClockValue(*req.BreakInTime, att.Date)
		if err == nil {
			breakData.BreakIn = breakIn
		}
	}

	if req.BreakOutTime != nil && *req.BreakOutTime != "" {
		breakOut, err := parseClockValue(*req.BreakOutTime, att.Date)
		if err == nil {
			breakData.BreakOut = &breakOut
		}
	}

	if breakData.BreakOut != nil && breakData.BreakOut.Before(breakData.BreakIn) {
		return attendance.AttendanceResponse{}, attendance.ErrBreakOutBeforeIn
	}

	if err := a.BreakRepository.Update(ctx, breakData); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update break: %w", err)
	}

	updated, err := a.AttendanceRepository.GetByID(ctx, breakData.AttendanceID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get updated attendance: %w", err)
	}

	return mapAttendanceToResponse(updated), nil
}

// DeleteBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteBreak(ctx context.Context, id string) error {
	if err := a.BreakRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrBreakNotFound) {
			return attendance.ErrBreakNotFound
		}
		return fmt.Errorf("failed to delete break: %w", err)
	}
	return nil
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("15:04:05")
	return &format
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName, employeeCode string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}
	if att.EmployeeCode != nil {
		employeeCode = *att.EmployeeCode
	}

	breaks := make([]attendance.BreakResponse, 0, len(att.Breaks))
	for _, b := range att.Breaks {
		breaks = append(breaks, attendance.BreakResponse{
			ID:           b.ID,
			BreakIn:      b.BreakIn.Format("15:04:05"),
			BreakOut:     timePtrToString(b.BreakOut),
			DurationMins: b.Duration().Minutes(),
		})
	}

	autoClosed := false
	if att.CheckOut != nil && att.CheckOut.Equal(att.EndOfDay()) {
		autoClosed = true
	}

	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: employeeName,
		EmployeeCode: employeeCode,
		Date:         att.Date.Format("2006-01-02"),
		CheckInTime:  att.CheckIn.Format("15:04:05"),
		CheckOutTime: timePtrToString(att.CheckOut),
		Breaks:       breaks,
		SessionHours: att.SessionDuration().Hours(),
		BreakMinutes: att.BreakTotal().Minutes(),
		WorkingHours: att.WorkingDuration().Hours(),
		AutoClosed:   autoClosed,
		CreatedAt:    att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func buildListResponse(records []attendance.Attendance, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}
}
