package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	employeeRepo   employee.EmployeeRepository
	db             *database.DB
	loc            *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	db *database.DB,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		employeeRepo:   employeeRepo,
		db:             db,
		loc:            loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
}

// AutoCloseStaleAttendances force-closes every open session left over
// from previous days at 23:59:59 of its own date. The lazy sweep on
// check-in covers employees who come back; this job covers the ones who
// don't.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	now := time.Now().In(j.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.loc)

	employeeIDs, err := j.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	closedCount := 0
	for _, employeeID := range employeeIDs {
		stale, err := j.attendanceRepo.ListStaleOpen(ctx, employeeID, today)
		if err != nil {
			slog.Error("Cron: Failed to list stale sessions", "employee_id", employeeID, "error", err)
			continue
		}
		if len(stale) == 0 {
			continue
		}

		err = postgresql.WithTransaction(ctx, j.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			for _, rec := range stale {
				endOfDay := rec.EndOfDay()
				if err := j.breakRepo.CloseOpenByAttendance(txCtx, rec.ID, endOfDay); err != nil {
					return fmt.Errorf("failed to close open breaks: %w", err)
				}
				if err := j.attendanceRepo.SetCheckOut(txCtx, rec.ID, endOfDay); err != nil {
					return fmt.Errorf("failed to close stale session: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			slog.Error("Cron: Failed to auto-close stale sessions", "employee_id", employeeID, "error", err)
			continue
		}

		closedCount += len(stale)
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed stale attendances", "count", closedCount)
	}
	return nil
}
