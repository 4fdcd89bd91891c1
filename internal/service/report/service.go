package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/employee"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendanceRepo   attendance.AttendanceRepository
	leaveRequestRepo leave.LeaveRequestRepository
	employeeRepo     employee.EmployeeRepository
	loc              *time.Location
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo:   attendanceRepo,
		leaveRequestRepo: leaveRequestRepo,
		employeeRepo:     employeeRepo,
		loc:              loc,
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

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, filter report.MonthlyReportFilter) (report.MonthlyReport, error) {
	if err := filter.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	found, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.buildReport(ctx, found, filter)
}

// ForEmployee implements report.ReportService.
func (s *ReportServiceImpl) ForEmployee(ctx context.Context, employeeCode string, filter report.MonthlyReportFilter) (report.MonthlyReport, error) {
	if err := filter.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	found, err := s.employeeRepo.GetByEmployeeCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.MonthlyReport{}, employee.ErrEmployeeNotFound
		}
		return report.MonthlyReport{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.buildReport(ctx, found, filter)
}

// Company implements report.ReportService. Every employee gets a summary
// row for the period, including the ones with no attendance at all.
func (s *ReportServiceImpl) Company(ctx context.Context, filter report.MonthlyReportFilter) (report.CompanySummary, error) {
	if err := filter.Validate(); err != nil {
		return report.CompanySummary{}, err
	}

	listFilter := employee.EmployeeFilter{Page: 1, Limit: 100}
	summaries := []report.EmployeeSummary{}

	for {
		employees, total, err := s.employeeRepo.List(ctx, listFilter)
		if err != nil {
			return report.CompanySummary{}, fmt.Errorf("failed to list employees: %w", err)
		}

		for _, emp := range employees {
			monthly, err := s.buildReport(ctx, emp, filter)
			if err != nil {
				return report.CompanySummary{}, err
			}
			summaries = append(summaries, report.EmployeeSummary{
				EmployeeID:        monthly.EmployeeID,
				EmployeeCode:      monthly.EmployeeCode,
				EmployeeName:      monthly.EmployeeName,
				PresentDays:       monthly.PresentDays,
				LeaveDays:         monthly.LeaveDays,
				TotalWorkingHours: monthly.TotalWorkingHours,
				AttendanceRate:    monthly.AttendanceRate,
			})
		}

		if int64(listFilter.Page*listFilter.Limit) >= total {
			break
		}
		listFilter.Page++
	}

	return report.CompanySummary{
		Month:     filter.Month,
		Year:      filter.Year,
		Employees: summaries,
	}, nil
}

// buildReport collects one employee's period data and delegates the
// aggregation to the pure builder.
func (s *ReportServiceImpl) buildReport(ctx context.Context, emp employee.Employee, filter report.MonthlyReportFilter) (report.MonthlyReport, error) {
	periodStart, periodEnd := report.PeriodBounds(filter.Month, filter.Year, s.loc)
	startDate := periodStart.Format("2006-01-02")
	endDate := periodEnd.Format("2006-01-02")

	// A month holds at most 31 records per employee, one page is enough.
	records, _, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID, attendance.AttendanceFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
		Page:      1,
		Limit:     31,
		SortBy:    "date",
		SortOrder: "asc",
	})
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	leaves, err := s.leaveRequestRepo.ListApprovedInPeriod(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	monthly := report.BuildMonthlyReport(emp.ID, filter.Month, filter.Year, records, leaves)
	monthly.EmployeeCode = emp.EmployeeCode
	if emp.FullName != nil {
		monthly.EmployeeName = *emp.FullName
	}
	return monthly, nil
}
