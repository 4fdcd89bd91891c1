package report

import (
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type MonthlyReportFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *MonthlyReportFilter) Validate() error {
	var errs validator.ValidationErrors

	now := time.Now()
	if f.Month == 0 {
		f.Month = int(now.Month())
	}
	if f.Year == 0 {
		f.Year = now.Year()
	}

	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year < 2000 || f.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReportRecord struct {
	Date         string  `json:"date"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	BreakMinutes float64 `json:"break_minutes"`
	WorkingHours float64 `json:"working_hours"`
}

type WeeklySummary struct {
	ISOYear      int            `json:"iso_year"`
	ISOWeek      int            `json:"iso_week"`
	Records      []ReportRecord `json:"records"`
	WorkingHours float64        `json:"working_hours"`
}

type MonthlyReport struct {
	EmployeeID        string          `json:"employee_id"`
	EmployeeCode      string          `json:"employee_code,omitempty"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	Weeks             []WeeklySummary `json:"weeks"`
	TotalWorkingHours float64         `json:"total_working_hours"`
	PresentDays       int             `json:"present_days"`
	LeaveDays         float64         `json:"leave_days"`
	AbsentDays        float64         `json:"absent_days"`
	AttendanceRate    float64         `json:"attendance_rate"`
}

type EmployeeSummary struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeCode      string  `json:"employee_code"`
	EmployeeName      string  `json:"employee_name"`
	PresentDays       int     `json:"present_days"`
	LeaveDays         float64 `json:"leave_days"`
	TotalWorkingHours float64 `json:"total_working_hours"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

type CompanySummary struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Employees []EmployeeSummary `json:"employees"`
}
