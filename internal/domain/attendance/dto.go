package attendance

import (
	"strings"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type BreakResponse struct {
	ID           string  `json:"id"`
	BreakIn      string  `json:"break_in"`
	BreakOut     *string `json:"break_out,omitempty"`
	DurationMins float64 `json:"duration_minutes"`
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	Date         string          `json:"date"`
	CheckInTime  string          `json:"check_in_time"`
	CheckOutTime *string         `json:"check_out_time,omitempty"`
	Breaks       []BreakResponse `json:"breaks"`
	SessionHours float64         `json:"session_hours"`
	BreakMinutes float64         `json:"break_minutes"`
	WorkingHours float64         `json:"working_hours"`
	AutoClosed   bool            `json:"auto_closed,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

// TodayResponse is the employee dashboard view of the current day.
type TodayResponse struct {
	HasCheckedIn bool                `json:"has_checked_in"`
	HasOpenBreak bool                `json:"has_open_break"`
	CanCheckOut  bool                `json:"can_check_out"`
	Attendance   *AttendanceResponse `json:"attendance,omitempty"`
	AutoClosed   []string            `json:"auto_closed_dates,omitempty"`
}

type CheckInResponse struct {
	Attendance       AttendanceResponse `json:"attendance"`
	AlreadyCheckedIn bool               `json:"already_checked_in"`
	AutoClosed       []string           `json:"auto_closed_dates,omitempty"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	OpenOnly     bool    `json:"open_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, check_in_time, check_out_time
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Date validation
	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "check_in_time", "check_out_time"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, check_in_time, check_out_time",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest lets admins fix records where an employee forgot
// to check in or out.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // HH:MM:SS or full datetime
	CheckOutTime *string `json:"check_out_time,omitempty"` // HH:MM:SS or full datetime
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CheckInTime != nil && *r.CheckInTime != "" && !isValidClockValue(*r.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check_in_time must be HH:MM:SS or YYYY-MM-DD HH:MM:SS",
		})
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" && !isValidClockValue(*r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_time",
			Message: "check_out_time must be HH:MM:SS or YYYY-MM-DD HH:MM:SS",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func isValidClockValue(value string) bool {
	if _, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return true
	}
	if _, err := time.Parse("15:04:05", value); err == nil {
		return true
	}
	return false
}

// UpdateBreakRequest lets admins fix or close break rows on a record.
type UpdateBreakRequest struct {
	ID           string  `json:"-"`
	BreakInTime  *string `json:"break_in_time,omitempty"`  // HH:MM:SS or full datetime
	BreakOutTime *string `json:"break_out_time,omitempty"` // HH:MM:SS or full datetime
}

func (r *UpdateBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakInTime != nil && *r.BreakInTime != "" && !isValidClockValue(*r.BreakInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_in_time",
			Message: "break_in_time must be HH:MM:SS or YYYY-MM-DD HH:MM:SS",
		})
	}

	if r.BreakOutTime != nil && *r.BreakOutTime != "" && !isValidClockValue(*r.BreakOutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_out_time",
			Message: "break_out_time must be HH:MM:SS or YYYY-MM-DD HH:MM:SS",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
