package report

import (
	"sort"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
)

// PeriodBounds returns the first and last day of the month, inclusive.
func PeriodBounds(month, year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// LeaveDaysInPeriod counts approved leave days clipped to the period.
// Half-day requests contribute 0.5 only when their single date falls
// inside the period; full requests contribute one day per in-period date.
func LeaveDaysInPeriod(requests []leave.LeaveRequest, periodStart, periodEnd time.Time) float64 {
	var total float64
	for _, req := range requests {
		if req.Status != leave.StatusApproved {
			continue
		}
		if req.Duration == leave.DurationHalf {
			if !req.StartDate.Before(periodStart) && !req.StartDate.After(periodEnd) {
				total += 0.5
			}
			continue
		}
		start := req.StartDate
		if start.Before(periodStart) {
			start = periodStart
		}
		end := req.EndDate
		if end.After(periodEnd) {
			end = periodEnd
		}
		if end.Before(start) {
			continue
		}
		total += end.Sub(start).Hours()/24 + 1
	}
	return total
}

// AttendanceRate is present over workable days as a percentage, where
// workable days exclude approved leave. Zero when nothing was workable.
func AttendanceRate(presentDays int, totalDays int, leaveDays float64) float64 {
	denominator := float64(totalDays) - leaveDays
	if denominator <= 0 {
		return 0
	}
	return float64(presentDays) / denominator * 100
}

// BuildMonthlyReport aggregates one employee's records for a month into
// ISO-week buckets with derived totals. Records outside the period are
// ignored.
func BuildMonthlyReport(employeeID string, month, year int, records []attendance.Attendance, leaves []leave.LeaveRequest) MonthlyReport {
	loc := time.Local
	if len(records) > 0 {
		loc = records[0].Date.Location()
	}
	periodStart, periodEnd := PeriodBounds(month, year, loc)

	type weekKey struct {
		year int
		week int
	}
	buckets := make(map[weekKey]*WeeklySummary)

	presentDays := 0
	var totalWorked time.Duration

	for _, rec := range records {
		if rec.Date.Before(periodStart) || rec.Date.After(periodEnd) {
			continue
		}
		presentDays++
		working := rec.WorkingDuration()
		totalWorked += working

		isoYear, isoWeek := rec.Date.ISOWeek()
		key := weekKey{year: isoYear, week: isoWeek}
		bucket, exists := buckets[key]
		if !exists {
			bucket = &WeeklySummary{ISOYear: isoYear, ISOWeek: isoWeek}
			buckets[key] = bucket
		}

		var checkOut *string
		if rec.CheckOut != nil {
			v := rec.CheckOut.Format("15:04:05")
			checkOut = &v
		}
		bucket.Records = append(bucket.Records, ReportRecord{
			Date:         rec.Date.Format("2006-01-02"),
			CheckInTime:  rec.CheckIn.Format("15:04:05"),
			CheckOutTime: checkOut,
			BreakMinutes: rec.BreakTotal().Minutes(),
			WorkingHours: working.Hours(),
		})
		bucket.WorkingHours += working.Hours()
	}

	weeks := make([]WeeklySummary, 0, len(buckets))
	for _, bucket := range buckets {
		sort.Slice(bucket.Records, func(i, j int) bool {
			return bucket.Records[i].Date < bucket.Records[j].Date
		})
		weeks = append(weeks, *bucket)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].ISOYear != weeks[j].ISOYear {
			return weeks[i].ISOYear < weeks[j].ISOYear
		}
		return weeks[i].ISOWeek < weeks[j].ISOWeek
	})

	leaveDays := LeaveDaysInPeriod(leaves, periodStart, periodEnd)
	totalDays := periodEnd.Day()

	absentDays := float64(totalDays-presentDays) - leaveDays
	if absentDays < 0 {
		absentDays = 0
	}

	return MonthlyReport{
		EmployeeID:        employeeID,
		Month:             month,
		Year:              year,
		Weeks:             weeks,
		TotalWorkingHours: totalWorked.Hours(),
		PresentDays:       presentDays,
		LeaveDays:         leaveDays,
		AbsentDays:        absentDays,
		AttendanceRate:    AttendanceRate(presentDays, totalDays, leaveDays),
	}
}
