package report

import (
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func workDay(date time.Time, inHour, outHour int) attendance.Attendance {
	checkOut := time.Date(date.Year(), date.Month(), date.Day(), outHour, 0, 0, 0, time.UTC)
	return attendance.Attendance{
		Date:     date,
		CheckIn:  time.Date(date.Year(), date.Month(), date.Day(), inHour, 0, 0, 0, time.UTC),
		CheckOut: &checkOut,
	}
}

func TestBuildMonthlyReport_GroupsByISOWeek(t *testing.T) {
	// June 2026: Mon 1st opens ISO week 23, Mon 8th opens week 24.
	records := []attendance.Attendance{
		workDay(day(2026, time.June, 1), 9, 17),
		workDay(day(2026, time.June, 2), 9, 17),
		workDay(day(2026, time.June, 8), 9, 18),
	}

	result := BuildMonthlyReport("emp-1", 6, 2026, records, nil)

	assert.Len(t, result.Weeks, 2)
	assert.Equal(t, 23, result.Weeks[0].ISOWeek)
	assert.Equal(t, 24, result.Weeks[1].ISOWeek)
	assert.Len(t, result.Weeks[0].Records, 2)
	assert.Len(t, result.Weeks[1].Records, 1)
	assert.Equal(t, 16.0, result.Weeks[0].WorkingHours)
	assert.Equal(t, 9.0, result.Weeks[1].WorkingHours)
	assert.Equal(t, 25.0, result.TotalWorkingHours)
	assert.Equal(t, 3, result.PresentDays)
}

func TestBuildMonthlyReport_IgnoresOutOfPeriodRecords(t *testing.T) {
	records := []attendance.Attendance{
		workDay(day(2026, time.May, 31), 9, 17),
		workDay(day(2026, time.June, 1), 9, 17),
		workDay(day(2026, time.July, 1), 9, 17),
	}

	result := BuildMonthlyReport("emp-1", 6, 2026, records, nil)

	assert.Equal(t, 1, result.PresentDays)
	assert.Equal(t, 8.0, result.TotalWorkingHours)
}

func TestBuildMonthlyReport_RecordsSortedWithinWeek(t *testing.T) {
	records := []attendance.Attendance{
		workDay(day(2026, time.June, 3), 9, 17),
		workDay(day(2026, time.June, 1), 9, 17),
		workDay(day(2026, time.June, 2), 9, 17),
	}

	result := BuildMonthlyReport("emp-1", 6, 2026, records, nil)

	assert.Len(t, result.Weeks, 1)
	dates := []string{}
	for _, rec := range result.Weeks[0].Records {
		dates = append(dates, rec.Date)
	}
	assert.Equal(t, []string{"2026-06-01", "2026-06-02", "2026-06-03"}, dates)
}

func TestLeaveDaysInPeriod(t *testing.T) {
	periodStart := day(2026, time.June, 1)
	periodEnd := day(2026, time.June, 30)

	tests := []struct {
		name     string
		requests []leave.LeaveRequest
		want     float64
	}{
		{
			name: "full span inside period",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationFull, StartDate: day(2026, time.June, 10), EndDate: day(2026, time.June, 12)},
			},
			want: 3,
		},
		{
			name: "span clipped at month start",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationFull, StartDate: day(2026, time.May, 28), EndDate: day(2026, time.June, 2)},
			},
			want: 2,
		},
		{
			name: "span clipped at month end",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationFull, StartDate: day(2026, time.June, 29), EndDate: day(2026, time.July, 3)},
			},
			want: 2,
		},
		{
			name: "span fully outside period",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationFull, StartDate: day(2026, time.July, 1), EndDate: day(2026, time.July, 5)},
			},
			want: 0,
		},
		{
			name: "half day inside period",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationHalf, StartDate: day(2026, time.June, 15), EndDate: day(2026, time.June, 15)},
			},
			want: 0.5,
		},
		{
			name: "half day outside period",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusApproved, Duration: leave.DurationHalf, StartDate: day(2026, time.May, 15), EndDate: day(2026, time.May, 15)},
			},
			want: 0,
		},
		{
			name: "pending requests never count",
			requests: []leave.LeaveRequest{
				{Status: leave.StatusPending, Duration: leave.DurationFull, StartDate: day(2026, time.June, 10), EndDate: day(2026, time.June, 12)},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeaveDaysInPeriod(tt.requests, periodStart, periodEnd))
		})
	}
}

func TestAttendanceRate(t *testing.T) {
	assert.InDelta(t, 50.0, AttendanceRate(15, 30, 0), 0.001)
	assert.InDelta(t, 60.0, AttendanceRate(15, 30, 5), 0.001)
	assert.Equal(t, 0.0, AttendanceRate(0, 30, 30))
	assert.Equal(t, 0.0, AttendanceRate(0, 0, 0))
}

func TestBuildMonthlyReport_AbsentDaysFlooredAtZero(t *testing.T) {
	var records []attendance.Attendance
	for d := 1; d <= 30; d++ {
		records = append(records, workDay(day(2026, time.June, d), 9, 17))
	}
	leaves := []leave.LeaveRequest{
		{Status: leave.StatusApproved, Duration: leave.DurationFull, StartDate: day(2026, time.June, 1), EndDate: day(2026, time.June, 5)},
	}

	result := BuildMonthlyReport("emp-1", 6, 2026, records, leaves)

	assert.Equal(t, 0.0, result.AbsentDays)
}

func TestBuildMonthlyReport_AbsentDaysKeepFractions(t *testing.T) {
	// June 2026 has 30 days: 20 present + 0.5 half-day leave leaves 9.5 absent.
	var records []attendance.Attendance
	for d := 1; d <= 20; d++ {
		records = append(records, workDay(day(2026, time.June, d), 9, 17))
	}
	leaves := []leave.LeaveRequest{
		{Status: leave.StatusApproved, Duration: leave.DurationHalf, StartDate: day(2026, time.June, 22), EndDate: day(2026, time.June, 22)},
	}

	result := BuildMonthlyReport("emp-1", 6, 2026, records, leaves)

	assert.Equal(t, 0.5, result.LeaveDays)
	assert.InDelta(t, 9.5, result.AbsentDays, 0.001)
}
