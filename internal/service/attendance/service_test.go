package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceRepo struct {
	attendance.AttendanceRepository

	existing  *attendance.Attendance
	createErr error
	getCalls  int
}

func (s *stubAttendanceRepo) ListStaleOpen(ctx context.Context, employeeID string, before time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

// GetByEmployeeAndDate sees nothing on the first lookup and the stored
// record afterwards, mirroring a concurrent insert landing in between.
func (s *stubAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	s.getCalls++
	if s.getCalls == 1 {
		return nil, nil
	}
	return s.existing, nil
}

func (s *stubAttendanceRepo) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	if s.createErr != nil {
		return attendance.Attendance{}, s.createErr
	}
	newAttendance.ID = "att-new"
	return newAttendance, nil
}

func claimsContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().Claim("employee_id", employeeID).Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCheckIn_LostInsertRaceReturnsWinningRecord(t *testing.T) {
	winner := attendance.Attendance{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC),
		CheckIn:    time.Date(2026, time.August, 26, 8, 55, 0, 0, time.UTC),
	}
	repo := &stubAttendanceRepo{existing: &winner, createErr: attendance.ErrAlreadyCheckedIn}
	svc := NewAttendanceService(nil, time.UTC, repo, nil, nil)

	result, err := svc.CheckIn(claimsContext(t, "emp-1"))

	require.NoError(t, err)
	assert.True(t, result.AlreadyCheckedIn)
	assert.Equal(t, "att-1", result.Attendance.ID)
	assert.Equal(t, "08:55:00", result.Attendance.CheckInTime)
}

func TestCheckIn_FirstOfTheDayCreatesRecord(t *testing.T) {
	repo := &stubAttendanceRepo{}
	svc := NewAttendanceService(nil, time.UTC, repo, nil, nil)

	result, err := svc.CheckIn(claimsContext(t, "emp-1"))

	require.NoError(t, err)
	assert.False(t, result.AlreadyCheckedIn)
	assert.Equal(t, "att-new", result.Attendance.ID)
}
