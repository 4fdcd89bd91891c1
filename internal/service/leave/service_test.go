package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeaveRequestRepo struct {
	leave.LeaveRequestRepository

	byID map[string]leave.LeaveRequest
}

func (s *stubLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	found, ok := s.byID[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return found, nil
}

func claimsContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().Claim("employee_id", employeeID).Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func strPtr(s string) *string { return &s }

func TestUpdateRequest_EndBeforeStartIsValidationError(t *testing.T) {
	repo := &stubLeaveRequestRepo{byID: map[string]leave.LeaveRequest{
		"req-1": {
			ID:         "req-1",
			EmployeeID: "emp-1",
			StartDate:  mustDate(t, "2026-08-10"),
			EndDate:    mustDate(t, "2026-08-12"),
			Duration:   leave.DurationFull,
			Status:     leave.StatusPending,
		},
	}}
	svc := NewLeaveService(nil, nil, nil, repo, nil)

	_, err := svc.UpdateRequest(claimsContext(t, "emp-1"), leave.UpdateLeaveRequest{
		ID:      "req-1",
		EndDate: strPtr("2026-08-01"),
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "end_date must not be before start_date", errs.ToMap()["end_date"])
	assert.NotErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestUpdateRequest_OtherEmployeesRequestStaysHidden(t *testing.T) {
	repo := &stubLeaveRequestRepo{byID: map[string]leave.LeaveRequest{
		"req-1": {
			ID:         "req-1",
			EmployeeID: "emp-2",
			StartDate:  mustDate(t, "2026-08-10"),
			EndDate:    mustDate(t, "2026-08-12"),
			Duration:   leave.DurationFull,
			Status:     leave.StatusPending,
		},
	}}
	svc := NewLeaveService(nil, nil, nil, repo, nil)

	_, err := svc.UpdateRequest(claimsContext(t, "emp-1"), leave.UpdateLeaveRequest{
		ID:     "req-1",
		Reason: strPtr("family matter"),
	})

	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}
