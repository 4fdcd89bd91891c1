package fixtures

import (
	"context"
	"testing"

	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLeaveTypeRepo struct {
	leave.LeaveTypeRepository

	created []leave.LeaveType
}

func (s *stubLeaveTypeRepo) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	s.created = append(s.created, leaveType)
	return leaveType, nil
}

func TestGetDefaultLeaveTypes_Catalogue(t *testing.T) {
	types := GetDefaultLeaveTypes()
	require.Len(t, types, 5)

	names := map[string]string{}
	paid := map[string]bool{}
	for _, leaveType := range types {
		names[leaveType.Code] = leaveType.Name
		paid[leaveType.Code] = leaveType.IsPaid
	}

	assert.Equal(t, "Sick Leave", names["SL"])
	assert.Equal(t, "Casual Leave", names["CL"])
	assert.Equal(t, "Annual Leave", names["AL"])
	assert.Equal(t, "Personal Leave", names["PL"])
	assert.Equal(t, "Unpaid Leave", names["UL"])
	assert.True(t, paid["PL"])
	assert.False(t, paid["UL"])
}

func TestEnsureDefaultLeaveTypes_SeedsWholeCatalogue(t *testing.T) {
	repo := &stubLeaveTypeRepo{}

	err := EnsureDefaultLeaveTypes(context.Background(), repo)

	require.NoError(t, err)
	codes := make([]string, 0, len(repo.created))
	for _, leaveType := range repo.created {
		codes = append(codes, leaveType.Code)
	}
	assert.Equal(t, []string{"SL", "CL", "AL", "PL", "UL"}, codes)
}
