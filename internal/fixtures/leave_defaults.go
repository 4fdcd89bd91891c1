package fixtures

import (
	"context"
	"fmt"

	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
)

// GetDefaultLeaveTypes returns the standard leave catalogue. New employee
// balances are seeded against these codes.
func GetDefaultLeaveTypes() []leave.LeaveType {
	return []leave.LeaveType{
		{Code: "SL", Name: "Sick Leave", IsPaid: true},
		{Code: "CL", Name: "Casual Leave", IsPaid: true},
		{Code: "AL", Name: "Annual Leave", IsPaid: true},
		{Code: "PL", Name: "Personal Leave", IsPaid: true},
		{Code: "UL", Name: "Unpaid Leave", IsPaid: false},
	}
}

// EnsureDefaultLeaveTypes seeds the leave catalogue at startup. Create is
// idempotent on code, so rerunning is safe.
func EnsureDefaultLeaveTypes(ctx context.Context, repo leave.LeaveTypeRepository) error {
	for _, leaveType := range GetDefaultLeaveTypes() {
		if _, err := repo.Create(ctx, leaveType); err != nil {
			return fmt.Errorf("failed to seed leave type %s: %w", leaveType.Code, err)
		}
	}
	return nil
}
