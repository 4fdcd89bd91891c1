package leave

import (
	"context"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, newType LeaveType) (LeaveType, error)
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

type LeaveBalanceRepository interface {
	Create(ctx context.Context, newBalance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (LeaveBalance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)

	// LockByEmployeeAndType acquires a row lock; callers must be inside a
	// transaction.
	LockByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (LeaveBalance, error)

	// AddUsedDays applies the signed delta with the 0 <= used <= total guard.
	AddUsedDays(ctx context.Context, balanceID string, delta float64) error

	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, newRequest LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	ListApprovedInPeriod(ctx context.Context, employeeID string, startDate, endDate string) ([]LeaveRequest, error)
	Update(ctx context.Context, updated LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
