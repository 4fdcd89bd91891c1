package leave

import (
	"context"
)

type LeaveService interface {
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	MyBalances(ctx context.Context) ([]LeaveBalanceResponse, error)
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	MyRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	UpdateRequest(ctx context.Context, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	DeleteMyRequest(ctx context.Context, id string) error

	// Admin operations
	ListRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	SetStatus(ctx context.Context, req SetStatusRequest) (LeaveRequestResponse, error)
	DeleteRequest(ctx context.Context, id string) error
}
