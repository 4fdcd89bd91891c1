package leave

import "errors"

var (
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeCodeExists          = errors.New("leave type code already exists")
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveBalanceNotFound         = errors.New("leave balance not found")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidStatusTransition      = errors.New("invalid leave status transition")
)
