package policy

import "errors"

var (
	ErrPolicyNotFound  = errors.New("company policy not found")
	ErrHolidayNotFound = errors.New("company holiday not found")
)
