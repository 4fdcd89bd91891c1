package netaccess

import "errors"

var (
	ErrIPRangeNotFound   = errors.New("allowed IP range not found")
	ErrAccessDenied      = errors.New("access denied: client is outside the office network")
	ErrClientUnresolved  = errors.New("client IP address could not be resolved")
	ErrInvalidRangeValue = errors.New("ip_range must be a valid IP address or CIDR")
)
