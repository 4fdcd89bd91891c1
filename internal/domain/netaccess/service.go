package netaccess

import (
	"context"
)

type NetAccessService interface {
	// Authorize checks the resolved client IP against the active ranges.
	// The error carries the active range names so callers can report
	// which networks are acceptable.
	Authorize(ctx context.Context, clientIP string) error

	// Admin CRUD for ranges
	Create(ctx context.Context, req CreateIPRangeRequest) (IPRangeResponse, error)
	List(ctx context.Context) ([]IPRangeResponse, error)
	Update(ctx context.Context, req UpdateIPRangeRequest) (IPRangeResponse, error)
	Delete(ctx context.Context, id string) error
}
