package netaccess

import (
	"context"
)

type IPRangeRepository interface {
	Create(ctx context.Context, newRange AllowedIPRange) (AllowedIPRange, error)
	GetByID(ctx context.Context, id string) (AllowedIPRange, error)
	List(ctx context.Context) ([]AllowedIPRange, error)
	ListActive(ctx context.Context) ([]AllowedIPRange, error)
	Update(ctx context.Context, updated AllowedIPRange) error
	Delete(ctx context.Context, id string) error
}
