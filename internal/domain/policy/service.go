package policy

import (
	"context"
)

type PolicyService interface {
	Upload(ctx context.Context, req UploadPolicyRequest) (PolicyResponse, error)
	List(ctx context.Context) ([]PolicyResponse, error)
	Delete(ctx context.Context, id string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
