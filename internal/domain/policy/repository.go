package policy

import (
	"context"
)

type PolicyRepository interface {
	Create(ctx context.Context, newPolicy CompanyPolicy) (CompanyPolicy, error)
	GetByID(ctx context.Context, id string) (CompanyPolicy, error)
	List(ctx context.Context) ([]CompanyPolicy, error)
	Delete(ctx context.Context, id string) error
}

type HolidayRepository interface {
	Create(ctx context.Context, newHoliday CompanyHoliday) (CompanyHoliday, error)
	GetByID(ctx context.Context, id string) (CompanyHoliday, error)
	List(ctx context.Context) ([]CompanyHoliday, error)
	Delete(ctx context.Context, id string) error
}
