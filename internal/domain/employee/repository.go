package employee

import (
	"context"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)
	ExistsByEmployeeCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, updated Employee) error
	Delete(ctx context.Context, id string) error
}
