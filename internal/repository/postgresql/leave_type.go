package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// Create implements leave.LeaveTypeRepository. Insertion is idempotent on
// the type code so startup seeding can run unconditionally.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, newType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (code, name, is_paid)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = leave_types.name
		RETURNING id, code, name, is_paid, created_at, updated_at
	`

	var created leave.LeaveType
	err := q.QueryRow(ctx, query, newType.Code, newType.Name, newType.IsPaid).Scan(
		&created.ID,
		&created.Code,
		&created.Name,
		&created.IsPaid,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveType{}, err
	}

	return created, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, is_paid, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`

	var found leave.LeaveType
	err := q.QueryRow(ctx, query, code).Scan(
		&found.ID,
		&found.Code,
		&found.Name,
		&found.IsPaid,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}

	return found, nil
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, is_paid, created_at, updated_at
		FROM leave_types
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []leave.LeaveType{}
	for rows.Next() {
		var t leave.LeaveType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.IsPaid, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}
