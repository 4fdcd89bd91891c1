package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `
	b.id, b.employee_id, b.leave_type_id, b.total_days, b.used_days,
	b.created_at, b.updated_at, t.code, t.name
`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var found leave.LeaveBalance
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.LeaveTypeID,
		&found.TotalDays,
		&found.UsedDays,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.LeaveTypeCode,
		&found.LeaveTypeName,
	)
	return found, err
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, newBalance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, total_days, used_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, leave_type_id, total_days, used_days, created_at, updated_at
	`

	var created leave.LeaveBalance
	err := q.QueryRow(ctx, query,
		newBalance.EmployeeID,
		newBalance.LeaveTypeID,
		newBalance.TotalDays,
		newBalance.UsedDays,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.LeaveTypeID,
		&created.TotalDays,
		&created.UsedDays,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return created, nil
}

// GetByEmployeeAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2
	`

	found, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return found, nil
}

// ListByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveBalanceColumns + `
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1
		ORDER BY t.code
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := []leave.LeaveBalance{}
	for rows.Next() {
		found, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return balances, nil
}

// LockByEmployeeAndType implements leave.LeaveBalanceRepository. The row
// lock is only meaningful inside a transaction; callers run under
// WithTransaction.
func (r *leaveBalanceRepositoryImpl) LockByEmployeeAndType(ctx context.Context, employeeID, leaveTypeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, total_days, used_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
		FOR UPDATE
	`

	var found leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&found.ID,
		&found.EmployeeID,
		&found.LeaveTypeID,
		&found.TotalDays,
		&found.UsedDays,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrLeaveBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return found, nil
}

// AddUsedDays implements leave.LeaveBalanceRepository. The guard keeps
// used_days inside [0, total_days]; a zero row count means the delta
// would have broken that bound.
func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, balanceID string, delta float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
		  AND used_days + $1 >= 0
		  AND used_days + $1 <= total_days
	`

	tag, err := q.Exec(ctx, query, delta, balanceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// DeleteByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM leave_balances WHERE employee_id = $1`, employeeID)
	return err
}
