package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/leave"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	r.id, r.employee_id, r.leave_type_id, r.start_date, r.end_date, r.duration,
	r.total_days, r.reason, r.status, r.applied_at, r.created_at, r.updated_at,
	u.full_name, e.employee_code, t.code, t.name
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var found leave.LeaveRequest
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.LeaveTypeID,
		&found.StartDate,
		&found.EndDate,
		&found.Duration,
		&found.TotalDays,
		&found.Reason,
		&found.Status,
		&found.AppliedAt,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
		&found.EmployeeCode,
		&found.LeaveTypeCode,
		&found.LeaveTypeName,
	)
	return found, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, newRequest leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date, duration,
			total_days, reason, status, applied_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, employee_id, leave_type_id, start_date, end_date, duration,
				  total_days, reason, status, applied_at, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		newRequest.EmployeeID,
		newRequest.LeaveTypeID,
		newRequest.StartDate,
		newRequest.EndDate,
		newRequest.Duration,
		newRequest.TotalDays,
		newRequest.Reason,
		newRequest.Status,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.LeaveTypeID,
		&created.StartDate,
		&created.EndDate,
		&created.Duration,
		&created.TotalDays,
		&created.Reason,
		&created.Status,
		&created.AppliedAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.id = $1
	`

	found, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return found, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("r.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("r.status = $%d", argIdx))
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("r.end_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("r.start_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereSQL := strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE ` + whereSQL

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE %s
		ORDER BY r.applied_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereSQL, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		found, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, found)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, totalCount, nil
}

// ListApprovedInPeriod implements leave.LeaveRequestRepository. A request
// matches when its date span overlaps the period.
func (r *leaveRequestRepositoryImpl) ListApprovedInPeriod(ctx context.Context, employeeID string, startDate, endDate string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN leave_types t ON t.id = r.leave_type_id
		WHERE r.employee_id = $1
		  AND r.status = 'APPROVED'
		  AND r.start_date <= $3
		  AND r.end_date >= $2
		ORDER BY r.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		found, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, updated leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_type_id = $1, start_date = $2, end_date = $3, duration = $4,
			total_days = $5, reason = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		updated.LeaveTypeID,
		updated.StartDate,
		updated.EndDate,
		updated.Duration,
		updated.TotalDays,
		updated.Reason,
		updated.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_requests SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// DeleteByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE employee_id = $1`, employeeID)
	return err
}
