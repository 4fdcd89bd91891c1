package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/policy"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Create implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Create(ctx context.Context, newPolicy policy.CompanyPolicy) (policy.CompanyPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_policies (title, file_path)
		VALUES ($1, $2)
		RETURNING id, title, file_path, created_at, updated_at
	`

	var created policy.CompanyPolicy
	err := q.QueryRow(ctx, query, newPolicy.Title, newPolicy.FilePath).Scan(
		&created.ID,
		&created.Title,
		&created.FilePath,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return policy.CompanyPolicy{}, err
	}

	return created, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepositoryImpl) GetByID(ctx context.Context, id string) (policy.CompanyPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, file_path, created_at, updated_at
		FROM company_policies
		WHERE id = $1
	`

	var found policy.CompanyPolicy
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Title,
		&found.FilePath,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.CompanyPolicy{}, policy.ErrPolicyNotFound
		}
		return policy.CompanyPolicy{}, err
	}

	return found, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepositoryImpl) List(ctx context.Context) ([]policy.CompanyPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, file_path, created_at, updated_at
		FROM company_policies
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := []policy.CompanyPolicy{}
	for rows.Next() {
		var found policy.CompanyPolicy
		if err := rows.Scan(&found.ID, &found.Title, &found.FilePath, &found.CreatedAt, &found.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return policies, nil
}

// Delete implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM company_policies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrPolicyNotFound
	}

	return nil
}

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) policy.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, newHoliday policy.CompanyHoliday) (policy.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_holidays (start_date, end_date, reason)
		VALUES ($1, $2, $3)
		RETURNING id, start_date, end_date, reason, created_at, updated_at
	`

	var created policy.CompanyHoliday
	err := q.QueryRow(ctx, query, newHoliday.StartDate, newHoliday.EndDate, newHoliday.Reason).Scan(
		&created.ID,
		&created.StartDate,
		&created.EndDate,
		&created.Reason,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return policy.CompanyHoliday{}, err
	}

	return created, nil
}

// GetByID implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (policy.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, reason, created_at, updated_at
		FROM company_holidays
		WHERE id = $1
	`

	var found policy.CompanyHoliday
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.StartDate,
		&found.EndDate,
		&found.Reason,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.CompanyHoliday{}, policy.ErrHolidayNotFound
		}
		return policy.CompanyHoliday{}, err
	}

	return found, nil
}

// List implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context) ([]policy.CompanyHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_date, end_date, reason, created_at, updated_at
		FROM company_holidays
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []policy.CompanyHoliday{}
	for rows.Next() {
		var found policy.CompanyHoliday
		if err := rows.Scan(&found.ID, &found.StartDate, &found.EndDate, &found.Reason, &found.CreatedAt, &found.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

// Delete implements policy.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM company_holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return policy.ErrHolidayNotFound
	}

	return nil
}
