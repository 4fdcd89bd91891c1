package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/netaccess"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type ipRangeRepositoryImpl struct {
	db *database.DB
}

func NewIPRangeRepository(db *database.DB) netaccess.IPRangeRepository {
	return &ipRangeRepositoryImpl{db: db}
}

// Create implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) Create(ctx context.Context, newRange netaccess.AllowedIPRange) (netaccess.AllowedIPRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO allowed_ip_ranges (name, ip_range, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, ip_range, description, is_active, created_at, updated_at
	`

	var created netaccess.AllowedIPRange
	err := q.QueryRow(ctx, query,
		newRange.Name,
		newRange.IPRange,
		newRange.Description,
		newRange.IsActive,
	).Scan(
		&created.ID,
		&created.Name,
		&created.IPRange,
		&created.Description,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return netaccess.AllowedIPRange{}, err
	}

	return created, nil
}

// GetByID implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) GetByID(ctx context.Context, id string) (netaccess.AllowedIPRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, ip_range, description, is_active, created_at, updated_at
		FROM allowed_ip_ranges
		WHERE id = $1
	`

	var found netaccess.AllowedIPRange
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.IPRange,
		&found.Description,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return netaccess.AllowedIPRange{}, netaccess.ErrIPRangeNotFound
		}
		return netaccess.AllowedIPRange{}, err
	}

	return found, nil
}

func (r *ipRangeRepositoryImpl) listWhere(ctx context.Context, whereSQL string) ([]netaccess.AllowedIPRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, ip_range, description, is_active, created_at, updated_at
		FROM allowed_ip_ranges
		` + whereSQL + `
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranges := []netaccess.AllowedIPRange{}
	for rows.Next() {
		var found netaccess.AllowedIPRange
		if err := rows.Scan(
			&found.ID,
			&found.Name,
			&found.IPRange,
			&found.Description,
			&found.IsActive,
			&found.CreatedAt,
			&found.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ranges = append(ranges, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ranges, nil
}

// List implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) List(ctx context.Context) ([]netaccess.AllowedIPRange, error) {
	return r.listWhere(ctx, "")
}

// ListActive implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) ListActive(ctx context.Context) ([]netaccess.AllowedIPRange, error) {
	return r.listWhere(ctx, "WHERE is_active = TRUE")
}

// Update implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) Update(ctx context.Context, updated netaccess.AllowedIPRange) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE allowed_ip_ranges
		SET name = $1, ip_range = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		updated.Name,
		updated.IPRange,
		updated.Description,
		updated.IsActive,
		updated.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return netaccess.ErrIPRangeNotFound
	}

	return nil
}

// Delete implements netaccess.IPRangeRepository.
func (r *ipRangeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM allowed_ip_ranges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return netaccess.ErrIPRangeNotFound
	}

	return nil
}
