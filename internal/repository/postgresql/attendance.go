package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.created_at, a.updated_at,
	u.full_name, e.employee_code
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var found attendance.Attendance
	err := row.Scan(
		&found.ID,
		&found.EmployeeID,
		&found.Date,
		&found.CheckIn,
		&found.CheckOut,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeName,
		&found.EmployeeCode,
	)
	return found, err
}

// loadBreaks attaches break rows to each attendance record in a single query.
func (r *attendanceRepositoryImpl) loadBreaks(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		ids = append(ids, rec.ID)
		index[rec.ID] = i
	}

	query := `
		SELECT id, attendance_id, break_in, break_out, created_at, updated_at
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY break_in
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var b attendance.Break
		if err := rows.Scan(&b.ID, &b.AttendanceID, &b.BreakIn, &b.BreakOut, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return err
		}
		if i, ok := index[b.AttendanceID]; ok {
			records[i].Breaks = append(records[i].Breaks, b)
		}
	}
	return rows.Err()
}

// Create implements attendance.AttendanceRepository. The insert defers to
// the unique index on (employee_id, date): losing a concurrent insert for
// the same day returns ErrAlreadyCheckedIn instead of a constraint error.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, employee_id, date, check_in, check_out, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.Date,
		&created.CheckIn,
		&created.CheckOut,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE a.id = $1
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}

	records := []attendance.Attendance{found}
	if err := r.loadBreaks(ctx, records); err != nil {
		return attendance.Attendance{}, err
	}

	return records[0], nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	records := []attendance.Attendance{found}
	if err := r.loadBreaks(ctx, records); err != nil {
		return nil, err
	}

	return &records[0], nil
}

// ListStaleOpen implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListStaleOpen(ctx context.Context, employeeID string, before time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE a.employee_id = $1 AND a.check_out IS NULL AND a.date < $2
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		found, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, found)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadBreaks(ctx, records); err != nil {
		return nil, err
	}

	return records, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, updated_at = NOW()
		WHERE id = $2 AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOut, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, att.CheckIn, att.CheckOut, att.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func buildAttendanceFilter(filter attendance.AttendanceFilter, whereClauses []string, args []interface{}, argIdx int) ([]string, []interface{}, int) {
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(u.full_name ILIKE $%d OR e.employee_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date = $%d", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.OpenOnly {
		whereClauses = append(whereClauses, "a.check_out IS NULL")
	}

	return whereClauses, args, argIdx
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, filter attendance.AttendanceFilter, whereClauses []string, args []interface{}, argIdx int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses, args, argIdx = buildAttendanceFilter(filter, whereClauses, args, argIdx)
	whereSQL := strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE ` + whereSQL

	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	sortColumn := map[string]string{
		"date":           "a.date",
		"employee_name":  "u.full_name",
		"check_in_time":  "a.check_in",
		"check_out_time": "a.check_out",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "a.date"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		JOIN users u ON u.id = e.user_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereSQL, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		found, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, found)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadBreaks(ctx, records); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, []string{"1=1"}, []interface{}{}, 1)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return r.list(ctx, filter, []string{"a.employee_id = $1"}, []interface{}{employeeID}, 2)
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM attendance_breaks
		WHERE attendance_id IN (SELECT id FROM attendances WHERE employee_id = $1)`, employeeID)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID)
	return err
}

type breakRepositoryImpl struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepositoryImpl{db: db}
}

// Create implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Create(ctx context.Context, newBreak attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_breaks (attendance_id, break_in, break_out)
		VALUES ($1, $2, $3)
		RETURNING id, attendance_id, break_in, break_out, created_at, updated_at
	`

	var created attendance.Break
	err := q.QueryRow(ctx, query,
		newBreak.AttendanceID,
		newBreak.BreakIn,
		newBreak.BreakOut,
	).Scan(
		&created.ID,
		&created.AttendanceID,
		&created.BreakIn,
		&created.BreakOut,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return attendance.Break{}, err
	}

	return created, nil
}

// GetByID implements attendance.BreakRepository.
func (r *breakRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, break_in, break_out, created_at, updated_at
		FROM attendance_breaks
		WHERE id = $1
	`

	var found attendance.Break
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.AttendanceID,
		&found.BreakIn,
		&found.BreakOut,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrBreakNotFound
		}
		return attendance.Break{}, err
	}

	return found, nil
}

// GetOpenByAttendance implements attendance.BreakRepository.
func (r *breakRepositoryImpl) GetOpenByAttendance(ctx context.Context, attendanceID string) (*attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, break_in, break_out, created_at, updated_at
		FROM attendance_breaks
		WHERE attendance_id = $1 AND break_out IS NULL
		ORDER BY break_in DESC
		LIMIT 1
	`

	var found attendance.Break
	err := q.QueryRow(ctx, query, attendanceID).Scan(
		&found.ID,
		&found.AttendanceID,
		&found.BreakIn,
		&found.BreakOut,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &found, nil
}

// ListByAttendance implements attendance.BreakRepository.
func (r *breakRepositoryImpl) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, break_in, break_out, created_at, updated_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY break_in
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breaks := []attendance.Break{}
	for rows.Next() {
		var b attendance.Break
		if err := rows.Scan(&b.ID, &b.AttendanceID, &b.BreakIn, &b.BreakOut, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		breaks = append(breaks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breaks, nil
}

// SetBreakOut implements attendance.BreakRepository.
func (r *breakRepositoryImpl) SetBreakOut(ctx context.Context, id string, breakOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_breaks
		SET break_out = $1, updated_at = NOW()
		WHERE id = $2 AND break_out IS NULL
	`

	tag, err := q.Exec(ctx, query, breakOut, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

// Update implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Update(ctx context.Context, b attendance.Break) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_breaks
		SET break_in = $1, break_out = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, b.BreakIn, b.BreakOut, b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}

	return nil
}

// Delete implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_breaks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}

	return nil
}

// CloseOpenByAttendance implements attendance.BreakRepository.
func (r *breakRepositoryImpl) CloseOpenByAttendance(ctx context.Context, attendanceID string, breakOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_breaks
		SET break_out = $1, updated_at = NOW()
		WHERE attendance_id = $2 AND break_out IS NULL
	`

	_, err := q.Exec(ctx, query, breakOut, attendanceID)
	return err
}
