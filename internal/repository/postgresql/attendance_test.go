package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTx satisfies pgx.Tx through embedding and records every
// statement handed to it, so repository SQL can be checked without a
// database. GetQuerier picks it up from the context like a real tx.
type recordingTx struct {
	pgx.Tx

	executed []string
}

func (t *recordingTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.executed = append(t.executed, sql)
	return pgconn.CommandTag{}, nil
}

type noRowsRow struct{}

func (noRowsRow) Scan(dest ...any) error { return pgx.ErrNoRows }

// conflictTx answers every QueryRow with zero rows, the shape a
// DO NOTHING insert produces when it loses the conflict.
type conflictTx struct {
	pgx.Tx

	queries []string
}

func (t *conflictTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.queries = append(t.queries, sql)
	return noRowsRow{}
}

func TestAttendanceDeleteByEmployee_DeletesBreaksThenSessions(t *testing.T) {
	tx := &recordingTx{}
	ctx := context.WithValue(context.Background(), "tx", pgx.Tx(tx))
	repo := NewAttendanceRepository(nil)

	err := repo.DeleteByEmployee(ctx, "emp-1")

	require.NoError(t, err)
	require.Len(t, tx.executed, 2)
	assert.Contains(t, tx.executed[0], "DELETE FROM attendance_breaks")
	assert.Contains(t, tx.executed[0], "WHERE attendance_id IN (SELECT id FROM attendances WHERE employee_id = $1)")
	assert.Contains(t, tx.executed[1], "DELETE FROM attendances")
	assert.NotContains(t, tx.executed[0], "FROM breaks")
}

func TestAttendanceCreate_DuplicateDayReturnsAlreadyCheckedIn(t *testing.T) {
	tx := &conflictTx{}
	ctx := context.WithValue(context.Background(), "tx", pgx.Tx(tx))
	repo := NewAttendanceRepository(nil)

	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, time.August, 26, 0, 0, 0, 0, time.UTC),
		CheckIn:    time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], "ON CONFLICT (employee_id, date) DO NOTHING")
}
