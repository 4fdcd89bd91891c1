package leave

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type DurationKind string

const (
	DurationFull DurationKind = "FULL"
	DurationHalf DurationKind = "HALF"
)

type LeaveType struct {
	ID        string
	Code      string
	Name      string
	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveBalance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	TotalDays   int
	UsedDays    float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	LeaveTypeCode *string
	LeaveTypeName *string
}

// Remaining returns the unconsumed allowance.
func (b LeaveBalance) Remaining() float64 {
	return float64(b.TotalDays) - b.UsedDays
}

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Duration    DurationKind
	TotalDays   float64
	Reason      string
	Status      Status
	AppliedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName  *string
	EmployeeCode  *string
	LeaveTypeCode *string
	LeaveTypeName *string
}

// TotalDaysFor derives the day count charged against the balance.
// Half-day requests always cost 0.5 regardless of the date span; full
// requests cost the inclusive span in days.
func TotalDaysFor(kind DurationKind, start, end time.Time) float64 {
	if kind == DurationHalf {
		return 0.5
	}
	days := end.Sub(start).Hours()/24 + 1
	if days < 1 {
		return 1
	}
	return days
}

// TransitionDelta returns the signed balance adjustment for a status
// change and whether that change is allowed. REJECTED is terminal; moving
// an approved request to rejected refunds what approval consumed.
func TransitionDelta(from, to Status, totalDays float64) (delta float64, ok bool) {
	if from == to {
		return 0, true
	}
	switch {
	case from == StatusPending && to == StatusApproved:
		return totalDays, true
	case from == StatusPending && to == StatusRejected:
		return 0, true
	case from == StatusApproved && to == StatusRejected:
		return -totalDays, true
	default:
		return 0, false
	}
}
