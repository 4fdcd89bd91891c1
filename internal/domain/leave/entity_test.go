package leave

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", value, err)
	}
	return parsed
}

func TestTotalDaysFor(t *testing.T) {
	cases := []struct {
		name  string
		kind  DurationKind
		start string
		end   string
		want  float64
	}{
		{"half day single date", DurationHalf, "2025-03-10", "2025-03-10", 0.5},
		{"half day ignores span", DurationHalf, "2025-03-10", "2025-03-14", 0.5},
		{"full single day", DurationFull, "2025-03-10", "2025-03-10", 1},
		{"full inclusive span", DurationFull, "2025-03-10", "2025-03-14", 5},
		{"full across month boundary", DurationFull, "2025-03-31", "2025-04-01", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TotalDaysFor(c.kind, date(t, c.start), date(t, c.end))
			if got != c.want {
				t.Errorf("TotalDaysFor(%s, %s, %s) = %v, want %v", c.kind, c.start, c.end, got, c.want)
			}
		})
	}
}

func TestTransitionDelta(t *testing.T) {
	const days = 3.0

	cases := []struct {
		name      string
		from      Status
		to        Status
		wantDelta float64
		wantOK    bool
	}{
		{"approve pending consumes balance", StatusPending, StatusApproved, days, true},
		{"reject pending is free", StatusPending, StatusRejected, 0, true},
		{"reject approved refunds balance", StatusApproved, StatusRejected, -days, true},
		{"rejected is terminal (approve)", StatusRejected, StatusApproved, 0, false},
		{"approved cannot go back to pending", StatusApproved, StatusPending, 0, false},
		{"rejected cannot go back to pending", StatusRejected, StatusPending, 0, false},
		{"same state is a no-op", StatusApproved, StatusApproved, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			delta, ok := TransitionDelta(c.from, c.to, days)
			if delta != c.wantDelta || ok != c.wantOK {
				t.Errorf("TransitionDelta(%s, %s) = (%v, %v), want (%v, %v)",
					c.from, c.to, delta, ok, c.wantDelta, c.wantOK)
			}
		})
	}
}

func TestLeaveBalance_Remaining(t *testing.T) {
	b := LeaveBalance{TotalDays: 12, UsedDays: 4.5}
	if got := b.Remaining(); got != 7.5 {
		t.Errorf("Remaining() = %v, want 7.5", got)
	}
}
