package attendance

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return parsed
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestWorkingDuration_FullDayWithLunchBreak(t *testing.T) {
	checkIn := mustTime(t, "2025-03-10 09:00:00")
	checkOut := mustTime(t, "2025-03-10 18:00:00")

	att := Attendance{
		Date:     checkIn.Truncate(24 * time.Hour),
		CheckIn:  checkIn,
		CheckOut: timePtr(checkOut),
		Breaks: []Break{
			{
				BreakIn:  mustTime(t, "2025-03-10 12:00:00"),
				BreakOut: timePtr(mustTime(t, "2025-03-10 12:30:00")),
			},
		},
	}

	if got, want := att.SessionDuration(), 9*time.Hour; got != want {
		t.Errorf("SessionDuration() = %v, want %v", got, want)
	}
	if got, want := att.BreakTotal(), 30*time.Minute; got != want {
		t.Errorf("BreakTotal() = %v, want %v", got, want)
	}
	if got, want := att.WorkingDuration(), 8*time.Hour+30*time.Minute; got != want {
		t.Errorf("WorkingDuration() = %v, want %v", got, want)
	}
}

func TestWorkingDuration_OpenSessionIsZero(t *testing.T) {
	att := Attendance{
		CheckIn: mustTime(t, "2025-03-10 09:00:00"),
		Breaks: []Break{
			{
				BreakIn:  mustTime(t, "2025-03-10 12:00:00"),
				BreakOut: timePtr(mustTime(t, "2025-03-10 12:30:00")),
			},
		},
	}

	if got := att.SessionDuration(); got != 0 {
		t.Errorf("SessionDuration() = %v, want 0 for open session", got)
	}
	if got := att.WorkingDuration(); got != 0 {
		t.Errorf("WorkingDuration() = %v, want 0 for open session", got)
	}
}

func TestWorkingDuration_OpenBreakContributesNothing(t *testing.T) {
	att := Attendance{
		CheckIn:  mustTime(t, "2025-03-10 09:00:00"),
		CheckOut: timePtr(mustTime(t, "2025-03-10 17:00:00")),
		Breaks: []Break{
			{BreakIn: mustTime(t, "2025-03-10 12:00:00")}, // never closed
		},
	}

	if got := att.BreakTotal(); got != 0 {
		t.Errorf("BreakTotal() = %v, want 0 with only an open break", got)
	}
	if got, want := att.WorkingDuration(), 8*time.Hour; got != want {
		t.Errorf("WorkingDuration() = %v, want %v", got, want)
	}
}

func TestWorkingDuration_NeverNegative(t *testing.T) {
	// Breaks exceed the session span (bad admin edit); floor at zero.
	att := Attendance{
		CheckIn:  mustTime(t, "2025-03-10 09:00:00"),
		CheckOut: timePtr(mustTime(t, "2025-03-10 09:30:00")),
		Breaks: []Break{
			{
				BreakIn:  mustTime(t, "2025-03-10 09:00:00"),
				BreakOut: timePtr(mustTime(t, "2025-03-10 10:00:00")),
			},
		},
	}

	if got := att.WorkingDuration(); got != 0 {
		t.Errorf("WorkingDuration() = %v, want 0", got)
	}
}

func TestOpenBreak(t *testing.T) {
	closed := Break{
		ID:       "b1",
		BreakIn:  mustTime(t, "2025-03-10 10:00:00"),
		BreakOut: timePtr(mustTime(t, "2025-03-10 10:15:00")),
	}
	open := Break{
		ID:      "b2",
		BreakIn: mustTime(t, "2025-03-10 12:00:00"),
	}

	att := Attendance{Breaks: []Break{closed, open}}
	got := att.OpenBreak()
	if got == nil || got.ID != "b2" {
		t.Fatalf("OpenBreak() = %+v, want break b2", got)
	}

	att = Attendance{Breaks: []Break{closed}}
	if got := att.OpenBreak(); got != nil {
		t.Errorf("OpenBreak() = %+v, want nil", got)
	}
}

func TestEndOfDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	att := Attendance{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, loc)}

	got := att.EndOfDay()
	want := time.Date(2025, 3, 10, 23, 59, 59, 0, loc)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", got, want)
	}
}
