package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOnce_ExecutesAllJobs(t *testing.T) {
	s := NewScheduler()
	var first, second atomic.Int32

	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})

	s.RunOnce(context.Background())

	if got := first.Load(); got != 1 {
		t.Errorf("first job ran %d times, want 1", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("second job ran %d times, want 1", got)
	}
}

func TestRunOnce_FailingJobDoesNotBlockOthers(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Bool

	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("after", time.Hour, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	s.RunOnce(context.Background())

	if !ran.Load() {
		t.Error("job after a failing one did not run")
	}
}

func TestStartStop_RunsJobImmediately(t *testing.T) {
	s := NewScheduler()
	done := make(chan struct{})

	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}
