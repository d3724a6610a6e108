package task

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestOneShot_Schedule(t *testing.T) {
	oneShot := NewOneShot()
	defer oneShot.Cancel()

	var executions atomic.Int32
	oneShot.Schedule(50*time.Millisecond, func() {
		executions.Add(1)
	})
	if !oneShot.Scheduled() {
		t.Fatalf("expected a pending execution to be reported")
	}

	time.Sleep(150 * time.Millisecond)
	if executions.Load() != 1 {
		t.Fatalf("expected exactly one execution, got %d", executions.Load())
	}
	if oneShot.Scheduled() {
		t.Fatalf("expected no pending execution after the task ran")
	}
}

func TestOneShot_Cancel(t *testing.T) {
	oneShot := NewOneShot()

	var executions atomic.Int32
	oneShot.Schedule(50*time.Millisecond, func() {
		executions.Add(1)
	})
	oneShot.Cancel()

	time.Sleep(150 * time.Millisecond)
	if executions.Load() != 0 {
		t.Fatalf("expected a cancelled task never to run, got %d executions", executions.Load())
	}
	if oneShot.Scheduled() {
		t.Fatalf("expected no pending execution after cancelling")
	}

	// Cancelling with nothing scheduled stays a no-op
	oneShot.Cancel()
}

func TestOneShot_ScheduleReplacesPendingExecution(t *testing.T) {
	oneShot := NewOneShot()
	defer oneShot.Cancel()

	var first, second atomic.Int32
	oneShot.Schedule(50*time.Millisecond, func() {
		first.Add(1)
	})
	oneShot.Schedule(120*time.Millisecond, func() {
		second.Add(1)
	})

	time.Sleep(250 * time.Millisecond)
	if first.Load() != 0 {
		t.Fatalf("expected the replaced task never to run, got %d executions", first.Load())
	}
	if second.Load() != 1 {
		t.Fatalf("expected the replacing task to run exactly once, got %d executions", second.Load())
	}
}
