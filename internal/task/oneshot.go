package task

import (
	"sync"
	"time"
)

// OneShot executes a task exactly once after a delay, unless it is cancelled first.
// Scheduling a new execution replaces and cancels any previously scheduled one, so at most one
// execution is ever pending. A task that was already replaced or cancelled when its delay elapses
// is discarded without running.
type OneShot struct {
	mtx   sync.Mutex
	timer *time.Timer
	epoch uint64
}

// NewOneShot creates a new one-shot task scheduler with nothing scheduled
func NewOneShot() *OneShot {
	return &OneShot{}
}

// Schedule schedules the given task to run once after the given delay.
// Any previously scheduled task is cancelled first.
func (task *OneShot) Schedule(delay time.Duration, fn func()) {
	task.mtx.Lock()
	defer task.mtx.Unlock()

	task.cancelPending()
	epoch := task.epoch
	task.timer = time.AfterFunc(delay, func() {
		task.mtx.Lock()
		live := task.epoch == epoch
		if live {
			task.timer = nil
		}
		task.mtx.Unlock()
		if live {
			fn()
		}
	})
}

// Cancel cancels the currently scheduled task.
// If no task is scheduled, this is a no-op.
func (task *OneShot) Cancel() {
	task.mtx.Lock()
	defer task.mtx.Unlock()
	task.cancelPending()
}

// Scheduled reports whether a task is currently scheduled
func (task *OneShot) Scheduled() bool {
	task.mtx.Lock()
	defer task.mtx.Unlock()
	return task.timer != nil
}

func (task *OneShot) cancelPending() {
	if task.timer != nil {
		task.timer.Stop()
		task.timer = nil
	}
	task.epoch++
}
