package session

import (
	"time"

	"github.com/dandigam/village-health-hub-sub001/internal/task"
)

// Monitor forces the end of an authenticated session exactly when its expiry instant elapses.
// It is purely timer-driven and holds at most one live timer: arming for a new session epoch
// cancels the previous timer, so a stale timer can never end a session it was not armed for.
type Monitor struct {
	timer *task.OneShot
}

// NewMonitor creates a new expiry monitor with no timer armed
func NewMonitor() *Monitor {
	return &Monitor{
		timer: task.NewOneShot(),
	}
}

// Arm schedules expire to run once after remaining, replacing any previously armed timer
func (monitor *Monitor) Arm(remaining time.Duration, expire func()) {
	monitor.timer.Schedule(remaining, expire)
}

// Disarm cancels the currently armed timer, if any
func (monitor *Monitor) Disarm() {
	monitor.timer.Cancel()
}

// Armed reports whether an expiry timer is currently live
func (monitor *Monitor) Armed() bool {
	return monitor.timer.Scheduled()
}
