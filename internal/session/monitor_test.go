package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMonitor_Arm(t *testing.T) {
	monitor := NewMonitor()
	defer monitor.Disarm()

	var fired atomic.Int32
	monitor.Arm(50*time.Millisecond, func() {
		fired.Add(1)
	})
	if !monitor.Armed() {
		t.Fatalf("expected the monitor to report an armed timer")
	}

	time.Sleep(150 * time.Millisecond)
	if fired.Load() != 1 {
		t.Fatalf("expected the timer to fire exactly once, got %d", fired.Load())
	}
	if monitor.Armed() {
		t.Fatalf("expected a fired monitor to report no armed timer")
	}
}

func TestMonitor_Disarm(t *testing.T) {
	monitor := NewMonitor()

	var fired atomic.Int32
	monitor.Arm(50*time.Millisecond, func() {
		fired.Add(1)
	})
	monitor.Disarm()
	if monitor.Armed() {
		t.Fatalf("expected the monitor to report no armed timer after disarming")
	}

	time.Sleep(150 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatalf("expected a disarmed timer never to fire, got %d", fired.Load())
	}
}

func TestMonitor_ReArmReplacesTimer(t *testing.T) {
	monitor := NewMonitor()
	defer monitor.Disarm()

	var first, second atomic.Int32
	monitor.Arm(50*time.Millisecond, func() {
		first.Add(1)
	})
	monitor.Arm(120*time.Millisecond, func() {
		second.Add(1)
	})

	time.Sleep(250 * time.Millisecond)
	if first.Load() != 0 {
		t.Fatalf("expected the replaced timer never to fire, got %d", first.Load())
	}
	if second.Load() != 1 {
		t.Fatalf("expected the replacing timer to fire exactly once, got %d", second.Load())
	}
}
