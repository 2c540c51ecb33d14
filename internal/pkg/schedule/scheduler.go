// Package schedule provides the clocks a simulation run sleeps on.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Real sleeps on the wall clock.
type Real struct{}

func NewReal() *Real {
	return &Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Virtual advances a private clock instead of waiting. Runs on it complete with
// zero real delay but keep their suspension points and elapsed-time accounting.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
	calls int
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	if d > 0 {
		v.now = v.now.Add(d)
		v.slept += d
	}
	return nil
}

// Slept reports the total simulated time and the number of Sleep calls.
func (v *Virtual) Slept() (time.Duration, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.slept, v.calls
}
