package port

import (
	"attackSimBackend/internal/core/domain"
	"context"
	"time"
)

// TargetSource lists the accounts that may be attacked. Only active accounts are returned.
type TargetSource interface {
	ListActive(ctx context.Context) ([]domain.TargetAccount, error)
}

type WordlistStore interface {
	Current(ctx context.Context) ([]string, error)
}

// DefenseConfigStore is read once per run, at start.
type DefenseConfigStore interface {
	Snapshot(ctx context.Context) (domain.DefenseConfig, error)
}

// Scheduler supplies time to a run. Every simulated delay is a Sleep call and
// a cancellation point.
type Scheduler interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}
