package service

import (
	"attackSimBackend/internal/core/domain"
	"context"
)

type SimulationServiceInterface interface {
	StartRun(ctx context.Context, targetID string, strategyID domain.Strategy) (*RunHandle, error)
	Cancel(runID string) error
	Subscribe(runID string, onLog func(domain.LogEvent), onResult func(domain.RunResult)) (<-chan struct{}, error)
	ActiveRun() (*RunHandle, bool)
}

var _ SimulationServiceInterface = (*SimulationService)(nil)
