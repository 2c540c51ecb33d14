// Package memory holds in-process implementations of the simulator's collaborators.
package memory

import (
	"attackSimBackend/internal/core/domain"
	"context"
	"slices"
	"sync"
)

type TargetStore struct {
	mu       sync.RWMutex
	accounts []domain.TargetAccount
}

func NewTargetStore(accounts []domain.TargetAccount) *TargetStore {
	return &TargetStore{accounts: slices.Clone(accounts)}
}

func (s *TargetStore) ListActive(ctx context.Context) ([]domain.TargetAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active []domain.TargetAccount
	for _, a := range s.accounts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

// Replace swaps the account set. Runs already started keep their target.
func (s *TargetStore) Replace(accounts []domain.TargetAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = slices.Clone(accounts)
}

type WordlistStore struct {
	mu    sync.RWMutex
	words []string
}

func NewWordlistStore(words []string) *WordlistStore {
	return &WordlistStore{words: slices.Clone(words)}
}

func (s *WordlistStore) Current(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.words), nil
}

func (s *WordlistStore) Set(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = slices.Clone(words)
}

type DefenseStore struct {
	mu  sync.RWMutex
	cfg domain.DefenseConfig
}

func NewDefenseStore(cfg domain.DefenseConfig) *DefenseStore {
	return &DefenseStore{cfg: cfg}
}

func (s *DefenseStore) Snapshot(ctx context.Context) (domain.DefenseConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, nil
}

func (s *DefenseStore) Update(cfg domain.DefenseConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}
