package otp

import (
	"context"
	"sync"
)

// MemoryStore keeps pending records in a process-local map. One record per
// phone; the caller decides expiry.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]Pending
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pending: make(map[string]Pending)}
}

func (s *MemoryStore) Save(ctx context.Context, p Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.Phone] = p
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, phone string) (Pending, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[phone]
	return p, ok, nil
}

func (s *MemoryStore) IncrementAttempts(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[phone]; ok {
		p.Attempts++
		s.pending[phone] = p
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, phone)
	return nil
}
