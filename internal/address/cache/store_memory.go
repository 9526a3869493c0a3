package cache

import (
	"context"
	"sync"
	"time"

	"givebridge/internal/address/models"
	"givebridge/pkg/platform/sentinel"
)

type entry struct {
	address   models.PostalAddress
	expiresAt time.Time
}

type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]entry), now: time.Now}
}

func (s *InMemoryStore) Get(_ context.Context, postalCode string) (*models.PostalAddress, error) {
	s.mu.RLock()
	e, ok := s.entries[postalCode]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	address := e.address
	return &address, nil
}

func (s *InMemoryStore) Set(_ context.Context, address *models.PostalAddress, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for code, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, code)
		}
	}
	s.entries[address.PostalCode] = entry{address: *address, expiresAt: now.Add(ttl)}
	return nil
}
