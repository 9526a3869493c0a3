package store

import (
	"context"
	"sync"

	"givebridge/internal/profile/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

// InMemoryStore keeps donor and institution profiles in separate maps.
// Point increments are applied under the write lock, never read-then-write
// by the caller.
type InMemoryStore struct {
	mu           sync.RWMutex
	donors       map[id.AccountID]*models.DonorProfile
	institutions map[id.AccountID]*models.InstitutionProfile
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		donors:       make(map[id.AccountID]*models.DonorProfile),
		institutions: make(map[id.AccountID]*models.InstitutionProfile),
	}
}

func (s *InMemoryStore) CreateDonor(_ context.Context, profile *models.DonorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donors[profile.AccountID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *profile
	s.donors[profile.AccountID] = &stored
	return nil
}

func (s *InMemoryStore) FindDonor(_ context.Context, accountID id.AccountID) (*models.DonorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.donors[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *profile
	return &found, nil
}

func (s *InMemoryStore) IncrementPoints(_ context.Context, accountID id.AccountID, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.donors[accountID]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	profile.Points += delta
	return profile.Points, nil
}

func (s *InMemoryStore) CreateInstitution(_ context.Context, profile *models.InstitutionProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.institutions[profile.AccountID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *profile
	s.institutions[profile.AccountID] = &stored
	return nil
}

func (s *InMemoryStore) FindInstitution(_ context.Context, accountID id.AccountID) (*models.InstitutionProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.institutions[accountID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *profile
	return &found, nil
}
