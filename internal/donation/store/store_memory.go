package store

import (
	"context"
	"sort"
	"sync"

	"givebridge/internal/donation/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

// InMemoryStore keeps donation requests in insertion order. Listings return
// the newest first.
type InMemoryStore struct {
	mu        sync.RWMutex
	donations map[id.DonationID]*models.DonationRequest
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{donations: make(map[id.DonationID]*models.DonationRequest)}
}

func (s *InMemoryStore) Save(_ context.Context, donation *models.DonationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donations[donation.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.donations[donation.ID] = clone(donation)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, donationID id.DonationID) (*models.DonationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donation, ok := s.donations[donationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(donation), nil
}

func (s *InMemoryStore) ListByDonor(_ context.Context, donorID id.AccountID) ([]*models.DonationRequest, error) {
	return s.list(func(d *models.DonationRequest) bool { return d.DonorID == donorID }), nil
}

func (s *InMemoryStore) ListByInstitution(_ context.Context, institutionID id.AccountID) ([]*models.DonationRequest, error) {
	return s.list(func(d *models.DonationRequest) bool { return d.InstitutionID == institutionID }), nil
}

func (s *InMemoryStore) list(match func(*models.DonationRequest) bool) []*models.DonationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DonationRequest, 0)
	for _, d := range s.donations {
		if match(d) {
			out = append(out, clone(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clone(d *models.DonationRequest) *models.DonationRequest {
	c := *d
	c.Items = append([]models.Item(nil), d.Items...)
	return &c
}
