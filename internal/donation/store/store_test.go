package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"givebridge/internal/donation/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func donation(donor, institution id.AccountID, at time.Time) *models.DonationRequest {
	return &models.DonationRequest{
		ID:            id.NewDonationID(),
		DonorID:       donor,
		InstitutionID: institution,
		ProjectID:     "inverno-2024",
		ProjectTitle:  "Campanha do Agasalho",
		DeliveryMode:  models.DeliveryPickup,
		Items:         []models.Item{{Category: "roupas", Quantity: 3}},
		Status:        models.StatusPending,
		CreatedAt:     at,
	}
}

func (s *InMemoryStoreSuite) TestSaveAndFind() {
	d := donation(id.NewAccountID(), id.NewAccountID(), time.Now())
	s.Require().NoError(s.store.Save(s.ctx, d))
	s.ErrorIs(s.store.Save(s.ctx, d), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(d, found)

	found.Items[0].Quantity = 99
	again, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(3, again.Items[0].Quantity)

	_, err = s.store.FindByID(s.ctx, id.NewDonationID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListings() {
	donor, other := id.NewAccountID(), id.NewAccountID()
	institution := id.NewAccountID()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	older := donation(donor, institution, base)
	newer := donation(donor, institution, base.Add(time.Hour))
	foreign := donation(other, id.NewAccountID(), base)
	for _, d := range []*models.DonationRequest{older, newer, foreign} {
		s.Require().NoError(s.store.Save(s.ctx, d))
	}

	byDonor, err := s.store.ListByDonor(s.ctx, donor)
	s.Require().NoError(err)
	s.Require().Len(byDonor, 2)
	s.Equal(newer.ID, byDonor[0].ID)
	s.Equal(older.ID, byDonor[1].ID)

	byInstitution, err := s.store.ListByInstitution(s.ctx, institution)
	s.Require().NoError(err)
	s.Len(byInstitution, 2)

	none, err := s.store.ListByDonor(s.ctx, id.NewAccountID())
	s.Require().NoError(err)
	s.Empty(none)
}
