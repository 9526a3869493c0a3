//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	addressModels "givebridge/internal/address/models"
	"givebridge/internal/profile/models"
	"givebridge/internal/profile/store"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "donor_profiles", "institution_profiles"))
}

func (s *PostgresStoreSuite) TestDonorCreateGuard() {
	ctx := context.Background()
	donor := models.NewDonorProfile(id.NewAccountID(), time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.CreateDonor(ctx, donor))

	_, err := s.store.IncrementPoints(ctx, donor.AccountID, 10)
	s.Require().NoError(err)

	s.ErrorIs(s.store.CreateDonor(ctx, models.NewDonorProfile(donor.AccountID, time.Now())), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindDonor(ctx, donor.AccountID)
	s.Require().NoError(err)
	s.Equal(10, found.Points)
	s.True(donor.CreatedAt.Equal(found.CreatedAt))
}

func (s *PostgresStoreSuite) TestConcurrentIncrements() {
	ctx := context.Background()
	donor := models.NewDonorProfile(id.NewAccountID(), time.Now())
	s.Require().NoError(s.store.CreateDonor(ctx, donor))

	const workers = 20
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			_, err := s.store.IncrementPoints(ctx, donor.AccountID, 10)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	found, err := s.store.FindDonor(ctx, donor.AccountID)
	s.Require().NoError(err)
	s.Equal(workers*10, found.Points)
}

func (s *PostgresStoreSuite) TestIncrementMissingDonor() {
	_, err := s.store.IncrementPoints(context.Background(), id.NewAccountID(), 10)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestInstitutionRoundTrip() {
	ctx := context.Background()
	address := addressModels.Address{Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", Region: "SP"}
	address.SetCoordinates(addressModels.Coordinates{Latitude: -23.55, Longitude: -46.63})
	profile := models.NewInstitutionProfile(id.NewAccountID(), models.InstitutionData{
		Name:       "Casa Esperança",
		Category:   models.CategoryHealth,
		TaxID:      "12345678000190",
		PostalCode: "01001000",
		Address:    address,
	}, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().NoError(s.store.CreateInstitution(ctx, profile))
	s.ErrorIs(s.store.CreateInstitution(ctx, profile), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindInstitution(ctx, profile.AccountID)
	s.Require().NoError(err)
	s.Equal(profile.Address, found.Address)
	s.Equal(models.CategoryHealth, found.Category)
	s.True(found.Active)

	_, err = s.store.FindInstitution(ctx, id.NewAccountID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
