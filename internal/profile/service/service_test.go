package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	addressModels "givebridge/internal/address/models"
	authModels "givebridge/internal/auth/models"
	"givebridge/internal/profile/models"
	"givebridge/internal/profile/service/mocks"
	"givebridge/internal/profile/store"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/requestcontext"
)

type ProfileServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	service   *Service
	ctx       context.Context
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.service = New(s.mockStore, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.ctx = context.Background()
}

func (s *ProfileServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func institutionData() models.InstitutionData {
	return models.InstitutionData{
		Name:       "Casa Esperança",
		Category:   models.CategoryHealth,
		TaxID:      "12345678000190",
		PostalCode: "01001000",
		Address:    addressModels.Address{Street: "Praça da Sé", City: "São Paulo", Region: "SP"},
	}
}

func (s *ProfileServiceSuite) TestErrorTranslation() {
	accountID := id.NewAccountID()

	s.Run("duplicate donor profile", func() {
		s.mockStore.EXPECT().CreateDonor(s.ctx, gomock.Any()).Return(sentinel.ErrAlreadyUsed)
		_, err := s.service.CreateDonorProfile(s.ctx, accountID)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
	})

	s.Run("duplicate institution profile", func() {
		s.mockStore.EXPECT().CreateInstitution(s.ctx, gomock.Any()).Return(sentinel.ErrAlreadyUsed)
		_, err := s.service.CreateInstitutionProfile(s.ctx, accountID, institutionData())
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))
	})

	s.Run("store failure is internal", func() {
		s.mockStore.EXPECT().CreateInstitution(s.ctx, gomock.Any()).Return(errors.New("db down"))
		_, err := s.service.CreateInstitutionProfile(s.ctx, accountID, institutionData())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("missing donor on increment", func() {
		s.mockStore.EXPECT().IncrementPoints(s.ctx, accountID, 10).Return(0, sentinel.ErrNotFound)
		_, err := s.service.IncrementPoints(s.ctx, accountID, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("non-positive delta never reaches the store", func() {
		_, err := s.service.IncrementPoints(s.ctx, accountID, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		_, err = s.service.IncrementPoints(s.ctx, accountID, -5)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown role", func() {
		_, err := s.service.GetProfile(s.ctx, accountID, authModels.Role("admin"))
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("nil account", func() {
		_, err := s.service.CreateDonorProfile(s.ctx, id.AccountID{})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("invalid category", func() {
		data := institutionData()
		data.Category = "mineracao"
		_, err := s.service.CreateInstitutionProfile(s.ctx, accountID, data)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

// ProfileLifecycleSuite runs the service against the in-memory store.
type ProfileLifecycleSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
	now     time.Time
}

func TestProfileLifecycleSuite(t *testing.T) {
	suite.Run(t, new(ProfileLifecycleSuite))
}

func (s *ProfileLifecycleSuite) SetupTest() {
	s.service = New(store.NewInMemory(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ProfileLifecycleSuite) TestDonorCreationIsGuarded() {
	donorID := id.NewAccountID()
	created, err := s.service.CreateDonorProfile(s.ctx, donorID)
	s.Require().NoError(err)
	s.Equal(0, created.Points)
	s.Equal(s.now, created.CreatedAt)

	_, err = s.service.IncrementPoints(s.ctx, donorID, 10)
	s.Require().NoError(err)

	_, err = s.service.CreateDonorProfile(s.ctx, donorID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))

	profile, err := s.service.GetDonorProfile(s.ctx, donorID)
	s.Require().NoError(err)
	s.Equal(10, profile.Points, "second creation must not reset points")
}

func (s *ProfileLifecycleSuite) TestConcurrentIncrementsAllApply() {
	donorID := id.NewAccountID()
	_, err := s.service.CreateDonorProfile(s.ctx, donorID)
	s.Require().NoError(err)

	var g errgroup.Group
	for range 2 {
		g.Go(func() error {
			_, err := s.service.IncrementPoints(s.ctx, donorID, 10)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	profile, err := s.service.GetDonorProfile(s.ctx, donorID)
	s.Require().NoError(err)
	s.Equal(20, profile.Points)
}

func (s *ProfileLifecycleSuite) TestInstitutionProfile() {
	accountID := id.NewAccountID()
	created, err := s.service.CreateInstitutionProfile(s.ctx, accountID, institutionData())
	s.Require().NoError(err)
	s.True(created.Active)
	s.Equal(models.Stats{}, created.Stats)
	s.Equal(s.now, created.RegisteredAt)

	profile, err := s.service.GetProfile(s.ctx, accountID, authModels.RoleInstitution)
	s.Require().NoError(err)
	s.Nil(profile.Donor)
	s.Require().NotNil(profile.Institution)
	s.Equal("Praça da Sé", profile.Institution.Address.Street)

	_, err = s.service.GetProfile(s.ctx, accountID, authModels.RoleDonor)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
