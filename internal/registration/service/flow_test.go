package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	addressModels "givebridge/internal/address/models"
	addressService "givebridge/internal/address/service"
	"givebridge/internal/auth/provider/local"
	authService "givebridge/internal/auth/service"
	"givebridge/internal/auth/store/session"
	profileService "givebridge/internal/profile/service"
	profileStore "givebridge/internal/profile/store"
	dErrors "givebridge/pkg/domain-errors"
)

type seResolver struct{}

func (seResolver) Resolve(_ context.Context, postalCode string) (*addressModels.Resolution, error) {
	return &addressModels.Resolution{
		PostalCode: postalCode,
		Address:    addressModels.Address{Street: "Praça da Sé", City: "São Paulo", Region: "SP"},
	}, nil
}

// RegistrationFlowSuite wires the orchestrator to the local credential
// provider, in-memory profiles and a live address tracker.
type RegistrationFlowSuite struct {
	suite.Suite
	provider *local.Provider
	gateway  *authService.Gateway
	profiles *profileService.Service
	orch     *Orchestrator
	ctx      context.Context
}

func TestRegistrationFlowSuite(t *testing.T) {
	suite.Run(t, new(RegistrationFlowSuite))
}

func (s *RegistrationFlowSuite) SetupTest() {
	s.provider = local.New("flow-test-key", local.WithBcryptCost(bcrypt.MinCost), local.WithLogger(discard))
	s.gateway = authService.New(s.provider, session.New(), authService.WithLogger(discard))
	s.profiles = profileService.New(profileStore.NewInMemory(), profileService.WithLogger(discard))
	s.orch = New(s.gateway, s.profiles, WithLogger(discard))
	s.ctx = context.Background()
}

func (s *RegistrationFlowSuite) TestInstitutionAfterAddressResolves() {
	tracker := addressService.NewTracker(seResolver{}, addressService.WithDebounce(0))
	defer tracker.Close()

	_, err := s.orch.RegisterInstitution(s.ctx, institutionForm(), tracker)
	s.True(dErrors.HasCode(err, dErrors.CodeAddressIncomplete))

	tracker.Submit("01001-000")
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	_, err = tracker.Wait(ctx)
	s.Require().NoError(err)

	reg, err := s.orch.RegisterInstitution(s.ctx, institutionForm(), tracker)
	s.Require().NoError(err)
	s.Require().NotNil(reg.Session)

	resolved, err := s.gateway.ResolveSession(s.ctx, reg.Session.ID)
	s.Require().NoError(err)
	s.Equal(reg.Account.ID, resolved.Account.ID)

	profile, err := s.profiles.GetInstitutionProfile(s.ctx, reg.Account.ID)
	s.Require().NoError(err)
	s.Equal("Praça da Sé", profile.Address.Street)
	s.Nil(profile.Address.Latitude)

	_, err = s.orch.RegisterInstitution(s.ctx, institutionForm(), tracker)
	s.True(dErrors.HasCode(err, dErrors.CodeEmailInUse))
}

func (s *RegistrationFlowSuite) TestDonorStartsWithZeroPoints() {
	reg, err := s.orch.RegisterDonor(s.ctx, donorForm())
	s.Require().NoError(err)

	profile, err := s.profiles.GetDonorProfile(s.ctx, reg.Account.ID)
	s.Require().NoError(err)
	s.Zero(profile.Points)
}
