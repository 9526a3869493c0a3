package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"log/slog"

	authModels "givebridge/internal/auth/models"
	"givebridge/internal/profile/models"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/requestcontext"
)

// Store persists donor and institution profiles. Creation reports
// sentinel.ErrAlreadyUsed when a profile exists; lookups and increments
// report sentinel.ErrNotFound.
type Store interface {
	CreateDonor(ctx context.Context, profile *models.DonorProfile) error
	FindDonor(ctx context.Context, accountID id.AccountID) (*models.DonorProfile, error)
	IncrementPoints(ctx context.Context, accountID id.AccountID, delta int) (int, error)
	CreateInstitution(ctx context.Context, profile *models.InstitutionProfile) error
	FindInstitution(ctx context.Context, accountID id.AccountID) (*models.InstitutionProfile, error)
}

// Service owns profile lifecycle. Profiles are created once per account and
// points move only through IncrementPoints.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateDonorProfile(ctx context.Context, accountID id.AccountID) (*models.DonorProfile, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "account ID required")
	}
	profile := models.NewDonorProfile(accountID, requestcontext.Now(ctx))
	if err := s.store.CreateDonor(ctx, profile); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeAlreadyExists, "donor profile already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create donor profile")
	}
	s.logger.InfoContext(ctx, "donor profile created", "account_id", accountID.String())
	return profile, nil
}

func (s *Service) CreateInstitutionProfile(ctx context.Context, accountID id.AccountID, data models.InstitutionData) (*models.InstitutionProfile, error) {
	if accountID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "account ID required")
	}
	if !data.Category.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown institution category")
	}
	profile := models.NewInstitutionProfile(accountID, data, requestcontext.Now(ctx))
	if err := s.store.CreateInstitution(ctx, profile); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeAlreadyExists, "institution profile already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create institution profile")
	}
	s.logger.InfoContext(ctx, "institution profile created",
		"account_id", accountID.String(),
		"category", data.Category.String(),
	)
	return profile, nil
}

func (s *Service) GetDonorProfile(ctx context.Context, accountID id.AccountID) (*models.DonorProfile, error) {
	profile, err := s.store.FindDonor(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donor profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor profile")
	}
	return profile, nil
}

func (s *Service) GetInstitutionProfile(ctx context.Context, accountID id.AccountID) (*models.InstitutionProfile, error) {
	profile, err := s.store.FindInstitution(ctx, accountID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "institution profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load institution profile")
	}
	return profile, nil
}

// GetProfile looks up the profile of the given role.
func (s *Service) GetProfile(ctx context.Context, accountID id.AccountID, role authModels.Role) (*models.Profile, error) {
	switch role {
	case authModels.RoleDonor:
		donor, err := s.GetDonorProfile(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return &models.Profile{Role: role, Donor: donor}, nil
	case authModels.RoleInstitution:
		institution, err := s.GetInstitutionProfile(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return &models.Profile{Role: role, Institution: institution}, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown account role")
	}
}

// IncrementPoints atomically adds delta to the donor's points and returns the new total.
func (s *Service) IncrementPoints(ctx context.Context, donorID id.AccountID, delta int) (int, error) {
	if delta <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "points delta must be positive")
	}
	points, err := s.store.IncrementPoints(ctx, donorID, delta)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "donor profile not found")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to increment points")
	}
	return points, nil
}
