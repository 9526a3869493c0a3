// Package service composes credentials, address resolution, validation and
// profiles into the user-visible registration operations. Account and profile
// live in different systems without a shared transaction, so a profile failure
// after the account exists is compensated by deleting the account, and a
// failed compensation is handed to reconciliation.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Accounts,Profiles

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	addressModels "givebridge/internal/address/models"
	authModels "givebridge/internal/auth/models"
	"givebridge/internal/platform/metrics"
	profileModels "givebridge/internal/profile/models"
	"givebridge/internal/reconciliation"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/requestcontext"
)

// Accounts is the credential side of registration.
type Accounts interface {
	Register(ctx context.Context, req authModels.RegisterRequest) (*authModels.Account, *authModels.Session, error)
	DeleteAccount(ctx context.Context, accountID id.AccountID) error
}

// Profiles creates the profile that belongs to a fresh account.
type Profiles interface {
	CreateInstitutionProfile(ctx context.Context, accountID id.AccountID, data profileModels.InstitutionData) (*profileModels.InstitutionProfile, error)
	CreateDonorProfile(ctx context.Context, accountID id.AccountID) (*profileModels.DonorProfile, error)
}

// ResolutionSource answers whether an address has already been resolved for
// a postal code. An address tracker satisfies it.
type ResolutionSource interface {
	ResolutionFor(postalCode string) (*addressModels.Resolution, bool)
}

const (
	outcomeSucceeded         = "succeeded"
	outcomeInvalid           = "invalid"
	outcomeAddressIncomplete = "address_incomplete"
	outcomeAccountFailed     = "account_failed"
	outcomeProfileFailed     = "profile_failed"

	compensationDeleted  = "account_deleted"
	compensationOrphaned = "account_orphaned"
)

type InstitutionRegistration struct {
	Account *authModels.Account               `json:"account"`
	Session *authModels.Session               `json:"-"`
	Profile *profileModels.InstitutionProfile `json:"profile"`
}

type DonorRegistration struct {
	Account *authModels.Account         `json:"account"`
	Session *authModels.Session         `json:"-"`
	Profile *profileModels.DonorProfile `json:"profile"`
}

type Orchestrator struct {
	accounts Accounts
	profiles Profiles
	sink     reconciliation.Sink
	policy   validation.Policy
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithPolicy(p validation.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = p
	}
}

// WithReconciliationSink sets where orphaned accounts are reported.
func WithReconciliationSink(sink reconciliation.Sink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

func New(accounts Accounts, profiles Profiles, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		accounts: accounts,
		profiles: profiles,
		policy:   validation.DefaultPolicy(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("givebridge/registration"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterInstitution validates the form, requires a resolved address for its
// postal code, creates the account and then the institution profile.
func (o *Orchestrator) RegisterInstitution(ctx context.Context, form validation.InstitutionForm, addresses ResolutionSource) (*InstitutionRegistration, error) {
	ctx, span := o.tracer.Start(ctx, "registration.RegisterInstitution")
	defer span.End()
	role := authModels.RoleInstitution

	valid, err := validation.ValidateInstitutionForm(form, o.policy)
	if err != nil {
		return nil, o.fail(span, role, outcomeInvalid, err)
	}

	var resolution *addressModels.Resolution
	ok := false
	if addresses != nil {
		resolution, ok = addresses.ResolutionFor(valid.PostalCode)
	}
	if !ok || !resolution.Address.IsComplete() {
		return nil, o.fail(span, role, outcomeAddressIncomplete,
			dErrors.New(dErrors.CodeAddressIncomplete, "resolve the postal code to a street address before registering"))
	}

	account, session, err := o.accounts.Register(ctx, authModels.RegisterRequest{
		Email:       valid.Email,
		Password:    valid.Password,
		DisplayName: valid.Name,
		Role:        role,
	})
	if err != nil {
		return nil, o.fail(span, role, outcomeAccountFailed, err)
	}
	span.SetAttributes(attribute.String("account.id", account.ID.String()))

	profile, err := o.profiles.CreateInstitutionProfile(ctx, account.ID, profileModels.InstitutionData{
		Name:           valid.Name,
		Category:       valid.Category,
		TaxID:          valid.TaxID,
		ResponsibleCPF: valid.ResponsibleCPF,
		Phone:          valid.Phone,
		Email:          valid.Email,
		PostalCode:     valid.PostalCode,
		AddressNumber:  valid.AddressNumber,
		Complement:     valid.Complement,
		Address:        resolution.Address,
	})
	if err != nil {
		o.compensate(ctx, span, account, err)
		return nil, o.fail(span, role, outcomeProfileFailed, err)
	}

	o.metrics.IncrementRegistration(role.String(), outcomeSucceeded)
	o.logger.InfoContext(ctx, "institution registered",
		"account_id", account.ID.String(),
		"category", profile.Category.String(),
		"geocoded", resolution.Geocoded,
	)
	return &InstitutionRegistration{Account: account, Session: session, Profile: profile}, nil
}

// RegisterDonor creates a donor account and its zero-point profile.
func (o *Orchestrator) RegisterDonor(ctx context.Context, form validation.DonorForm) (*DonorRegistration, error) {
	ctx, span := o.tracer.Start(ctx, "registration.RegisterDonor")
	defer span.End()
	role := authModels.RoleDonor

	valid, err := validation.ValidateDonorForm(form, o.policy)
	if err != nil {
		return nil, o.fail(span, role, outcomeInvalid, err)
	}

	account, session, err := o.accounts.Register(ctx, authModels.RegisterRequest{
		Email:       valid.Email,
		Password:    valid.Password,
		DisplayName: valid.DisplayName,
		Role:        role,
	})
	if err != nil {
		return nil, o.fail(span, role, outcomeAccountFailed, err)
	}
	span.SetAttributes(attribute.String("account.id", account.ID.String()))

	profile, err := o.profiles.CreateDonorProfile(ctx, account.ID)
	if err != nil {
		o.compensate(ctx, span, account, err)
		return nil, o.fail(span, role, outcomeProfileFailed, err)
	}

	o.metrics.IncrementRegistration(role.String(), outcomeSucceeded)
	o.logger.InfoContext(ctx, "donor registered", "account_id", account.ID.String())
	return &DonorRegistration{Account: account, Session: session, Profile: profile}, nil
}

func (o *Orchestrator) fail(span trace.Span, role authModels.Role, outcome string, err error) error {
	o.metrics.IncrementRegistration(role.String(), outcome)
	span.SetStatus(codes.Error, outcome)
	return err
}

// compensate deletes an account whose profile could not be created. If that
// also fails the account is reported for reconciliation. The caller always
// returns the profile error, never the compensation outcome.
func (o *Orchestrator) compensate(ctx context.Context, span trace.Span, account *authModels.Account, cause error) {
	ctx = context.WithoutCancel(ctx)

	deleteErr := o.accounts.DeleteAccount(ctx, account.ID)
	if deleteErr == nil {
		o.metrics.IncrementCompensation(compensationDeleted)
		span.AddEvent("account deleted after profile failure")
		o.logger.WarnContext(ctx, "registration rolled back",
			"account_id", account.ID.String(),
			"role", account.Role.String(),
			"cause", cause,
		)
		return
	}

	o.metrics.IncrementCompensation(compensationOrphaned)
	span.AddEvent("account orphaned", trace.WithAttributes(attribute.String("error", deleteErr.Error())))
	record := reconciliation.Record{
		ID:                uuid.NewString(),
		Kind:              reconciliation.KindOrphanedAccount,
		AccountID:         account.ID,
		Email:             account.Email,
		Role:              account.Role.String(),
		Reason:            cause.Error(),
		CompensationError: deleteErr.Error(),
		CreatedAt:         requestcontext.Now(ctx),
	}
	o.logger.ErrorContext(ctx, "account orphaned after failed registration",
		"account_id", record.AccountID.String(),
		"email", record.Email,
		"role", record.Role,
		"cause", record.Reason,
		"compensation_error", record.CompensationError,
	)
	if o.sink == nil {
		return
	}
	if err := o.sink.Emit(ctx, record); err != nil {
		o.logger.ErrorContext(ctx, "failed to emit reconciliation record",
			"record_id", record.ID,
			"account_id", record.AccountID.String(),
			"error", err,
		)
	}
}
