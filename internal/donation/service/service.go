package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,PointsIncrementer

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"givebridge/internal/donation/models"
	"givebridge/internal/platform/metrics"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/requestcontext"
)

const DefaultPointsPerDonation = 10

// Store persists donation requests. Save reports sentinel.ErrAlreadyUsed for
// a duplicate id and FindByID reports sentinel.ErrNotFound.
type Store interface {
	Save(ctx context.Context, donation *models.DonationRequest) error
	FindByID(ctx context.Context, donationID id.DonationID) (*models.DonationRequest, error)
	ListByDonor(ctx context.Context, donorID id.AccountID) ([]*models.DonationRequest, error)
	ListByInstitution(ctx context.Context, institutionID id.AccountID) ([]*models.DonationRequest, error)
}

// PointsIncrementer applies an atomic increment to a donor's points.
type PointsIncrementer interface {
	IncrementPoints(ctx context.Context, donorID id.AccountID, delta int) (int, error)
}

// Recorder turns a donation form into a persisted DonationRequest and rewards
// the donor. Persisting is the operation; the reward is best effort and its
// failure never changes the result of Submit.
type Recorder struct {
	store             Store
	points            PointsIncrementer
	pointsPerDonation int
	logger            *slog.Logger
	metrics           *metrics.Metrics
	tracer            trace.Tracer
}

type Option func(*Recorder)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

func WithPointsPerDonation(points int) Option {
	return func(r *Recorder) {
		if points > 0 {
			r.pointsPerDonation = points
		}
	}
}

func New(store Store, points PointsIncrementer, opts ...Option) *Recorder {
	r := &Recorder{
		store:             store,
		points:            points,
		pointsPerDonation: DefaultPointsPerDonation,
		logger:            slog.Default(),
		tracer:            otel.Tracer("givebridge/donation"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit validates form, persists the donation and then awards points. The
// increment starts only after Save has returned.
func (r *Recorder) Submit(ctx context.Context, form validation.DonationForm) (*models.DonationRequest, error) {
	ctx, span := r.tracer.Start(ctx, "donation.Submit")
	defer span.End()

	valid, err := validation.ValidateDonation(form)
	if err != nil {
		span.SetStatus(codes.Error, "invalid donation")
		return nil, err
	}

	donation := &models.DonationRequest{
		ID:            id.NewDonationID(),
		DonorID:       valid.DonorID,
		InstitutionID: valid.InstitutionID,
		ProjectID:     valid.ProjectID,
		ProjectTitle:  valid.ProjectTitle,
		DeliveryMode:  valid.DeliveryMode,
		Items:         valid.Items,
		Notes:         valid.Notes,
		Status:        models.StatusFor(valid.DeliveryMode),
		CreatedAt:     requestcontext.Now(ctx),
	}
	span.SetAttributes(
		attribute.String("donation.id", donation.ID.String()),
		attribute.String("donation.delivery_mode", string(donation.DeliveryMode)),
		attribute.Int("donation.items", len(donation.Items)),
	)

	if err := r.store.Save(ctx, donation); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
	}
	r.metrics.IncrementDonationsSubmitted(string(donation.DeliveryMode))
	r.logger.InfoContext(ctx, "donation recorded",
		"donation_id", donation.ID.String(),
		"donor_id", donation.DonorID.String(),
		"institution_id", donation.InstitutionID.String(),
		"status", string(donation.Status),
	)

	r.awardPoints(ctx, span, donation)
	return donation, nil
}

// awardPoints must not fail the submission: the donation is already durable.
func (r *Recorder) awardPoints(ctx context.Context, span trace.Span, donation *models.DonationRequest) {
	// The donation is stored; a caller hanging up now should not cost the donor points.
	ctx = context.WithoutCancel(ctx)
	total, err := r.points.IncrementPoints(ctx, donation.DonorID, r.pointsPerDonation)
	if err != nil {
		r.metrics.IncrementPointsIncrementFailures()
		span.AddEvent("points increment failed", trace.WithAttributes(attribute.String("error", err.Error())))
		r.logger.ErrorContext(ctx, "failed to award donation points",
			"donation_id", donation.ID.String(),
			"donor_id", donation.DonorID.String(),
			"points", r.pointsPerDonation,
			"error", err,
		)
		return
	}
	r.logger.DebugContext(ctx, "donation points awarded", "donor_id", donation.DonorID.String(), "total", total)
}

func (r *Recorder) Get(ctx context.Context, donationID id.DonationID) (*models.DonationRequest, error) {
	donation, err := r.store.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donation")
	}
	return donation, nil
}

// ListForDonor returns a donor's donations, newest first.
func (r *Recorder) ListForDonor(ctx context.Context, donorID id.AccountID) ([]*models.DonationRequest, error) {
	donations, err := r.store.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return donations, nil
}

// ListForInstitution returns the donations addressed to an institution, newest first.
func (r *Recorder) ListForInstitution(ctx context.Context, institutionID id.AccountID) ([]*models.DonationRequest, error) {
	donations, err := r.store.ListByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return donations, nil
}
