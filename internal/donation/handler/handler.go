package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	authModels "givebridge/internal/auth/models"
	"givebridge/internal/donation/models"
	"givebridge/internal/platform/middleware"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/httputil"
	"givebridge/pkg/requestcontext"
)

// Service is the donation recorder surface.
type Service interface {
	Submit(ctx context.Context, form validation.DonationForm) (*models.DonationRequest, error)
	Get(ctx context.Context, donationID id.DonationID) (*models.DonationRequest, error)
	ListForDonor(ctx context.Context, donorID id.AccountID) ([]*models.DonationRequest, error)
	ListForInstitution(ctx context.Context, institutionID id.AccountID) ([]*models.DonationRequest, error)
}

type Handler struct {
	logger   *slog.Logger
	donation Service
	sessions middleware.SessionResolver
}

func New(donation Service, sessions middleware.SessionResolver, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		donation: donation,
		sessions: sessions,
	}
}

// Register registers the donation routes with the chi router. Every route
// needs a session; only donors may submit.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.sessions, h.logger))
		r.With(middleware.RequireRole(authModels.RoleDonor)).Post("/donations", h.handleSubmit)
		r.Get("/donations/{donationID}", h.handleGet)
		r.Get("/me/donations", h.handleListMine)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.SessionFrom(ctx)
	form, ok := httputil.Decode[validation.DonationForm](w, r, h.logger)
	if !ok {
		return
	}
	// The donor is always the signed-in account, whatever the body says.
	form.DonorID = session.Account.ID.String()

	donation, err := h.donation.Submit(ctx, *form)
	if err != nil {
		code, _ := dErrors.CodeOf(err)
		h.logger.WarnContext(ctx, "donation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"donor_id", form.DonorID,
			"code", code,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, donation)
}

// handleGet only shows a donation to its donor or its institution; anyone
// else gets the same 404 as for an unknown id.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.SessionFrom(ctx)
	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	donation, err := h.donation.Get(ctx, donationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	account := session.Account.ID
	if donation.DonorID != account && donation.InstitutionID != account {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "donation not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, donation)
}

type listResponse struct {
	Donations []*models.DonationRequest `json:"donations"`
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, _ := middleware.SessionFrom(ctx)

	var (
		donations []*models.DonationRequest
		err       error
	)
	switch session.Account.Role {
	case authModels.RoleInstitution:
		donations, err = h.donation.ListForInstitution(ctx, session.Account.ID)
	default:
		donations, err = h.donation.ListForDonor(ctx, session.Account.ID)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if donations == nil {
		donations = []*models.DonationRequest{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Donations: donations})
}
