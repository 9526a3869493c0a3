package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	addressModels "givebridge/internal/address/models"
	addressService "givebridge/internal/address/service"
	authModels "givebridge/internal/auth/models"
	profileModels "givebridge/internal/profile/models"
	"givebridge/internal/registration/service"
	"givebridge/internal/validation"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/httputil"
	"givebridge/pkg/requestcontext"
)

const maxAddressWait = 10 * time.Second

// Orchestrator runs the multi-step registration flows.
type Orchestrator interface {
	RegisterInstitution(ctx context.Context, form validation.InstitutionForm, addresses service.ResolutionSource) (*service.InstitutionRegistration, error)
	RegisterDonor(ctx context.Context, form validation.DonorForm) (*service.DonorRegistration, error)
}

// Handler serves donor sign-up and the institution registration drafts. A
// draft holds the address lookups for one open registration form.
type Handler struct {
	logger       *slog.Logger
	orchestrator Orchestrator
	drafts       *addressService.Drafts
}

func New(orchestrator Orchestrator, drafts *addressService.Drafts, logger *slog.Logger) *Handler {
	return &Handler{
		logger:       logger,
		orchestrator: orchestrator,
		drafts:       drafts,
	}
}

// Register registers the registration routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegisterDonor)
	r.Route("/registrations", func(r chi.Router) {
		r.Post("/drafts", h.handleCreateDraft)
		r.Put("/drafts/{draftID}/postal-code", h.handleSubmitPostalCode)
		r.Get("/drafts/{draftID}/address", h.handleGetAddress)
		r.Post("/institutions", h.handleRegisterInstitution)
	})
}

type donorRegistrationResponse struct {
	Account *authModels.Account         `json:"account"`
	Profile *profileModels.DonorProfile `json:"profile"`
	Session *authModels.PublicSession   `json:"session,omitempty"`
}

func (h *Handler) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, ok := httputil.Decode[validation.DonorForm](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.orchestrator.RegisterDonor(ctx, *form)
	if err != nil {
		h.logFailure(ctx, "donor registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, donorRegistrationResponse{
		Account: result.Account,
		Profile: result.Profile,
		Session: result.Session.Public(),
	})
}

type draftResponse struct {
	DraftID string `json:"draft_id"`
}

func (h *Handler) handleCreateDraft(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusCreated, draftResponse{DraftID: h.drafts.Create()})
}

type postalCodeRequest struct {
	PostalCode string `json:"postal_code"`
}

type submissionResponse struct {
	DraftID string `json:"draft_id"`
	Token   uint64 `json:"token"`
}

// handleSubmitPostalCode starts a lookup and returns at once; the result is
// read back through the address endpoint with the returned token.
func (h *Handler) handleSubmitPostalCode(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	req, ok := httputil.Decode[postalCodeRequest](w, r, h.logger)
	if !ok {
		return
	}
	token, err := h.drafts.Submit(draftID, req.PostalCode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, submissionResponse{DraftID: draftID, Token: token})
}

type addressResponse struct {
	Token      uint64                    `json:"token"`
	PostalCode string                    `json:"postal_code"`
	Pending    bool                      `json:"pending"`
	Resolution *addressModels.Resolution `json:"resolution,omitempty"`
}

// handleGetAddress reports the newest settled lookup. With ?wait=<seconds>
// it blocks until the latest submission settles, up to maxAddressWait.
func (h *Handler) handleGetAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tracker, err := h.drafts.Get(chi.URLParam(r, "draftID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if wait := waitDuration(r); wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, wait)
		_, err := tracker.Wait(waitCtx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			httputil.WriteError(w, err)
			return
		}
	}

	token := tracker.Token()
	latest := tracker.Latest()
	if latest == nil || latest.Token != token {
		if token == 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no postal code submitted"))
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, addressResponse{Token: token, Pending: true})
		return
	}
	if latest.Err != nil {
		httputil.WriteError(w, latest.Err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, addressResponse{
		Token:      latest.Token,
		PostalCode: latest.PostalCode,
		Resolution: latest.Resolution,
	})
}

func waitDuration(r *http.Request) time.Duration {
	raw := r.URL.Query().Get("wait")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return min(time.Duration(seconds*float64(time.Second)), maxAddressWait)
}

type institutionRegistrationRequest struct {
	DraftID string `json:"draft_id"`
	validation.InstitutionForm
}

type institutionRegistrationResponse struct {
	Account *authModels.Account               `json:"account"`
	Profile *profileModels.InstitutionProfile `json:"profile"`
	Session *authModels.PublicSession         `json:"session,omitempty"`
}

func (h *Handler) handleRegisterInstitution(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[institutionRegistrationRequest](w, r, h.logger)
	if !ok {
		return
	}

	var addresses service.ResolutionSource
	if req.DraftID != "" {
		tracker, err := h.drafts.Get(req.DraftID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		addresses = tracker
	}

	result, err := h.orchestrator.RegisterInstitution(ctx, req.InstitutionForm, addresses)
	if err != nil {
		h.logFailure(ctx, "institution registration failed", err)
		httputil.WriteError(w, err)
		return
	}
	if req.DraftID != "" {
		h.drafts.Remove(req.DraftID)
	}
	httputil.WriteJSON(w, http.StatusCreated, institutionRegistrationResponse{
		Account: result.Account,
		Profile: result.Profile,
		Session: result.Session.Public(),
	})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	code, _ := dErrors.CodeOf(err)
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"code", code,
	)
}
