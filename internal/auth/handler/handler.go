package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service,ProfileReader

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"givebridge/internal/auth/models"
	"givebridge/internal/platform/middleware"
	profileModels "givebridge/internal/profile/models"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/httputil"
	"givebridge/pkg/requestcontext"
)

// Service is the credential gateway surface used by the auth endpoints.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, sessionID id.SessionID) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResolveSession(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
}

// ProfileReader loads the role-specific profile of the signed-in account.
type ProfileReader interface {
	GetProfile(ctx context.Context, accountID id.AccountID, role models.Role) (*profileModels.Profile, error)
}

type Handler struct {
	logger   *slog.Logger
	auth     Service
	profiles ProfileReader
}

func New(auth Service, profiles ProfileReader, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		auth:     auth,
		profiles: profiles,
	}
}

// Register registers the auth routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/password-reset", h.handlePasswordReset)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(h.auth, h.logger))
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[loginRequest](w, r, h.logger)
	if !ok {
		return
	}

	session, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		code, _ := dErrors.CodeOf(err)
		h.logger.WarnContext(ctx, "login failed",
			"request_id", requestcontext.RequestID(ctx),
			"code", code,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session.Public())
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "session required"))
		return
	}
	if err := h.auth.Logout(ctx, session.ID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// handlePasswordReset answers 202 whether or not the email is registered.
func (h *Handler) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[passwordResetRequest](w, r, h.logger)
	if !ok {
		return
	}
	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

type meResponse struct {
	Account models.Account         `json:"account"`
	Profile *profileModels.Profile `json:"profile"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "session required"))
		return
	}
	profile, err := h.profiles.GetProfile(ctx, session.Account.ID, session.Account.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, meResponse{Account: session.Account, Profile: profile})
}
