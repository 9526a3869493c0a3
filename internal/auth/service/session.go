package service

import (
	"context"
	"errors"

	"givebridge/internal/auth/models"
	"givebridge/internal/validation"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	emailaddr "givebridge/pkg/email"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/requestcontext"
)

// Login authenticates and establishes a new session. Attempts are throttled
// per email before the provider is contacted.
func (g *Gateway) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, err
	}
	email = emailaddr.Normalize(email)

	if !g.allowLogin(email, requestcontext.Now(ctx)) {
		g.metrics.IncrementLoginsThrottled()
		g.logger.WarnContext(ctx, "login throttled", "email", email)
		return nil, dErrors.New(models.ErrorRateLimited.Code(), models.ErrorRateLimited.Message())
	}
	return g.signIn(ctx, email, password)
}

func (g *Gateway) signIn(ctx context.Context, email, password string) (*models.Session, error) {
	grant, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, g.translate(ctx, err, "sign-in")
	}

	now := requestcontext.Now(ctx)
	expiresAt := now.Add(g.sessionTTL)
	if !grant.ExpiresAt.IsZero() && grant.ExpiresAt.Before(expiresAt) {
		expiresAt = grant.ExpiresAt
	}
	session := &models.Session{
		ID:           id.NewSessionID(),
		Account:      grant.Account,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		CreatedAt:    now,
		ExpiresAt:    expiresAt,
	}
	if err := g.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store session")
	}
	g.logger.InfoContext(ctx, "session established",
		"account_id", session.Account.ID.String(),
		"session_id", session.ID.String(),
	)
	return session, nil
}

// Logout ends the session. It is idempotent: an unknown or already ended
// session is not an error, and provider sign-out failures are only logged.
func (g *Gateway) Logout(ctx context.Context, sessionID id.SessionID) error {
	if sessionID.IsNil() {
		return nil
	}
	session, err := g.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}

	if err := g.provider.SignOut(ctx, session.AccessToken); err != nil {
		g.logger.WarnContext(ctx, "provider sign-out failed",
			"session_id", sessionID.String(),
			"error", err,
		)
	}

	if err := g.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to end session")
	}
	g.logger.InfoContext(ctx, "session ended",
		"account_id", session.Account.ID.String(),
		"session_id", sessionID.String(),
	)
	return nil
}

// ResolveSession loads a live session for the transport layer.
func (g *Gateway) ResolveSession(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	if sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session required")
	}
	session, err := g.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if session.IsExpiredAt(requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session expired")
	}
	return session, nil
}

// CurrentAccount reads the session threaded through ctx. It performs no I/O.
func (g *Gateway) CurrentAccount(ctx context.Context) (models.Account, bool) {
	return CurrentAccount(ctx)
}

// CurrentAccount is the free-function form for callers without a Gateway.
func CurrentAccount(ctx context.Context) (models.Account, bool) {
	session, ok := requestcontext.Session[*models.Session](ctx)
	if !ok || session == nil || session.IsExpiredAt(requestcontext.Now(ctx)) {
		return models.Account{}, false
	}
	return session.Account, true
}
