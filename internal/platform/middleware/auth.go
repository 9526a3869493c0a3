package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authModels "givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/httputil"
	"givebridge/pkg/requestcontext"
)

// SessionResolver loads a live session by id.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID id.SessionID) (*authModels.Session, error)
}

// RequireSession accepts "Authorization: Bearer <session id>", resolves the
// session and threads it through the request context. Handlers read it with
// SessionFrom.
func RequireSession(resolver SessionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			sessionID, err := id.ParseSessionID(strings.TrimSpace(token))
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session token"))
				return
			}

			session, err := resolver.ResolveSession(ctx, sessionID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - session rejected",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSession(ctx, session)))
		})
	}
}

// RequireRole rejects sessions whose account has a different role. It must run
// after RequireSession.
func RequireRole(role authModels.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFrom(r.Context())
			if !ok || session.Account.Role != role {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "this action requires a "+role.String()+" account"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFrom returns the session attached by RequireSession.
func SessionFrom(ctx context.Context) (*authModels.Session, bool) {
	session, ok := requestcontext.Session[*authModels.Session](ctx)
	return session, ok && session != nil
}
