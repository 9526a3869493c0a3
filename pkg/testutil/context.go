package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	authModels "givebridge/internal/auth/models"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/requestcontext"
)

// NewSession builds a live session for role with fresh ids.
func NewSession(role authModels.Role) *authModels.Session {
	now := time.Now()
	return &authModels.Session{
		ID: id.SessionID(uuid.New()),
		Account: authModels.Account{
			ID:          id.AccountID(uuid.New()),
			Email:       string(role) + "@example.org",
			DisplayName: "Test " + role.String(),
			Role:        role,
		},
		AccessToken: "access-" + uuid.NewString(),
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
}

// WithSession attaches session to the request context, the way the session
// middleware does for authenticated requests.
func WithSession(req *http.Request, session *authModels.Session) *http.Request {
	return req.WithContext(requestcontext.WithSession(req.Context(), session))
}

// WithBearer sets the Authorization header for session.
func WithBearer(req *http.Request, session *authModels.Session) *http.Request {
	req.Header.Set("Authorization", "Bearer "+session.ID.String())
	return req
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}

// Sessions is an in-memory session resolver for handler tests.
type Sessions map[id.SessionID]*authModels.Session

// NewSessions indexes the given sessions by id.
func NewSessions(sessions ...*authModels.Session) Sessions {
	out := make(Sessions, len(sessions))
	for _, s := range sessions {
		out[s.ID] = s
	}
	return out
}

func (s Sessions) ResolveSession(_ context.Context, sessionID id.SessionID) (*authModels.Session, error) {
	if session, ok := s[sessionID]; ok {
		return session, nil
	}
	return nil, dErrors.New(dErrors.CodeUnauthorized, "session not found")
}
