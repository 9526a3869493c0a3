package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	providerMocks "givebridge/internal/auth/provider/mocks"
	"givebridge/internal/auth/service/mocks"
	id "givebridge/pkg/domain"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/platform/sentinel"
	"givebridge/pkg/requestcontext"
)

type GatewaySuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockProvider *providerMocks.MockProvider
	mockSessions *mocks.MockSessionStore
	gateway      *Gateway
	ctx          context.Context
	now          time.Time
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockProvider = providerMocks.NewMockProvider(s.ctrl)
	s.mockSessions = mocks.NewMockSessionStore(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.gateway = New(s.mockProvider, s.mockSessions, WithLogger(logger), WithLoginRate(2))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *GatewaySuite) TearDownTest() {
	s.ctrl.Finish()
}

func account() models.Account {
	return models.Account{ID: id.NewAccountID(), Email: "ana@example.com", DisplayName: "Ana", Role: models.RoleDonor}
}

func providerErr(code string) error {
	return &provider.Error{Code: code, Status: http.StatusUnprocessableEntity}
}

func (s *GatewaySuite) TestRegister() {
	req := models.RegisterRequest{Email: " Ana@Example.com", Password: "segredo", DisplayName: "Ana", Role: models.RoleDonor}

	s.Run("creates account and establishes session", func() {
		acc := account()
		s.mockProvider.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, r models.RegisterRequest) (*models.Account, error) {
				s.Equal("ana@example.com", r.Email)
				return &acc, nil
			})
		s.mockProvider.EXPECT().SignIn(s.ctx, "ana@example.com", "segredo").
			Return(&provider.Grant{Account: acc, AccessToken: "tok", ExpiresAt: s.now.Add(time.Hour)}, nil)
		s.mockSessions.EXPECT().Save(s.ctx, gomock.Any()).Return(nil)

		got, session, err := s.gateway.Register(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(acc.ID, got.ID)
		s.Require().NotNil(session)
		s.Equal(acc.ID, session.Account.ID)
		s.Equal(s.now.Add(time.Hour), session.ExpiresAt, "provider expiry is shorter than the session TTL")
	})

	s.Run("provider codes map to distinct domain codes", func() {
		cases := map[string]dErrors.Code{
			provider.CodeEmailExists:         dErrors.CodeEmailInUse,
			provider.CodeUserAlreadyExists:   dErrors.CodeEmailInUse,
			provider.CodeEmailAddressInvalid: dErrors.CodeInvalidEmail,
			provider.CodeWeakPassword:        dErrors.CodeWeakPassword,
			"something_new":                  dErrors.CodeInternal,
		}
		for code, want := range cases {
			s.mockProvider.EXPECT().Create(s.ctx, gomock.Any()).Return(nil, providerErr(code))
			_, _, err := s.gateway.Register(s.ctx, req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, want), "provider code %s", code)
		}
	})

	s.Run("transport failure is a network error", func() {
		s.mockProvider.EXPECT().Create(s.ctx, gomock.Any()).Return(nil, provider.ErrTransport)
		_, _, err := s.gateway.Register(s.ctx, req)
		s.True(dErrors.HasCode(err, dErrors.CodeNetwork))
		s.True(dErrors.IsRetryable(err))
	})

	s.Run("sign-in failure after creation keeps the account", func() {
		acc := account()
		s.mockProvider.EXPECT().Create(s.ctx, gomock.Any()).Return(&acc, nil)
		s.mockProvider.EXPECT().SignIn(s.ctx, gomock.Any(), gomock.Any()).Return(nil, provider.ErrTransport)

		got, session, err := s.gateway.Register(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(acc.ID, got.ID)
		s.Nil(session)
	})

	s.Run("invalid role", func() {
		_, _, err := s.gateway.Register(s.ctx, models.RegisterRequest{Email: "a@b.co", Password: "segredo"})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *GatewaySuite) TestLogin() {
	s.Run("maps credential failures", func() {
		cases := map[string]dErrors.Code{
			provider.CodeInvalidCredentials: dErrors.CodeInvalidCredentials,
			provider.CodeUserNotFound:       dErrors.CodeAccountNotFound,
			provider.CodeRateLimit:          dErrors.CodeRateLimited,
		}
		i := 0
		for code, want := range cases {
			// distinct emails keep the local limiter out of the way
			email := []string{"a@example.com", "b@example.com", "c@example.com"}[i]
			i++
			s.mockProvider.EXPECT().SignIn(s.ctx, email, "segredo").Return(nil, providerErr(code))
			_, err := s.gateway.Login(s.ctx, email, "segredo")
			s.True(dErrors.HasCode(err, want), "provider code %s", code)
		}
	})

	s.Run("session store failure", func() {
		acc := account()
		s.mockProvider.EXPECT().SignIn(s.ctx, "d@example.com", "segredo").Return(&provider.Grant{Account: acc}, nil)
		s.mockSessions.EXPECT().Save(s.ctx, gomock.Any()).Return(errors.New("redis down"))
		_, err := s.gateway.Login(s.ctx, "d@example.com", "segredo")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("malformed input never reaches the provider", func() {
		_, err := s.gateway.Login(s.ctx, "not-an-email", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("throttles repeated attempts for one email", func() {
		s.mockProvider.EXPECT().SignIn(s.ctx, "e@example.com", "errada").
			Return(nil, providerErr(provider.CodeInvalidCredentials)).Times(2)
		for range 2 {
			_, err := s.gateway.Login(s.ctx, "E@example.com", "errada")
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidCredentials))
		}
		_, err := s.gateway.Login(s.ctx, "e@example.com", "errada")
		s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
	})
}

func (s *GatewaySuite) TestLogout() {
	sessionID := id.NewSessionID()
	session := &models.Session{ID: sessionID, Account: account(), AccessToken: "tok", ExpiresAt: s.now.Add(time.Hour)}

	s.Run("unknown session is not an error", func() {
		s.mockSessions.EXPECT().FindByID(s.ctx, sessionID).Return(nil, sentinel.ErrNotFound)
		s.NoError(s.gateway.Logout(s.ctx, sessionID))
	})

	s.Run("nil session id is a no-op", func() {
		s.NoError(s.gateway.Logout(s.ctx, id.SessionID{}))
	})

	s.Run("provider sign-out failure is only logged", func() {
		s.mockSessions.EXPECT().FindByID(s.ctx, sessionID).Return(session, nil)
		s.mockProvider.EXPECT().SignOut(s.ctx, "tok").Return(provider.ErrTransport)
		s.mockSessions.EXPECT().Delete(s.ctx, sessionID).Return(nil)
		s.NoError(s.gateway.Logout(s.ctx, sessionID))
	})

	s.Run("store delete failure surfaces", func() {
		s.mockSessions.EXPECT().FindByID(s.ctx, sessionID).Return(session, nil)
		s.mockProvider.EXPECT().SignOut(s.ctx, "tok").Return(nil)
		s.mockSessions.EXPECT().Delete(s.ctx, sessionID).Return(errors.New("redis down"))
		s.True(dErrors.HasCode(s.gateway.Logout(s.ctx, sessionID), dErrors.CodeInternal))
	})
}

func (s *GatewaySuite) TestRequestPasswordReset() {
	s.Run("malformed email", func() {
		err := s.gateway.RequestPasswordReset(s.ctx, "ana")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidEmail))
	})

	s.Run("unknown email is not revealed", func() {
		s.mockProvider.EXPECT().SendReset(s.ctx, "ghost@example.com").Return(providerErr(provider.CodeUserNotFound))
		s.NoError(s.gateway.RequestPasswordReset(s.ctx, "Ghost@example.com"))
	})

	s.Run("network failure surfaces", func() {
		s.mockProvider.EXPECT().SendReset(s.ctx, "ana@example.com").Return(provider.ErrTransport)
		err := s.gateway.RequestPasswordReset(s.ctx, "ana@example.com")
		s.True(dErrors.HasCode(err, dErrors.CodeNetwork))
	})
}

func (s *GatewaySuite) TestSessions() {
	live := &models.Session{ID: id.NewSessionID(), Account: account(), ExpiresAt: s.now.Add(time.Minute)}
	expired := &models.Session{ID: id.NewSessionID(), Account: account(), ExpiresAt: s.now.Add(-time.Minute)}

	s.Run("resolve live session", func() {
		s.mockSessions.EXPECT().FindByID(s.ctx, live.ID).Return(live, nil)
		got, err := s.gateway.ResolveSession(s.ctx, live.ID)
		s.Require().NoError(err)
		s.Equal(live, got)
	})

	s.Run("expired or missing sessions are unauthorized", func() {
		s.mockSessions.EXPECT().FindByID(s.ctx, expired.ID).Return(expired, nil)
		_, err := s.gateway.ResolveSession(s.ctx, expired.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		missing := id.NewSessionID()
		s.mockSessions.EXPECT().FindByID(s.ctx, missing).Return(nil, sentinel.ErrNotFound)
		_, err = s.gateway.ResolveSession(s.ctx, missing)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("current account reads the threaded session", func() {
		_, ok := s.gateway.CurrentAccount(s.ctx)
		s.False(ok)

		got, ok := s.gateway.CurrentAccount(requestcontext.WithSession(s.ctx, live))
		s.True(ok)
		s.Equal(live.Account, got)

		_, ok = s.gateway.CurrentAccount(requestcontext.WithSession(s.ctx, expired))
		s.False(ok)

		_, ok = s.gateway.CurrentAccount(requestcontext.WithoutSession(requestcontext.WithSession(s.ctx, live)))
		s.False(ok)
	})
}

func (s *GatewaySuite) TestDeleteAccount() {
	accountID := id.NewAccountID()

	s.Run("deletes sessions then the account", func() {
		gomock.InOrder(
			s.mockSessions.EXPECT().DeleteByAccount(s.ctx, accountID).Return(sentinel.ErrNotFound),
			s.mockProvider.EXPECT().Delete(s.ctx, accountID).Return(nil),
		)
		s.NoError(s.gateway.DeleteAccount(s.ctx, accountID))
	})

	s.Run("provider failure", func() {
		s.mockSessions.EXPECT().DeleteByAccount(s.ctx, accountID).Return(nil)
		s.mockProvider.EXPECT().Delete(s.ctx, accountID).Return(provider.ErrTransport)
		s.True(dErrors.HasCode(s.gateway.DeleteAccount(s.ctx, accountID), dErrors.CodeNetwork))
	})

	s.Run("session store failure stops deletion", func() {
		s.mockSessions.EXPECT().DeleteByAccount(s.ctx, accountID).Return(errors.New("redis down"))
		s.True(dErrors.HasCode(s.gateway.DeleteAccount(s.ctx, accountID), dErrors.CodeInternal))
	})
}
