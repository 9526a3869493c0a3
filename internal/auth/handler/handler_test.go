package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"givebridge/internal/auth/handler/mocks"
	"givebridge/internal/auth/models"
	profileModels "givebridge/internal/profile/models"
	dErrors "givebridge/pkg/domain-errors"
	"givebridge/pkg/testutil"
)

type AuthHandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	auth     *mocks.MockService
	profiles *mocks.MockProfileReader
	router   chi.Router
	session  *models.Session
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.auth = mocks.NewMockService(s.ctrl)
	s.profiles = mocks.NewMockProfileReader(s.ctrl)
	s.session = testutil.NewSession(models.RoleDonor)

	s.router = chi.NewRouter()
	New(s.auth, s.profiles, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthHandlerSuite) authenticated(req *http.Request) *http.Request {
	s.auth.EXPECT().ResolveSession(gomock.Any(), s.session.ID).Return(s.session, nil)
	return testutil.WithBearer(req, s.session)
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("returns the session token and account", func() {
		s.auth.EXPECT().Login(gomock.Any(), "ana@example.org", "secret1").Return(s.session, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.org", "password": "secret1"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[models.PublicSession](s.T(), rr)
		s.Equal(s.session.ID.String(), resp.Token)
		s.Equal(s.session.Account.ID, resp.Account.ID)
		s.NotContains(rr.Body.String(), s.session.AccessToken)
	})

	s.Run("invalid credentials map to 401", func() {
		s.auth.EXPECT().Login(gomock.Any(), "ana@example.org", "wrong").
			Return(nil, dErrors.New(dErrors.CodeInvalidCredentials, "email or password is incorrect"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.org", "password": "wrong"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "invalid_credentials")
	})

	s.Run("rate limited maps to 429", func() {
		s.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeRateLimited, "too many attempts, try again later"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.org", "password": "secret1"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
	})

	s.Run("malformed body is rejected before the gateway", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/auth/login", "{")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *AuthHandlerSuite) TestLogout() {
	s.Run("ends the current session", func() {
		s.auth.EXPECT().Logout(gomock.Any(), s.session.ID).Return(nil)

		req := s.authenticated(testutil.NewRequest(s.T(), http.MethodPost, "/auth/logout"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("requires a session", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/auth/logout"))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})
}

func (s *AuthHandlerSuite) TestPasswordReset() {
	s.Run("accepted regardless of registration", func() {
		s.auth.EXPECT().RequestPasswordReset(gomock.Any(), "nobody@example.org").Return(nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/password-reset",
			map[string]string{"email": "nobody@example.org"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusAccepted)
	})

	s.Run("network failure is retryable", func() {
		s.auth.EXPECT().RequestPasswordReset(gomock.Any(), "ana@example.org").
			Return(dErrors.New(dErrors.CodeNetwork, "could not reach the authentication service"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/password-reset",
			map[string]string{"email": "ana@example.org"})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "network")
		testutil.AssertJSONContains(s.T(), rr, "retryable", true)
	})
}

func (s *AuthHandlerSuite) TestMe() {
	s.Run("returns account and donor profile", func() {
		profile := &profileModels.Profile{
			Role:  models.RoleDonor,
			Donor: &profileModels.DonorProfile{AccountID: s.session.Account.ID, Points: 30},
		}
		s.profiles.EXPECT().GetProfile(gomock.Any(), s.session.Account.ID, models.RoleDonor).Return(profile, nil)

		req := s.authenticated(testutil.NewRequest(s.T(), http.MethodGet, "/me"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[meResponse](s.T(), rr)
		s.Equal(s.session.Account.Email, resp.Account.Email)
		s.Require().NotNil(resp.Profile.Donor)
		s.Equal(30, resp.Profile.Donor.Points)
	})

	s.Run("missing profile is 404", func() {
		s.profiles.EXPECT().GetProfile(gomock.Any(), s.session.Account.ID, models.RoleDonor).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "donor profile not found"))

		req := s.authenticated(testutil.NewRequest(s.T(), http.MethodGet, "/me"))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
