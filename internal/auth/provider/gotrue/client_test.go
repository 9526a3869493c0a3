package gotrue

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	id "givebridge/pkg/domain"
)

const userID = "6f1f3c9e-0c55-4a57-9d2b-6a4b1f0f7c21"

const userJSON = `{"id":"` + userID + `","email":"ana@example.com","user_metadata":{"display_name":"Ana","role":"donor"}}`

type GoTrueClientSuite struct {
	suite.Suite
	mux    *http.ServeMux
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func TestGoTrueClientSuite(t *testing.T) {
	suite.Run(t, new(GoTrueClientSuite))
}

func (s *GoTrueClientSuite) SetupTest() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.client = New(Config{BaseURL: s.server.URL + "/", AnonKey: "anon", ServiceKey: "service"})
	s.ctx = context.Background()
}

func (s *GoTrueClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *GoTrueClientSuite) reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (s *GoTrueClientSuite) TestCreate() {
	s.mux.HandleFunc("POST /signup", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("anon", r.Header.Get("apikey"))
		var body struct {
			Email string            `json:"email"`
			Data  map[string]string `json:"data"`
		}
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		if body.Email == "taken@example.com" {
			s.reply(http.StatusUnprocessableEntity, `{"code":422,"error_code":"email_exists","msg":"Email address already registered"}`)(w, r)
			return
		}
		s.Equal("donor", body.Data["role"])
		s.reply(http.StatusOK, `{"access_token":"tok","user":`+userJSON+`}`)(w, r)
	})

	s.Run("session-shaped response", func() {
		account, err := s.client.Create(s.ctx, models.RegisterRequest{Email: "ana@example.com", Password: "segredo", DisplayName: "Ana", Role: models.RoleDonor})
		s.Require().NoError(err)
		s.Equal(userID, account.ID.String())
		s.Equal("Ana", account.DisplayName)
		s.Equal(models.RoleDonor, account.Role)
	})

	s.Run("provider code is preserved", func() {
		_, err := s.client.Create(s.ctx, models.RegisterRequest{Email: "taken@example.com", Password: "segredo", Role: models.RoleDonor})
		code, ok := provider.CodeOf(err)
		s.Require().True(ok)
		s.Equal(provider.CodeEmailExists, code)
	})
}

func (s *GoTrueClientSuite) TestSignIn() {
	s.Run("grant", func() {
		s.mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
			s.Equal("password", r.URL.Query().Get("grant_type"))
			var body map[string]string
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			if body["password"] != "segredo" {
				s.reply(http.StatusBadRequest, `{"error":"invalid_grant","error_description":"Invalid login credentials"}`)(w, r)
				return
			}
			s.reply(http.StatusOK, `{"access_token":"tok","refresh_token":"ref","expires_in":3600,"expires_at":1893456000,"user":`+userJSON+`}`)(w, r)
		})

		grant, err := s.client.SignIn(s.ctx, "ana@example.com", "segredo")
		s.Require().NoError(err)
		s.Equal("tok", grant.AccessToken)
		s.Equal("ref", grant.RefreshToken)
		s.Equal(int64(1893456000), grant.ExpiresAt.Unix())
		s.Equal(userID, grant.Account.ID.String())
	})

	s.Run("oauth style error maps to invalid credentials", func() {
		_, err := s.client.SignIn(s.ctx, "ana@example.com", "errada")
		code, ok := provider.CodeOf(err)
		s.Require().True(ok)
		s.Equal(provider.CodeInvalidCredentials, code)
	})
}

func (s *GoTrueClientSuite) TestTransportFailures() {
	s.Run("5xx is a transport error", func() {
		s.mux.HandleFunc("POST /recover", s.reply(http.StatusBadGateway, `oops`))
		err := s.client.SendReset(s.ctx, "ana@example.com")
		s.ErrorIs(err, provider.ErrTransport)
	})

	s.Run("unreachable server", func() {
		closed := httptest.NewServer(http.NotFoundHandler())
		closed.Close()
		c := New(Config{BaseURL: closed.URL})
		err := c.SignOut(s.ctx, "tok")
		s.ErrorIs(err, provider.ErrTransport)
	})

	s.Run("rate limit without code", func() {
		s.mux.HandleFunc("POST /logout", s.reply(http.StatusTooManyRequests, `{}`))
		err := s.client.SignOut(s.ctx, "tok")
		code, ok := provider.CodeOf(err)
		s.Require().True(ok)
		s.Equal(provider.CodeRateLimit, code)
	})
}

func (s *GoTrueClientSuite) TestCurrentUserAndDelete() {
	s.mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer tok", r.Header.Get("Authorization"))
		s.reply(http.StatusOK, userJSON)(w, r)
	})
	s.mux.HandleFunc("DELETE /admin/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("Bearer service", r.Header.Get("Authorization"))
		if r.PathValue("id") != userID {
			s.reply(http.StatusNotFound, `{"code":404,"error_code":"user_not_found","msg":"User not found"}`)(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	account, err := s.client.CurrentUser(s.ctx, "tok")
	s.Require().NoError(err)
	s.Equal("ana@example.com", account.Email)

	s.Require().NoError(s.client.Delete(s.ctx, account.ID))

	err = s.client.Delete(s.ctx, id.NewAccountID())
	code, ok := provider.CodeOf(err)
	s.Require().True(ok)
	s.Equal(provider.CodeUserNotFound, code)

	noAdmin := New(Config{BaseURL: s.server.URL})
	s.Error(noAdmin.Delete(s.ctx, account.ID))
}

func (s *GoTrueClientSuite) TestUserWithoutDisplayNameFallsBackToEmail() {
	account, err := parseUser(gjson.Parse(`{"id":"` + userID + `","email":"maria.silva@example.com","user_metadata":{"role":"institution"}}`))
	s.Require().NoError(err)
	s.Equal("Maria Silva", account.DisplayName)
	s.Equal(models.RoleInstitution, account.Role)
}
