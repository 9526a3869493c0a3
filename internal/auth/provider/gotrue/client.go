// Package gotrue adapts a GoTrue-compatible auth API (Supabase Auth) to the
// credential provider contract.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"givebridge/internal/auth/models"
	"givebridge/internal/auth/provider"
	id "givebridge/pkg/domain"
	emailaddr "givebridge/pkg/email"
)

const defaultTimeout = 10 * time.Second

// Config holds the endpoint and keys of the auth API.
type Config struct {
	BaseURL    string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

// Client talks to the auth API over HTTP.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client; tests point it at httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Create(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	body := map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"data": map[string]string{
			"display_name": req.DisplayName,
			"role":         req.Role.String(),
		},
	}
	resp, err := c.do(ctx, http.MethodPost, "/signup", body, c.anonKey)
	if err != nil {
		return nil, err
	}
	// With autoconfirm on, signup answers with a session that embeds the user.
	user := resp
	if u := resp.Get("user"); u.Exists() {
		user = u
	}
	return parseUser(user)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*provider.Grant, error) {
	resp, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, c.anonKey)
	if err != nil {
		return nil, err
	}
	account, err := parseUser(resp.Get("user"))
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(resp.Get("expires_in").Int()) * time.Second)
	if at := resp.Get("expires_at"); at.Exists() {
		expiresAt = time.Unix(at.Int(), 0)
	}
	return &provider.Grant{
		Account:      *account,
		AccessToken:  resp.Get("access_token").String(),
		RefreshToken: resp.Get("refresh_token").String(),
		ExpiresAt:    expiresAt,
	}, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", nil, accessToken)
	return err
}

func (c *Client) SendReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/recover", map[string]string{"email": email}, c.anonKey)
	return err
}

func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*models.Account, error) {
	resp, err := c.do(ctx, http.MethodGet, "/user", nil, accessToken)
	if err != nil {
		return nil, err
	}
	return parseUser(resp)
}

// Delete removes the user through the admin API and needs the service key.
func (c *Client) Delete(ctx context.Context, accountID id.AccountID) error {
	if c.serviceKey == "" {
		return fmt.Errorf("gotrue: service key not configured")
	}
	_, err := c.do(ctx, http.MethodDelete, "/admin/users/"+accountID.String(), nil, c.serviceKey)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any, bearer string) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", provider.ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: read body: %w", provider.ErrTransport, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return gjson.Result{}, fmt.Errorf("%w: status %d", provider.ErrTransport, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return gjson.Result{}, parseError(respBody, resp.StatusCode)
	}
	return gjson.ParseBytes(respBody), nil
}

func parseUser(u gjson.Result) (*models.Account, error) {
	accountID, err := id.ParseAccountID(u.Get("id").String())
	if err != nil {
		return nil, fmt.Errorf("gotrue: malformed user in response: %w", err)
	}
	address := u.Get("email").String()
	displayName := u.Get("user_metadata.display_name").String()
	if displayName == "" {
		displayName = emailaddr.DisplayName(address)
	}
	return &models.Account{
		ID:          accountID,
		Email:       address,
		DisplayName: displayName,
		Role:        models.Role(u.Get("user_metadata.role").String()),
	}, nil
}

// parseError reads both error shapes GoTrue emits: the current
// {code, error_code, msg} body and the OAuth-style {error, error_description}.
func parseError(body []byte, status int) error {
	r := gjson.ParseBytes(body)

	code := r.Get("error_code").String()
	if code == "" {
		if c := r.Get("code"); c.Type == gjson.String {
			code = c.String()
		}
	}
	if code == "" {
		code = r.Get("error").String()
	}
	if code == "invalid_grant" {
		code = provider.CodeInvalidCredentials
	}
	if code == "" && status == http.StatusTooManyRequests {
		code = provider.CodeRateLimit
	}
	if code == "" {
		code = "unknown"
	}

	msg := r.Get("msg").String()
	if msg == "" {
		msg = r.Get("message").String()
	}
	if msg == "" {
		msg = r.Get("error_description").String()
	}
	return &provider.Error{Code: code, Status: status, Message: msg}
}
