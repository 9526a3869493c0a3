// Package viacep looks up Brazilian postal codes (CEP) on a ViaCEP-compatible API.
package viacep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"givebridge/internal/address/models"
	"givebridge/pkg/platform/sentinel"
)

const (
	DefaultBaseURL = "https://viacep.com.br/ws"
	defaultTimeout = 5 * time.Second
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient = &http.Client{Timeout: d}
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the address for an eight-digit postal code. An unknown code
// yields sentinel.ErrNotFound; connectivity problems and server errors are
// wrapped in sentinel.ErrUnavailable.
func (c *Client) Lookup(ctx context.Context, postalCode string) (*models.PostalAddress, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+postalCode+"/json/", nil)
	if err != nil {
		return nil, fmt.Errorf("build viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: viacep: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: viacep: read body: %w", sentinel.ErrUnavailable, err)
	}
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: viacep: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, sentinel.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: viacep: unexpected status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	r := gjson.ParseBytes(body)
	if !r.IsObject() {
		return nil, fmt.Errorf("%w: viacep: malformed response", sentinel.ErrUnavailable)
	}
	// "erro" is true on older deployments and "true" on newer ones.
	if r.Get("erro").Bool() {
		return nil, sentinel.ErrNotFound
	}
	return &models.PostalAddress{
		PostalCode:   postalCode,
		Street:       r.Get("logradouro").String(),
		Neighborhood: r.Get("bairro").String(),
		City:         r.Get("localidade").String(),
		Region:       r.Get("uf").String(),
	}, nil
}
