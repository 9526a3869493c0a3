// Package nominatim geocodes free-text addresses against a Nominatim-compatible search API.
package nominatim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"givebridge/internal/address/models"
	"givebridge/pkg/platform/sentinel"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "givebridge/1.0"
	defaultTimeout   = 5 * time.Second
)

type Client struct {
	baseURL    string
	userAgent  string
	limit      int
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

// WithUserAgent sets the identifying User-Agent the public Nominatim usage policy requires.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithLimit caps the number of candidates requested.
func WithLimit(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.limit = n
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  DefaultUserAgent,
		limit:      1,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode returns candidates in the order the service ranked them. An empty
// slice means no match; it is not an error.
func (c *Client) Geocode(ctx context.Context, query string) ([]models.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", fmt.Sprint(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build nominatim request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: %w", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: nominatim: read body: %w", sentinel.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim: status %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	r := gjson.ParseBytes(body)
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: nominatim: malformed response", sentinel.ErrUnavailable)
	}
	candidates := make([]models.Coordinates, 0, len(r.Array()))
	for _, hit := range r.Array() {
		lat, lon := hit.Get("lat"), hit.Get("lon")
		if !lat.Exists() || !lon.Exists() {
			continue
		}
		candidates = append(candidates, models.Coordinates{Latitude: lat.Float(), Longitude: lon.Float()})
	}
	return candidates, nil
}
