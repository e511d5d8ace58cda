// Package enrich derives title, description and display assets for a URL
// by querying an external metadata lookup service. Lookups degrade
// gracefully: any transport or service failure still yields a usable
// partial result with a deterministic favicon fallback.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nbrandt/linkstash/internal/model"
)

const (
	defaultEndpoint = "https://api.microlink.io"

	// faviconTemplate is the favicon-by-domain convention used when the
	// lookup fails or returns no logo. Requires no authentication.
	faviconTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=64"

	defaultTimeout = 10 * time.Second
)

// Client handles communication with the metadata lookup service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the lookup service endpoint. Used in tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new enrichment client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enrich normalizes rawURL and queries the lookup service for metadata.
// On any lookup failure it returns a degraded Result carrying the
// normalized URL and the fallback favicon; the only error condition is
// a URL that cannot be parsed at all (model.ErrInvalidURL).
func (c *Client) Enrich(ctx context.Context, rawURL string) (Result, error) {
	normalized, err := model.NormalizeURL(rawURL)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.lookup(ctx, normalized)
	if err != nil {
		return degradedResult(normalized), nil
	}

	result := Result{
		URL:         normalized,
		Title:       resp.Data.Title,
		Description: resp.Data.Description,
	}
	if resp.Data.Image != nil {
		result.Image = resp.Data.Image.URL
	}
	if resp.Data.Logo != nil {
		result.Favicon = resp.Data.Logo.URL
	}
	if result.Favicon == "" {
		result.Favicon = FallbackFavicon(normalized)
	}

	return result, nil
}

// lookup performs the HTTP request and decodes the response.
func (c *Client) lookup(ctx context.Context, target string) (*apiResponse, error) {
	reqURL := fmt.Sprintf("%s/?url=%s", c.endpoint, url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Status != "success" {
		return nil, fmt.Errorf("lookup reported status %q", apiResp.Status)
	}

	return &apiResp, nil
}

// FallbackFavicon returns the deterministic favicon URL for the domain
// of the given URL.
func FallbackFavicon(normalizedURL string) string {
	return fmt.Sprintf(faviconTemplate, model.HostOf(normalizedURL))
}

func degradedResult(normalized string) Result {
	return Result{
		URL:      normalized,
		Favicon:  FallbackFavicon(normalized),
		Degraded: true,
	}
}
