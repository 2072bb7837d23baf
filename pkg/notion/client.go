package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// defaultVersion is the provider API version sent on every call.
const defaultVersion = "2022-06-28"

// Config contains configuration for the Notion client.
//
// Example configuration (HCL):
//
//	notion {
//	  base_url = "https://api.notion.com"
//	  api_key  = env("NOTION_API_KEY")
//	  version  = "2022-06-28"
//	}
type Config struct {
	// BaseURL is the base URL of the provider API.
	BaseURL string `hcl:"base_url"`

	// APIKey is the bearer token sent on every call. Calls may override it
	// per request (search forwards the caller's own token).
	APIKey string `hcl:"api_key"`

	// Version is the provider API version header value.
	Version string `hcl:"version,optional"`

	// DatabaseID is the default database new pages are created under when a
	// request does not name one.
	DatabaseID string `hcl:"database_id,optional"`

	// Timeout for provider requests. Zero means no client-side timeout.
	Timeout time.Duration `hcl:"timeout,optional"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &MissingFieldError{Field: "base_url"}
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsed.Scheme)
	}
	if c.APIKey == "" {
		return &MissingFieldError{Field: "api_key"}
	}
	return nil
}

// Client is the transport for all provider calls: one synchronous HTTP
// request per operation, no pooling, no retries.
type Client struct {
	config *Config
	client *http.Client
	logger hclog.Logger
}

// NewClient creates a provider client from a resolved configuration.
func NewClient(cfg *Config, logger hclog.Logger) (*Client, error) {
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid notion config: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				// One connection per call; nothing is kept alive across
				// operations.
				DisableKeepAlives: true,
			},
		},
		logger: logger.Named("notion-client"),
	}, nil
}

// requestOption tweaks a single outbound request.
type requestOption func(*http.Request)

// withToken replaces the configured bearer token for one call.
func withToken(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes one provider round-trip: marshal body, send, validate status,
// return the raw response bytes. Every failure propagates immediately.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	opts ...requestOption,
) ([]byte, error) {
	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.config.Version)
	for _, opt := range opts {
		opt(req)
	}

	c.logger.Debug("provider request", "method", method, "path", path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading provider response: %w", err)
	}

	if err := checkResponse(resp.StatusCode, reasonPhrase(resp), respBody); err != nil {
		c.logger.Error("provider request rejected",
			"method", method, "path", path, "status", resp.StatusCode)
		return nil, err
	}

	return respBody, nil
}

// reasonPhrase extracts the reason phrase from a response status line.
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(
		resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
}
