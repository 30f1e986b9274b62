package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned by Search when no API key is configured.
var ErrMissingAPIKey = errors.New("pixabay api key is not configured")

// Searcher finds stock photos. It is implemented by *Client and can be faked
// in tests.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Hit, error)
	HasKey() bool
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Client talks to the Pixabay image search API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://pixabay.com"
	defaultUserAgent = "folio/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for baseURL. An empty baseURL uses pixabay.com.
func NewClient(baseURL, apiKey string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		apiKey:  strings.TrimSpace(apiKey),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// HasKey reports whether searches can be made.
func (c *Client) HasKey() bool {
	return c != nil && c.apiKey != ""
}

// Search returns photo hits for term in the order the API ranks them.
func (c *Client) Search(ctx context.Context, term string) ([]Hit, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return []Hit{}, nil
	}

	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", term)
	values.Set("image_type", "photo")
	values.Set("pretty", "true")
	rel := &url.URL{Path: "/api/", RawQuery: values.Encode()}

	var payload SearchResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	if payload.Hits == nil {
		return []Hit{}, nil
	}
	return payload.Hits, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", redactKey(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redactKey keeps the API key out of url.Error messages.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	redacted := *uerr
	redacted.URL = strings.ReplaceAll(uerr.URL, key, "REDACTED")
	return &redacted
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
