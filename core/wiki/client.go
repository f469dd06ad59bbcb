// Package wiki is a small client for the MediaWiki action API
// (https://www.mediawiki.org/wiki/API:Query) as served by Wikipedia.
// Every call is a single synchronous GET; nothing is retried or cached.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/wikiq/core"
)

const (
	// DefaultEndpoint is the English Wikipedia action API.
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"
	// DefaultUserAgent identifies wikiq to the Wikimedia servers, which
	// reject anonymous agents.
	DefaultUserAgent = "wikiq/dev (https://github.com/gaurav-prasanna/wikiq)"

	defaultTimeout = 30 * time.Second
	notFoundPageID = "-1"
)

// EndpointForLanguage returns the action API endpoint of the Wikipedia
// edition for the given language code.
func EndpointForLanguage(lang string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
}

// Page is one entry of query.pages. Optional fields are pointers so a
// missing field can be told apart from an empty one.
type Page struct {
	PageID  int         `json:"pageid"`
	NS      int         `json:"ns"`
	Title   string      `json:"title"`
	Extract *string     `json:"extract,omitempty"`
	FullURL *string     `json:"fullurl,omitempty"`
	Links   []core.Link `json:"links,omitempty"`
}

// Response is the decoded body of an action=query call.
type Response struct {
	Continue map[string]string `json:"continue,omitempty"`
	Query    struct {
		Pages map[string]Page `json:"pages"`
	} `json:"query"`
	Error *APIError `json:"error,omitempty"`
}

// Page returns the single page of a title query. The API keys pages by
// page id and uses "-1" for titles that do not exist. Queries for more than
// one title are not supported.
func (r *Response) Page() (*Page, error) {
	if n := len(r.Query.Pages); n > 1 {
		return nil, fmt.Errorf("expected a single page, got %d", n)
	}
	for id, p := range r.Query.Pages {
		if id == notFoundPageID {
			return nil, ErrPageNotFound
		}
		return &p, nil
	}
	return nil, ErrPageNotFound
}

// Client issues queries against one API endpoint.
type Client struct {
	endpoint  string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the API endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client with sensible defaults.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		timeout:   defaultTimeout,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// Endpoint returns the API endpoint the client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do performs one GET with the given parameters plus the fixed
// action=query and format=json, and decodes the response.
func (c *Client) Do(ctx context.Context, params url.Values) (*Response, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %s: %w", c.endpoint, err)
	}

	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("action", "query")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.DebugContext(ctx, "api request", "url", u.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api response",
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, c.endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if r.Error != nil {
		return nil, r.Error
	}
	return &r, nil
}

// Query performs Do and unwraps the single returned page.
func (c *Client) Query(ctx context.Context, params url.Values) (*Page, error) {
	r, err := c.Do(ctx, params)
	if err != nil {
		return nil, err
	}
	return r.Page()
}
