// Package kakao provides the HTTP client for the local Kakao map service
// that fronts the Kakao Local API.
package kakao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where the local map service listens by default
	DefaultBaseURL = "http://localhost:8080"

	// DefaultUserAgent is the default User-Agent string
	DefaultUserAgent = "kmapmcp/0.1.0"

	// DefaultTimeout bounds a single upstream request
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries the invocation id to the upstream service
	RequestIDHeader = "X-Request-Id"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 4 << 20
)

// Endpoints exposed by the local map service.
const (
	EndpointSearchAddress    = "/search/address"
	EndpointSearchCategory   = "/search/category"
	EndpointSearchKeyword    = "/search/keyword"
	EndpointCoord2Address    = "/geo/coord2address"
	EndpointCoord2RegionCode = "/geo/coord2regioncode"
	EndpointTransCoord       = "/geo/transcoord"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Request is a GET against one endpoint of the local service.
// Params keep their insertion order on the wire.
type Request struct {
	Endpoint string
	Params   []Param
}

// Encode renders the query string, preserving parameter order.
func (r Request) Encode() string {
	var b strings.Builder
	for i, p := range r.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Get returns the value of the first parameter named key.
func (r Request) Get(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Response is the raw reply of the upstream service.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RateLimit is the sustained requests per second; zero or less disables limiting.
	RateLimit float64
	RateBurst int

	// HTTPClient overrides the pooled client built from Timeout.
	HTTPClient *http.Client
}

// Client talks to the local map service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a client for the service at opts.BaseURL.
func NewClient(opts Options) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", base)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
			Timeout: timeout,
		}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		limiter:    newLimiter(opts.RateLimit, opts.RateBurst),
		userAgent:  ua,
		logger:     slog.Default(),
	}, nil
}

// SetLogger sets the logger for the client
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// URL resolves req against the base URL.
func (c *Client) URL(req Request) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + req.Endpoint
	u.RawQuery = req.Encode()
	return u.String()
}

// Fetch performs the GET described by req. A non-2xx status is not an
// error here; callers inspect Response.OK.
func (c *Client) Fetch(ctx context.Context, req Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	target := c.URL(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json, text/event-stream")
	if id := RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set(RequestIDHeader, id)
	}

	c.logger.Debug("sending upstream request", "url", target)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("received upstream response",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}, nil
}

type requestIDKey struct{}

// WithRequestID returns a context carrying id for the RequestIDHeader.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
