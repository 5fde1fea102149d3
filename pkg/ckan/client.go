package ckan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ukopendata/datagovuk/pkg/httputil"
	"github.com/ukopendata/datagovuk/pkg/observability"
)

const (
	// DefaultBaseURL is the data.gov.uk CKAN action API root.
	DefaultBaseURL = "https://data.gov.uk/api/3/action"

	// defaultTimeout bounds every outbound request unless overridden.
	defaultTimeout = 10 * time.Second

	defaultUserAgent = "datagovuk/1.0 (https://github.com/ukopendata/datagovuk)"
)

// Config holds optional settings for [New]. The zero value is a working
// configuration pointed at data.gov.uk.
type Config struct {
	// BaseURL is the CKAN action API root. Empty means [DefaultBaseURL].
	// Any CKAN 2.x catalogue works, so the client can be pointed at other
	// government portals that expose the same API.
	BaseURL string

	// Timeout bounds each outbound request, including retries of the same
	// call. Zero means 10 seconds.
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// HTTPClient overrides the underlying HTTP client. When set, Timeout
	// is ignored and the supplied client's own timeout applies.
	HTTPClient *http.Client

	// Logger receives debug-level request logging. Nil disables logging.
	Logger *log.Logger
}

// Client provides access to a CKAN catalogue's action API.
//
// The organization and package directories are fetched lazily on first
// use and then reused for the lifetime of the client; all other
// operations are stateless request/response round trips. All methods are
// safe for concurrent use by multiple goroutines.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	logger    *log.Logger

	orgs directory
	pkgs directory
}

// directory is a lazily-populated name listing guarded by a mutex.
// Once populated it is treated as immutable; refresh swaps the whole
// slice rather than mutating it in place.
type directory struct {
	mu    sync.Mutex
	names []string
}

// New creates a Client for the catalogue described by cfg.
// The zero Config targets data.gov.uk with a 10 second timeout.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		userAgent: userAgent,
		logger:    cfg.Logger,
	}
}

// envelope is the wrapper CKAN puts around every action response.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
}

// action performs a GET against the named action endpoint and decodes the
// unwrapped result into result. A nil result discards the payload.
//
// Transport failures and 5xx statuses are retried once; envelope-level
// errors (success=false) are returned as *APIError, which unwraps to
// [ErrNotFound] for missing records.
func (c *Client) action(ctx context.Context, name string, query url.Values, result any) error {
	u := c.baseURL + "/" + name
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.get(ctx, u, result)
	})
}

func (c *Client) get(ctx context.Context, rawURL string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug("GET", "url", rawURL)
	}
	observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
		return httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return decodeEnvelope(resp.Body, result)
}

// checkStatus classifies non-success statuses. CKAN reports logical errors
// (missing records, bad search queries) inside the envelope with a 404 or
// 409 status, so those fall through to envelope decoding.
func checkStatus(code int) error {
	switch {
	case code == http.StatusOK, code == http.StatusNotFound, code == http.StatusConflict:
		return nil
	case code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func decodeEnvelope(body io.Reader, result any) error {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("%w: action failed without error detail", ErrNetwork)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// load returns the directory's contents, fetching via fn on first use.
// The returned slice is a copy; callers may modify it freely.
func (d *directory) load(fn func() ([]string, error)) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.names == nil {
		names, err := fn()
		if err != nil {
			return nil, err
		}
		d.names = names
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out, nil
}

// refresh replaces the directory's contents unconditionally.
func (d *directory) refresh(fn func() ([]string, error)) ([]string, error) {
	names, err := fn()
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.names = names
	d.mu.Unlock()
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}
