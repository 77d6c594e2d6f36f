package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beehive-drones/admin/internal/common"
	"github.com/beehive-drones/admin/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// HTTPClient talks to the REST backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.tokens = ts }
}

// WithRateLimit paces outgoing requests to rps per second. Zero or a
// negative value disables pacing.
func WithRateLimit(rps float64) Option {
	return func(h *HTTPClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  TokenFunc(func() string { return "" }),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Origin is the scheme and host of the API, used to resolve server-rooted
// image paths.
func (h *HTTPClient) Origin() string {
	u, err := url.Parse(h.baseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (h *HTTPClient) Close() error {
	h.http.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the operator record.
func (h *HTTPClient) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	raw, err := h.do(ctx, http.MethodPost, "/login", JSONBody(loginRequest{Email: email, Password: string(password)}), false)
	if err != nil {
		return nil, err
	}

	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", ErrUnexpectedShape)
	}
	return &res, nil
}

// Logout revokes the current token on the server.
func (h *HTTPClient) Logout(ctx context.Context) error {
	_, err := h.do(ctx, http.MethodPost, "/logout", nil, true)
	return err
}

func (h *HTTPClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return h.do(ctx, http.MethodGet, path, nil, true)
}

func (h *HTTPClient) Send(ctx context.Context, method, path string, body *Body) (json.RawMessage, error) {
	return h.do(ctx, method, path, body, true)
}

func (h *HTTPClient) Delete(ctx context.Context, path string) error {
	_, err := h.do(ctx, http.MethodDelete, path, nil, true)
	return err
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body *Body, auth bool) (json.RawMessage, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reader, contentType, err := body.encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if token := h.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		h.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	h.log.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrUnexpectedShape)
	}
	return data, nil
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
