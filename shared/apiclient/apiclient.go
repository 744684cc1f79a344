// Package apiclient is the Go facade of the typewell account API. Every method
// sends exactly one request and returns the decoded JSON body, whatever the
// HTTP status was. A non-nil error means no usable response: the request
// failed in transit, the body was not the expected JSON, or the call was
// skipped locally.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	internal_errors "github.com/typewell/typewell/shared/errors"
	"github.com/typewell/typewell/shared/logger"
	"github.com/typewell/typewell/shared/metrics"
	"github.com/typewell/typewell/shared/utils"
	"golang.org/x/net/publicsuffix"
)

var (
	// ErrNothingToSend is returned without any request when an optional
	// payload (picture, badges, settings) is absent.
	ErrNothingToSend = errors.New("nothing to send")
	// ErrNoSession is returned without any request by auth-only operations
	// when WithRequireSession is on and the jar holds no cookie for the API.
	ErrNoSession = errors.New("no session cookie, log in first")
)

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client

	base           *url.URL
	jar            http.CookieJar
	log            *slog.Logger
	metrics        *metrics.ClientMetrics
	timeout        time.Duration
	requireSession bool
}

type Option func(*APIClient)

// WithHTTPClient replaces the default client. The client is copied, never
// mutated; a cookie jar is attached to the copy if it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) {
		if hc != nil {
			c.HttpClient = hc
		}
	}
}

func WithCookieJar(jar http.CookieJar) Option {
	return func(c *APIClient) {
		if jar != nil {
			c.jar = jar
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *APIClient) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *APIClient) {
		c.metrics = m
	}
}

// WithTimeout bounds every round trip. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *APIClient) {
		c.timeout = d
	}
}

func WithRequireSession(on bool) Option {
	return func(c *APIClient) {
		c.requireSession = on
	}
}

// New creates a new client for interacting with the backend.
func New(baseURL string, opts ...Option) (*APIClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url must not be empty")
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{},
		base:       base,
		log:        logger.Log,
	}
	for _, o := range opts {
		o(c)
	}

	hc := *c.HttpClient
	if c.jar == nil {
		c.jar = hc.Jar
	}
	if c.jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.jar = jar
	}
	hc.Jar = c.jar
	if c.metrics != nil {
		hc.Transport = c.metrics.Wrap(hc.Transport)
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.HttpClient = &hc
	return c, nil
}

// endpoint is one row of the operation catalog.
type endpoint struct {
	op     string
	method string
	path   string
	auth   bool
}

type statusSetter interface {
	SetStatusCode(int)
	SetRaw([]byte)
}

// do is the single, unified helper for making API requests.
// Cookies come from the client's jar, so the session rides along on every call.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HttpClient.Do(req)
}

// call performs ep with an optional JSON payload and decodes the body into T.
// Non-2xx answers are decoded too; one whose JSON does not fit T comes back
// as a zero T with StatusCode and Raw set. Only 2xx answers are schema-checked.
func call[T any, PT interface {
	*T
	statusSetter
}](ctx context.Context, c *APIClient, ep endpoint, payload any) (*T, error) {
	if ep.auth && c.requireSession && !c.HasSession() {
		c.log.Debug("skipping request without session", "op", ep.op, "path", ep.path)
		return nil, ErrNoSession
	}

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, c.fail(ep, &internal_errors.TransportError{Op: ep.op, Method: ep.method, Path: ep.path, Err: err})
		}
		body = bytes.NewReader(jsonBody)
	}

	resp, err := c.do(ctx, ep.method, ep.path, body)
	if err != nil {
		return nil, c.fail(ep, &internal_errors.TransportError{Op: ep.op, Method: ep.method, Path: ep.path, Err: err})
	}
	defer resp.Body.Close()

	c.log.Debug("api response", "op", ep.op, "method", ep.method, "path", ep.path, "status", resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(ep, &internal_errors.TransportError{Op: ep.op, Method: ep.method, Path: ep.path, Err: err})
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	out := PT(new(T))
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		if success || !json.Valid(bodyBytes) {
			return nil, c.fail(ep, &internal_errors.DecodeError{Op: ep.op, StatusCode: resp.StatusCode, Err: err})
		}
		// an error answer in a shape of its own is still an answer
		c.log.Warn("error body does not match response type", "op", ep.op, "status", resp.StatusCode, "error", err)
		out = PT(new(T))
	}
	out.SetStatusCode(resp.StatusCode)
	out.SetRaw(bodyBytes)

	if success {
		if err := utils.ValidateStruct(out); err != nil {
			return nil, c.fail(ep, &internal_errors.DecodeError{Op: ep.op, StatusCode: resp.StatusCode, Err: err})
		}
	}
	return (*T)(out), nil
}

func (c *APIClient) fail(ep endpoint, err error) error {
	c.log.Error("api request failed", "op", ep.op, "method", ep.method, "path", ep.path, "error", err)
	return err
}
