// Package backend talks to the e-commerce REST API. Every call goes through a
// per-browser Pipeline that attaches the persisted bearer token, unwraps the
// response envelope, and tears the session down on 401.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
)

const (
	defaultTimeout = 15 * time.Second
	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// ClientConfig groups parameters for NewClient.
type ClientConfig struct {
	// BaseURL is the API root. A relative value is resolved against Origin.
	BaseURL string
	Origin  string

	Timeout       time.Duration
	RetryAttempts uint
	RetryDelay    time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client owns the connection to the backend. It is safe for concurrent use
// and shared by all pipelines.
type Client struct {
	base          *url.URL
	http          *http.Client
	retryAttempts uint
	retryDelay    time.Duration
	logger        *slog.Logger
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := resolveBase(cfg.BaseURL, cfg.Origin)
	if err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}

	return &Client{
		base:          base,
		http:          hc,
		retryAttempts: attempts,
		retryDelay:    cfg.RetryDelay,
		logger:        cfg.Logger,
	}, nil
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string { return c.base.String() }

// resolveBase turns the configured base into an absolute URL. "/api" with
// origin "http://localhost:8000" becomes "http://localhost:8000/api".
func resolveBase(raw, origin string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "/api"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse API URL %q: %w", raw, err)
	}
	if !u.IsAbs() {
		o, oerr := url.Parse(strings.TrimSpace(origin))
		if oerr != nil || o.Scheme == "" || o.Host == "" {
			return nil, fmt.Errorf("API URL %q is relative and origin %q is not absolute", raw, origin)
		}
		u = o.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("API URL %q must use http or https", u.String())
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// response is a fully read backend reply.
type response struct {
	Status int
	Body   []byte
}

// errTransport marks failures where no response was received.
var errTransport = errors.New("backend unreachable")

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// send performs req, retrying idempotent methods on transport failures.
// HTTP error statuses are returned as responses, never retried.
func (c *Client) send(ctx context.Context, req Request, token string) (*response, error) {
	payload, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.endpoint(req.Path, req.Query)

	attempt := func() (*response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		httpReq, rerr := http.NewRequestWithContext(ctx, method, target, body)
		if rerr != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("build request: %w", rerr))
		}
		httpReq.Header.Set("Accept", "application/json")
		if contentType != "" {
			httpReq.Header.Set("Content-Type", contentType)
		}
		attachBearer(httpReq, token)

		resp, derr := c.http.Do(httpReq)
		if derr != nil {
			return nil, fmt.Errorf("%w: %w", errTransport, derr)
		}
		defer resp.Body.Close()

		data, rerr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if rerr != nil {
			return nil, fmt.Errorf("%w: read body: %w", errTransport, rerr)
		}
		return &response{Status: resp.StatusCode, Body: data}, nil
	}

	if !idempotent(method) || c.retryAttempts <= 1 {
		return attempt()
	}

	return retry.DoWithData(attempt,
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errTransport) && ctx.Err() == nil }),
		retry.OnRetry(func(n uint, err error) {
			c.log().DebugContext(ctx, "retrying backend request",
				"method", method, "path", req.Path, "attempt", n+1, "error", err)
		}),
	)
}
