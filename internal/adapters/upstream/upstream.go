// Package upstream executes requests against the auction data provider
// and hands raw bodies to the resolution core
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"lotgate/internal/core/auction"
	perr "lotgate/internal/platform/errors"
	"lotgate/internal/platform/logger"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

const (
	defaultHeaderName = "api-key"
	defaultTimeout    = 10 * time.Second
)

// Options configures the provider client
type Options struct {
	BaseURL    string
	APIKey     string
	HeaderName string        // default "api-key"
	Timeout    time.Duration // default 10s

	// HTTPClient overrides the transport, used by tests
	HTTPClient *http.Client
}

// Fetcher is the executor seam modules depend on.
// Path placeholders come from vars; params carry url tags for GET
// encoding and json tags for POST bodies
type Fetcher interface {
	Do(ctx context.Context, c *auction.Contract, params any, vars map[string]string) (auction.Result, error)
}

// Client performs provider calls with a bounded timeout and a static key header
type Client struct {
	opts     Options
	httpc    *http.Client
	log      *logger.Logger
	resolver *auction.Resolver
	now      func() time.Time
}

// ClientOption mutates a Client during construction
type ClientOption func(*Client)

// WithNow overrides the clock used for latency measurement, used by tests
func WithNow(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// New builds a Client. A nil resolver gets a default one sharing the logger
func New(opts Options, log *logger.Logger, res *auction.Resolver, copts ...ClientOption) *Client {
	if opts.HeaderName == "" {
		opts.HeaderName = defaultHeaderName
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Named("upstream")
	}
	if res == nil {
		res = auction.NewResolver(log, nil)
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: opts.Timeout}
	}
	c := &Client{opts: opts, httpc: httpc, log: log, resolver: res, now: time.Now}
	for _, o := range copts {
		o(c)
	}
	return c
}

// Resolver exposes the resolution core, mainly for wiring
func (c *Client) Resolver() *auction.Resolver { return c.resolver }

// Do builds the URL from the contract's path template, performs the call and
// resolves the body. Transport failures map to Unavailable, non-200 replies
// to NotFound; resolver outcomes propagate unchanged
func (c *Client) Do(
	ctx context.Context,
	contract *auction.Contract,
	params any,
	vars map[string]string,
) (auction.Result, error) {
	url := c.buildURL(contract.Path, vars)

	var reqBody io.Reader
	if contract.Method == http.MethodPost && params != nil {
		payload, err := json.Marshal(params)
		if err != nil {
			return auction.Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, contract.Method, url, reqBody)
	if err != nil {
		return auction.Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "build upstream request")
	}
	callID := uuid.NewString()
	req.Header.Set(c.opts.HeaderName, c.opts.APIKey)
	req.Header.Set("X-Correlation-ID", callID)

	if contract.Method == http.MethodGet && params != nil {
		qs, err := query.Values(params)
		if err != nil {
			return auction.Result{}, perr.Wrap(err, perr.ErrorCodeUnknown, "encode query params")
		}
		req.URL.RawQuery = qs.Encode()
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return auction.Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable,
			"upstream %s unreachable", contract.Name)
	}
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return auction.Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable,
			"upstream %s body read failed", contract.Name)
	}

	c.log.Debug().
		Str("contract", contract.Name).
		Str("call_id", callID).
		Str("method", contract.Method).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", c.now().Sub(start)).
		Msg("upstream response")

	// the provider answers 4xx almost exclusively for missing lots
	if resp.StatusCode != http.StatusOK {
		return auction.Result{}, perr.NotFoundf("lot not found (upstream status %d)", resp.StatusCode)
	}

	return c.resolver.Resolve(body, contract)
}

// buildURL joins the base with the path template, substituting {placeholders}
func (c *Client) buildURL(path string, vars map[string]string) string {
	for k, v := range vars {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return strings.TrimRight(c.opts.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
