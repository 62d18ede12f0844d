package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MarcR1993/funding-rate-arbitrage-bot/config"
)

// userAgentTransport stamps every outgoing request with the configured
// client identifier header.
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the pooled HTTP client shared by all adapter
// requests to one venue.
func newHTTPClient(cfg *config.Config) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Reader.Pool.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Reader.Pool.MaxIdleConns,
		MaxConnsPerHost:     cfg.Reader.Pool.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Reader.Pool.IdleConnTimeout,
		DisableCompression:  false,
	}

	return &http.Client{
		Transport: userAgentTransport{agent: cfg.Reader.UserAgent, base: transport},
		Timeout:   cfg.Reader.Timeout,
	}
}

// newLimiter converts a per-exchange minimum inter-request delay into a
// rate limiter with a burst of one.
func newLimiter(minIntervalMs int) *rate.Limiter {
	if minIntervalMs <= 0 {
		minIntervalMs = 100
	}
	return rate.NewLimiter(rate.Every(time.Duration(minIntervalMs)*time.Millisecond), 1)
}

// restClient is the request helper composed into the adapters that talk
// plain REST. It enforces the per-adapter rate limit before every call.
type restClient struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
}

func newRestClient(cfg *config.Config, ex config.ExchangeConfig) *restClient {
	return &restClient{
		http:    newHTTPClient(cfg),
		base:    strings.TrimSuffix(ex.URL, "/"),
		limiter: newLimiter(ex.MinIntervalMs),
	}
}

// getJSON performs a rate-limited GET against base+path and decodes the
// 200 response body into out.
func (c *restClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	reqURL := c.base + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
