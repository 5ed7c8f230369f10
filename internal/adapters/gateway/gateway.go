// Package gateway wraps every outbound call to the summarization API with
// consistent headers, base-URL resolution and a uniform degraded-mode
// contract: server-side and network failures are absorbed into a synthetic
// fallback response instead of surfacing as errors, so callers never need
// per-call error branching for infrastructure outages.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/summarizeai/sai-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

const unavailableMessage = "service temporarily unavailable"

// fallbackEnvelope is the body shape of every synthesized response. Callers
// distinguish it from genuine data by the response kind; the is_fallback
// field keeps the wire shape the dashboard endpoints document.
type fallbackEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	IsFallback bool            `json:"is_fallback"`
}

// fallbackHealthPayload is what GET /api/health/fallback returns.
type fallbackHealthPayload struct {
	Message      string          `json:"message"`
	FallbackData json.RawMessage `json:"fallback_data"`
}

type Gateway struct {
	cfg    Config
	http   *http.Client
	tokens ports.TokenSource
	log    zerolog.Logger
}

var _ ports.Gateway = (*Gateway)(nil)

// New constructs a Gateway. The token source is injected explicitly rather
// than read from ambient state so tests can run with fake sessions.
func New(cfg Config, tokens ports.TokenSource, log zerolog.Logger) *Gateway {
	if tokens == nil {
		tokens = func(context.Context) string { return "" }
	}
	return &Gateway{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		tokens: tokens,
		log:    log.With().Str("component", "gateway").Logger(),
	}
}

// WithHTTPClient swaps the underlying HTTP client, primarily for tests.
func (g *Gateway) WithHTTPClient(client *http.Client) *Gateway {
	if client != nil {
		g.http = client
	}
	return g
}

func (g *Gateway) Get(ctx context.Context, path string) (ports.Response, error) {
	return g.do(ctx, http.MethodGet, path, nil)
}

func (g *Gateway) Post(ctx context.Context, path string, body map[string]any) (ports.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return ports.Response{}, fmt.Errorf("encode request body: %w", err)
	}
	return g.do(ctx, http.MethodPost, path, payload)
}

func (g *Gateway) Delete(ctx context.Context, path string) (ports.Response, error) {
	return g.do(ctx, http.MethodDelete, path, nil)
}

// do performs one call and applies the outcome classification: 2xx-4xx pass
// through untouched, 5xx and transport failures trigger the fallback
// procedure.
func (g *Gateway) do(ctx context.Context, method, path string, body []byte) (ports.Response, error) {
	endpoint, err := g.resolve(path)
	if err != nil {
		return ports.Response{}, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return ports.Response{}, fmt.Errorf("create %s request: %w", method, err)
	}
	g.setHeaders(ctx, req)

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Str("method", method).Str("path", path).
			Msg("network failure, activating fallback")
		return g.fallback(ctx), nil
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		g.log.Warn().Err(err).Str("method", method).Str("path", path).
			Msg("read failure, activating fallback")
		return g.fallback(ctx), nil
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		g.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).
			Msg("server failure, activating fallback")
		return g.fallback(ctx), nil
	}

	return ports.Response{Kind: ports.KindOK, StatusCode: resp.StatusCode, Body: respBody}, nil
}

// fallback issues a GET to the well-known fallback endpoint and synthesizes
// a response from whatever it finds. It never fails: total outage becomes a
// synthesized 503.
func (g *Gateway) fallback(ctx context.Context) ports.Response {
	endpoint, err := g.resolve(g.cfg.FallbackPath)
	if err != nil {
		return g.unavailable()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return g.unavailable()
	}
	g.setHeaders(ctx, req)

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Error().Err(err).Msg("fallback endpoint unreachable")
		return g.unavailable()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		g.log.Error().Int("status", resp.StatusCode).Msg("fallback endpoint unhealthy")
		return g.unavailable()
	}

	var health fallbackHealthPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&health); err != nil {
		g.log.Error().Err(err).Msg("decode fallback payload")
		return g.unavailable()
	}

	body, err := json.Marshal(fallbackEnvelope{
		Success:    true,
		Message:    health.Message,
		Data:       health.FallbackData,
		IsFallback: true,
	})
	if err != nil {
		return g.unavailable()
	}

	g.log.Info().Msg("serving fallback response")
	return ports.Response{Kind: ports.KindFallback, StatusCode: http.StatusOK, Body: body}
}

func (g *Gateway) unavailable() ports.Response {
	body, err := json.Marshal(fallbackEnvelope{
		Success:    false,
		Message:    unavailableMessage,
		IsFallback: true,
	})
	if err != nil {
		body = []byte(`{"success":false,"is_fallback":true}`)
	}
	return ports.Response{Kind: ports.KindUnavailable, StatusCode: http.StatusServiceUnavailable, Body: body}
}

func (g *Gateway) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := g.tokens(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (g *Gateway) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("api path is required")
	}
	parsed, err := url.Parse(g.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

// Probe bypasses the fallback procedure and reports the raw outcome of a
// health endpoint. Health checks must see real failures.
func (g *Gateway) Probe(ctx context.Context, path string) (int, []byte, error) {
	endpoint, err := g.resolve(path)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create probe request: %w", err)
	}
	g.setHeaders(ctx, req)

	resp, err := g.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("probe %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read probe response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// BaseURL exposes the configured base URL for diagnostics output.
func (g *Gateway) BaseURL() string {
	return g.cfg.BaseURL
}
