package ports

import (
	"context"
	"encoding/json"
	"net/http"
)

// ResponseKind classifies what a gateway call produced. Callers must branch
// on it: only KindOK carries genuine server data.
type ResponseKind int

const (
	// KindOK is a real server response (2xx, 3xx or 4xx). Interpreting the
	// status code is the caller's responsibility.
	KindOK ResponseKind = iota

	// KindFallback is a synthesized 200 built from the well-known fallback
	// endpoint after the remote call failed server-side. Its payload is
	// placeholder data and was never persisted.
	KindFallback

	// KindUnavailable is a synthesized 503: both the remote call and the
	// fallback endpoint failed.
	KindUnavailable
)

func (k ResponseKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindFallback:
		return "fallback"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Response is the uniform outcome of a gateway call. Infrastructure
// failures never surface as errors; they are folded into the kind.
type Response struct {
	Kind       ResponseKind
	StatusCode int
	Body       []byte
}

// OK reports a genuine successful server response.
func (r Response) OK() bool {
	return r.Kind == KindOK && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Decode unmarshals the response body into v.
func (r Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// TokenSource yields the current session credential, or "" when the caller
// is not authenticated. Injected explicitly so tests can fake sessions.
type TokenSource func(ctx context.Context) string

// Gateway issues authenticated requests against the summarization API with
// a uniform degraded-mode contract.
type Gateway interface {
	Get(ctx context.Context, path string) (Response, error)
	Post(ctx context.Context, path string, body map[string]any) (Response, error)
	Delete(ctx context.Context, path string) (Response, error)
}
