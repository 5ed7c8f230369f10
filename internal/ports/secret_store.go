package ports

import "context"

// SessionTokenKey is where the bearer credential of the active session is
// kept. Authentication flows write it; the gateway only reads it.
const SessionTokenKey = "session/token"

type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
