// Package env reads secrets from environment variables. CI and scripted
// runs inject SAI_TOKEN instead of relying on a file-backed session. The
// store is read-only.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/summarizeai/sai-cli/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

const varPrefix = "SAI"

type Store struct{}

var _ ports.SecretStore = Store{}

func NewStore() Store {
	return Store{}
}

func (Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := varForKey(key)
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("env secret %s not set", name)
	}
	return value, nil
}

func (Store) Put(ctx context.Context, _ string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrReadOnly
}

func (Store) Delete(ctx context.Context, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrReadOnly
}

// varForKey maps the session key to SAI_TOKEN; any other key becomes an
// uppercased, underscored variable under the same prefix.
func varForKey(key string) string {
	if key == ports.SessionTokenKey {
		return varPrefix + "_TOKEN"
	}
	sanitized := strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(key)
	return varPrefix + "_" + strings.ToUpper(sanitized)
}
