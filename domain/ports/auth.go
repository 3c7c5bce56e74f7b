package ports

import (
	"context"
	"time"
)

// TokenRevoker is the access-token denylist. Revoked token ids stay listed
// until the token would have expired on its own.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
