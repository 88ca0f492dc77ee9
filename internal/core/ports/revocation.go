package ports

import (
	"context"
	"time"
)

// TokenRevoker tracks access tokens revoked before expiry. The set is
// consulted on every authenticated request; lookup errors must be treated as
// "not revoked" (fail open) so an unreachable store cannot block all traffic.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
