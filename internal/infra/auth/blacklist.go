package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/xavierca1/assistant-flow-hub/internal/infra/cache"
)

const blacklistPrefix = "session:revoked:"

// TokenBlacklist guarda sessões encerradas até o token expirar sozinho.
type TokenBlacklist struct {
	cache *cache.Client
}

func NewTokenBlacklist(c *cache.Client) *TokenBlacklist {
	return &TokenBlacklist{cache: c}
}

func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.cache.Set(ctx, blacklistPrefix+hashToken(token), "revoked", ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return b.cache.Exists(ctx, blacklistPrefix+hashToken(token))
}

// o token cru nunca vai para o Redis
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
