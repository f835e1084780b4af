package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Refresh tokens are opaque and single-use, held in Redis under their own
// TTL. Rotating on every refresh invalidates stolen tokens on first reuse.

var ErrRefreshTokenInvalid = errors.New("refresh token invalid or expired")

const refreshKeyPrefix = "auth:refresh:"

type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

// Issue creates a refresh token bound to the user and stores it with a TTL.
func (s *RefreshStore) Issue(ctx context.Context, userID int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return token, nil
}

// Redeem consumes a refresh token and returns the user it was issued to. The
// token is deleted; callers issue a fresh one alongside the new access token.
func (s *RefreshStore) Redeem(ctx context.Context, token string) (int, error) {
	key := refreshKeyPrefix + token

	val, err := s.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRefreshTokenInvalid
	}
	if err != nil {
		return 0, fmt.Errorf("redeem refresh token: %w", err)
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrRefreshTokenInvalid
	}
	return userID, nil
}

// Revoke drops a refresh token, e.g. on logout.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}
