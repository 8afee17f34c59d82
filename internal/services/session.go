package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SessionDuration      = 7 * 24 * time.Hour
	SessionKeyPrefix     = "session:"      // token -> user ID
	UserSessionKeyPrefix = "user_session:" // user ID -> token
)

// RedisSessions keeps one opaque session per user in Redis.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	if ttl <= 0 {
		ttl = SessionDuration
	}
	return &RedisSessions{client: client, ttl: ttl}
}

// Create issues a new session token for the user. An existing session for
// the same user is invalidated so the expiry restarts from this login.
func (s *RedisSessions) Create(ctx context.Context, userID string) (string, error) {
	_ = s.invalidateUser(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SessionKeyPrefix+token, userID, s.ttl)
	pipe.Set(ctx, UserSessionKeyPrefix+userID, token, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate returns the user ID behind a token.
func (s *RedisSessions) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	userID, err := s.client.Get(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// Invalidate removes a session. The user mapping is only cleared when it
// still points at this token, so signing out an old tab leaves a newer
// login alone.
func (s *RedisSessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	userID, err := s.client.GetDel(ctx, SessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.dropMapping(ctx, userID, token)
}

// invalidateUser drops whatever session the user currently holds.
func (s *RedisSessions) invalidateUser(ctx context.Context, userID string) error {
	token, err := s.client.GetDel(ctx, UserSessionKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.client.Del(ctx, SessionKeyPrefix+token).Err()
}

func (s *RedisSessions) dropMapping(ctx context.Context, userID, token string) error {
	key := UserSessionKeyPrefix + userID
	current, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && current != token) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.client.Del(ctx, key).Err()
}
