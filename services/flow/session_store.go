package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookpage/models"
	"bookpage/upstream"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists flow sessions between HTTP requests.
type SessionStore interface {
	Save(ctx context.Context, sess *models.FlowSession) error
	Load(ctx context.Context, sessionID string) (*models.FlowSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore keeps sessions as JSON documents in redis with a TTL, so
// abandoned flows expire on their own.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore wraps a redis client as a SessionStore.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "flow:session:" + sessionID
}

func (s *redisSessionStore) Save(ctx context.Context, sess *models.FlowSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal flow session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store flow session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Load(ctx context.Context, sessionID string) (*models.FlowSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, upstream.NewNotFoundError("Booking session not found or expired.")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow session: %w", err)
	}
	var sess models.FlowSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse flow session: %w", err)
	}
	return &sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete flow session: %w", err)
	}
	return nil
}
