package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the identity provider's per-user session registry and
// revocation watermarks in Redis. Redis expiry handles cleanup.
type SessionStore struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewSessionStore connects to Redis and verifies the connection.
func NewSessionStore(redisURL string, ttl time.Duration) (*SessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionStore{Client: client, ttl: ttl}, nil
}

func sessionsKey(userID string) string {
	return fmt.Sprintf("sessions:%s", userID)
}

func revokedKey(userID string) string {
	return fmt.Sprintf("sessions:revoked_at:%s", userID)
}

// Record registers a new session for the user.
func (s *SessionStore) Record(ctx context.Context, session *model.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	key := sessionsKey(session.UserID)
	pipe := s.Client.Pipeline()
	pipe.HSet(ctx, key, session.SessionID, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record session: %v", err)
	}
	return nil
}

// Active returns the user's recorded sessions.
func (s *SessionStore) Active(ctx context.Context, userID string) ([]*model.Session, error) {
	entries, err := s.Client.HGetAll(ctx, sessionsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %v", err)
	}

	sessions := make([]*model.Session, 0, len(entries))
	for _, payload := range entries {
		var session model.Session
		if err := json.Unmarshal([]byte(payload), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// RevokeAll drops the user's session registry and records a revocation
// watermark. Tokens issued before the watermark fail verification until
// they would have expired anyway.
func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	now := time.Now()
	pipe := s.Client.Pipeline()
	pipe.Del(ctx, sessionsKey(userID))
	pipe.Set(ctx, revokedKey(userID), strconv.FormatInt(now.Unix(), 10), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke sessions: %v", err)
	}
	return nil
}

// RevokedAt returns the user's revocation watermark, or a zero time when no
// revocation is recorded.
func (s *SessionStore) RevokedAt(ctx context.Context, userID string) (time.Time, error) {
	value, err := s.Client.Get(ctx, revokedKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load revocation watermark: %v", err)
	}

	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid revocation watermark: %v", err)
	}
	return time.Unix(unix, 0), nil
}

// Close closes the Redis connection.
func (s *SessionStore) Close() error {
	return s.Client.Close()
}
