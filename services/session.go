package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"
	"main/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps login sessions in Redis, keyed by session id,
// expiring with the session itself.
type SessionStore struct {
	client   *redis.Client
	lifetime time.Duration
}

// GlobalSessionStore is the process-wide instance wired up at startup.
var GlobalSessionStore *SessionStore

func NewSessionStore(redisURL string, lifetime time.Duration) (*SessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionStore{client: client, lifetime: lifetime}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Create records a new session for a login, capturing device details
// from the User-Agent header.
func (s *SessionStore) Create(ctx context.Context, email, userAgent, ip string) (*model.Session, error) {
	browser, os, device := utils.ParseUserAgent(userAgent)

	now := time.Now()
	session := &model.Session{
		SessionID:  uuid.New().String(),
		Email:      email,
		Browser:    browser,
		OS:         os,
		Device:     device,
		IPAddress:  ip,
		CreatedAt:  now,
		LastActive: now,
		ExpiresAt:  now.Add(s.lifetime),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(session.SessionID), data, s.lifetime).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

// Get retrieves a session; returns nil without error on a miss.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.Delete(ctx, sessionID)
		return nil, nil
	}

	return &session, nil
}

// Delete removes a session record.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Client exposes the underlying Redis client so the token blacklist
// can share the connection.
func (s *SessionStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
