// File: services/agent/sessionStore.go
package agent

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bookly/models"

	"github.com/go-redis/redis/v8"
)

const pendingKeyPrefix = "agent:pending:"

// SessionStore persists the proposal between the propose phase and the
// external confirmation. Get returns (nil, nil) when no pending booking
// exists for the session.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.PendingBooking, error)
	Set(ctx context.Context, sessionID string, pending *models.PendingBooking) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps pending bookings as TTL'd JSON blobs.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.PendingBooking, error) {
	data, err := s.client.Get(ctx, pendingKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pending models.PendingBooking
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, pending *models.PendingBooking) error {
	b, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pendingKeyPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, pendingKeyPrefix+sessionID).Err()
}

// MemorySessionStore is the in-process fallback used when Redis is not
// reachable, and the store injected by tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	pending   models.PendingBooking
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, sessions: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.PendingBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, nil
	}
	pending := entry.pending
	return &pending, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, sessionID string, pending *models.PendingBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = memoryEntry{
		pending:   *pending,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
