// README: Session state store backed by Redis, with an in-memory variant.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tripsmith/internal/types"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists conversation state between turns.
type Store interface {
	Get(ctx context.Context, id types.ID) (*State, error)
	Put(ctx context.Context, st *State) error
	Delete(ctx context.Context, id types.ID) error
}

const (
	sessionKeyPrefix = "planner:session:%s"
	// Sessions are conversational; a week of inactivity ends them.
	sessionTTL = 7 * 24 * time.Hour
)

// RedisStore keeps each session as a JSON value under a per-session key.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{redis: redis}
}

func (s *RedisStore) Get(ctx context.Context, id types.ID) (*State, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &st, nil
}

func (s *RedisStore) Put(ctx context.Context, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(st.ID), data, sessionTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id types.ID) error {
	return s.redis.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id types.ID) string {
	return fmt.Sprintf(sessionKeyPrefix, string(id))
}

// MemoryStore is a map-backed Store for tests and single-process use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[types.ID]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[types.ID]*State)}
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

func (s *MemoryStore) Put(_ context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = st
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
