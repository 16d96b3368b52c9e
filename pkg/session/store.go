package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists session data by ID. Load returns (nil, nil) for an unknown
// or expired ID.
type Store interface {
	Load(ctx context.Context, id string) (map[string]any, error)
	Save(ctx context.Context, id string, data map[string]any, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}

// ------------------- Memory -------------------

type memEntry struct {
	raw     []byte
	expires time.Time
}

// memSweepEvery bounds how often Save scans for expired sessions.
const memSweepEvery = time.Minute

// MemoryStore keeps sessions in process. Data is JSON-encoded so values come
// back with the same types the Redis store yields. Expired entries go on
// the next Load of their ID, or on the periodic sweep during Save.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memEntry
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memEntry{}, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, id string) (map[string]any, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && s.now().After(e.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return decode(e.raw)
}

func (s *MemoryStore) Save(_ context.Context, id string, data map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.After(s.nextSweep) {
		for k, e := range s.entries {
			if now.After(e.expires) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(memSweepEvery)
	}
	s.entries[id] = memEntry{raw: raw, expires: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// ------------------- Redis -------------------

// RedisStore keeps sessions under orderdesk:session:<id> with a TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func redisKey(id string) string { return "orderdesk:session:" + id }

func (s *RedisStore) Load(ctx context.Context, id string) (map[string]any, error) {
	raw, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	return decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisKey(id)).Err()
}

func decode(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("session: unmarshal: %w", err)
	}
	return data, nil
}
