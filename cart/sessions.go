package cart

import (
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Sessions hands out the storage of one session's cart.
type Sessions interface {
	Storage(sessionID string) Storage
}

// MemorySessions keeps every session's cart in process memory.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]*MemoryStorage
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]*MemoryStorage)}
}

func (m *MemorySessions) Storage(sessionID string) Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &MemoryStorage{}
		m.sessions[sessionID] = s
	}
	return s
}

// RedisSessions stores each session's cart under its own key.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{client: client, ttl: ttl}
}

func (r *RedisSessions) Storage(sessionID string) Storage {
	return NewRedisStorage(r.client, sessionID, r.ttl)
}
