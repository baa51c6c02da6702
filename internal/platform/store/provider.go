package store

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// Provider hands out the Store scoped to one session. A provider may
// return Unavailable when it cannot serve the session; callers treat
// that like any other degraded store.
type Provider interface {
	ForSession(sessionID string) Store
}

type RedisProvider struct {
	client *redis.Client
}

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

func (p *RedisProvider) ForSession(sessionID string) Store {
	if p.client == nil || sessionID == "" {
		return NewUnavailable()
	}
	return NewRedis(p.client, sessionID)
}

// MemoryProvider keeps one Memory store per session. Used in tests and
// as a single-process fallback when Redis is not configured.
type MemoryProvider struct {
	mu       sync.Mutex
	sessions map[string]*Memory
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{sessions: make(map[string]*Memory)}
}

func (p *MemoryProvider) ForSession(sessionID string) Store {
	if sessionID == "" {
		return NewUnavailable()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[sessionID]
	if !ok {
		s = NewMemory()
		p.sessions[sessionID] = s
	}
	return s
}
