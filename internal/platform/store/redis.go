package store

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 30 * 24 * time.Hour

// Redis is a session-scoped Store over a shared Redis client. Keys are
// prefixed with the session ID so every session sees its own cart,
// wishlist and preferences. Dispatch publishes the signal name on a
// per-session pub/sub channel for other processes to observe.
type Redis struct {
	client    *redis.Client
	sessionID string
}

func NewRedis(client *redis.Client, sessionID string) *Redis {
	return &Redis{client: client, sessionID: sessionID}
}

func (r *Redis) key(key string) string {
	return "session:" + r.sessionID + ":" + key
}

func (r *Redis) channel() string {
	return "session-signals:" + r.sessionID
}

func (r *Redis) Get(key string) ([]byte, bool) {
	raw, err := r.client.Get(context.Background(), r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[STORE] redis get %q failed: %v", key, err)
		return nil, false
	}
	return raw, true
}

func (r *Redis) Set(key string, value []byte) bool {
	if err := r.client.Set(context.Background(), r.key(key), value, sessionTTL).Err(); err != nil {
		log.Printf("[STORE] redis set %q failed: %v", key, err)
		return false
	}
	return true
}

func (r *Redis) Remove(key string) bool {
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		log.Printf("[STORE] redis del %q failed: %v", key, err)
		return false
	}
	return true
}

func (r *Redis) Dispatch(signal string) bool {
	if err := r.client.Publish(context.Background(), r.channel(), signal).Err(); err != nil {
		log.Printf("[STORE] redis publish %q failed: %v", signal, err)
		return false
	}
	return true
}
