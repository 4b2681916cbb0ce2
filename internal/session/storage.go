package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keys, one value per session.
const (
	KeyCart     = "shopyz_cart"
	KeyWishlist = "shopyz_wishlist"
	KeyLang     = "shopyz_lang"
)

const (
	redisKeyPrefix = "shopyz:session:"
	sessionTTL     = 30 * 24 * time.Hour
)

// Storage is a per-session string key-value store.
type Storage interface {
	Load(ctx context.Context, sessionID, key string) (string, bool, error)
	Save(ctx context.Context, sessionID, key, value string) error
}

// MemoryStorage keeps values for the process lifetime.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]map[string]string)}
}

func (m *MemoryStorage) Load(ctx context.Context, sessionID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[sessionID][key]
	return v, ok, nil
}

func (m *MemoryStorage) Save(ctx context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[sessionID] == nil {
		m.values[sessionID] = make(map[string]string)
	}
	m.values[sessionID][key] = value
	return nil
}

// RedisStorage keeps each session in one hash that expires after 30 idle days.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, redisKeyPrefix+sessionID, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID, key, value string) error {
	hash := redisKeyPrefix + sessionID
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, hash, key, value)
	pipe.Expire(ctx, hash, sessionTTL)
	_, err := pipe.Exec(ctx)
	return err
}
