package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	mu    sync.Mutex
	store *gocache.Cache
}

// NewMemory creates a process-local cache. cleanupInterval controls how often
// expired items are purged.
func NewMemory(cleanupInterval time.Duration) Cache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &memoryCache{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	raw, _ := v.([]byte)
	return raw, true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

func (m *memoryCache) Take(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	m.store.Delete(key)
	raw, _ := v.([]byte)
	return raw, true, nil
}

func (m *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if v, ok := m.store.Get(key); ok {
		raw, _ := v.([]byte)
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value of %s is not an integer: %w", key, err)
		}
		n = parsed
	}
	n++
	m.store.Set(key, []byte(strconv.FormatInt(n, 10)), gocache.NoExpiration)
	return n, nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.store.Delete(k)
	}
	return nil
}

func (m *memoryCache) DeletePrefix(_ context.Context, prefix string) error {
	for k := range m.store.Items() {
		if strings.HasPrefix(k, prefix) {
			m.store.Delete(k)
		}
	}
	return nil
}
