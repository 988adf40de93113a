package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// Store is the read-through/write-invalidate layer services depend on.
// It is always an injected dependency so tests can substitute Noop or Memory.
type Store interface {
	// Get unmarshals the cached value into dest and reports whether the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// cache keys for the contact read paths

const KeyAllContacts = "contacts:all"

func KeyContactByID(id int64) string {
	return "contacts:id:" + strconv.FormatInt(id, 10)
}

// Memory is a process-local TTL cache. Values are stored JSON-encoded so the
// Get contract matches the Redis backend exactly.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

type entry struct {
	data []byte
	exp  time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Get(ctx context.Context, key string, dest any) (bool, error) {
	now := time.Now()
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if now.After(e.exp) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return false, nil
	}

	err := json.Unmarshal(e.data, dest)

	if err != nil {
		return false, err
	}

	return true, nil
}

func (c *Memory) Set(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)

	if err != nil {
		return err
	}

	c.mu.Lock()
	c.m[key] = entry{data: data, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return nil
}

func (c *Memory) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.m, key)
	}
	c.mu.Unlock()

	return nil
}

func (c *Memory) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.m = make(map[string]entry)
	c.mu.Unlock()

	return nil
}
