package cache

import (
	"sync"
	"time"
)

// MemCache is a small in-memory TTL counter cache backed by sync.Map.
// A background goroutine removes expired entries when NewMemCache is
// given a positive cleanupInterval.
type MemCache struct {
	items sync.Map
	stop  chan struct{}
	wg    sync.WaitGroup
}

type item struct {
	mu         sync.Mutex
	count      int64
	expiration int64 // unix nano; 0 means no expiration
}

func NewMemCache(cleanupInterval time.Duration) *MemCache {
	m := &MemCache{
		stop: make(chan struct{}),
	}
	if cleanupInterval > 0 {
		m.wg.Add(1)
		go func() {
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			defer m.wg.Done()
			for {
				select {
				case <-ticker.C:
					m.cleanup()
				case <-m.stop:
					return
				}
			}
		}()
	}
	return m
}

// Increment adds one to the counter at key and returns the new value.
// A fresh or expired counter restarts at 1 and expires after ttl.
func (m *MemCache) Increment(key string, ttl time.Duration) int64 {
	actual, _ := m.items.LoadOrStore(key, &item{})
	it := actual.(*item)

	it.mu.Lock()
	defer it.mu.Unlock()

	now := time.Now().UnixNano()
	if it.count == 0 || (it.expiration != 0 && now > it.expiration) {
		it.count = 0
		if ttl > 0 {
			it.expiration = now + ttl.Nanoseconds()
		} else {
			it.expiration = 0
		}
	}
	it.count++
	return it.count
}

// Count returns the current counter value at key, or 0 if absent or
// expired.
func (m *MemCache) Count(key string) int64 {
	v, ok := m.items.Load(key)
	if !ok {
		return 0
	}
	it := v.(*item)

	it.mu.Lock()
	defer it.mu.Unlock()
	if it.expiration != 0 && time.Now().UnixNano() > it.expiration {
		return 0
	}
	return it.count
}

func (m *MemCache) Delete(key string) {
	m.items.Delete(key)
}

func (m *MemCache) Close() {
	close(m.stop)
	m.wg.Wait()
}

func (m *MemCache) cleanup() {
	now := time.Now().UnixNano()
	m.items.Range(func(k, v any) bool {
		it := v.(*item)
		it.mu.Lock()
		expired := it.expiration != 0 && now > it.expiration
		it.mu.Unlock()
		if expired {
			m.items.Delete(k)
		}
		return true
	})
}
