package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist is a process-local Denylist used in tests and single-node
// development setups.
type MemoryDenylist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key(token)] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	d.mu.RLock()
	expires, ok := d.entries[key(token)]
	d.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expires) {
		d.mu.Lock()
		delete(d.entries, key(token))
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
