package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val     []byte
	expires time.Time
}

// MemoryStore is a process-local Store used when no Redis address is configured.
// Expired keys are dropped lazily on read and by a background sweep.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
	done chan struct{}
	once sync.Once
}

var _ Store = (*MemoryStore)(nil)

// NewMemory starts a store sweeping expired keys every gcInterval; zero disables the sweep.
func NewMemory(gcInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
		done: make(chan struct{}),
	}
	if gcInterval > 0 {
		go s.sweep(gcInterval)
	}
	return s
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, nil
	}
	out := make([]byte, len(e.val))
	copy(out, e.val)
	return out, nil
}

func (s *MemoryStore) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	e := entry{val: append([]byte(nil), val...)}
	if exp > 0 {
		e.expires = s.now().Add(exp)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	s.data = make(map[string]entry)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) expired(e entry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}

func (s *MemoryStore) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.mu.Lock()
			for k, e := range s.data {
				if s.expired(e) {
					delete(s.data, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
