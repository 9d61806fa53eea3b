package history

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pricecart/backend/internal/domain"
)

// DefaultMaxEntries bounds each client's history when no limit is configured.
const DefaultMaxEntries = 20

// historyItem is one recorded comparison with its expiration
type historyItem struct {
	Entry      domain.HistoryEntry
	Expiration time.Time
}

// MemoryStore is a thread-safe per-client history with TTL support.
// Newest entries are kept first.
type MemoryStore struct {
	data       map[string][]historyItem
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates an in-memory history store. A non-positive ttl keeps
// entries until they are pushed out by maxEntries.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		data:       make(map[string][]historyItem),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Append records entry as the client's newest comparison.
func (s *MemoryStore) Append(ctx context.Context, clientID string, entry domain.HistoryEntry) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item := historyItem{
		Entry:      cloneEntry(entry),
		Expiration: s.expiration(),
	}

	items := append([]historyItem{item}, s.live(s.data[clientID])...)
	if len(items) > s.maxEntries {
		items = items[:s.maxEntries]
	}
	s.data[clientID] = items
	return nil
}

// List returns the client's unexpired entries, newest first.
func (s *MemoryStore) List(ctx context.Context, clientID string) ([]domain.HistoryEntry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	items := s.live(s.data[clientID])
	if len(items) == 0 {
		return nil, domain.ErrHistoryNotFound
	}

	out := make([]domain.HistoryEntry, 0, len(items))
	for _, it := range items {
		out = append(out, cloneEntry(it.Entry))
	}
	return out, nil
}

// Clear removes everything recorded for the client.
func (s *MemoryStore) Clear(ctx context.Context, clientID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, clientID)
	return nil
}

// RunCleanup drops expired entries every interval until ctx is done.
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupExpired()
		}
	}
}

func (s *MemoryStore) cleanupExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for clientID, items := range s.data {
		live := s.live(items)
		if len(live) == 0 {
			delete(s.data, clientID)
			continue
		}
		s.data[clientID] = live
	}
}

// Size returns the number of clients with recorded history (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expiration() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

// live filters out expired items, keeping order. A zero expiration never expires.
func (s *MemoryStore) live(items []historyItem) []historyItem {
	now := s.now()
	out := make([]historyItem, 0, len(items))
	for _, it := range items {
		if !it.Expiration.IsZero() && now.After(it.Expiration) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func cloneEntry(e domain.HistoryEntry) domain.HistoryEntry {
	e.Items = slices.Clone(e.Items)
	e.StoresUsed = slices.Clone(e.StoresUsed)
	return e
}
