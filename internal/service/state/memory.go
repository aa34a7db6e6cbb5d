package state

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
	"github.com/kapu/sheos-insight-go/pkg/errors"
)

type memoryEntry struct {
	pendingUntil time.Time
	result       []byte
	resultUntil  time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !now.Before(e.pendingUntil) && (len(e.result) == 0 || !now.Before(e.resultUntil))
}

// MemoryStore keeps screen state in process memory. Pending marks expire
// after pendingTTL and results after resultTTL, matching the Redis store.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	pendingTTL time.Duration
	resultTTL  time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

func NewMemoryStore(pendingTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		pendingTTL: pendingTTL,
		resultTTL:  constants.StateConfig.ResultTTL,
		now:        time.Now,
	}
}

func (m *MemoryStore) TryBegin(_ context.Context, key Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	entry := m.entry(key)
	if now.Before(entry.pendingUntil) {
		return false, nil
	}
	entry.pendingUntil = now.Add(m.pendingTTL)
	return true, nil
}

func (m *MemoryStore) Finish(_ context.Context, key Key, result domain.Envelope) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.NewStateError("marshal failed", "finish", key.String(), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	entry := m.entry(key)
	entry.pendingUntil = time.Time{}
	entry.result = data
	entry.resultUntil = now.Add(m.resultTTL)
	return nil
}

func (m *MemoryStore) Abort(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key.String()]; ok {
		entry.pendingUntil = time.Time{}
	}
	return nil
}

func (m *MemoryStore) Last(_ context.Context, key Key, dest *domain.Envelope) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key.String()]
	var data []byte
	if ok && m.now().Before(entry.resultUntil) {
		data = entry.result
	}
	m.mu.Unlock()

	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, errors.NewStateError("unmarshal failed", "last", key.String(), err)
	}
	return true, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// sweep drops entries with nothing left to hold, at most once per pendingTTL.
// must be called with m.mu held
func (m *MemoryStore) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < m.pendingTTL {
		return
	}
	m.lastSweep = now
	for k, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, k)
		}
	}
}

// must be called with m.mu held
func (m *MemoryStore) entry(key Key) *memoryEntry {
	k := key.String()
	entry, ok := m.entries[k]
	if !ok {
		entry = &memoryEntry{}
		m.entries[k] = entry
	}
	return entry
}
