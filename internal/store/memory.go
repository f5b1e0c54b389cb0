// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is the explicit development/test adapter, selected by configuration
// rather than environment sniffing, and it honors the same versioned
// compare-and-swap contract as the durable adapter.
//
// Characteristics:
//   - Rooms are held as marshaled JSON keyed by room code, so Get hands out
//     an independent copy and aliasing bugs cannot leak between callers.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mrlynn/speakerbingo/internal/room"
)

// memory is a map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	rooms map[string]memoryEntry
}

type memoryEntry struct {
	doc     []byte
	version int64
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rooms: make(map[string]memoryEntry)}
}

func (m *memory) Create(ctx context.Context, r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", r.RoomCode, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[r.RoomCode]; ok {
		return ErrDuplicateCode
	}
	m.rooms[r.RoomCode] = memoryEntry{doc: doc, version: 1}
	return nil
}

func (m *memory) Get(ctx context.Context, code string) (*room.Room, int64, error) {
	m.mu.RLock()
	e, ok := m.rooms[code]
	m.mu.RUnlock()
	if !ok {
		return nil, 0, ErrNotFound
	}
	var r room.Room
	if err := json.Unmarshal(e.doc, &r); err != nil {
		return nil, 0, fmt.Errorf("unmarshal room %s: %w", code, err)
	}
	return &r, e.version, nil
}

func (m *memory) Update(ctx context.Context, code string, version int64, r *room.Room) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal room %s: %w", code, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rooms[code]
	if !ok {
		return ErrNotFound
	}
	if e.version != version {
		return ErrConflict
	}
	m.rooms[code] = memoryEntry{doc: doc, version: version + 1}
	return nil
}
