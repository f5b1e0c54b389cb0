package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mrlynn/speakerbingo/internal/room"
)

func testRoom(code string) *room.Room {
	return &room.Room{
		RoomCode: code,
		Status:   room.StatusWaiting,
		Category: "conference",
		Players: []room.Player{
			{ID: "p1", Name: "host", IsHost: true},
		},
	}
}

func TestMemoryCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	if err := m.Create(ctx, testRoom("AAAAAA")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := m.Create(ctx, testRoom("AAAAAA")); !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("second create err = %v, want ErrDuplicateCode", err)
	}
}

func TestMemoryGetReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	if err := m.Create(ctx, testRoom("BBBBBB")); err != nil {
		t.Fatalf("create: %v", err)
	}
	a, _, err := m.Get(ctx, "BBBBBB")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	a.Players[0].Points = 999

	b, _, err := m.Get(ctx, "BBBBBB")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if b.Players[0].Points != 0 {
		t.Fatalf("mutation of one snapshot leaked into the store: points = %d", b.Players[0].Points)
	}
}

func TestMemoryUpdateConditionalOnVersion(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	if err := m.Create(ctx, testRoom("CCCCCC")); err != nil {
		t.Fatalf("create: %v", err)
	}

	r, v, err := m.Get(ctx, "CCCCCC")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	r.Status = room.StatusPlaying
	if err := m.Update(ctx, "CCCCCC", v, r); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// Writing again with the stale version must conflict.
	if err := m.Update(ctx, "CCCCCC", v, r); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale update err = %v, want ErrConflict", err)
	}

	got, v2, err := m.Get(ctx, "CCCCCC")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Status != room.StatusPlaying {
		t.Fatalf("status = %s, want playing", got.Status)
	}
	if v2 != v+1 {
		t.Fatalf("version = %d, want %d", v2, v+1)
	}
}

func TestMemoryUpdateMissingRoom(t *testing.T) {
	m := NewMemoryStore()
	err := m.Update(context.Background(), "ZZZZZZ", 1, testRoom("ZZZZZZ"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryConcurrentUpdatesOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	if err := m.Create(ctx, testRoom("DDDDDD")); err != nil {
		t.Fatalf("create: %v", err)
	}
	r, v, err := m.Get(ctx, "DDDDDD")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	const writers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(winner string) {
			defer wg.Done()
			cp := *r
			cp.Winner = winner
			if err := m.Update(ctx, "DDDDDD", v, &cp); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(room.NewCode())
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("winning writes = %d, want exactly 1", wins)
	}
}
