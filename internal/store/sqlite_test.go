package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mrlynn/speakerbingo/internal/room"
)

func openTestDB(t *testing.T) Store {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "rooms.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(db)
}

func TestSQLiteCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	if err := s.Create(ctx, testRoom("AAAAAA")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := s.Create(ctx, testRoom("AAAAAA")); !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("second create err = %v, want ErrDuplicateCode", err)
	}
}

func TestSQLiteGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	if err := s.Create(ctx, testRoom("BBBBBB")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, v, err := s.Get(ctx, "BBBBBB")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != 1 {
		t.Fatalf("fresh version = %d, want 1", v)
	}
	if got.RoomCode != "BBBBBB" || got.Category != "conference" || len(got.Players) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Players[0].Name != "host" || !got.Players[0].IsHost {
		t.Fatalf("player round trip: %+v", got.Players[0])
	}

	if _, _, err := s.Get(ctx, "ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing room err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteUpdateConditionalOnVersion(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)
	if err := s.Create(ctx, testRoom("CCCCCC")); err != nil {
		t.Fatalf("create: %v", err)
	}

	r, v, err := s.Get(ctx, "CCCCCC")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	r.Status = room.StatusPlaying
	if err := s.Update(ctx, "CCCCCC", v, r); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// The affected-row count is zero for both a stale version and a missing
	// room; each must surface as its own error.
	if err := s.Update(ctx, "CCCCCC", v, r); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale update err = %v, want ErrConflict", err)
	}
	if err := s.Update(ctx, "ZZZZZZ", v, testRoom("ZZZZZZ")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing update err = %v, want ErrNotFound", err)
	}

	got, v2, err := s.Get(ctx, "CCCCCC")
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
