// internal/store/store.go
//
// Persistence interface for game rooms. Implementations hold one document
// per room code plus a monotonically increasing version; Update is a
// compare-and-swap against that version. Every "at most once" invariant in
// the game (winner assignment, trivia claims) rides on this conditional
// write, so an adapter that ignores the version argument is broken by
// contract, not just slow.

package store

import (
	"context"
	"errors"

	"github.com/mrlynn/speakerbingo/internal/room"
)

var (
	// ErrDuplicateCode is returned by Create when the room code is taken.
	ErrDuplicateCode = errors.New("room code already exists")

	// ErrNotFound is returned when no room exists for the code.
	ErrNotFound = errors.New("room not found")

	// ErrConflict is returned by Update when the stored version no longer
	// matches; someone else wrote in between. Callers re-read and retry.
	ErrConflict = errors.New("room modified concurrently")
)

// Store is the game room persistence contract.
// Implementations may be backed by memory (development, tests) or SQLite.
type Store interface {
	// Create persists a new room. Fails with ErrDuplicateCode if the
	// code is already present.
	Create(ctx context.Context, r *room.Room) error

	// Get returns the room and the version token to pass to Update.
	// The returned room is a private copy; mutating it has no effect
	// until it is written back.
	Get(ctx context.Context, code string) (*room.Room, int64, error)

	// Update writes the room only if the stored version still equals
	// version. Returns ErrConflict otherwise, ErrNotFound if the room
	// vanished.
	Update(ctx context.Context, code string, version int64, r *room.Room) error
}
