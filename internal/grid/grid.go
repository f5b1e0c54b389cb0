// internal/grid/grid.go
//
// Grid generation: draws 24 distinct phrases from a category into a 5x5
// board, row-major, with the FREE sentinel fixed at the center. Drawing is a
// uniform without-replacement shuffle; a category with fewer than 24
// phrases is an error, never silently padded with repeats.

package grid

import (
	"errors"
	"math/rand"

	"github.com/mrlynn/speakerbingo/internal/content"
	"github.com/mrlynn/speakerbingo/internal/room"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInsufficientContent = errors.New("category has fewer than 24 phrases")
)

// cellsPerGrid is a full board minus the FREE center.
const cellsPerGrid = room.GridSize*room.GridSize - 1

// New builds a fresh grid for the given category using the shared RNG.
func New(category string) ([room.GridSize][room.GridSize]string, error) {
	return NewWithRand(category, nil)
}

// NewWithRand is New with an injectable RNG for deterministic tests.
// A nil rng falls back to the global math/rand source.
func NewWithRand(category string, rng *rand.Rand) ([room.GridSize][room.GridSize]string, error) {
	var g [room.GridSize][room.GridSize]string

	phrases, ok := content.Phrases(category)
	if !ok {
		return g, ErrCategoryNotFound
	}
	if len(phrases) < cellsPerGrid {
		return g, ErrInsufficientContent
	}

	drawn := make([]string, len(phrases))
	copy(drawn, phrases)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(drawn), func(i, j int) { drawn[i], drawn[j] = drawn[j], drawn[i] })

	next := 0
	for r := 0; r < room.GridSize; r++ {
		for c := 0; c < room.GridSize; c++ {
			if r == 2 && c == 2 {
				g[r][c] = room.FreePhrase
				continue
			}
			g[r][c] = drawn[next]
			next++
		}
	}
	return g, nil
}

// NewSelection returns the initial selection matrix: everything unmarked
// except the FREE center.
func NewSelection() [room.GridSize][room.GridSize]bool {
	var sel [room.GridSize][room.GridSize]bool
	sel[2][2] = true
	return sel
}
