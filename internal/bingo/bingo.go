// internal/bingo/bingo.go
//
// Bingo line detection over a player's 5x5 selection matrix.
// Pure and O(25): any full row, full column, or either diagonal wins.
// There is no partial credit and no blackout variant.

package bingo

import "github.com/mrlynn/speakerbingo/internal/room"

// Won reports whether the selection matrix contains a completed line.
// The center cell is pre-selected by construction, so a winning middle row,
// middle column, or diagonal only needs four marks from the player.
func Won(sel [room.GridSize][room.GridSize]bool) bool {
	for i := 0; i < room.GridSize; i++ {
		if fullRow(sel, i) || fullCol(sel, i) {
			return true
		}
	}
	return fullDiagonal(sel, false) || fullDiagonal(sel, true)
}

func fullRow(sel [room.GridSize][room.GridSize]bool, r int) bool {
	for c := 0; c < room.GridSize; c++ {
		if !sel[r][c] {
			return false
		}
	}
	return true
}

func fullCol(sel [room.GridSize][room.GridSize]bool, c int) bool {
	for r := 0; r < room.GridSize; r++ {
		if !sel[r][c] {
			return false
		}
	}
	return true
}

func fullDiagonal(sel [room.GridSize][room.GridSize]bool, anti bool) bool {
	for i := 0; i < room.GridSize; i++ {
		c := i
		if anti {
			c = room.GridSize - 1 - i
		}
		if !sel[i][c] {
			return false
		}
	}
	return true
}
