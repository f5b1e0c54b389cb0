// internal/scoring/scoring.go
//
// Pure scoring rules for a bingo cell click.
// Responsibilities:
//   - Base value by board position (corner > edge > interior, FREE = 0).
//   - Diminishing returns for repeat clicks on the same cell.
//   - Flat bonus for completing a bingo line.
//
// Both the authoritative server and any client-side preview must agree
// bit-for-bit, so everything here is integer math plus a fixed multiplier
// table: no stored floating-point state, no clock, no randomness.

package scoring

import "math"

const (
	baseCorner   = 150
	baseEdge     = 100
	baseInterior = 75

	// BingoBonus is added exactly once, when a winning line is first
	// detected for a player.
	BingoBonus = 1000
)

// multipliers is indexed by 1-based click count; counts beyond the table
// clamp to the last entry.
var multipliers = [...]float64{1.0, 0.6, 0.35, 0.2, 0.1}

// Points computes the score for the clickCount-th click on cell (row, col).
// The FREE center always yields zero. clickCount is 1-based; values below 1
// are treated as 1.
func Points(row, col, clickCount int) int {
	if row == 2 && col == 2 {
		return 0
	}
	base := baseInterior
	onRowEdge := row == 0 || row == 4
	onColEdge := col == 0 || col == 4
	switch {
	case onRowEdge && onColEdge:
		base = baseCorner
	case onRowEdge || onColEdge:
		base = baseEdge
	}
	if clickCount < 1 {
		clickCount = 1
	}
	idx := clickCount - 1
	if idx >= len(multipliers) {
		idx = len(multipliers) - 1
	}
	return int(math.Floor(float64(base) * multipliers[idx]))
}
