// internal/room/code.go

package room

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet avoids look-alike characters (0/O, 1/I/L) since room codes
// are read aloud and typed on phones.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// CodeLength is the fixed room code length.
const CodeLength = 6

// NewCode returns a random 6-character room code drawn from codeAlphabet.
// Uniqueness is enforced by the store on create, not here.
func NewCode() string {
	var b [CodeLength]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the process is in no state to serve.
		panic(fmt.Sprintf("room code entropy: %v", err))
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b[:])
}

// CellKey encodes a grid coordinate as the sparse map key used by
// Player.ClickCounts ("row,col").
func CellKey(rowIdx, colIdx int) string {
	return fmt.Sprintf("%d,%d", rowIdx, colIdx)
}
