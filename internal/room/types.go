// internal/room/types.go
//
// Core type definitions for a speaker-bingo game room.
// A Room is the single shared document for one multiplayer session: every
// state change flows through the sync service as a read-modify-write against
// the latest stored copy. JSON tags are the wire contract: the same shape is
// persisted, returned to clients, and round-tripped by the polling loop.

package room

import "time"

// GridSize is the fixed board dimension. The center cell (2,2) is the FREE
// square: pre-selected, worth zero points.
const GridSize = 5

// FreePhrase is the sentinel placed at the center of every grid.
const FreePhrase = "FREE"

// Status describes the lifecycle of a room.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// EndedByHost marks a game that was stopped early by the host rather than
// won by a bingo.
const EndedByHost = "host"

// Room is one multiplayer game session, identified by RoomCode.
// Invariant: once Status is finished, Winner is non-empty and immutable.
type Room struct {
	RoomCode   string     `json:"roomCode"`
	Status     Status     `json:"status"`
	Players    []Player   `json:"players"`
	Winner     string     `json:"winner,omitempty"`
	Category   string     `json:"category"`
	Trivia     *Trivia    `json:"trivia,omitempty"`
	EndedBy    string     `json:"endedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Player is one participant's board state, embedded in the Room document.
// Grid is immutable after creation; Selected and ClickCounts change as the
// player marks cells.
type Player struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	IsHost      bool                      `json:"isHost"`
	Grid        [GridSize][GridSize]string `json:"grid"`
	Selected    [GridSize][GridSize]bool   `json:"selected"`
	ClickCounts map[string]int            `json:"clickCounts,omitempty"`
	Points      int                       `json:"points"`
	HasWon      bool                      `json:"hasWon"`
	JoinedAt    time.Time                 `json:"joinedAt"`
}

// Trivia is the per-room trivia sub-record. Nil until the first read after
// room creation activates a question.
type Trivia struct {
	CurrentQuestion *Question      `json:"currentQuestion,omitempty"`
	NextQuestionAt  time.Time      `json:"nextQuestionAt"`
	QuestionHistory []HistoryEntry `json:"questionHistory"`
	IntervalMinutes int            `json:"intervalMinutes"`
}

// Question is the room's current trivia question.
// AnsweredBy transitions nil → set exactly once per question; Attempts counts
// wrong submissions per player id so the two-attempt cap holds server-side.
// CorrectIndex is a pointer so client-facing copies can drop the field
// entirely until the question is resolved; the stored document always
// carries it.
type Question struct {
	ID           string         `json:"id"`
	Prompt       string         `json:"prompt"`
	Options      []string       `json:"options"`
	CorrectIndex *int           `json:"correctIndex,omitempty"`
	Points       int            `json:"points"`
	AppearedAt   time.Time      `json:"appearedAt"`
	IsAnswered   bool           `json:"isAnswered"`
	AnsweredBy   *Answer        `json:"answeredBy,omitempty"`
	Attempts     map[string]int `json:"attempts,omitempty"`
}

// Answer records the single successful claim on a question.
type Answer struct {
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// HistoryEntry is one append-only record of a question that has rotated
// through the room.
type HistoryEntry struct {
	QuestionID string    `json:"questionId"`
	AnsweredBy string    `json:"answeredBy,omitempty"`
	Points     int       `json:"points"`
	AnsweredAt time.Time `json:"answeredAt,omitempty"`
}

// FindPlayer returns the player with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// Host returns the room's host player, or nil for a malformed room.
func (r *Room) Host() *Player {
	for i := range r.Players {
		if r.Players[i].IsHost {
			return &r.Players[i]
		}
	}
	return nil
}

// Finished reports whether the game is over.
func (r *Room) Finished() bool { return r.Status == StatusFinished }
