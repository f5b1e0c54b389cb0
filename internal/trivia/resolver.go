// internal/trivia/resolver.go
//
// Trivia question lifecycle for a room: lazy rotation on reads and
// first-correct-claims-it answer resolution.
//
// The functions here mutate an in-memory copy of the room document; the
// at-most-one-scorer guarantee comes from writing that copy back through the
// store's conditional update. Two clients racing the same question both pass
// the in-memory checks against their own snapshots, but only one write
// lands; the loser re-reads, sees answeredBy set, and gets ErrAlreadyAnswered
// on its retry. Nothing here is allowed to be check-then-write against
// shared state.

package trivia

import (
	"errors"
	"time"

	"github.com/mrlynn/speakerbingo/internal/content"
	"github.com/mrlynn/speakerbingo/internal/room"
)

var (
	ErrNoQuestion      = errors.New("no active trivia question")
	ErrStaleQuestion   = errors.New("question has already rotated")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrMaxAttempts     = errors.New("max attempts exceeded for this question")
)

// MaxAttempts is the per-player, per-question submission cap.
const MaxAttempts = 2

// DefaultIntervalMinutes is the rotation cadence when a room doesn't
// configure its own.
const DefaultIntervalMinutes = 5

// SubmitResult is the resolver's acknowledgement of one answer submission.
type SubmitResult struct {
	Correct      bool
	Points       int
	AttemptsUsed int
	LockedOut    bool
}

// EnsureRotation advances the room's trivia state for the current time and
// reports whether anything changed (so read paths only write back when
// needed). It activates the first question lazily on the first call after
// room creation, and rotates only when the interval has elapsed AND the
// current question is answered. A question nobody has answered stays
// claimable past the deadline rather than expiring.
func EnsureRotation(rm *room.Room, now time.Time) bool {
	if rm.Finished() {
		return false
	}
	if rm.Trivia == nil {
		rm.Trivia = &room.Trivia{IntervalMinutes: DefaultIntervalMinutes}
	}
	t := rm.Trivia
	if t.IntervalMinutes <= 0 {
		t.IntervalMinutes = DefaultIntervalMinutes
	}

	if t.CurrentQuestion == nil {
		activate(t, now)
		return true
	}
	if !now.Before(t.NextQuestionAt) && t.CurrentQuestion.IsAnswered {
		activate(t, now)
		return true
	}
	return false
}

// activate draws the next question and resets the rotation clock.
func activate(t *room.Trivia, now time.Time) {
	q := nextQuestion(t)
	key := q.CorrectIndex
	t.CurrentQuestion = &room.Question{
		ID:           q.ID,
		Prompt:       q.Prompt,
		Options:      q.Options,
		CorrectIndex: &key,
		Points:       q.Points,
		AppearedAt:   now,
	}
	t.NextQuestionAt = now.Add(time.Duration(t.IntervalMinutes) * time.Minute)
}

// nextQuestion prefers a bank question absent from history; once the bank is
// exhausted it reuses questions oldest-first, in history order.
func nextQuestion(t *room.Trivia) content.Question {
	used := make(map[string]bool, len(t.QuestionHistory))
	for _, h := range t.QuestionHistory {
		used[h.QuestionID] = true
	}
	for _, q := range content.Questions() {
		if !used[q.ID] {
			return q
		}
	}
	// Bank exhausted: reuse the least recently seen question. "Oldest" is
	// judged by last occurrence in history, otherwise the same entry would
	// repeat on every cycle once reuse begins.
	lastSeen := make(map[string]int, len(t.QuestionHistory))
	for i, h := range t.QuestionHistory {
		lastSeen[h.QuestionID] = i
	}
	var oldest content.Question
	oldestIdx := -1
	for _, q := range content.Questions() {
		if i, ok := lastSeen[q.ID]; ok && (oldestIdx == -1 || i < oldestIdx) {
			oldest, oldestIdx = q, i
		}
	}
	if oldestIdx >= 0 {
		return oldest
	}
	// Empty bank and empty history; only reachable with no content compiled in.
	return content.Question{ID: "none", Prompt: "No questions available", Options: []string{}}
}

// SubmitAnswer applies one player's answer to the room's current question.
//
// Rejections:
//   - ErrNoQuestion / ErrStaleQuestion when questionID is not current.
//   - ErrAlreadyAnswered once a successful claim is recorded.
//   - ErrMaxAttempts when the player has burned both attempts. The correct
//     index is never revealed on this path.
//
// A wrong answer consumes an attempt and leaves the question open. A correct
// answer records the claim, awards the question's points to the player, and
// appends the history entry.
func SubmitAnswer(rm *room.Room, playerID, playerName, questionID string, answerIndex int, now time.Time) (SubmitResult, error) {
	if rm.Trivia == nil || rm.Trivia.CurrentQuestion == nil {
		return SubmitResult{}, ErrNoQuestion
	}
	q := rm.Trivia.CurrentQuestion
	if q.ID != questionID {
		return SubmitResult{}, ErrStaleQuestion
	}
	if q.IsAnswered || q.AnsweredBy != nil {
		return SubmitResult{}, ErrAlreadyAnswered
	}

	if q.Attempts == nil {
		q.Attempts = make(map[string]int)
	}
	if q.Attempts[playerID] >= MaxAttempts {
		return SubmitResult{AttemptsUsed: q.Attempts[playerID], LockedOut: true}, ErrMaxAttempts
	}

	// Correctness is judged against server-held truth only; the client
	// never supplies the answer key.
	if q.CorrectIndex == nil || answerIndex != *q.CorrectIndex {
		q.Attempts[playerID]++
		used := q.Attempts[playerID]
		return SubmitResult{
			Correct:      false,
			AttemptsUsed: used,
			LockedOut:    used >= MaxAttempts,
		}, nil
	}

	q.IsAnswered = true
	q.AnsweredBy = &room.Answer{
		PlayerID:   playerID,
		PlayerName: playerName,
		AnsweredAt: now,
	}
	if p := rm.FindPlayer(playerID); p != nil {
		p.Points += q.Points
	}
	rm.Trivia.QuestionHistory = append(rm.Trivia.QuestionHistory, room.HistoryEntry{
		QuestionID: q.ID,
		AnsweredBy: playerID,
		Points:     q.Points,
		AnsweredAt: now,
	})
	return SubmitResult{
		Correct:      true,
		Points:       q.Points,
		AttemptsUsed: q.Attempts[playerID] + 1,
	}, nil
}

// Redacted returns a client-safe copy of the question: the answer key field
// is dropped until the question is resolved, and the attempt ledger stays
// server-side.
func Redacted(q *room.Question) *room.Question {
	if q == nil {
		return nil
	}
	cp := *q
	cp.Attempts = nil
	if !cp.IsAnswered {
		cp.CorrectIndex = nil
	}
	return &cp
}
