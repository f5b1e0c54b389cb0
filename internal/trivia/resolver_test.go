package trivia

import (
	"errors"
	"testing"
	"time"

	"github.com/mrlynn/speakerbingo/internal/content"
	"github.com/mrlynn/speakerbingo/internal/room"
)

func playingRoom() *room.Room {
	return &room.Room{
		RoomCode: "TESTAA",
		Status:   room.StatusPlaying,
		Category: "conference",
		Players: []room.Player{
			{ID: "p1", Name: "Ana", IsHost: true},
			{ID: "p2", Name: "Ben"},
		},
	}
}

func TestEnsureRotationActivatesFirstQuestion(t *testing.T) {
	rm := playingRoom()
	now := time.Now()

	if changed := EnsureRotation(rm, now); !changed {
		t.Fatal("first rotation should report a change")
	}
	if rm.Trivia == nil || rm.Trivia.CurrentQuestion == nil {
		t.Fatal("no question activated")
	}
	if got := rm.Trivia.NextQuestionAt; !got.Equal(now.Add(DefaultIntervalMinutes * time.Minute)) {
		t.Fatalf("nextQuestionAt = %v", got)
	}
	if changed := EnsureRotation(rm, now.Add(time.Second)); changed {
		t.Fatal("second read before the interval should be a no-op")
	}
}

func TestEnsureRotationKeepsUnansweredQuestionClaimable(t *testing.T) {
	rm := playingRoom()
	now := time.Now()
	EnsureRotation(rm, now)
	q := rm.Trivia.CurrentQuestion

	// Interval elapsed, nobody answered: the question stays current.
	if changed := EnsureRotation(rm, now.Add(6*time.Minute)); changed {
		t.Fatal("unanswered question must not rotate out")
	}
	if rm.Trivia.CurrentQuestion.ID != q.ID {
		t.Fatalf("question changed to %q", rm.Trivia.CurrentQuestion.ID)
	}

	// And it is still claimable well past the deadline.
	res, err := SubmitAnswer(rm, "p2", "Ben", q.ID, *q.CorrectIndex, now.Add(10*time.Minute))
	if err != nil || !res.Correct {
		t.Fatalf("late claim rejected: res=%+v err=%v", res, err)
	}

	// Once answered, the overdue rotation fires on the next read.
	if changed := EnsureRotation(rm, now.Add(11*time.Minute)); !changed {
		t.Fatal("rotation should fire after the answer")
	}
	if rm.Trivia.CurrentQuestion.ID == q.ID {
		t.Fatal("answered question was not replaced")
	}
}

func TestEnsureRotationReusesOldestWhenBankExhausted(t *testing.T) {
	rm := playingRoom()
	now := time.Now()
	EnsureRotation(rm, now)

	// Burn through the whole bank, answering each question so rotation
	// is allowed to advance.
	bank := content.Questions()
	for i := 0; i < len(bank); i++ {
		q := rm.Trivia.CurrentQuestion
		if _, err := SubmitAnswer(rm, "p1", "Ana", q.ID, *q.CorrectIndex, now); err != nil {
			t.Fatalf("answer %q: %v", q.ID, err)
		}
		now = now.Add(time.Duration(DefaultIntervalMinutes+1) * time.Minute)
		EnsureRotation(rm, now)
	}
	if got := len(rm.Trivia.QuestionHistory); got != len(bank) {
		t.Fatalf("history has %d entries, want %d", got, len(bank))
	}
	// The current question must come from the bank even though everything
	// has been used, and reuse starts from the least recently seen.
	if _, ok := content.QuestionByID(rm.Trivia.CurrentQuestion.ID); !ok {
		t.Fatalf("reused question %q not in bank", rm.Trivia.CurrentQuestion.ID)
	}
	if rm.Trivia.QuestionHistory[0].QuestionID != rm.Trivia.CurrentQuestion.ID {
		t.Fatalf("exhausted bank should reuse oldest-first, got %q want %q",
			rm.Trivia.CurrentQuestion.ID, rm.Trivia.QuestionHistory[0].QuestionID)
	}
}

func TestSubmitAnswerCorrectClaims(t *testing.T) {
	rm := playingRoom()
	now := time.Now()
	EnsureRotation(rm, now)
	q := rm.Trivia.CurrentQuestion

	res, err := SubmitAnswer(rm, "p2", "Ben", q.ID, *q.CorrectIndex, now)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !res.Correct || res.Points != q.Points {
		t.Fatalf("result = %+v", res)
	}
	if q.AnsweredBy == nil || q.AnsweredBy.PlayerID != "p2" {
		t.Fatalf("answeredBy = %+v", q.AnsweredBy)
	}
	if got := rm.FindPlayer("p2").Points; got != q.Points {
		t.Fatalf("player points = %d, want %d", got, q.Points)
	}
	if len(rm.Trivia.QuestionHistory) != 1 {
		t.Fatalf("history = %+v", rm.Trivia.QuestionHistory)
	}

	// Second claim against the same snapshot is rejected outright.
	if _, err := SubmitAnswer(rm, "p1", "Ana", q.ID, *q.CorrectIndex, now); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("err = %v, want ErrAlreadyAnswered", err)
	}
}

func TestSubmitAnswerStaleQuestion(t *testing.T) {
	rm := playingRoom()
	EnsureRotation(rm, time.Now())
	if _, err := SubmitAnswer(rm, "p1", "Ana", "not-the-current-id", 0, time.Now()); !errors.Is(err, ErrStaleQuestion) {
		t.Fatalf("err = %v, want ErrStaleQuestion", err)
	}
}

func TestSubmitAnswerAttemptCap(t *testing.T) {
	rm := playingRoom()
	now := time.Now()
	EnsureRotation(rm, now)
	q := rm.Trivia.CurrentQuestion
	wrong := (*q.CorrectIndex + 1) % len(q.Options)

	res, err := SubmitAnswer(rm, "p1", "Ana", q.ID, wrong, now)
	if err != nil || res.Correct {
		t.Fatalf("first wrong attempt: res=%+v err=%v", res, err)
	}
	if res.AttemptsUsed != 1 || res.LockedOut {
		t.Fatalf("first attempt ack = %+v", res)
	}

	res, err = SubmitAnswer(rm, "p1", "Ana", q.ID, wrong, now)
	if err != nil {
		t.Fatalf("second wrong attempt: %v", err)
	}
	if res.AttemptsUsed != 2 || !res.LockedOut {
		t.Fatalf("second attempt ack = %+v", res)
	}

	_, err = SubmitAnswer(rm, "p1", "Ana", q.ID, *q.CorrectIndex, now)
	if !errors.Is(err, ErrMaxAttempts) {
		t.Fatalf("third attempt err = %v, want ErrMaxAttempts", err)
	}

	// A locked-out player doesn't block the rest of the room.
	res, err = SubmitAnswer(rm, "p2", "Ben", q.ID, *q.CorrectIndex, now)
	if err != nil || !res.Correct {
		t.Fatalf("other player blocked: res=%+v err=%v", res, err)
	}
}

func TestRedactedHidesAnswerKeyUntilAnswered(t *testing.T) {
	rm := playingRoom()
	now := time.Now()
	EnsureRotation(rm, now)
	q := rm.Trivia.CurrentQuestion
	q.Attempts = map[string]int{"p1": 2}

	red := Redacted(q)
	if red.CorrectIndex != nil {
		t.Fatalf("unanswered question leaked correctIndex = %d", *red.CorrectIndex)
	}
	if red.Attempts != nil {
		t.Fatal("attempt ledger leaked to client")
	}

	SubmitAnswer(rm, "p2", "Ben", q.ID, *q.CorrectIndex, now)
	red = Redacted(q)
	if red.CorrectIndex == nil || *red.CorrectIndex != *q.CorrectIndex {
		t.Fatal("answered question should reveal correctIndex")
	}
}
