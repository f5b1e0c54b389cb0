// internal/httpserver/routes_trivia.go
//
// Trivia endpoints:
//   - GET  /games/{roomCode}/trivia → current question (answer key redacted
//     until resolved) + rotation deadline. Reading drives lazy rotation.
//   - POST /games/{roomCode}/trivia → submit an answer; first correct claim
//     scores, later ones get already_answered.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mrlynn/speakerbingo/internal/room"
	"github.com/mrlynn/speakerbingo/internal/trivia"
)

type triviaStateRes struct {
	CurrentQuestion *room.Question `json:"currentQuestion"`
	NextQuestionAt  time.Time      `json:"nextQuestionAt"`
	IntervalMinutes int            `json:"intervalMinutes"`
}

func (s *Server) handleGetTrivia(w http.ResponseWriter, r *http.Request) {
	rm, err := s.svc.GetState(r.Context(), roomCode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	res := triviaStateRes{}
	if rm.Trivia != nil {
		res.CurrentQuestion = trivia.Redacted(rm.Trivia.CurrentQuestion)
		res.NextQuestionAt = rm.Trivia.NextQuestionAt
		res.IntervalMinutes = rm.Trivia.IntervalMinutes
	}
	_ = json.NewEncoder(w).Encode(res)
}

type answerTriviaReq struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	QuestionID  string `json:"questionId"`
	AnswerIndex int    `json:"answerIndex"`
}
type answerTriviaRes struct {
	Success      bool   `json:"success"`
	Correct      bool   `json:"correct"`
	Points       int    `json:"points,omitempty"`
	AttemptsUsed int    `json:"attemptsUsed"`
	LockedOut    bool   `json:"lockedOut"`
	Message      string `json:"message,omitempty"`
}

func (s *Server) handleAnswerTrivia(w http.ResponseWriter, r *http.Request) {
	var req answerTriviaReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.sessionFor(r, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.svc.SubmitTriviaAnswer(r.Context(), roomCode(r), req.PlayerID, req.PlayerName, req.QuestionID, req.AnswerIndex)
	if err != nil {
		writeError(w, err)
		return
	}

	out := answerTriviaRes{
		Success:      true,
		Correct:      res.Correct,
		AttemptsUsed: res.AttemptsUsed,
		LockedOut:    res.LockedOut,
	}
	if res.Correct {
		out.Points = res.Points
		out.Message = "correct!"
	} else {
		out.Message = "not quite"
		if res.LockedOut {
			out.Message = "not quite, that was your last attempt"
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}
