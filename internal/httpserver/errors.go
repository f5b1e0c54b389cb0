// internal/httpserver/errors.go
//
// Error taxonomy → HTTP status mapping. NotFound-class errors are terminal
// 404s; invalid-claim errors are terminal 400s whose message the client may
// show inline; RoomBusy is a 409 the client should retry transparently;
// Forbidden is a 403.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mrlynn/speakerbingo/internal/gamesync"
	"github.com/mrlynn/speakerbingo/internal/grid"
	"github.com/mrlynn/speakerbingo/internal/identity"
	"github.com/mrlynn/speakerbingo/internal/trivia"
)

// errBody is the uniform error payload.
type errBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Retriable bool   `json:"retriable,omitempty"`
}

// writeError maps a service error onto status + JSON body.
func writeError(w http.ResponseWriter, err error) {
	var body errBody
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, gamesync.ErrRoomNotFound):
		status, body = http.StatusNotFound, errBody{Error: "room_not_found"}
	case errors.Is(err, gamesync.ErrPlayerNotFound):
		status, body = http.StatusNotFound, errBody{Error: "player_not_found"}
	case errors.Is(err, gamesync.ErrRoomFinished):
		status, body = http.StatusConflict, errBody{Error: "room_finished", Message: "this game is already over"}
	case errors.Is(err, gamesync.ErrRoomFull):
		status, body = http.StatusConflict, errBody{Error: "room_full", Message: "this room is full"}
	case errors.Is(err, gamesync.ErrRoomBusy):
		status, body = http.StatusConflict, errBody{Error: "room_busy", Retriable: true}
	case errors.Is(err, gamesync.ErrForbidden):
		status, body = http.StatusForbidden, errBody{Error: "forbidden", Message: "only the host may do that"}
	case errors.Is(err, grid.ErrCategoryNotFound):
		status, body = http.StatusBadRequest, errBody{Error: "category_not_found"}
	case errors.Is(err, grid.ErrInsufficientContent):
		status, body = http.StatusBadRequest, errBody{Error: "insufficient_content", Message: "category needs at least 24 phrases"}
	case errors.Is(err, trivia.ErrNoQuestion):
		status, body = http.StatusBadRequest, errBody{Error: "no_question"}
	case errors.Is(err, trivia.ErrStaleQuestion):
		status, body = http.StatusBadRequest, errBody{Error: "stale_question", Message: "that question has already rotated"}
	case errors.Is(err, trivia.ErrAlreadyAnswered):
		status, body = http.StatusBadRequest, errBody{Error: "already_answered", Message: "someone beat you to it"}
	case errors.Is(err, trivia.ErrMaxAttempts):
		status, body = http.StatusBadRequest, errBody{Error: "max_attempts", Message: "no attempts left for this question"}
	case errors.Is(err, identity.ErrInvalidToken):
		status, body = http.StatusUnauthorized, errBody{Error: "invalid_token"}
	default:
		body = errBody{Error: "internal_error"}
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
