// internal/httpserver/routes_game.go
//
// Game room endpoints:
//   - POST /games                     → create a room, caller becomes host
//   - POST /games/{roomCode}/join     → join an existing room
//   - GET  /games/{roomCode}          → authoritative snapshot (poll target)
//   - POST /games/{roomCode}/update   → upsert one player's board state
//   - POST /games/{roomCode}/stop     → host ends the game early
//   - GET  /games/{roomCode}/qr       → PNG QR code of the join link
//   - GET  /games/{roomCode}/stats/{playerId} → end-of-game stats snapshot
//
// Responses always carry the redacted room snapshot, so a mutating request's
// reply is at least as fresh as any poll the client has seen.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mrlynn/speakerbingo/internal/gamesync"
	"github.com/mrlynn/speakerbingo/internal/identity"
	"github.com/mrlynn/speakerbingo/internal/room"
)

// mountGames registers all /games routes.
func (s *Server) mountGames() {
	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Route("/{roomCode}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/join", s.handleJoinGame)
			r.Post("/update", s.handleUpdateGame)
			r.Post("/stop", s.handleStopGame)
			r.Get("/qr", s.handleJoinQR)
			r.Get("/stats/{playerId}", s.handleGameStats)
			r.Get("/trivia", s.handleGetTrivia)
			r.Post("/trivia", s.handleAnswerTrivia)
		})
	})
}

// roomCode pulls the uppercase room code from the URL.
func roomCode(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "roomCode")))
}

// sessionFor verifies a bearer token when one is presented and checks that
// it speaks for playerID. Guests (no token) pass through.
func (s *Server) sessionFor(r *http.Request, playerID string) error {
	sess, err := s.issuer.FromRequest(r)
	if err != nil {
		return err
	}
	if sess != nil && sess.PlayerID != playerID {
		return identity.ErrInvalidToken
	}
	return nil
}

// ------------------------------ create -------------------------------------

type createGameReq struct {
	HostName string `json:"hostName"`
	Category string `json:"category"`
}
type createGameRes struct {
	RoomCode     string     `json:"roomCode"`
	PlayerID     string     `json:"playerId"`
	Game         *room.Room `json:"game"`
	SessionToken string     `json:"sessionToken,omitempty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.HostName = strings.TrimSpace(req.HostName)
	if req.HostName == "" {
		req.HostName = "Host"
	}
	if req.Category == "" {
		req.Category = "conference"
	}

	rm, playerID, err := s.svc.CreateRoom(r.Context(), req.HostName, req.Category)
	if err != nil {
		log.Error().Err(err).Str("category", req.Category).Msg("create room")
		writeError(w, err)
		return
	}
	tok, err := s.issuer.Issue(identity.Session{PlayerID: playerID, PlayerName: req.HostName, RoomCode: rm.RoomCode})
	if err != nil {
		log.Warn().Err(err).Str("roomCode", rm.RoomCode).Msg("sign session token")
	}
	_ = json.NewEncoder(w).Encode(createGameRes{
		RoomCode: rm.RoomCode, PlayerID: playerID,
		Game: gamesync.Snapshot(rm), SessionToken: tok,
	})
}

// ------------------------------- join --------------------------------------

type joinGameReq struct {
	PlayerName string `json:"playerName"`
}
type joinGameRes struct {
	PlayerID     string     `json:"playerId"`
	Game         *room.Room `json:"game"`
	SessionToken string     `json:"sessionToken,omitempty"`
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		req.PlayerName = "Player"
	}

	code := roomCode(r)
	rm, playerID, err := s.svc.JoinRoom(r.Context(), code, req.PlayerName)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := s.issuer.Issue(identity.Session{PlayerID: playerID, PlayerName: req.PlayerName, RoomCode: code})
	if err != nil {
		log.Warn().Err(err).Str("roomCode", code).Msg("sign session token")
	}
	_ = json.NewEncoder(w).Encode(joinGameRes{
		PlayerID: playerID, Game: gamesync.Snapshot(rm), SessionToken: tok,
	})
}

// ------------------------------- read --------------------------------------

type gameRes struct {
	Game *room.Room `json:"game"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	rm, err := s.svc.GetState(r.Context(), roomCode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{Game: gamesync.Snapshot(rm)})
}

// ------------------------------ update -------------------------------------

type updateGameReq struct {
	PlayerID    string                                  `json:"playerId"`
	Selected    [room.GridSize][room.GridSize]bool      `json:"selected"`
	ClickCounts map[string]int                          `json:"clickCounts"`
	HasWon      bool                                    `json:"hasWon"`
}
type updateGameRes struct {
	Success bool       `json:"success"`
	Game    *room.Room `json:"game"`
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	var req updateGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.sessionFor(r, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}
	rm, err := s.svc.ApplyCellUpdate(r.Context(), roomCode(r), req.PlayerID, req.Selected, req.ClickCounts, req.HasWon)
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(updateGameRes{Success: true, Game: gamesync.Snapshot(rm)})
}

// ------------------------------- stop --------------------------------------

type stopGameReq struct {
	PlayerID string `json:"playerId"`
}

func (s *Server) handleStopGame(w http.ResponseWriter, r *http.Request) {
	var req stopGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.sessionFor(r, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}
	rm, err := s.svc.StopGame(r.Context(), roomCode(r), req.PlayerID)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("roomCode", rm.RoomCode).Str("winner", rm.Winner).Msg("game stopped by host")
	_ = json.NewEncoder(w).Encode(gameRes{Game: gamesync.Snapshot(rm)})
}

// -------------------------------- qr ---------------------------------------

// handleJoinQR renders the join link as a PNG QR code so the host can put
// it on the projector.
func (s *Server) handleJoinQR(w http.ResponseWriter, r *http.Request) {
	code := roomCode(r)
	if _, err := s.svc.GetState(r.Context(), code); err != nil {
		writeError(w, err)
		return
	}
	base := strings.TrimSuffix(s.opts.BaseURL, "/")
	png, err := qrcode.Encode(base+"/join/"+code, qrcode.Medium, 256)
	if err != nil {
		log.Error().Err(err).Str("roomCode", code).Msg("encode qr")
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ------------------------------- stats -------------------------------------

func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	rm, err := s.svc.GetState(r.Context(), roomCode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := s.svc.StatsFor(rm, chi.URLParam(r, "playerId"))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(stats)
}
