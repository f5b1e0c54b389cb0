// internal/httpserver/routes_profile.go
//
// Profile and challenge endpoints. Profiles are client-owned: the client
// posts end-of-game stats, the server folds them into the stored profile
// (achievements, streaks, daily challenge) and mirrors the totals to the
// leaderboard.
//   - POST /profiles/sync       → apply one finished game to a profile
//   - GET  /profiles/{playerId} → stored profile, if any
//   - GET  /leaderboard         → top profiles by total points
//   - GET  /challenges/daily    → today's challenge

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mrlynn/speakerbingo/internal/challenge"
	"github.com/mrlynn/speakerbingo/internal/profile"
)

// mountProfiles registers profile, leaderboard, and challenge routes.
func (s *Server) mountProfiles() {
	s.r.Route("/profiles", func(r chi.Router) {
		r.Post("/sync", s.handleProfileSync)
		r.Get("/{playerId}", s.handleGetProfile)
	})
	s.r.Get("/leaderboard", s.handleLeaderboard)
	s.r.Get("/challenges/daily", s.handleDailyChallenge)
}

type profileSyncReq struct {
	PlayerID string              `json:"playerId"`
	Name     string              `json:"name"`
	RoomCode string              `json:"roomCode"`
	Stats    challenge.GameStats `json:"stats"`
}
type profileSyncRes struct {
	Profile            *profile.Profile     `json:"profile"`
	NewAchievements    []string             `json:"newAchievements"`
	DailyChallenge     *challenge.Challenge `json:"dailyChallenge,omitempty"`
	ChallengeCompleted bool                 `json:"challengeCompleted"`
}

func (s *Server) handleProfileSync(w http.ResponseWriter, r *http.Request) {
	var req profileSyncReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.sessionFor(r, req.PlayerID); err != nil {
		writeError(w, err)
		return
	}

	p, err := s.profiles.Get(r.Context(), req.PlayerID)
	if err != nil {
		log.Error().Err(err).Str("playerId", req.PlayerID).Msg("load profile")
		writeError(w, err)
		return
	}
	if p == nil {
		p = profile.New(req.PlayerID, req.Name)
	}
	if req.Name != "" {
		p.Name = req.Name
	}

	// A game already folded in is not applied twice; the client just gets
	// the current profile back.
	if req.RoomCode != "" && p.AlreadySynced(req.RoomCode) {
		_ = json.NewEncoder(w).Encode(profileSyncRes{
			Profile:         p,
			NewAchievements: []string{},
		})
		return
	}

	now := time.Now()
	newly := p.ApplyGame(req.Stats, now)
	daily, completed := challenge.Completed(req.Stats, now)
	if completed {
		p.TotalPoints += daily.Reward
	}
	p.RecordSync(req.RoomCode)

	if err := s.profiles.Upsert(r.Context(), p); err != nil {
		log.Error().Err(err).Str("playerId", req.PlayerID).Msg("save profile")
		writeError(w, err)
		return
	}
	if newly == nil {
		newly = []string{}
	}
	_ = json.NewEncoder(w).Encode(profileSyncRes{
		Profile:            p,
		NewAchievements:    newly,
		DailyChallenge:     &daily,
		ChallengeCompleted: completed,
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), chi.URLParam(r, "playerId"))
	if err != nil {
		writeError(w, err)
		return
	}
	if p == nil {
		http.Error(w, `{"error":"profile_not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(p)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	rows, err := s.profiles.Top(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []profile.LeaderboardRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"leaderboard": rows})
}

func (s *Server) handleDailyChallenge(w http.ResponseWriter, r *http.Request) {
	c := challenge.Daily(time.Now())
	_ = json.NewEncoder(w).Encode(c)
}
