// internal/gamesync/service.go
//
// The game synchronization service: the only component that mutates room
// documents. Every operation is a read-modify-write against the latest
// stored copy, re-applied on version conflict a bounded number of times and
// surfaced as ErrRoomBusy after that. The "at most once" invariants (winner
// assignment, trivia claims) hold because the deciding check runs inside the
// mutation function against a fresh read, and the write only lands if
// nothing moved underneath it.
//
// Points are always recomputed from server-held truth (click counts, the
// stored answer key, the recorded winner), never accepted from the client,
// so replaying the same update is idempotent and a client cannot claim
// points it did not earn.

package gamesync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlynn/speakerbingo/internal/bingo"
	"github.com/mrlynn/speakerbingo/internal/challenge"
	"github.com/mrlynn/speakerbingo/internal/grid"
	"github.com/mrlynn/speakerbingo/internal/identity"
	"github.com/mrlynn/speakerbingo/internal/room"
	"github.com/mrlynn/speakerbingo/internal/scoring"
	"github.com/mrlynn/speakerbingo/internal/store"
	"github.com/mrlynn/speakerbingo/internal/trivia"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found in room")
	ErrRoomBusy       = errors.New("room busy, retry")
	ErrRoomFull       = errors.New("room is full")
	ErrRoomFinished   = errors.New("game already finished")
	ErrForbidden      = errors.New("only the host may do that")
)

// conflictRetries bounds how often a mutation is re-applied after a
// concurrent write before giving up with ErrRoomBusy.
const conflictRetries = 3

// createRetries bounds room-code collision retries on create.
const createRetries = 5

// Config tunes the service.
type Config struct {
	MaxPlayers            int
	TriviaIntervalMinutes int
}

// Service orchestrates all room operations on top of a Store.
type Service struct {
	store store.Store
	cfg   Config
	now   func() time.Time
}

// New constructs a Service. Zero config fields fall back to defaults
// (8 players, 5-minute trivia rotation).
func New(st store.Store, cfg Config) *Service {
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = 8
	}
	if cfg.TriviaIntervalMinutes <= 0 {
		cfg.TriviaIntervalMinutes = trivia.DefaultIntervalMinutes
	}
	return &Service{store: st, cfg: cfg, now: time.Now}
}

// CreateRoom builds a new room with the host's grid and persists it under a
// fresh unique code.
func (s *Service) CreateRoom(ctx context.Context, hostName, category string) (*room.Room, string, error) {
	g, err := grid.New(category)
	if err != nil {
		return nil, "", err
	}
	playerID := identity.NewPlayerID()
	host := room.Player{
		ID:          playerID,
		Name:        hostName,
		IsHost:      true,
		Grid:        g,
		Selected:    grid.NewSelection(),
		ClickCounts: map[string]int{},
		JoinedAt:    s.now(),
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		rm := &room.Room{
			RoomCode:  room.NewCode(),
			Status:    room.StatusWaiting,
			Players:   []room.Player{host},
			Category:  category,
			Trivia:    &room.Trivia{IntervalMinutes: s.cfg.TriviaIntervalMinutes},
			CreatedAt: s.now(),
		}
		err := s.store.Create(ctx, rm)
		if err == nil {
			log.Info().Str("roomCode", rm.RoomCode).Str("category", category).Msg("room created")
			return rm, playerID, nil
		}
		if !errors.Is(err, store.ErrDuplicateCode) {
			return nil, "", err
		}
	}
	return nil, "", ErrRoomBusy
}

// JoinRoom appends a new player, with a freshly drawn grid in the room's
// category, and moves the room into play.
func (s *Service) JoinRoom(ctx context.Context, code, playerName string) (*room.Room, string, error) {
	playerID := identity.NewPlayerID()
	rm, err := s.mutate(ctx, code, func(rm *room.Room) error {
		if rm.Finished() {
			return ErrRoomFinished
		}
		if len(rm.Players) >= s.cfg.MaxPlayers {
			return ErrRoomFull
		}
		g, err := grid.New(rm.Category)
		if err != nil {
			return err
		}
		rm.Players = append(rm.Players, room.Player{
			ID:          playerID,
			Name:        playerName,
			Grid:        g,
			Selected:    grid.NewSelection(),
			ClickCounts: map[string]int{},
			JoinedAt:    s.now(),
		})
		if rm.Status == room.StatusWaiting {
			rm.Status = room.StatusPlaying
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("roomCode", code).Str("playerId", playerID).Msg("player joined")
	return rm, playerID, nil
}

// ApplyCellUpdate upserts one player's board state. The player's points are
// recomputed from the click counts, the room's trivia history, and the
// winner record, so re-applying the same payload is a no-op. A hasWon claim
// is honored only if the selection matrix actually contains a bingo, and
// the winner field is set at most once: the first write to land wins, and
// a later claimant's board update still succeeds without touching it.
func (s *Service) ApplyCellUpdate(ctx context.Context, code, playerID string, selected [room.GridSize][room.GridSize]bool, clickCounts map[string]int, hasWon bool) (*room.Room, error) {
	return s.mutate(ctx, code, func(rm *room.Room) error {
		p := rm.FindPlayer(playerID)
		if p == nil {
			return ErrPlayerNotFound
		}

		selected[2][2] = true // FREE center is never unmarked
		p.Selected = selected
		if clickCounts == nil {
			clickCounts = map[string]int{}
		}
		p.ClickCounts = clickCounts

		won := hasWon && bingo.Won(selected)
		if won && rm.Winner == "" && !rm.Finished() {
			rm.Winner = playerID
			rm.Status = room.StatusFinished
			p.HasWon = true
			finished := s.now()
			rm.FinishedAt = &finished
		}
		p.Points = s.scorePlayer(rm, p)

		if rm.Status == room.StatusWaiting {
			rm.Status = room.StatusPlaying
		}
		return nil
	})
}

// scorePlayer derives a player's points entirely from stored state:
// cumulative click values, trivia claims in the history, and the bingo
// bonus for the recorded winner.
func (s *Service) scorePlayer(rm *room.Room, p *room.Player) int {
	total := 0
	for key, count := range p.ClickCounts {
		r, c, ok := parseCellKey(key)
		if !ok {
			continue
		}
		if !p.Selected[r][c] && !(r == 2 && c == 2) {
			// A reset cell keeps no points; clicks only count while the
			// cell is marked.
			continue
		}
		for k := 1; k <= count; k++ {
			total += scoring.Points(r, c, k)
		}
	}
	if rm.Trivia != nil {
		for _, h := range rm.Trivia.QuestionHistory {
			if h.AnsweredBy == p.ID {
				total += h.Points
			}
		}
	}
	if rm.Winner == p.ID {
		total += scoring.BingoBonus
	}
	return total
}

// StopGame ends the game early. Host only; the current top scorer is
// recorded as the winner.
func (s *Service) StopGame(ctx context.Context, code, requesterID string) (*room.Room, error) {
	return s.mutate(ctx, code, func(rm *room.Room) error {
		host := rm.Host()
		if host == nil || host.ID != requesterID {
			return ErrForbidden
		}
		if rm.Finished() {
			return ErrRoomFinished
		}
		ranked := make([]*room.Player, 0, len(rm.Players))
		for i := range rm.Players {
			ranked = append(ranked, &rm.Players[i])
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })
		if len(ranked) > 0 {
			rm.Winner = ranked[0].ID
			ranked[0].HasWon = true
		}
		rm.Status = room.StatusFinished
		rm.EndedBy = room.EndedByHost
		finished := s.now()
		rm.FinishedAt = &finished
		return nil
	})
}

// GetState returns the authoritative room snapshot. Reading is what drives
// time-based trivia transitions: if a rotation is due it is applied and
// persisted here, so polling alone keeps trivia fresh with no scheduler.
// A conflict during the rotation write means another client's operation
// landed first; the re-read picks up whatever state won.
func (s *Service) GetState(ctx context.Context, code string) (*room.Room, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		rm, ver, err := s.store.Get(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		if !trivia.EnsureRotation(rm, s.now()) {
			return rm, nil
		}
		err = s.store.Update(ctx, code, ver, rm)
		if err == nil {
			return rm, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		log.Debug().Str("roomCode", code).Int("attempt", attempt+1).Msg("rotation write conflicted, re-reading")
	}
	return nil, ErrRoomBusy
}

// SubmitTriviaAnswer applies one player's answer to the room's current
// question. The first correct claim to reach the store wins; a concurrent
// claimant conflicts on the version, re-reads a document with answeredBy
// set, and gets ErrAlreadyAnswered from its retry.
func (s *Service) SubmitTriviaAnswer(ctx context.Context, code, playerID, playerName, questionID string, answerIndex int) (trivia.SubmitResult, error) {
	var result trivia.SubmitResult
	_, err := s.mutate(ctx, code, func(rm *room.Room) error {
		if rm.FindPlayer(playerID) == nil {
			return ErrPlayerNotFound
		}
		trivia.EnsureRotation(rm, s.now())
		var err error
		result, err = trivia.SubmitAnswer(rm, playerID, playerName, questionID, answerIndex, s.now())
		return err
	})
	return result, err
}

// StatsFor assembles the end-of-game statistics snapshot the challenge and
// achievement evaluators run against.
func (s *Service) StatsFor(rm *room.Room, playerID string) (challenge.GameStats, error) {
	p := rm.FindPlayer(playerID)
	if p == nil {
		return challenge.GameStats{}, ErrPlayerNotFound
	}

	marked := 0
	onlyEdges := true
	for r := 0; r < room.GridSize; r++ {
		for c := 0; c < room.GridSize; c++ {
			if r == 2 && c == 2 {
				continue
			}
			if p.Selected[r][c] {
				marked++
				if r != 0 && r != 4 && c != 0 && c != 4 {
					onlyEdges = false
				}
			}
		}
	}
	maxClicks := 0
	for _, n := range p.ClickCounts {
		if n > maxClicks {
			maxClicks = n
		}
	}

	rank := 1
	for i := range rm.Players {
		if rm.Players[i].ID != playerID && rm.Players[i].Points > p.Points {
			rank++
		}
	}

	// Completion is anchored to the recorded finish time, so the same win
	// reports the same duration no matter when stats are queried.
	var completion time.Duration
	if p.HasWon && rm.FinishedAt != nil {
		completion = rm.FinishedAt.Sub(rm.CreatedAt)
	}

	return challenge.GameStats{
		Points:                  p.Points,
		HasBingo:                p.HasWon,
		MarkedSquares:           marked,
		MaxClicksOnSquare:       maxClicks,
		TimeToCompletion:        completion,
		UsedOnlyEdgesAndCorners: marked > 0 && onlyEdges,
		Rank:                    rank,
		IsMultiplayer:           len(rm.Players) > 1,
		Category:                rm.Category,
	}, nil
}

// Snapshot returns a client-safe copy of the room: the current trivia
// question is redacted so the answer key never leaves the server early.
func Snapshot(rm *room.Room) *room.Room {
	cp := *rm
	if rm.Trivia != nil {
		t := *rm.Trivia
		t.CurrentQuestion = trivia.Redacted(rm.Trivia.CurrentQuestion)
		cp.Trivia = &t
	}
	return &cp
}

// mutate runs fn against a fresh read of the room and writes the result
// back conditionally, retrying the whole cycle on version conflict. Errors
// from fn abort without writing.
func (s *Service) mutate(ctx context.Context, code string, fn func(*room.Room) error) (*room.Room, error) {
	for attempt := 0; attempt < conflictRetries; attempt++ {
		rm, ver, err := s.store.Get(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		if err := fn(rm); err != nil {
			return nil, err
		}
		err = s.store.Update(ctx, code, ver, rm)
		if err == nil {
			return rm, nil
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		log.Debug().Str("roomCode", code).Int("attempt", attempt+1).Msg("write conflicted, re-reading")
	}
	return nil, ErrRoomBusy
}

// parseCellKey decodes a "row,col" click-count key; malformed or
// out-of-range keys are skipped by the scorer.
func parseCellKey(key string) (int, int, bool) {
	var r, c int
	if n, err := fmt.Sscanf(key, "%d,%d", &r, &c); n != 2 || err != nil {
		return 0, 0, false
	}
	if r < 0 || r >= room.GridSize || c < 0 || c >= room.GridSize {
		return 0, 0, false
	}
	return r, c, true
}
