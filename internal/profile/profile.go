// internal/profile/profile.go
//
// Cumulative player profile, independent of any single room. The profile is
// client-owned: the server applies end-of-game stats when asked and mirrors
// the result to the leaderboard table, but never deletes one. Field names
// round-trip to the client unchanged.

package profile

import (
	"time"

	"github.com/mrlynn/speakerbingo/internal/challenge"
)

// CategoryStats tracks per-category lifetime numbers.
type CategoryStats struct {
	Games  int `json:"games"`
	Bingos int `json:"bingos"`
	Points int `json:"points"`
}

// Profile is one player's lifetime record.
type Profile struct {
	PlayerID       string                   `json:"playerId"`
	Name           string                   `json:"name"`
	TotalGames     int                      `json:"totalGames"`
	TotalBingos    int                      `json:"totalBingos"`
	TotalPoints    int                      `json:"totalPoints"`
	HighestScore   int                      `json:"highestScore"`
	FastestBingoMs int64                    `json:"fastestBingo"`
	CurrentStreak  int                      `json:"currentStreak"`
	LastPlayedDay  string                   `json:"lastPlayedDay"`
	CategoryStats  map[string]CategoryStats `json:"categoryStats"`
	Achievements   []string                 `json:"achievements"`
	Progress       map[string]int           `json:"achievementProgress"`
	SyncedRooms    []string                 `json:"syncedRooms,omitempty"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

// New creates an empty profile for a player.
func New(playerID, name string) *Profile {
	return &Profile{
		PlayerID:      playerID,
		Name:          name,
		CategoryStats: make(map[string]CategoryStats),
		Progress:      make(map[string]int),
	}
}

// dayKey is the calendar-day granularity used for streak accounting.
func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// syncedRoomsKept bounds the re-sync guard window; older room codes age out.
const syncedRoomsKept = 20

// AlreadySynced reports whether a finished game from this room was applied
// before, guarding against accidental double-syncs of the same game.
func (p *Profile) AlreadySynced(roomCode string) bool {
	for _, code := range p.SyncedRooms {
		if code == roomCode {
			return true
		}
	}
	return false
}

// RecordSync remembers a room code so a repeat sync is a no-op.
func (p *Profile) RecordSync(roomCode string) {
	if roomCode == "" || p.AlreadySynced(roomCode) {
		return
	}
	p.SyncedRooms = append(p.SyncedRooms, roomCode)
	if len(p.SyncedRooms) > syncedRoomsKept {
		p.SyncedRooms = p.SyncedRooms[len(p.SyncedRooms)-syncedRoomsKept:]
	}
}

// ApplyGame folds one finished game into the profile: totals, bests, streak
// by calendar day, per-category stats, and achievement evaluation. Returns
// the achievement ids newly unlocked by this game.
func (p *Profile) ApplyGame(stats challenge.GameStats, now time.Time) []string {
	p.TotalGames++
	p.TotalPoints += stats.Points
	if stats.Points > p.HighestScore {
		p.HighestScore = stats.Points
	}
	if stats.HasBingo {
		p.TotalBingos++
		ms := stats.TimeToCompletion.Milliseconds()
		if ms > 0 && (p.FastestBingoMs == 0 || ms < p.FastestBingoMs) {
			p.FastestBingoMs = ms
		}
	}

	today := dayKey(now)
	yesterday := dayKey(now.AddDate(0, 0, -1))
	switch p.LastPlayedDay {
	case today:
		// Streak already counted for today.
	case yesterday:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
	p.LastPlayedDay = today

	if stats.Category != "" {
		if p.CategoryStats == nil {
			p.CategoryStats = make(map[string]CategoryStats)
		}
		cs := p.CategoryStats[stats.Category]
		cs.Games++
		cs.Points += stats.Points
		if stats.HasBingo {
			cs.Bingos++
		}
		p.CategoryStats[stats.Category] = cs
	}

	if p.Progress == nil {
		p.Progress = make(map[string]int)
	}
	unlocked := make(map[string]bool, len(p.Achievements))
	for _, id := range p.Achievements {
		unlocked[id] = true
	}
	newly := challenge.EvaluateAchievements(stats, unlocked, p.Progress)
	p.Achievements = append(p.Achievements, newly...)

	p.UpdatedAt = now
	return newly
}
