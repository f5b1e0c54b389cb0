// internal/challenge/achievements.go
//
// Achievement rules and idempotent unlock evaluation. Single-step
// achievements unlock the first time their rule holds; multi-step ones keep
// a monotonically increasing progress counter, separate from the unlocked
// set, and unlock when the counter reaches Steps. Re-evaluating never
// double-unlocks and never revokes.

package challenge

import "time"

// Achievement is one unlockable rule. Steps == 1 marks a single-step
// achievement; larger values accumulate across games.
type Achievement struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Steps       int                  `json:"steps"`
	Rule        func(GameStats) bool `json:"-"`
}

var achievements = []Achievement{
	{
		ID: "first-bingo", Title: "Bingo!",
		Description: "Win your first game.", Steps: 1,
		Rule: func(s GameStats) bool { return s.HasBingo },
	},
	{
		ID: "point-collector", Title: "Point Collector",
		Description: "Score 1000+ points in a single game.", Steps: 1,
		Rule: func(s GameStats) bool { return s.Points >= 1000 },
	},
	{
		ID: "lightning", Title: "Lightning Round",
		Description: "Get a bingo in under three minutes.", Steps: 1,
		Rule: func(s GameStats) bool { return s.HasBingo && s.TimeToCompletion > 0 && s.TimeToCompletion < 3*time.Minute },
	},
	{
		ID: "corner-bingo-5", Title: "Corner Office",
		Description: "Win five games using only edges and corners.", Steps: 5,
		Rule: func(s GameStats) bool { return s.HasBingo && s.UsedOnlyEdgesAndCorners },
	},
	{
		ID: "veteran-25", Title: "Veteran",
		Description: "Finish 25 games.", Steps: 25,
		Rule: func(GameStats) bool { return true },
	},
	{
		ID: "crowd-favorite-10", Title: "Crowd Favorite",
		Description: "Finish 10 multiplayer games.", Steps: 10,
		Rule: func(s GameStats) bool { return s.IsMultiplayer },
	},
}

// Achievements returns the full rule table.
func Achievements() []Achievement { return achievements }

// EvaluateAchievements applies one game's stats to the player's unlocked set
// and progress counters, returning the ids newly unlocked by this game.
// unlocked and progress are mutated in place; counters only ever increase.
func EvaluateAchievements(stats GameStats, unlocked map[string]bool, progress map[string]int) []string {
	var newly []string
	for _, a := range achievements {
		if unlocked[a.ID] {
			continue
		}
		if !a.Rule(stats) {
			continue
		}
		if a.Steps <= 1 {
			unlocked[a.ID] = true
			newly = append(newly, a.ID)
			continue
		}
		progress[a.ID]++
		if progress[a.ID] >= a.Steps {
			unlocked[a.ID] = true
			newly = append(newly, a.ID)
		}
	}
	return newly
}
