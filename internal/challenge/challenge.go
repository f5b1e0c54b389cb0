// internal/challenge/challenge.go
//
// Daily challenge evaluation. The day's challenge is selected
// deterministically from the table by day-of-year, so every player worldwide
// sees the same challenge on the same UTC calendar date without any
// server-side coordination. Rules are pure predicates over a GameStats
// snapshot taken at the end of a session.

package challenge

import "time"

// GameStats is the end-of-game snapshot the evaluators run against.
type GameStats struct {
	Points                  int           `json:"points"`
	HasBingo                bool          `json:"hasBingo"`
	MarkedSquares           int           `json:"markedSquares"`
	MaxClicksOnSquare       int           `json:"maxClicksOnSquare"`
	TimeToCompletion        time.Duration `json:"timeToCompletion"`
	UsedOnlyEdgesAndCorners bool          `json:"usedOnlyEdgesAndCorners"`
	Rank                    int           `json:"rank"`
	IsMultiplayer           bool          `json:"isMultiplayer"`
	Category                string        `json:"category"`
}

// Challenge is one daily challenge rule.
type Challenge struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Reward      int                  `json:"reward"`
	Rule        func(GameStats) bool `json:"-"`
}

var challenges = []Challenge{
	{
		ID: "speed-demon", Title: "Speed Demon",
		Description: "Get a bingo in under five minutes.", Reward: 500,
		Rule: func(s GameStats) bool { return s.HasBingo && s.TimeToCompletion > 0 && s.TimeToCompletion < 5*time.Minute },
	},
	{
		ID: "high-roller", Title: "High Roller",
		Description: "Score 1500 points or more in one game.", Reward: 400,
		Rule: func(s GameStats) bool { return s.Points >= 1500 },
	},
	{
		ID: "edge-lord", Title: "Edge Lord",
		Description: "Win using only edge and corner squares.", Reward: 600,
		Rule: func(s GameStats) bool { return s.HasBingo && s.UsedOnlyEdgesAndCorners },
	},
	{
		ID: "social-butterfly", Title: "Social Butterfly",
		Description: "Finish a multiplayer game with at least 12 squares marked.", Reward: 300,
		Rule: func(s GameStats) bool { return s.IsMultiplayer && s.MarkedSquares >= 12 },
	},
	{
		ID: "first-place", Title: "Top of the Heap",
		Description: "Finish first in a multiplayer game.", Reward: 450,
		Rule: func(s GameStats) bool { return s.IsMultiplayer && s.Rank == 1 },
	},
	{
		ID: "completionist", Title: "Completionist",
		Description: "Mark 20 or more squares in one game.", Reward: 350,
		Rule: func(s GameStats) bool { return s.MarkedSquares >= 20 },
	},
	{
		ID: "heard-it-again", Title: "Heard It Again",
		Description: "Click the same square at least four times.", Reward: 250,
		Rule: func(s GameStats) bool { return s.MaxClicksOnSquare >= 4 },
	},
}

// Daily returns the challenge for the given time's UTC calendar day.
func Daily(t time.Time) Challenge {
	return challenges[t.UTC().YearDay()%len(challenges)]
}

// Completed reports whether the stats satisfy the given day's challenge.
func Completed(stats GameStats, t time.Time) (Challenge, bool) {
	c := Daily(t)
	return c, c.Rule(stats)
}

// All returns the full challenge table in rotation order.
func All() []Challenge { return challenges }
