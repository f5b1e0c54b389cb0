package profile

import (
	"context"
	"testing"
	"time"

	"github.com/mrlynn/speakerbingo/internal/challenge"
)

func TestApplyGameTotalsAndBests(t *testing.T) {
	p := New("p1", "Ana")
	now := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)

	p.ApplyGame(challenge.GameStats{
		Points: 800, HasBingo: true, TimeToCompletion: 4 * time.Minute,
		Category: "conference", IsMultiplayer: true, Rank: 1,
	}, now)

	if p.TotalGames != 1 || p.TotalPoints != 800 || p.TotalBingos != 1 {
		t.Fatalf("totals: %+v", p)
	}
	if p.HighestScore != 800 {
		t.Fatalf("highestScore = %d", p.HighestScore)
	}
	if p.FastestBingoMs != (4 * time.Minute).Milliseconds() {
		t.Fatalf("fastestBingo = %d", p.FastestBingoMs)
	}

	// Slower win must not regress the best time, lower score not the best score.
	p.ApplyGame(challenge.GameStats{
		Points: 300, HasBingo: true, TimeToCompletion: 9 * time.Minute, Category: "conference",
	}, now.Add(time.Hour))
	if p.FastestBingoMs != (4 * time.Minute).Milliseconds() {
		t.Fatalf("fastestBingo regressed to %d", p.FastestBingoMs)
	}
	if p.HighestScore != 800 {
		t.Fatalf("highestScore regressed to %d", p.HighestScore)
	}
	cs := p.CategoryStats["conference"]
	if cs.Games != 2 || cs.Bingos != 2 || cs.Points != 1100 {
		t.Fatalf("category stats: %+v", cs)
	}
}

func TestApplyGameStreakByCalendarDay(t *testing.T) {
	p := New("p1", "Ana")
	day1 := time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC)

	p.ApplyGame(challenge.GameStats{Points: 10}, day1)
	if p.CurrentStreak != 1 {
		t.Fatalf("streak after first game = %d", p.CurrentStreak)
	}
	// Second game the same day doesn't double-count.
	p.ApplyGame(challenge.GameStats{Points: 10}, day1.Add(30*time.Minute))
	if p.CurrentStreak != 1 {
		t.Fatalf("streak after same-day game = %d", p.CurrentStreak)
	}
	// Next calendar day extends the streak.
	p.ApplyGame(challenge.GameStats{Points: 10}, day1.AddDate(0, 0, 1))
	if p.CurrentStreak != 2 {
		t.Fatalf("streak after next day = %d", p.CurrentStreak)
	}
	// Skipping a day resets it.
	p.ApplyGame(challenge.GameStats{Points: 10}, day1.AddDate(0, 0, 4))
	if p.CurrentStreak != 1 {
		t.Fatalf("streak after gap = %d", p.CurrentStreak)
	}
}

func TestApplyGameUnlocksAchievementsOnce(t *testing.T) {
	p := New("p1", "Ana")
	now := time.Now()
	win := challenge.GameStats{Points: 1200, HasBingo: true, TimeToCompletion: 2 * time.Minute}

	newly := p.ApplyGame(win, now)
	if len(newly) == 0 {
		t.Fatal("expected unlocks")
	}
	before := len(p.Achievements)
	p.ApplyGame(win, now.AddDate(0, 0, 1))
	for _, id := range p.Achievements[:before] {
		count := 0
		for _, other := range p.Achievements {
			if other == id {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("achievement %q appears %d times", id, count)
		}
	}
}

func TestMemoryStoreTopOrdersByPoints(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	for _, row := range []struct {
		id     string
		points int
	}{{"a", 100}, {"b", 900}, {"c", 500}} {
		p := New(row.id, row.id)
		p.TotalPoints = row.points
		if err := st.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert %s: %v", row.id, err)
		}
	}

	top, err := st.Top(ctx, 2)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].PlayerID != "b" || top[1].PlayerID != "c" {
		t.Fatalf("leaderboard = %+v", top)
	}
}

func TestMemoryStoreGetMissingIsNil(t *testing.T) {
	p, err := NewMemoryStore().Get(context.Background(), "ghost")
	if err != nil || p != nil {
		t.Fatalf("got %+v, %v; want nil, nil", p, err)
	}
}
