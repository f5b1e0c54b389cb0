package challenge

import (
	"testing"
	"time"
)

func TestDailyIsDeterministicByCalendarDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)
	morning := Daily(day)
	evening := Daily(day.Add(23 * time.Hour))
	if morning.ID != evening.ID {
		t.Fatalf("same day picked %q then %q", morning.ID, evening.ID)
	}

	// A different timezone view of the same UTC day agrees too.
	tokyo := time.FixedZone("JST", 9*3600)
	if got := Daily(day.In(tokyo)); got.ID != morning.ID {
		t.Fatalf("timezone changed the daily challenge: %q vs %q", got.ID, morning.ID)
	}
}

func TestDailyRotatesAcrossDays(t *testing.T) {
	day := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := 0; i < len(All()); i++ {
		seen[Daily(day.AddDate(0, 0, i)).ID] = true
	}
	if len(seen) != len(All()) {
		t.Fatalf("consecutive days hit %d distinct challenges, want %d", len(seen), len(All()))
	}
}

func TestCompleted(t *testing.T) {
	// Find a day whose challenge is speed-demon so the fixture is stable.
	var day time.Time
	for i := 0; i < len(All()); i++ {
		d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		if Daily(d).ID == "speed-demon" {
			day = d
			break
		}
	}
	if day.IsZero() {
		t.Fatal("speed-demon not reachable in rotation")
	}

	fast := GameStats{HasBingo: true, TimeToCompletion: 2 * time.Minute}
	if _, ok := Completed(fast, day); !ok {
		t.Fatal("fast bingo should complete speed-demon")
	}
	slow := GameStats{HasBingo: true, TimeToCompletion: 20 * time.Minute}
	if _, ok := Completed(slow, day); ok {
		t.Fatal("slow bingo should not complete speed-demon")
	}
}

func TestEvaluateAchievementsIdempotentUnlock(t *testing.T) {
	stats := GameStats{HasBingo: true, Points: 1200, TimeToCompletion: 2 * time.Minute}
	unlocked := map[string]bool{}
	progress := map[string]int{}

	first := EvaluateAchievements(stats, unlocked, progress)
	if len(first) == 0 {
		t.Fatal("expected unlocks on a winning game")
	}
	if !unlocked["first-bingo"] || !unlocked["point-collector"] || !unlocked["lightning"] {
		t.Fatalf("unlocked = %v", unlocked)
	}

	// Re-running the same stats must not re-unlock anything already held.
	again := EvaluateAchievements(stats, unlocked, progress)
	for _, id := range again {
		if id == "first-bingo" || id == "point-collector" || id == "lightning" {
			t.Fatalf("achievement %q unlocked twice", id)
		}
	}
}

func TestEvaluateAchievementsMultiStepProgress(t *testing.T) {
	win := GameStats{HasBingo: true, UsedOnlyEdgesAndCorners: true}
	unlocked := map[string]bool{}
	progress := map[string]int{}

	for i := 1; i <= 4; i++ {
		EvaluateAchievements(win, unlocked, progress)
		if unlocked["corner-bingo-5"] {
			t.Fatalf("corner-bingo-5 unlocked after %d games", i)
		}
		if progress["corner-bingo-5"] != i {
			t.Fatalf("progress = %d after game %d", progress["corner-bingo-5"], i)
		}
	}
	newly := EvaluateAchievements(win, unlocked, progress)
	if !unlocked["corner-bingo-5"] {
		t.Fatal("corner-bingo-5 should unlock on the fifth qualifying game")
	}
	found := false
	for _, id := range newly {
		if id == "corner-bingo-5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("fifth game unlock list = %v", newly)
	}

	// Progress never decreases and the unlock never revokes.
	EvaluateAchievements(GameStats{}, unlocked, progress)
	if !unlocked["corner-bingo-5"] || progress["corner-bingo-5"] != 5 {
		t.Fatalf("state regressed: unlocked=%v progress=%d", unlocked["corner-bingo-5"], progress["corner-bingo-5"])
	}
}
