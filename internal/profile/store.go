// internal/profile/store.go
//
// Leaderboard mirror for player profiles. The profile document is stored
// whole (JSON) with the total-points column denormalized for the top-N
// query. Same two-adapter split as the room store: memory for development
// and tests, SQLite for durability.

package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// LeaderboardRow is one entry of the points leaderboard.
type LeaderboardRow struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	TotalBingos int    `json:"totalBingos"`
}

// Store persists profiles and serves the leaderboard.
type Store interface {
	// Upsert saves the profile, replacing any previous copy.
	Upsert(ctx context.Context, p *Profile) error

	// Get loads a profile; (nil, nil) when none exists yet.
	Get(ctx context.Context, playerID string) (*Profile, error)

	// Top returns up to limit rows ordered by total points descending.
	Top(ctx context.Context, limit int) ([]LeaderboardRow, error)
}

// ----------------------------- memory ------------------------------------

type memoryStore struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewMemoryStore constructs the in-memory profile store.
func NewMemoryStore() Store {
	return &memoryStore{profiles: make(map[string][]byte)}
}

func (m *memoryStore) Upsert(ctx context.Context, p *Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", p.PlayerID, err)
	}
	m.mu.Lock()
	m.profiles[p.PlayerID] = doc
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Get(ctx context.Context, playerID string) (*Profile, error) {
	m.mu.RLock()
	doc, ok := m.profiles[playerID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var p Profile
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile %s: %w", playerID, err)
	}
	return &p, nil
}

func (m *memoryStore) Top(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	rows := make([]LeaderboardRow, 0, len(m.profiles))
	for _, doc := range m.profiles {
		var p Profile
		if err := json.Unmarshal(doc, &p); err != nil {
			continue
		}
		rows = append(rows, LeaderboardRow{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			TotalPoints: p.TotalPoints,
			TotalBingos: p.TotalBingos,
		})
	}
	m.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// ----------------------------- sqlite ------------------------------------

type sqlStore struct {
	db *sql.DB
}

// NewSQLStore wraps the shared database handle (schema applied by
// store.OpenDB) as a profile Store.
func NewSQLStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Upsert(ctx context.Context, p *Profile) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", p.PlayerID, err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO profiles (player_id, name, doc, total_points, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            name=excluded.name, doc=excluded.doc,
            total_points=excluded.total_points, updated_at=excluded.updated_at`,
		p.PlayerID, p.Name, string(doc), p.TotalPoints,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.PlayerID, err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, playerID string) (*Profile, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM profiles WHERE player_id=?`, playerID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select profile %s: %w", playerID, err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile %s: %w", playerID, err)
	}
	return &p, nil
}

func (s *sqlStore) Top(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT doc FROM profiles
        ORDER BY total_points DESC, player_id ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p Profile
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			continue
		}
		out = append(out, LeaderboardRow{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			TotalPoints: p.TotalPoints,
			TotalBingos: p.TotalBingos,
		})
	}
	return out, rows.Err()
}
