package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/puzzle"
)

// GameRecord is a stored playthrough.
type GameRecord struct {
	ID          string
	LevelID     string
	GridSize    int
	LevelNumber int
	Player      string
	Score       int
	Moves       int
	Sign        int
	Finished    bool
	Path        []puzzle.Move
	CreatedAt   time.Time
}

// RecordFromEngine builds a GameRecord from an engine attempt.
func RecordFromEngine(rec puzzle.GameRecord, player string) GameRecord {
	size, n, _ := levelgen.ParseLevelID(rec.LevelID)
	path := rec.History.Path()
	return GameRecord{
		LevelID:     rec.LevelID,
		GridSize:    size,
		LevelNumber: n,
		Player:      player,
		Score:       rec.Score,
		Moves:       len(path),
		Sign:        rec.Sign,
		Finished:    rec.Finished,
		Path:        path,
	}
}

// EngineRecord rebuilds the engine attempt of a stored game, with the
// history cursor on the last move.
func (g GameRecord) EngineRecord() puzzle.GameRecord {
	h := puzzle.NewHistory()
	for _, m := range g.Path {
		h.Push(m)
	}
	return puzzle.GameRecord{
		LevelID:  g.LevelID,
		History:  h,
		Score:    g.Score,
		Sign:     g.Sign,
		Finished: g.Finished,
	}
}

// SaveGame records a playthrough and returns its generated ID.
func (s *Store) SaveGame(g GameRecord) (string, error) {
	path, err := json.Marshal(g.Path)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode path: %w", err)
	}
	id := uuid.NewString()

	_, err = s.db.Exec(
		`INSERT INTO games
		 (id, level_id, grid_size, level_number, player, score, moves, sign, finished, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		g.LevelID,
		g.GridSize,
		g.LevelNumber,
		g.Player,
		g.Score,
		g.Moves,
		g.Sign,
		g.Finished,
		string(path),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return id, nil
}

const gameColumns = `id, level_id, grid_size, level_number, player, score, moves, sign, finished, path, created_at`

// GameByID retrieves a playthrough by its ID. Returns nil when not found.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &g, nil
}

// RecentGames retrieves the most recent playthroughs.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
}

// TopGames retrieves the best finished playthroughs of a level: highest
// score first, fewer moves breaking ties.
func (s *Store) TopGames(levelID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games
		 WHERE level_id = ? AND finished = 1
		 ORDER BY score DESC, moves ASC, created_at ASC
		 LIMIT ?`,
		levelID, limit,
	)
}

// AllGames retrieves every playthrough, oldest first.
func (s *Store) AllGames() ([]GameRecord, error) {
	return s.queryGames(`SELECT ` + gameColumns + ` FROM games ORDER BY created_at ASC, rowid ASC`)
}

func (s *Store) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var g GameRecord
	var path string
	var createdAt any
	if err := row.Scan(
		&g.ID,
		&g.LevelID,
		&g.GridSize,
		&g.LevelNumber,
		&g.Player,
		&g.Score,
		&g.Moves,
		&g.Sign,
		&g.Finished,
		&path,
		&createdAt,
	); err != nil {
		return GameRecord{}, err
	}
	if err := json.Unmarshal([]byte(path), &g.Path); err != nil {
		return GameRecord{}, fmt.Errorf("decode path of game %s: %w", g.ID, err)
	}
	g.CreatedAt = parseTime(createdAt)
	return g, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	GamesCount int
	Finished   int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(finished), MAX(score), AVG(score), MAX(created_at)
		 FROM games
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.GamesCount, &st.Finished, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
