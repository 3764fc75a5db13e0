package storage

import (
	"cmp"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/puzzle"
)

// BestEntry is the stored best result of one level.
type BestEntry struct {
	LevelID   string
	Score     int
	Moves     int
	UpdatedAt time.Time
}

// Best implements puzzle.ScoreStore.
func (s *Store) Best(levelID string) (puzzle.BestResult, bool, error) {
	var b puzzle.BestResult
	err := s.db.QueryRow(
		"SELECT score, moves FROM best_results WHERE level_id = ?",
		levelID,
	).Scan(&b.Score, &b.Moves)
	if errors.Is(err, sql.ErrNoRows) {
		return puzzle.BestResult{}, false, nil
	}
	if err != nil {
		return puzzle.BestResult{}, false, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	return b, true, nil
}

// SaveBest stores score and moves as the best result of levelID unless the
// stored result is at least as good.
func (s *Store) SaveBest(levelID string, score, moves int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_results (level_id, score, moves, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET
			score = excluded.score,
			moves = excluded.moves,
			updated_at = excluded.updated_at
		 WHERE excluded.score > best_results.score
			OR (excluded.score = best_results.score AND excluded.moves < best_results.moves)`,
		levelID, score, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best result: %w", err)
	}
	return nil
}

// BestForGrid returns the stored best results of every level of a grid
// size, ordered by level number.
func (s *Store) BestForGrid(size int) ([]BestEntry, error) {
	rows, err := s.db.Query(
		`SELECT level_id, score, moves, updated_at
		 FROM best_results
		 WHERE level_id LIKE ? ESCAPE '\'`,
		fmt.Sprintf("%dx%d\\_nr%%", size, size),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best results: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.LevelID, &e.Score, &e.Moves, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	sortByLevel(entries)
	return entries, nil
}

// ClearBest deletes the best result of levelID.
func (s *Store) ClearBest(levelID string) error {
	_, err := s.db.Exec("DELETE FROM best_results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear best result: %w", err)
	}
	return nil
}

// levelNumber returns the K of an NxN_nrK identifier, 0 when malformed.
func levelNumber(id string) int {
	_, n, err := levelgen.ParseLevelID(id)
	if err != nil {
		return 0
	}
	return n
}

func sortByLevel(entries []BestEntry) {
	slices.SortFunc(entries, func(a, b BestEntry) int {
		return cmp.Compare(levelNumber(a.LevelID), levelNumber(b.LevelID))
	})
}

// Ensure Store implements puzzle.ScoreStore
var _ puzzle.ScoreStore = (*Store)(nil)
