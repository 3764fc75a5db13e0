// Package leaderboard talks to the remote high score service and turns its
// raw results into ranked entries.
package leaderboard

import (
	"errors"
	"math"
	"regexp"
	"slices"

	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/puzzle"
)

// ErrInvalidUsername is returned for names the service would reject.
var ErrInvalidUsername = errors.New("leaderboard: username must be 3-16 characters of a-z A-Z 0-9 _ -")

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,16}$`)

// ValidUsername reports whether name is acceptable for submission.
func ValidUsername(name string) bool {
	return usernameRe.MatchString(name)
}

// Result is one raw row returned by the service, best first.
type Result struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Moves      int    `json:"nMoves"`
}

// Entry is one leaderboard line: every player who reached Score in Moves.
type Entry struct {
	Score int
	Moves int
	Names []string
}

// Group folds raw results into at most maxEntries entries. Scores keep the
// order the service returned them in; within a score, move counts keep
// theirs. A player appears only in the first entry they qualify for, and an
// entry whose players all appeared earlier is dropped.
func Group(results []Result, maxEntries int) []Entry {
	var scores []int
	for _, r := range results {
		if !slices.Contains(scores, r.Score) {
			scores = append(scores, r.Score)
		}
	}

	var entries []Entry
	listed := make(map[string]bool)
	for _, score := range scores {
		var moves []int
		for _, r := range results {
			if r.Score == score && !slices.Contains(moves, r.Moves) {
				moves = append(moves, r.Moves)
			}
		}

		for _, m := range moves {
			if len(entries) == maxEntries {
				return entries
			}
			var names []string
			for _, r := range results {
				if r.Score == score && r.Moves == m && !listed[r.PlayerName] {
					names = append(names, r.PlayerName)
					listed[r.PlayerName] = true
				}
			}
			if len(names) > 0 {
				entries = append(entries, Entry{Score: score, Moves: m, Names: names})
			}
		}
	}
	return entries
}

// Threshold returns the lowest score that may still be posted: the last
// entry's score when the board is full, negative infinity otherwise.
func Threshold(entries []Entry, maxEntries int) float64 {
	if len(entries) >= maxEntries && len(entries) > 0 {
		return float64(entries[len(entries)-1].Score)
	}
	return math.Inf(-1)
}

// Unavailable is the threshold used while the board is loading or after a
// failed fetch: nothing qualifies.
var Unavailable = math.Inf(1)

// Qualifies reports whether score may be posted against threshold.
func Qualifies(score int, threshold float64) bool {
	return float64(score) >= threshold
}

// Submission is the game record posted to the service.
type Submission struct {
	PlayerName string   `json:"playerName"`
	LevelID    string   `json:"lvlID"`
	GridSize   int      `json:"gridSize"`
	LevelNum   int      `json:"lvlNumber"`
	Coords     [][2]int `json:"coords"`
	Vals       []int    `json:"vals"`
	MoveCur    int      `json:"iMoveCur"`
	Moves      int      `json:"nMoves"`
	Score      int      `json:"score"`
	Sign       int      `json:"sign"`
	Finished   bool     `json:"finished"`
}

// NewSubmission builds the submission for an engine attempt. The player
// name is validated here so callers can prompt again before any request.
func NewSubmission(rec puzzle.GameRecord, player string) (Submission, error) {
	if !ValidUsername(player) {
		return Submission{}, ErrInvalidUsername
	}
	size, n, err := levelgen.ParseLevelID(rec.LevelID)
	if err != nil {
		return Submission{}, err
	}

	path := rec.History.Path()
	sub := Submission{
		PlayerName: player,
		LevelID:    rec.LevelID,
		GridSize:   size,
		LevelNum:   n,
		Coords:     make([][2]int, 0, len(path)),
		Vals:       make([]int, 0, len(path)),
		MoveCur:    rec.History.Current(),
		Moves:      len(path),
		Score:      rec.Score,
		Sign:       rec.Sign,
		Finished:   rec.Finished,
	}
	for _, m := range path {
		sub.Coords = append(sub.Coords, [2]int{m.Row, m.Col})
		sub.Vals = append(sub.Vals, m.Value)
	}
	return sub, nil
}
