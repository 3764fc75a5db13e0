package leaderboard

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/puzzle"
)

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"bob", true},
		{"Player_One-2", true},
		{"abcdefghijklmnop", true},
		{"ab", false},
		{"abcdefghijklmnopq", false},
		{"with space", false},
		{"émile", false},
		{"", false},
		{"semi;colon", false},
	}
	for _, tt := range tests {
		if got := ValidUsername(tt.name); got != tt.want {
			t.Errorf("ValidUsername(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGroup(t *testing.T) {
	results := []Result{
		{PlayerName: "ann", Score: 20, Moves: 30},
		{PlayerName: "bob", Score: 20, Moves: 30},
		{PlayerName: "cat", Score: 20, Moves: 34},
		{PlayerName: "ann", Score: 18, Moves: 28},
		{PlayerName: "dan", Score: 18, Moves: 28},
		{PlayerName: "bob", Score: 15, Moves: 40},
		{PlayerName: "eve", Score: 15, Moves: 44},
	}

	got := Group(results, 10)
	want := []Entry{
		{Score: 20, Moves: 30, Names: []string{"ann", "bob"}},
		{Score: 20, Moves: 34, Names: []string{"cat"}},
		{Score: 18, Moves: 28, Names: []string{"dan"}},
		{Score: 15, Moves: 44, Names: []string{"eve"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupDropsFullyListedEntries(t *testing.T) {
	results := []Result{
		{PlayerName: "ann", Score: 9, Moves: 10},
		{PlayerName: "ann", Score: 7, Moves: 10},
		{PlayerName: "ann", Score: 5, Moves: 10},
	}
	got := Group(results, 10)
	want := []Entry{{Score: 9, Moves: 10, Names: []string{"ann"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupCapsEntries(t *testing.T) {
	var results []Result
	for i := 0; i < 8; i++ {
		results = append(results, Result{PlayerName: string(rune('a'+i)) + "xx", Score: 50 - i, Moves: 10})
	}
	// Two move counts for the third score must not push past the cap.
	results = append(results[:3], append([]Result{{PlayerName: "zed", Score: 48, Moves: 11}}, results[3:]...)...)

	got := Group(results, 3)
	if len(got) != 3 {
		t.Fatalf("len(Group()) = %d, want 3", len(got))
	}
	if got[2].Score != 48 || got[2].Moves != 10 {
		t.Errorf("last entry = %+v, want score 48 moves 10", got[2])
	}
}

func TestThreshold(t *testing.T) {
	full := []Entry{{Score: 9}, {Score: 7}, {Score: 4}}
	if got := Threshold(full, 3); got != 4 {
		t.Errorf("Threshold(full) = %v, want 4", got)
	}
	if got := Threshold(full[:2], 3); !math.IsInf(got, -1) {
		t.Errorf("Threshold(partial) = %v, want -Inf", got)
	}
	if got := Threshold(nil, 3); !math.IsInf(got, -1) {
		t.Errorf("Threshold(empty) = %v, want -Inf", got)
	}

	if !Qualifies(4, 4) {
		t.Error("a score equal to the threshold qualifies")
	}
	if Qualifies(3, 4) {
		t.Error("a score below the threshold does not qualify")
	}
	if Qualifies(1000, Unavailable) {
		t.Error("nothing qualifies while the board is unavailable")
	}
	if !Qualifies(-1000, math.Inf(-1)) {
		t.Error("any score qualifies for a board with free places")
	}
}

func TestNewSubmission(t *testing.T) {
	values := [][]int{{3, 1}, {2, 4}}
	e := puzzle.New(levelgen.DefaultOptions(2), puzzle.WithGenerator(func(string) ([][]int, error) {
		return values, nil
	}))
	if _, err := e.NewGame("2x2_nr5"); err != nil {
		t.Fatal(err)
	}
	for _, m := range [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}} {
		if _, err := e.AttemptMove(m[0], m[1]); err != nil {
			t.Fatal(err)
		}
	}

	got, err := NewSubmission(e.Record(), "player_1")
	if err != nil {
		t.Fatalf("NewSubmission() error = %v", err)
	}
	want := Submission{
		PlayerName: "player_1",
		LevelID:    "2x2_nr5",
		GridSize:   2,
		LevelNum:   5,
		Coords:     [][2]int{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		Vals:       []int{3, 1, 4, 2},
		MoveCur:    3,
		Moves:      4,
		Score:      3 - 1 + 4 - 2,
		Sign:       1,
		Finished:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewSubmission() mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewSubmission(e.Record(), "x"); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("NewSubmission() with bad name error = %v, want ErrInvalidUsername", err)
	}
}
