package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/highscores/lvl/8x8_nr2" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"playerName": "ann", "score": 12, "nMoves": 40, "extra": true},
			{"playerName": "bob", "score": 9, "nMoves": 38}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	got, err := c.Fetch(context.Background(), "8x8_nr2")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	want := []Result{
		{PlayerName: "ann", Score: 12, Moves: 40},
		{PlayerName: "bob", Score: 9, Moves: 38},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fetch() mismatch (-want +got):\n%s", diff)
	}
}

func TestClientFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Fetch(context.Background(), "8x8_nr1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Fetch() error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusInternalServerError || se.Body != "database down" {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	start := time.Now()
	_, err := c.Fetch(context.Background(), "8x8_nr1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Fetch() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout was not applied")
	}
}

func TestClientBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Result{
			{PlayerName: "ann", Score: 12, Moves: 40},
			{PlayerName: "bob", Score: 9, Moves: 38},
			{PlayerName: "cat", Score: 7, Moves: 30},
		})
	}))
	defer srv.Close()

	b := NewClient(srv.URL, WithMaxEntries(2)).Board(context.Background(), "8x8_nr1")
	if b.Err != nil {
		t.Fatalf("Board().Err = %v", b.Err)
	}
	if len(b.Entries) != 2 || b.Threshold != 9 {
		t.Errorf("Board() = %+v, want 2 entries with threshold 9", b)
	}
	if !b.Qualifies(9) || b.Qualifies(8) {
		t.Error("Qualifies() disagrees with the threshold")
	}

	failing := NewClient("http://127.0.0.1:1", WithTimeout(time.Second)).Board(context.Background(), "8x8_nr1")
	if failing.Err == nil {
		t.Fatal("Board() against a closed port should report an error")
	}
	if !math.IsInf(failing.Threshold, 1) || failing.Qualifies(math.MaxInt32) {
		t.Error("a failed fetch must block posting")
	}
}

func TestClientSubmit(t *testing.T) {
	var got Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submitScore" {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			http.Error(w, "bad content type "+ct, http.StatusBadRequest)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sub := Submission{
		PlayerName: "ann",
		LevelID:    "8x8_nr1",
		GridSize:   8,
		LevelNum:   1,
		Coords:     [][2]int{{0, 0}},
		Vals:       []int{5},
		Moves:      1,
		Score:      5,
		Sign:       -1,
	}
	if err := NewClient(srv.URL).Submit(context.Background(), sub); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if diff := cmp.Diff(sub, got); diff != "" {
		t.Errorf("server received (-want +got):\n%s", diff)
	}

	sub.PlayerName = "no"
	if err := NewClient(srv.URL).Submit(context.Background(), sub); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("Submit() with bad name error = %v, want ErrInvalidUsername", err)
	}
}

func TestSubmissionJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Submission{PlayerName: "ann"})
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"playerName", "lvlID", "gridSize", "lvlNumber", "coords", "vals", "iMoveCur", "nMoves", "score", "sign", "finished"} {
		if _, ok := fields[k]; !ok {
			t.Errorf("submission JSON lacks %q", k)
		}
	}
}
