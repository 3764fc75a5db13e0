package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/plusminus/internal/config"
	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/games/plusminus"
	"github.com/vovakirdan/plusminus/internal/leaderboard"
	"github.com/vovakirdan/plusminus/internal/puzzle"
	"github.com/vovakirdan/plusminus/internal/storage"
)

func newTestServices(t *testing.T) Services {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "plusminus.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return Services{
		Config: config.Default(),
		Store:  store,
		Player: "tester",
		Logger: log.New(io.Discard),
	}
}

func newTestGameModel(t *testing.T, svc Services) (GameModel, *plusminus.Game) {
	t.Helper()
	g := plusminus.New(4)
	cfg := core.DefaultConfig()
	cfg.GridSize = 4
	cfg.Level = 1
	m := NewGameModel(g, svc, cfg)
	m.Init()
	return m, g
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

// press sends keys and then one tick so the game applies them.
func press(t *testing.T, m GameModel, keys ...tea.KeyMsg) (GameModel, tea.Cmd) {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, k)
	}
	return send(t, m, TickMsg{})
}

func directionKey(from, to puzzle.Pos) tea.KeyMsg {
	switch {
	case to.Row > from.Row:
		return tea.KeyMsg{Type: tea.KeyDown}
	case to.Row < from.Row:
		return tea.KeyMsg{Type: tea.KeyUp}
	case to.Col > from.Col:
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
}

// playToEnd starts on the cursor tile and always takes the first legal
// destination until the game finishes. It returns the command of the
// finishing tick.
func playToEnd(t *testing.T, m GameModel, g *plusminus.Game) (GameModel, tea.Cmd) {
	t.Helper()
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for i := 0; i < 16; i++ {
		s := g.Snapshot().Puzzle
		if s.Finished {
			return m, cmd
		}
		m, cmd = press(t, m, directionKey(s.Position, s.Legal[0]))
	}
	if !g.Snapshot().Puzzle.Finished {
		t.Fatal("game did not finish within 16 moves")
	}
	return m, cmd
}

// collect runs cmd and every command batched inside it, returning the
// messages of the given type.
func collect[T tea.Msg](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

func TestGameModelRemembersLevel(t *testing.T) {
	svc := newTestServices(t)
	m, g := newTestGameModel(t, svc)

	size, level, ok, err := svc.Store.LastLevel()
	if err != nil || !ok || size != 4 || level != 1 {
		t.Fatalf("LastLevel() = (%d, %d, %v, %v), expected (4, 1, true, nil)", size, level, ok, err)
	}

	_, _ = press(t, m, runeKey("n"))
	if g.Level() != 2 {
		t.Fatalf("Level() = %d after next, expected 2", g.Level())
	}
	size, level, _, _ = svc.Store.LastLevel()
	if size != 4 || level != 2 {
		t.Errorf("LastLevel() = (%d, %d) after next, expected (4, 2)", size, level)
	}
}

func TestGameModelPersistsFinishedGame(t *testing.T) {
	svc := newTestServices(t)
	m, g := newTestGameModel(t, svc)

	m, _ = playToEnd(t, m, g)
	s := g.Snapshot().Puzzle

	best, ok, err := svc.Store.Best("4x4_nr1")
	if err != nil || !ok {
		t.Fatalf("Best() = (%v, %v, %v), expected a stored result", best, ok, err)
	}
	if best.Score != s.Score || best.Moves != s.Moves {
		t.Errorf("stored best = %+v, expected score %d in %d moves", best, s.Score, s.Moves)
	}

	games, err := svc.Store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("len(RecentGames()) = %d, expected 1", len(games))
	}
	got := games[0]
	if got.LevelID != "4x4_nr1" || got.Player != "tester" || !got.Finished || got.Score != s.Score || len(got.Path) != s.Moves {
		t.Errorf("stored game = %+v", got)
	}
	if !m.State().GameOver {
		t.Error("State().GameOver should be set after the finishing tick")
	}
	if !strings.Contains(m.View(), "FINISHED") {
		t.Error("View() should show the finished overlay")
	}
}

func TestGameModelStoresFinishOncePerAttempt(t *testing.T) {
	svc := newTestServices(t)
	m, g := newTestGameModel(t, svc)

	countGames := func() int {
		t.Helper()
		games, err := svc.Store.RecentGames(10)
		if err != nil {
			t.Fatalf("RecentGames() error = %v", err)
		}
		return len(games)
	}

	m, _ = playToEnd(t, m, g)
	if n := countGames(); n != 1 {
		t.Fatalf("len(RecentGames()) = %d after finishing, expected 1", n)
	}

	// Undo and redo re-enter the same finish.
	m, _ = press(t, m, runeKey("u"))
	m, _ = press(t, m, runeKey("y"))
	if !g.Snapshot().Puzzle.Finished {
		t.Fatal("redo should finish the game again")
	}
	if n := countGames(); n != 1 {
		t.Errorf("len(RecentGames()) = %d after undo/redo, expected 1", n)
	}

	// A restart begins a new attempt, so the same finish counts again.
	m, _ = press(t, m, runeKey("r"))
	_, _ = playToEnd(t, m, g)
	if n := countGames(); n != 2 {
		t.Errorf("len(RecentGames()) = %d after replaying, expected 2", n)
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	svc := newTestServices(t)

	m, _ := newTestGameModel(t, svc)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
		t.Errorf("esc in a session: back %v quitting %v cmd %v", m.BackToMenu(), m.IsQuitting(), cmd != nil)
	}

	m, _ = newTestGameModel(t, svc)
	m.quitOnBack = true
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsQuitting() || cmd == nil {
		t.Error("esc in standalone play should quit")
	}

	m, _ = newTestGameModel(t, svc)
	m, cmd = send(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelResizeKeepsProgress(t *testing.T) {
	svc := newTestServices(t)
	m, g := newTestGameModel(t, svc)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 8})
	if snap := g.Snapshot(); !snap.TooSmall || snap.Puzzle.Moves != 1 {
		t.Errorf("after shrinking: too small %v moves %d, expected true and 1", snap.TooSmall, snap.Puzzle.Moves)
	}

	_, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if snap := g.Snapshot(); snap.TooSmall || snap.Puzzle.Moves != 1 {
		t.Errorf("after growing: too small %v moves %d, expected false and 1", snap.TooSmall, snap.Puzzle.Moves)
	}
}

func TestGameModelTabWithoutLeaderboard(t *testing.T) {
	svc := newTestServices(t)
	m, _ := newTestGameModel(t, svc)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showBoard {
		t.Error("tab should not open a leaderboard that is disabled")
	}
	if m.Status() != "No leaderboard for this grid" {
		t.Errorf("Status() = %q", m.Status())
	}
}

// fakeLeaderboard is a leaderboard service holding posted submissions.
type fakeLeaderboard struct {
	mu      sync.Mutex
	results []leaderboard.Result
	posted  []leaderboard.Submission
}

func (f *fakeLeaderboard) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /highscores/lvl/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		json.NewEncoder(w).Encode(f.results)
	})
	mux.HandleFunc("POST /submitScore", func(w http.ResponseWriter, r *http.Request) {
		var sub leaderboard.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.posted = append(f.posted, sub)
		f.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func withLeaderboard(t *testing.T, svc Services, fake *fakeLeaderboard) Services {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	svc.Config.Leaderboard = config.LeaderboardConfig{
		Enabled:     true,
		API:         srv.URL,
		MinGridSize: 4,
		MaxEntries:  10,
	}
	svc.Leaderboard = leaderboard.NewClient(srv.URL)
	return svc
}

func TestGameModelPostsQualifyingScore(t *testing.T) {
	fake := &fakeLeaderboard{}
	svc := withLeaderboard(t, newTestServices(t), fake)
	m, g := newTestGameModel(t, svc)

	boards := collect[boardMsg](m.levelLoaded())
	if len(boards) != 1 || boards[0].board.Err != nil {
		t.Fatalf("level load fetched %+v, expected one board", boards)
	}
	m, _ = send(t, m, boards[0])
	if m.board == nil || m.board.LevelID != "4x4_nr1" {
		t.Fatalf("board not stored: %+v", m.board)
	}

	m, cmd := playToEnd(t, m, g)
	submits := collect[submitMsg](cmd)
	if len(submits) != 1 || submits[0].err != nil {
		t.Fatalf("finish produced submissions %+v, expected one successful post", submits)
	}

	fake.mu.Lock()
	posted := fake.posted
	fake.mu.Unlock()
	if len(posted) != 1 {
		t.Fatalf("server got %d submissions, expected 1", len(posted))
	}
	s := g.Snapshot().Puzzle
	sub := posted[0]
	if sub.PlayerName != "tester" || sub.LevelID != "4x4_nr1" || sub.Score != s.Score || sub.Moves != s.Moves || !sub.Finished {
		t.Errorf("posted submission = %+v", sub)
	}

	m, cmd = send(t, m, submits[0])
	if m.Status() != "Score posted" {
		t.Errorf("Status() = %q after posting", m.Status())
	}
	if refetch := collect[boardMsg](cmd); len(refetch) != 1 {
		t.Errorf("posting should refetch the board, got %d fetches", len(refetch))
	}

	// Re-entering the same finish through undo/redo is not posted twice.
	m, _ = press(t, m, runeKey("u"))
	_, cmd = press(t, m, runeKey("y"))
	if again := collect[submitMsg](cmd); len(again) != 0 {
		t.Errorf("redo posted the same finish again: %+v", again)
	}
}

func TestGameModelSkipsPostWithoutPlayerName(t *testing.T) {
	fake := &fakeLeaderboard{}
	svc := withLeaderboard(t, newTestServices(t), fake)
	svc.Player = "x"
	m, g := newTestGameModel(t, svc)

	m, _ = send(t, m, collect[boardMsg](m.levelLoaded())[0])
	m, cmd := playToEnd(t, m, g)

	if submits := collect[submitMsg](cmd); len(submits) != 0 {
		t.Errorf("invalid player name still posted: %+v", submits)
	}
	if !strings.Contains(m.Status(), "player name") {
		t.Errorf("Status() = %q, expected a player name hint", m.Status())
	}
}

func TestGameModelIgnoresStaleBoard(t *testing.T) {
	svc := newTestServices(t)
	m, _ := newTestGameModel(t, svc)

	m, _ = send(t, m, boardMsg{board: leaderboard.Board{LevelID: "4x4_nr9"}})
	if m.board != nil {
		t.Error("a board for another level should be ignored")
	}
}
