package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/storage"
)

func menuKeys(t *testing.T, m MenuModel, keys ...tea.KeyMsg) MenuModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		mm, ok := next.(MenuModel)
		if !ok {
			t.Fatalf("Update returned %T, want MenuModel", next)
		}
		m = mm
	}
	return m
}

func TestGridItemsSortedBySize(t *testing.T) {
	var ids []string
	for _, it := range gridItems() {
		ids = append(ids, it.GameID)
	}
	want := []string{"4x4", "6x6", "8x8"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("grid items mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	svc := newTestServices(t)
	m := NewMenuModel(svc, core.DefaultConfig())

	// Default grid size 6 is highlighted without a stored level.
	m = menuKeys(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = menuKeys(t, m, runeKey("j"), runeKey("j"), tea.KeyMsg{Type: tea.KeyEnter})

	want := &MenuSelection{GameID: "6x6", Level: 3}
	if diff := cmp.Diff(want, m.Selected()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuRestoresLastLevel(t *testing.T) {
	svc := newTestServices(t)
	if err := svc.Store.SetLastLevel(8, 4); err != nil {
		t.Fatalf("SetLastLevel() error = %v", err)
	}
	if err := svc.Store.SaveBest("8x8_nr4", 11, 50); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}

	m := NewMenuModel(svc, core.DefaultConfig())
	m = menuKeys(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "SELECT LEVEL - Plus Minus 8x8") {
		t.Errorf("level select should open on the last grid:\n%s", view)
	}
	if !strings.Contains(view, ">  4. 8x8_nr4") || !strings.Contains(view, "best 11 in 50") {
		t.Errorf("level select should highlight the last level with its best:\n%s", view)
	}

	m = menuKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inLevelSelect {
		t.Error("esc should leave the level select")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	svc := newTestServices(t)

	m := menuKeys(t, NewMenuModel(svc, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	m = menuKeys(t, NewMenuModel(svc, core.DefaultConfig()), runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestScoreboardRows(t *testing.T) {
	svc := newTestServices(t)
	if err := svc.Store.SaveBest("4x4_nr2", 6, 16); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}
	if _, err := svc.Store.SaveGame(storage.GameRecord{LevelID: "4x4_nr2", GridSize: 4, LevelNumber: 2, Score: 6, Moves: 16, Finished: true}); err != nil {
		t.Fatalf("SaveGame() error = %v", err)
	}

	rows, err := ScoreboardRows(svc.Store, 4, 3)
	if err != nil {
		t.Fatalf("ScoreboardRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, expected 3", len(rows))
	}
	if rows[0].Best != nil || rows[0].Stats != nil {
		t.Errorf("level 1 should be empty: %+v", rows[0])
	}
	r := rows[1]
	if r.LevelID != "4x4_nr2" || r.Best == nil || r.Best.Score != 6 || r.Stats == nil || r.Stats.GamesCount != 1 || r.Stats.Finished != 1 {
		t.Errorf("level 2 row = %+v", r)
	}

	noStore, err := ScoreboardRows(nil, 6, 2)
	if err != nil || len(noStore) != 2 || noStore[1].LevelID != "6x6_nr2" {
		t.Errorf("ScoreboardRows(nil) = %+v, %v", noStore, err)
	}
}

func TestSessionFlow(t *testing.T) {
	svc := newTestServices(t)
	cfg := core.DefaultConfig()

	step := func(m SessionModel, msg tea.Msg) SessionModel {
		t.Helper()
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, want SessionModel", next)
		}
		return sm
	}

	m := NewSessionModel(svc, cfg)
	m = step(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("tab should open the scoreboard, screen = %d", m.screen)
	}
	if !strings.Contains(m.View(), "BEST RESULTS") {
		t.Errorf("scoreboard view:\n%s", m.View())
	}
	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %d", m.screen)
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("picking a level should start the game, screen = %d", m.screen)
	}
	if !strings.Contains(m.View(), "Plus Minus 6x6") {
		t.Errorf("game view:\n%s", m.View())
	}

	m = step(m, runeKey("b"))
	if m.screen != screenMenu {
		t.Errorf("b should return to the menu, screen = %d", m.screen)
	}

	m = step(m, runeKey("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestScoreboardSummary(t *testing.T) {
	svc := newTestServices(t)
	if err := svc.Store.SaveBest("4x4_nr1", 5, 16); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}
	if err := svc.Store.SaveBest("4x4_nr3", 2, 14); err != nil {
		t.Fatalf("SaveBest() error = %v", err)
	}

	m := NewScoreboardModel(svc, 100, 40)
	if got, want := m.summary(), "Solved 2/10 levels, best scores total 7"; got != want {
		t.Errorf("summary() = %q, expected %q", got, want)
	}
	if !strings.Contains(m.View(), "4x4_nr3") {
		t.Errorf("wide view should list the levels:\n%s", m.View())
	}
}
