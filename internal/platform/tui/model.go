package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/leaderboard"
	"github.com/vovakirdan/plusminus/internal/registry"
)

// GameModel is the Bubble Tea model for playing one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	board     *leaderboard.Board // leaderboard of the loaded level, once fetched
	showBoard bool
	submitted map[string]bool // finishes already posted
	saved     map[string]bool // finishes of the current attempt already stored
	status    string

	quitOnBack bool // standalone play: Back leaves the program
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		submitted:  make(map[string]bool),
		saved:      make(map[string]bool),
	}
}

// Init loads the configured level and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tea.Batch(tickCmd(m.config.TickRate), m.levelLoaded())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case boardMsg:
		return m.handleBoard(msg)

	case submitMsg:
		return m.handleSubmit(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "tab":
		if m.leaderboardSize() == 0 {
			m.status = "No leaderboard for this grid"
			return m, nil
		}
		m.showBoard = !m.showBoard
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showBoard {
		// Only Back closes the leaderboard; everything else waits.
		if m.inputFrame.Has(core.ActionBack) {
			m.showBoard = false
		}
		m.inputFrame.Clear()
		return m, nil
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.inputFrame.Clear()
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleMouse forwards left clicks to games that accept them.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showBoard || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p, ok := m.game.(registry.Pointer)
	if !ok {
		return m, nil
	}
	result := p.Click(msg.X, msg.Y)
	m.gameState = result.State
	return m, tea.Batch(m.handleEvents(result.Events)...)
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick applies the actions collected since the last tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Empty() {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	// A board with no moves starts a new attempt: restart, undo past the
	// first move or a level change.
	if rec, ok := m.game.(Recorder); ok {
		if r := rec.Record(); r.History.Current() < 0 {
			clear(m.saved)
		}
	}

	cmds := m.handleEvents(result.Events)
	cmds = append(cmds, tickCmd(m.config.TickRate))
	return m, tea.Batch(cmds...)
}

// handleEvents persists what the game reported and returns the
// leaderboard commands it triggers.
func (m *GameModel) handleEvents(events []core.Event) []tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range events {
		switch ev.Kind {
		case core.EventNewBest:
			m.svc.saveBest(ev)
		case core.EventFinished:
			if ev.Err != nil {
				m.svc.logger().Warn("best result check failed", "level", ev.LevelID, "error", ev.Err)
			}
			cmds = append(cmds, m.finished(ev))
		case core.EventLevelLoaded:
			m.board = nil
			m.showBoard = false
			m.status = ""
			cmds = append(cmds, m.levelLoaded())
		}
	}
	return cmds
}

// levelLoaded remembers the level for the next run and fetches its
// leaderboard.
func (m GameModel) levelLoaded() tea.Cmd {
	lv, ok := m.game.(Leveled)
	if !ok {
		return nil
	}
	m.svc.rememberLevel(lv.Size(), lv.Level())
	if !m.svc.hasLeaderboard(lv.Size()) {
		return nil
	}
	return fetchBoardCmd(m.svc.Leaderboard, lv.LevelID())
}

// leaderboardSize returns the grid size when the loaded level has a
// leaderboard, 0 otherwise.
func (m GameModel) leaderboardSize() int {
	lv, ok := m.game.(Leveled)
	if !ok || !m.svc.hasLeaderboard(lv.Size()) {
		return 0
	}
	return lv.Size()
}

// finished records the attempt and posts it when it makes the leaderboard.
func (m *GameModel) finished(ev core.Event) tea.Cmd {
	rec, ok := m.game.(Recorder)
	if !ok {
		return nil
	}
	r := rec.Record()
	key := fmt.Sprintf("%s/%d/%d", ev.LevelID, ev.Score, ev.Moves)
	if !m.saved[key] {
		m.saved[key] = true
		m.svc.saveGame(r)
	}

	if m.leaderboardSize() == 0 || m.board == nil || m.board.LevelID != ev.LevelID {
		return nil
	}
	if !m.board.Qualifies(ev.Score) {
		return nil
	}
	if m.submitted[key] {
		return nil
	}

	sub, err := leaderboard.NewSubmission(r, m.svc.Player)
	if errors.Is(err, leaderboard.ErrInvalidUsername) {
		m.status = "Set a player name (3-16 of a-z 0-9 _ -) to post scores"
		return nil
	}
	if err != nil {
		m.svc.logger().Warn("cannot build submission", "level", ev.LevelID, "error", err)
		return nil
	}
	m.submitted[key] = true
	m.status = "Posting score..."
	return submitCmd(m.svc.Leaderboard, sub)
}

func (m GameModel) handleBoard(msg boardMsg) (tea.Model, tea.Cmd) {
	lv, ok := m.game.(Leveled)
	if !ok || lv.LevelID() != msg.board.LevelID {
		return m, nil // stale: the level changed while fetching
	}
	if msg.board.Err != nil {
		m.svc.logger().Warn("leaderboard fetch failed", "level", msg.board.LevelID, "error", msg.board.Err)
	}
	b := msg.board
	m.board = &b
	return m, nil
}

func (m GameModel) handleSubmit(msg submitMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.svc.logger().Warn("score submission failed", "level", msg.levelID, "error", msg.err)
		m.status = "Could not post score"
		return m, nil
	}
	m.status = "Score posted"
	lv, ok := m.game.(Leveled)
	if !ok || lv.LevelID() != msg.levelID {
		return m, nil
	}
	return m, fetchBoardCmd(m.svc.Leaderboard, msg.levelID)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.svc.logger().Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".plusminus", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("cannot save screenshot", "error", err)
		return
	}
	m.status = "Screenshot saved"
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.showBoard {
		b := leaderboard.Board{Err: errors.New("loading...")}
		if lv, ok := m.game.(Leveled); ok {
			b.LevelID = lv.LevelID()
		}
		if m.board != nil {
			b = *m.board
		}
		return RenderLeaderboard(b, m.config.ScreenW) + "\n\n" + centerText("Esc: Back  |  Tab: Game", m.config.ScreenW)
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextCentered(m.screen.Height()-2, m.status, core.ColorDimmed)
	}
	return RenderScreen(m.screen)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Status returns the platform message shown under the game.
func (m GameModel) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or goes back.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
