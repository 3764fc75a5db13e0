package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/games/plusminus"
	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/registry"
	"github.com/vovakirdan/plusminus/internal/storage"
)

// MenuItem represents a selectable grid size in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Size   int
}

// MenuSelection is the game and level picked in the menu.
type MenuSelection struct {
	GameID string
	Level  int // 1-indexed
}

// MenuModel is the Bubble Tea model for the grid size and level picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	svc       Services
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	inLevelSelect bool
	levelCursor   int
	best          map[int]storage.BestEntry // by level number, for the open grid

	quitting       bool
	selected       *MenuSelection
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The cursor starts on the last
// played level when the store remembers one.
func NewMenuModel(svc Services, cfg core.RuntimeConfig) MenuModel {
	items := gridItems()

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		svc:       svc,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.restoreCursor()
	return m
}

// gridItems lists the registered puzzle grids ordered by size; registry
// IDs sort as strings.
func gridItems() []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		size, err := plusminus.SizeFromID(g.ID)
		if err != nil {
			continue
		}
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Size: size})
	}
	slices.SortFunc(items, func(a, b MenuItem) int {
		return cmp.Compare(a.Size, b.Size)
	})
	return items
}

func (m *MenuModel) restoreCursor() {
	size, level := m.config.GridSize, m.config.Level
	if m.svc.Store != nil {
		if s, l, ok, err := m.svc.Store.LastLevel(); err == nil && ok {
			size, level = s, l
		}
	}
	for i, it := range m.items {
		if it.Size == size {
			m.cursor = i
			m.levelCursor = core.Clamp(level-1, 0, m.svc.levels()-1)
			return
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input on the grid size list.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.levelCursor = 0
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.levelCursor = 0
		}

	case MenuActionSelect, MenuActionRight:
		if len(m.items) > 0 {
			m.inLevelSelect = true
			m.loadBest()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	levels := m.svc.levels()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levels-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selected = &MenuSelection{
			GameID: m.items[m.cursor].GameID,
			Level:  m.levelCursor + 1, // 1-indexed
		}
	case MenuActionBack, MenuActionLeft:
		m.inLevelSelect = false
	}

	return m, nil
}

// loadBest reads the stored best results of the highlighted grid.
func (m *MenuModel) loadBest() {
	m.best = make(map[int]storage.BestEntry)
	if m.svc.Store == nil {
		return
	}
	entries, err := m.svc.Store.BestForGrid(m.items[m.cursor].Size)
	if err != nil {
		m.svc.logger().Warn("cannot load best results", "error", err)
		return
	}
	for _, e := range entries {
		if _, n, err := levelgen.ParseLevelID(e.LevelID); err == nil {
			m.best[n] = e
		}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("P L U S   M I N U S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a grid size", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Levels  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder
	item := m.items[m.cursor]

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL - "+item.Title, m.width))
	b.WriteString("\n\n")

	for i, count := 0, m.svc.levels(); i < count; i++ {
		n := i + 1
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		best := "not solved"
		if e, ok := m.best[n]; ok {
			best = fmt.Sprintf("best %d in %d", e.Score, e.Moves)
		}
		line := fmt.Sprintf("%s%2d. %-9s %s", cursor, n, levelgen.LevelID(item.Size, n), best)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selected game and level, or nil if none selected.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
