package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/plusminus/internal/levelgen"
	"github.com/vovakirdan/plusminus/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show grid list sidebar
	sidebarWidth       = 20 // Width of grid list sidebar
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGrid key.Binding
	PrevGrid key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGrid, k.PrevGrid, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGrid, k.PrevGrid},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev grid"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next grid"),
		),
		NextGrid: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next grid"),
		),
		PrevGrid: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev grid"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelRow is one line of the scoreboard: a level's best result and
// play statistics.
type LevelRow struct {
	Level   int
	LevelID string
	Best    *storage.BestEntry
	Stats   *storage.LevelStats
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	grids       []MenuItem
	gridCursor  int
	svc         Services
	rows        []LevelRow
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(svc Services, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		grids:       gridItems(),
		svc:         svc,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.grids) > 0 {
		m.loadRows()
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 9},
		{Title: "Best", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Plays", Width: 6},
		{Title: "Solved", Width: 7},
		{Title: "Last played", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// ScoreboardRows joins the stored best results and level statistics of a
// grid size into one row per level.
func ScoreboardRows(store *storage.Store, size, levels int) ([]LevelRow, error) {
	rows := make([]LevelRow, levels)
	for i := range rows {
		rows[i] = LevelRow{Level: i + 1, LevelID: levelgen.LevelID(size, i+1)}
	}
	if store == nil {
		return rows, nil
	}

	best, err := store.BestForGrid(size)
	if err != nil {
		return rows, err
	}
	for _, b := range best {
		b := b
		if _, n, err := levelgen.ParseLevelID(b.LevelID); err == nil && n >= 1 && n <= levels {
			rows[n-1].Best = &b
		}
	}

	stats, err := store.GetAllLevelStats()
	if err != nil {
		return rows, err
	}
	for i := range rows {
		rows[i].Stats = stats[rows[i].LevelID]
	}
	return rows, nil
}

// loadRows loads the rows of the selected grid size.
func (m *ScoreboardModel) loadRows() {
	rows, err := ScoreboardRows(m.svc.Store, m.grids[m.gridCursor].Size, m.svc.levels())
	if err != nil {
		m.svc.logger().Warn("cannot load scoreboard", "error", err)
	}
	m.rows = rows
	m.updateTableRows()
}

// updateTableRows updates the table with the current rows.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		best, moves := "-", "-"
		if r.Best != nil {
			best, moves = strconv.Itoa(r.Best.Score), strconv.Itoa(r.Best.Moves)
		}
		plays, solved, last := "0", "0", "-"
		if r.Stats != nil {
			plays = strconv.Itoa(r.Stats.GamesCount)
			solved = strconv.Itoa(r.Stats.Finished)
			if !r.Stats.LastPlayed.IsZero() {
				last = r.Stats.LastPlayed.Format("Jan 02 15:04")
			}
		}
		rows[i] = table.Row{r.LevelID, best, moves, plays, solved, last}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGrid), key.Matches(msg, m.keys.Right):
			if len(m.grids) > 0 {
				m.gridCursor = (m.gridCursor + 1) % len(m.grids)
				m.loadRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGrid), key.Matches(msg, m.keys.Left):
			if len(m.grids) > 0 {
				m.gridCursor = (m.gridCursor - 1 + len(m.grids)) % len(m.grids)
				m.loadRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST RESULTS"
	if len(m.grids) > 0 {
		title = fmt.Sprintf("BEST RESULTS - %s", m.grids[m.gridCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		picker := boxStyle.Width(sidebarWidth).Render("Grids\n" + m.gridPicker("\n"))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, picker, "  ", content))
	} else {
		b.WriteString(centerText(m.gridPicker(" "), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(dimStyle.Render(m.summary()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// gridPicker lists the grid sizes joined by sep, the selected one highlighted.
func (m ScoreboardModel) gridPicker(sep string) string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	names := make([]string, len(m.grids))
	for i, g := range m.grids {
		if i == m.gridCursor {
			names[i] = active.Render(" " + g.GameID + " ")
		} else {
			names[i] = " " + g.GameID + " "
		}
	}
	return strings.Join(names, sep)
}

// summary counts the solved levels of the selected grid and sums their
// best scores.
func (m ScoreboardModel) summary() string {
	solved, total := 0, 0
	for _, r := range m.rows {
		if r.Best != nil {
			solved++
			total += r.Best.Score
		}
	}
	return fmt.Sprintf("Solved %d/%d levels, best scores total %d", solved, len(m.rows), total)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No levels configured.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
