package tui

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/plusminus/internal/leaderboard"
)

// boardMsg delivers a fetched leaderboard.
type boardMsg struct {
	board leaderboard.Board
}

// submitMsg reports the outcome of a score submission.
type submitMsg struct {
	levelID string
	err     error
}

func fetchBoardCmd(c *leaderboard.Client, levelID string) tea.Cmd {
	return func() tea.Msg {
		return boardMsg{board: c.Board(context.Background(), levelID)}
	}
}

func submitCmd(c *leaderboard.Client, sub leaderboard.Submission) tea.Cmd {
	return func() tea.Msg {
		return submitMsg{levelID: sub.LevelID, err: c.Submit(context.Background(), sub)}
	}
}

// LeaderboardRows converts grouped entries to table rows.
func LeaderboardRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Moves),
			strings.Join(e.Names, ", "),
		}
	}
	return rows
}

// ThresholdText describes the score needed to post to b.
func ThresholdText(b leaderboard.Board) string {
	switch {
	case b.Err != nil:
		return "Leaderboard unavailable"
	case math.IsInf(b.Threshold, -1):
		return "Any finished game qualifies"
	default:
		return fmt.Sprintf("Score %d or more qualifies", int(b.Threshold))
	}
}

// RenderLeaderboard draws b as a bordered table with a title and the
// posting threshold.
func RenderLeaderboard(b leaderboard.Board, width int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(centerText("LEADERBOARD - "+b.LevelID, width)))
	sb.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if b.Err != nil || len(b.Entries) == 0 {
		msg := "No scores posted yet."
		if b.Err != nil {
			msg = "Could not reach the leaderboard:\n" + b.Err.Error()
		}
		sb.WriteString(boxStyle.Render(dimStyle.Italic(true).Render(msg)))
	} else {
		namesWidth := max(16, min(width-30, 40))
		t := table.New(
			table.WithColumns([]table.Column{
				{Title: "Rank", Width: 5},
				{Title: "Score", Width: 6},
				{Title: "Moves", Width: 6},
				{Title: "Players", Width: namesWidth},
			}),
			table.WithRows(LeaderboardRows(b.Entries)),
			table.WithHeight(len(b.Entries)+1),
		)
		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = lipgloss.NewStyle()
		t.SetStyles(s)
		sb.WriteString(boxStyle.Render(t.View()))
	}

	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render(ThresholdText(b)))
	return sb.String()
}
