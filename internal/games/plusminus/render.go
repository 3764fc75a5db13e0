package plusminus

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/plusminus/internal/core"
	"github.com/vovakirdan/plusminus/internal/puzzle"
)

const (
	cellWidth = 4 // tile text is 3 wide plus one space
	hudHeight = 4
)

// boardRect returns the board frame, centered below the HUD.
func (g *Game) boardRect() core.Rect {
	w := g.size*cellWidth + 3
	h := g.size + 2
	return core.Rect{X: (g.screenW - w) / 2, Y: hudHeight, W: w, H: h}
}

func (g *Game) minSize() (w, h int) {
	return max(g.size*cellWidth+3, 40), g.size + hudHeight + 5
}

// tileOrigin returns the screen cell of the first character of tile p.
func (g *Game) tileOrigin(p puzzle.Pos) (x, y int) {
	r := g.boardRect()
	return r.X + 2 + p.Col*cellWidth, r.Y + 1 + p.Row
}

// tileAt maps a screen cell back to a tile.
func (g *Game) tileAt(x, y int) (puzzle.Pos, bool) {
	r := g.boardRect()
	dx := x - (r.X + 2)
	if dx < 0 || y <= r.Y {
		return puzzle.Pos{}, false
	}
	p := puzzle.Pos{Row: y - r.Y - 1, Col: dx / cellWidth}
	if dx%cellWidth == cellWidth-1 || p.Row >= g.size || p.Col >= g.size {
		return puzzle.Pos{}, false
	}
	return p, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.loadErr != nil {
		dst.DrawTextCentered(g.screenH/2, "Cannot load level", core.ColorMinus)
		dst.DrawTextCentered(g.screenH/2+1, g.loadErr.Error(), core.ColorDimmed)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderLegend(dst)
	dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorDimmed)

	if g.snap.Finished {
		g.renderFinished(dst)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorHighlight)
	w, h := g.minSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h), core.ColorDimmed)
}

func scoreColor(score int) core.Color {
	switch {
	case score > 0:
		return core.ColorPlus
	case score < 0:
		return core.ColorMinus
	default:
		return core.ColorDefault
	}
}

func signText(sign int) (string, core.Color) {
	if sign > 0 {
		return "+", core.ColorPlus
	}
	return "-", core.ColorMinus
}

// renderHUD draws the title, score, moves and best result.
func (g *Game) renderHUD(dst *core.Screen) {
	r := g.boardRect()
	left := r.X
	right := r.Right()

	title := fmt.Sprintf("%s  Puzzle %d/%d", g.Title(), g.level, g.cfg.Levels)
	dst.DrawTextCentered(0, title, core.ColorHighlight)

	score := strconv.Itoa(g.snap.Score)
	if g.snap.Score > 0 {
		score = "+" + score
	}
	dst.DrawText(left, 1, "Score: ")
	dst.DrawTextColored(left+7, 1, score, scoreColor(g.snap.Score))

	moves := fmt.Sprintf("Moves: %d", g.snap.Moves)
	dst.DrawText(right-len(moves), 1, moves)

	best := "Best: -"
	if g.hasBest {
		best = fmt.Sprintf("Best: %d in %d", g.best.Score, g.best.Moves)
	}
	dst.DrawTextColored(left, 2, best, core.ColorDimmed)

	sign, color := signText(g.snap.Sign)
	dst.DrawText(right-9, 2, "Next: [")
	dst.DrawTextColored(right-2, 2, sign, color)
	dst.DrawText(right-1, 2, "]")

	if g.message != "" {
		dst.DrawTextCentered(3, g.message, core.ColorMinus)
	}
}

// renderBoard draws the frame and every tile.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.boardRect(), core.ColorDimmed)

	for row, tiles := range g.snap.Tiles {
		for col, tile := range tiles {
			p := puzzle.Pos{Row: row, Col: col}
			text, color := g.tileCell(p, tile)
			x, y := g.tileOrigin(p)
			dst.DrawTextColored(x, y, text, color)
		}
	}
}

// tileCell returns the three-character text of a tile and its colour.
func (g *Game) tileCell(p puzzle.Pos, t puzzle.Tile) (string, core.Color) {
	val := strconv.Itoa(t.Value)
	if len(val) == 1 {
		val = " " + val
	}
	s := g.snap

	switch {
	case s.Started && p == s.Position:
		if s.Finished {
			return " " + string(moodRune(s.Mood())) + " ", core.ColorFinished
		}
		return " " + string(moodRune(s.Mood())) + " ", core.ColorPlayer
	case t.Taken:
		return " · ", core.ColorTaken
	case !s.Started && p == g.cursor:
		return "[" + val[1:] + "]", core.ColorCursor
	case s.Started && s.IsLegal(p):
		return "[" + val[1:] + "]", g.tileSignColor(p)
	case s.Started:
		return val + " ", g.tileSignColor(p)
	default:
		return val + " ", core.ColorTile
	}
}

// tileSignColor colours an untaken tile by the sign it would be scored
// with: the checkerboard colour of the first move always collects plus.
func (g *Game) tileSignColor(p puzzle.Pos) core.Color {
	if p.Even() == g.snap.PlusOnEven {
		return core.ColorPlus
	}
	return core.ColorMinus
}

func moodRune(m puzzle.Mood) rune {
	switch m {
	case puzzle.MoodHappy:
		return '☺'
	case puzzle.MoodSad:
		return '☹'
	default:
		return '●'
	}
}

// renderLegend explains the tile colours below the board.
func (g *Game) renderLegend(dst *core.Screen) {
	r := g.boardRect()
	y := r.Bottom()
	if !g.snap.Started {
		dst.DrawTextCentered(y, "Pick any starting tile", core.ColorDimmed)
		return
	}
	x := (g.screenW - 24) / 2
	dst.DrawTextColored(x, y, "■ adds", core.ColorPlus)
	dst.DrawTextColored(x+10, y, "■ subtracts", core.ColorMinus)
}

// renderFinished draws the end-of-game overlay.
func (g *Game) renderFinished(dst *core.Screen) {
	lines := []string{
		"FINISHED",
		fmt.Sprintf("Score %d in %d moves", g.snap.Score, g.snap.Moves),
	}
	switch {
	case g.last != nil && g.last.NewBest:
		lines = append(lines, "New best!")
	case g.hasBest:
		lines = append(lines, fmt.Sprintf("Best: %d in %d", g.best.Score, g.best.Moves))
	}
	lines = append(lines, "U: Undo  R: Restart  N: Next")

	r := g.boardRect()
	g.drawOverlay(dst, r.X+r.W/2, r.Y+r.H/2, lines...)
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.Rect{X: centerX - boxW/2, Y: centerY - boxH/2, W: boxW, H: boxH}

	// Clear area behind overlay
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHighlight)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorHighlight
		}
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}
