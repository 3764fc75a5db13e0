// Package puzzle implements the plus-minus grid puzzle engine.
//
// A player walks a token across a square grid of numbered tiles. The first
// tile may be any tile; every later move goes to an orthogonally adjacent,
// not yet visited tile. Visited tile values are alternately added to and
// subtracted from the score. The game finishes when no legal move remains.
//
// The engine owns the board and the move history and is their only mutator.
// Callers receive value snapshots after every operation. An Engine is not
// safe for concurrent use; give each player session its own engine.
package puzzle

import (
	"fmt"

	"github.com/vovakirdan/plusminus/internal/levelgen"
)

// Pos is a board coordinate.
type Pos struct {
	Row int
	Col int
}

// Add returns p offset by (dRow, dCol).
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Even reports whether the tile is on the even checkerboard colour.
func (p Pos) Even() bool {
	return (p.Row+p.Col)%2 == 0
}

// Adjacent reports whether q is an orthogonal neighbour of p.
func (p Pos) Adjacent(q Pos) bool {
	dr, dc := p.Row-q.Row, p.Col-q.Col
	return dr*dr+dc*dc == 1
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Tile is one grid cell. Value never changes after generation.
type Tile struct {
	Value int
	Taken bool
}

// Board is a square matrix of tiles.
type Board struct {
	size  int
	tiles [][]Tile
}

// NewBoard builds an all-untaken board from a square grid of values.
func NewBoard(values [][]int) (*Board, error) {
	size := len(values)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty board", levelgen.ErrInvalidLevel)
	}
	tiles := make([][]Tile, size)
	for row, vals := range values {
		if len(vals) != size {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", levelgen.ErrInvalidLevel, row, len(vals), size)
		}
		tiles[row] = make([]Tile, size)
		for col, v := range vals {
			tiles[row][col] = Tile{Value: v}
		}
	}
	return &Board{size: size, tiles: tiles}, nil
}

// Size returns the grid dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// Tile returns the tile at p. p must be in bounds.
func (b *Board) Tile(p Pos) Tile {
	return b.tiles[p.Row][p.Col]
}

// Available reports whether p is in bounds and not taken.
func (b *Board) Available(p Pos) bool {
	return b.InBounds(p) && !b.tiles[p.Row][p.Col].Taken
}

func (b *Board) setTaken(p Pos, taken bool) {
	b.tiles[p.Row][p.Col].Taken = taken
}

// reset marks every tile untaken.
func (b *Board) reset() {
	for row := range b.tiles {
		for col := range b.tiles[row] {
			b.tiles[row][col].Taken = false
		}
	}
}

// neighbourOffsets lists orthogonal steps in the order destinations are
// reported: down, up, right, left.
var neighbourOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Neighbours returns the available orthogonal neighbours of p.
func (b *Board) Neighbours(p Pos) []Pos {
	var out []Pos
	for _, d := range neighbourOffsets {
		if q := p.Add(d[0], d[1]); b.Available(q) {
			out = append(out, q)
		}
	}
	return out
}

// Untaken returns every available tile in row-major order.
func (b *Board) Untaken() []Pos {
	var out []Pos
	for row := range b.tiles {
		for col := range b.tiles[row] {
			if !b.tiles[row][col].Taken {
				out = append(out, Pos{Row: row, Col: col})
			}
		}
	}
	return out
}

// Tiles returns a deep copy of the grid.
func (b *Board) Tiles() [][]Tile {
	out := make([][]Tile, b.size)
	for row := range b.tiles {
		out[row] = make([]Tile, b.size)
		copy(out[row], b.tiles[row])
	}
	return out
}

// Values returns the tile values as a grid.
func (b *Board) Values() [][]int {
	out := make([][]int, b.size)
	for row := range b.tiles {
		out[row] = make([]int, b.size)
		for col, t := range b.tiles[row] {
			out[row][col] = t.Value
		}
	}
	return out
}
