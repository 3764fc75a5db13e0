package levelgen

import (
	"fmt"
	"slices"
)

// Scheme selects how random draws are placed on the board.
// The two schemes produce different boards for the same identifier.
type Scheme string

const (
	// SchemeStratified sorts all draws, deals them into two parity pools in
	// blocks of four (even, odd, odd, even) and shuffles each pool before
	// placement, so both checkerboard colours get a similar spread of values.
	SchemeStratified Scheme = "stratified"

	// SchemePlain assigns one draw per cell in row-major order.
	SchemePlain Scheme = "plain"
)

// ParseScheme maps a configuration name to a Scheme. The empty name
// selects SchemeStratified.
func ParseScheme(name string) (Scheme, error) {
	switch Scheme(name) {
	case "", SchemeStratified:
		return SchemeStratified, nil
	case SchemePlain:
		return SchemePlain, nil
	}
	return "", fmt.Errorf("%w: unknown scheme %q", ErrInvalidLevel, name)
}

// Options configures board generation.
type Options struct {
	Size     int    // Grid dimension
	MinValue int    // Smallest tile value (inclusive)
	MaxValue int    // Largest tile value (inclusive)
	Scheme   Scheme // Placement scheme; empty means SchemeStratified
}

// DefaultOptions returns the standard value range for a grid size.
func DefaultOptions(size int) Options {
	return Options{
		Size:     size,
		MinValue: 1,
		MaxValue: 7,
		Scheme:   SchemeStratified,
	}
}

// Validate checks that the options describe a generatable board.
func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidLevel, o.Size)
	}
	if o.MinValue > o.MaxValue {
		return fmt.Errorf("%w: value range [%d, %d]", ErrInvalidLevel, o.MinValue, o.MaxValue)
	}
	switch o.Scheme {
	case "", SchemeStratified, SchemePlain:
	default:
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidLevel, o.Scheme)
	}
	return nil
}

// Generate returns the tile values for levelID as a row-major Size×Size grid.
func Generate(levelID string, opts Options) ([][]int, error) {
	if levelID == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrInvalidLevel)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := NewRand(Seed(levelID))
	if opts.Scheme == SchemePlain {
		return generatePlain(rng, opts), nil
	}
	return generateStratified(rng, opts), nil
}

func generatePlain(rng *Rand, opts Options) [][]int {
	grid := newGrid(opts.Size)
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = rng.IntRange(opts.MinValue, opts.MaxValue)
		}
	}
	return grid
}

func generateStratified(rng *Rand, opts Options) [][]int {
	n := opts.Size * opts.Size
	draws := make([]int, n)
	for i := range draws {
		draws[i] = rng.IntRange(opts.MinValue, opts.MaxValue)
	}
	slices.SortFunc(draws, func(a, b int) int { return b - a })

	// Pool order matters for determinism: offsets 0 then 3 feed the even
	// pool, offsets 1 then 2 feed the odd pool.
	even := make([]int, 0, n/2+1)
	odd := make([]int, 0, n/2+1)
	even = appendEvery(even, draws, 0)
	odd = appendEvery(odd, draws, 1)
	odd = appendEvery(odd, draws, 2)
	even = appendEvery(even, draws, 3)

	rng.Shuffle(even)
	rng.Shuffle(odd)

	grid := newGrid(opts.Size)
	var ie, io int
	for row := range grid {
		for col := range grid[row] {
			if (row+col)%2 == 0 {
				grid[row][col] = even[ie]
				ie++
			} else {
				grid[row][col] = odd[io]
				io++
			}
		}
	}
	return grid
}

// appendEvery appends src[start], src[start+4], ... to dst.
func appendEvery(dst, src []int, start int) []int {
	for i := start; i < len(src); i += 4 {
		dst = append(dst, src[i])
	}
	return dst
}

func newGrid(size int) [][]int {
	grid := make([][]int, size)
	for i := range grid {
		grid[i] = make([]int, size)
	}
	return grid
}
