package levelgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLevel is returned for malformed identifiers and generator options.
var ErrInvalidLevel = errors.New("levelgen: invalid level")

// LevelID formats the identifier of level number n on a size×size grid,
// e.g. "6x6_nr3".
func LevelID(size, n int) string {
	return fmt.Sprintf("%dx%d_nr%d", size, size, n)
}

// ParseLevelID splits an identifier produced by LevelID.
func ParseLevelID(id string) (size, n int, err error) {
	dims, num, ok := strings.Cut(id, "_nr")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q has no level number", ErrInvalidLevel, id)
	}
	w, h, ok := strings.Cut(dims, "x")
	if !ok || w != h {
		return 0, 0, fmt.Errorf("%w: %q is not a square grid", ErrInvalidLevel, id)
	}
	size, err = strconv.Atoi(w)
	if err != nil || size <= 0 {
		return 0, 0, fmt.Errorf("%w: %q has a bad grid size", ErrInvalidLevel, id)
	}
	n, err = strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, 0, fmt.Errorf("%w: %q has a bad level number", ErrInvalidLevel, id)
	}
	return size, n, nil
}
