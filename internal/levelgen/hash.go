// Package levelgen derives puzzle boards deterministically from level identifiers.
//
// The same identifier, grid size and value range always produce the same tile
// values, on every machine and for every release, so a level is a stable and
// shareable puzzle.
package levelgen

import "unicode/utf16"

// Hasher produces a stream of 32-bit seeds from a string (xmur3).
// The string is consumed as UTF-16 code units so identifiers hash the same
// way they did in the browser version of the game.
type Hasher struct {
	h uint32
}

// NewHasher mixes s into a fresh hasher state.
func NewHasher(s string) *Hasher {
	units := utf16.Encode([]rune(s))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, u := range units {
		h = (h ^ uint32(u)) * 3432918353
		h = h<<13 | h>>19
	}
	return &Hasher{h: h}
}

// Next returns the next seed. Successive calls yield different values.
func (x *Hasher) Next() uint32 {
	h := x.h
	h = (h ^ h>>16) * 2246822507
	h = (h ^ h>>13) * 3266489909
	h ^= h >> 16
	x.h = h
	return h
}

// Seed returns the first seed derived from s.
func Seed(s string) uint32 {
	return NewHasher(s).Next()
}
