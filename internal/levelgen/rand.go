package levelgen

// Rand is a mulberry32 generator: a 32-bit state advanced by a fixed
// increment and scrambled on output. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// NewRand creates a generator seeded with seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Uint32 returns the next raw 32-bit output.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns a uniform float in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296
}

// IntRange returns a uniform integer in [lo, hi], both inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	return int(r.Float64()*float64(hi-lo+1)) + lo
}

// Shuffle permutes vals in place (Durstenfeld).
func (r *Rand) Shuffle(vals []int) {
	for i := len(vals) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		vals[i], vals[j] = vals[j], vals[i]
	}
}
