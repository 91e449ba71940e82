package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG state words are derived from the one seed so every call site gets
// reproducible sequences from a single number.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromTime returns an RNG seeded from the wall clock, along with the seed
// used so the caller can log it for replay.
func NewFromTime() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

// Seeds derives n independent child seeds from base. Child i is stable for a
// given base, so a simulation can hand out per-round seeds in any order.
func Seeds(base int64, n int) []int64 {
	seeds := make([]int64, n)
	u := uint64(base)
	for i := range seeds {
		seeds[i] = int64(mix(u + uint64(i+1)*goldenRatio64))
	}
	return seeds
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
