package core

import (
	"math/rand/v2"
	"strings"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

const seedAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// SeedLength is the number of characters in a minted run seed.
const SeedLength = 10

// SeedString mints a new base-36 seed string for a mountain run.
func (r *RNG) SeedString() string {
	var b strings.Builder
	b.Grow(SeedLength)
	for i := 0; i < SeedLength; i++ {
		b.WriteByte(seedAlphabet[r.r.IntN(len(seedAlphabet))])
	}
	return b.String()
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
