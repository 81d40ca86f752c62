package core

import (
	"fmt"
	"math"
)

// Scrambling constants for the trigonometric sampler. Changing any of them
// changes every generated mountain.
const (
	SampleXCoeff     = 12.9898
	SampleYCoeff     = 78.233
	SampleLayerCoeff = 37.719
	SampleScale      = 43758.5453
)

// SamplerKind selects the scrambling function used by a Sampler.
type SamplerKind string

const (
	// SamplerTrig is the frac(sin(...)) scrambler.
	SamplerTrig SamplerKind = "trig"
	// SamplerHash is an integer-only avalanche mix that does not depend on
	// platform floating point rounding of sin.
	SamplerHash SamplerKind = "hash"
)

// ParseSamplerKind maps a config string onto a SamplerKind. The empty string
// selects SamplerTrig.
func ParseSamplerKind(s string) (SamplerKind, error) {
	switch SamplerKind(s) {
	case "", SamplerTrig:
		return SamplerTrig, nil
	case SamplerHash:
		return SamplerHash, nil
	default:
		return "", fmt.Errorf("unknown sampler kind %q", s)
	}
}

// HashSeed reduces a seed string to a 32-bit signed rolling hash
// (h = h*31 + rune), wrapping on overflow. Seeds are hashed per Unicode code
// point, not per UTF-16 code unit.
func HashSeed(seed string) int32 {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}
	return h
}

// Sample maps (seed, x, y, layer) to a value in [0,1) using the trigonometric
// scrambler. It is pure and recomputes the seed hash on every call; hot loops
// should use a Sampler instead.
func Sample(seed string, x, y, layer float64) float64 {
	return trigSample(HashSeed(seed), x, y, layer)
}

// Sampler caches the seed hash so repeated lookups only pay for the scramble.
// The zero value samples the empty seed with SamplerTrig.
type Sampler struct {
	hash int32
	kind SamplerKind
}

// NewSampler returns a Sampler for the seed using the given kind. Unknown
// kinds fall back to SamplerTrig.
func NewSampler(seed string, kind SamplerKind) Sampler {
	if kind != SamplerHash {
		kind = SamplerTrig
	}
	return Sampler{hash: HashSeed(seed), kind: kind}
}

// Hash returns the cached seed hash.
func (s Sampler) Hash() int32 { return s.hash }

// Kind reports the scrambling function in use.
func (s Sampler) Kind() SamplerKind {
	if s.kind == "" {
		return SamplerTrig
	}
	return s.kind
}

// At returns the sample for the coordinates in [0,1).
func (s Sampler) At(x, y, layer float64) float64 {
	if s.kind == SamplerHash {
		return hashSample(s.hash, x, y, layer)
	}
	return trigSample(s.hash, x, y, layer)
}

func trigSample(hash int32, x, y, layer float64) float64 {
	v := math.Sin(x*SampleXCoeff+y*SampleYCoeff+layer*SampleLayerCoeff+float64(hash)) * SampleScale
	f := v - math.Floor(v)
	if f >= 1 || f < 0 || math.IsNaN(f) {
		return 0
	}
	return f
}

func hashSample(hash int32, x, y, layer float64) float64 {
	h := uint32(hash)
	h ^= foldBits(x) * 0x9e3779b1
	h = mix32(h)
	h ^= foldBits(y) * 0x85ebca6b
	h = mix32(h)
	h ^= foldBits(layer) * 0xc2b2ae35
	return float64(mix32(h)) / 4294967296.0
}

// foldBits collapses a float's bit pattern to 32 bits; -0 folds like +0.
func foldBits(v float64) uint32 {
	if v == 0 {
		v = 0
	}
	b := math.Float64bits(v)
	return uint32(b) ^ uint32(b>>32)
}

// mix32 is a murmur-style finalizer.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
