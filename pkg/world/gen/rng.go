package gen

import (
	"fmt"
	"math/rand/v2"
)

// JitterMode selects the random source used for strata jitter and tree placement.
type JitterMode string

const (
	// JitterSeeded derives every draw from the world seed and voxel coordinates,
	// so one seed always produces the same world.
	JitterSeeded JitterMode = "seeded"
	// JitterRandom draws from an unseeded source. Strata boundaries and trees
	// differ between runs with the same seed.
	JitterRandom JitterMode = "random"
)

// ParseJitterMode converts a configuration string into a JitterMode.
// The empty string selects JitterSeeded.
func ParseJitterMode(s string) (JitterMode, error) {
	switch JitterMode(s) {
	case "", JitterSeeded:
		return JitterSeeded, nil
	case JitterRandom:
		return JitterRandom, nil
	default:
		return "", fmt.Errorf("unknown jitter mode %q", s)
	}
}

// Salts separate the independent draws taken at one voxel.
const (
	saltStrata int64 = 500
	saltTree   int64 = 600
	saltLeaves int64 = 700
	saltHive   int64 = 800
)

// jitter returns a value in [0, 1) for one draw at a voxel.
type jitter interface {
	float(x, y, z int, salt int64) float64
}

func newJitter(mode JitterMode, seed int64) jitter {
	if mode == JitterRandom {
		return randomJitter{}
	}
	return seededJitter{seed: seed}
}

type seededJitter struct {
	seed int64
}

func (j seededJitter) float(x, y, z int, salt int64) float64 {
	return newVoxelRNG(j.seed, x, y, z, salt).float()
}

type randomJitter struct{}

func (randomJitter) float(_, _, _ int, _ int64) float64 {
	return rand.Float64()
}

// chunkRNG is a simple deterministic RNG for per-position generation.
type chunkRNG struct {
	state int64
}

func newVoxelRNG(seed int64, x, y, z int, salt int64) *chunkRNG {
	s := seed ^ (int64(x)*341873128712 + int64(z)*132897987541 + int64(y)*42317861 + salt)
	r := &chunkRNG{state: s}
	// One step mixes neighbouring coordinates apart.
	r.next()
	return r
}

func (r *chunkRNG) next() int64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// float returns a value in [0, 1) built from the high 53 bits.
func (r *chunkRNG) float() float64 {
	return float64(uint64(r.next())>>11) / (1 << 53)
}
