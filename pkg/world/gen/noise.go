package gen

import opensimplex "github.com/ojrac/opensimplex-go"

// NoiseGenerator produces deterministic OpenSimplex noise from a seed.
// Output is in the range [-1, 1]. Safe for concurrent use.
type NoiseGenerator struct {
	src opensimplex.Noise
}

// NewNoiseGenerator creates a noise generator keyed by seed.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{src: opensimplex.New(seed)}
}

// Noise2D returns 2D noise for the given coordinates.
func (ng *NoiseGenerator) Noise2D(x, y float64) float64 {
	return ng.src.Eval2(x, y)
}

// Noise3D returns 3D noise for the given coordinates.
func (ng *NoiseGenerator) Noise3D(x, y, z float64) float64 {
	return ng.src.Eval3(x, y, z)
}

// OctaveNoise2D returns fractal 2D noise by summing multiple octaves.
// Each octave doubles frequency and scales amplitude by persistence.
func (ng *NoiseGenerator) OctaveNoise2D(x, y float64, octaves int, persistence float64) float64 {
	var total, amplitude, frequency, maxValue float64
	amplitude = 1.0
	frequency = 1.0

	for range octaves {
		total += ng.Noise2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxValue
}
