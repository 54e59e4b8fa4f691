package gen

import "math"

// Height function constants.
const (
	baseFrequency  = 0.005
	erosionScale   = 0.1
	erosionDivisor = 1.07
	islandScale    = 0.0025
	islandExponent = 20
	islandEpsilon  = 0.0001
)

// Terrain produces island terrain with caves, strata and trees.
type Terrain struct {
	params  Params
	noise   *NoiseGenerator
	biomes  *BiomeGenerator
	caves   *CaveGenerator
	trees   *TreeGenerator
	jitter  jitter
	centerX float64
	centerY float64
}

// NewTerrain creates a Terrain generator from p.
func NewTerrain(p Params) *Terrain {
	noise := NewNoiseGenerator(p.Seed)
	biomes := NewBiomeGenerator(p.Seed)
	j := newJitter(p.Jitter, p.Seed)
	return &Terrain{
		params:  p,
		noise:   noise,
		biomes:  biomes,
		caves:   NewCaveGenerator(noise),
		trees:   NewTreeGenerator(p.ChunkSize, j, biomes),
		jitter:  j,
		centerX: float64(p.CenterXZ()),
		centerY: float64(p.CenterY()),
	}
}

// Noise returns the seed-keyed noise source shared by every pass.
func (t *Terrain) Noise() *NoiseGenerator { return t.noise }

// HeightAt returns the column height at world voxel coordinates (x, z).
// Four octaves with alternating sign are summed, floored at 1 and scaled by the island mask.
func (t *Terrain) HeightAt(x, z int) int {
	fx, fz := float64(x), float64(z)

	island := 1 / (math.Pow(islandScale*math.Hypot(fx-t.centerX, fz-t.centerX), islandExponent) + islandEpsilon)
	island = math.Min(island, 1)

	a1 := t.centerY
	a2, a4, a8 := a1*0.5, a1*0.25, a1*0.125
	f1 := baseFrequency
	f2, f4, f8 := f1*2, f1*4, f1*8

	if t.noise.Noise2D(erosionScale*fx, erosionScale*fz) < 0 {
		a1 /= erosionDivisor
	}

	h := t.noise.Noise2D(fx*f1, fz*f1)*a1 + a1
	h += t.noise.Noise2D(fx*f2, fz*f2)*a2 - a2
	h += t.noise.Noise2D(fx*f4, fz*f4)*a4 + a4
	h += t.noise.Noise2D(fx*f8, fz*f8)*a8 - a8

	return int(math.Max(h, 1) * island)
}

// Classify returns the material of the voxel at world coordinates inside a
// column of the given height. Voxels below height-1 are stone or cave air;
// the top voxel takes its material from the strata levels.
func (t *Terrain) Classify(wx, wy, wz, height int) uint8 {
	if wy < height-1 {
		if t.caves.IsCave(wx, wy, wz, height) {
			return Air
		}
		return Stone
	}
	offset := int(7 * t.jitter.float(wx, wy, wz, saltStrata))
	return surfaceMaterial(wy - offset)
}

// Fill generates the voxels of the chunk at pos. voxels must be zeroed.
func (t *Terrain) Fill(voxels []uint8, pos ChunkPos) {
	size := t.params.ChunkSize
	cx, cy, cz := pos.X*size, pos.Y*size, pos.Z*size

	for x := 0; x < size; x++ {
		wx := cx + x
		for z := 0; z < size; z++ {
			wz := cz + z
			height := t.HeightAt(wx, wz)
			localHeight := min(height-cy, size)

			for y := 0; y < localHeight; y++ {
				wy := cy + y
				id := t.Classify(wx, wy, wz, height)
				voxels[Index(size, x, y, z)] = id

				if wy < DirtLevel && id == Grass {
					t.trees.Place(voxels, x, y, z, wx, wy, wz)
				}
			}
		}
	}
}
