package gen

// Biome selects the leaf material of trees.
type Biome byte

const (
	BiomeNormal Biome = iota
	BiomeSakura
	BiomeOak
)

const biomeScale = 1.0 / 512.0

// BiomeGenerator selects biomes from a large-scale noise field.
type BiomeGenerator struct {
	noise *NoiseGenerator
}

// NewBiomeGenerator creates a BiomeGenerator from a seed.
func NewBiomeGenerator(seed int64) *BiomeGenerator {
	return &BiomeGenerator{noise: NewNoiseGenerator(seed + 100)}
}

// BiomeAt returns the biome at the given world voxel column.
func (bg *BiomeGenerator) BiomeAt(wx, wz int) Biome {
	v := bg.noise.OctaveNoise2D(float64(wx)*biomeScale, float64(wz)*biomeScale, 3, 0.5)
	return selectBiome(v)
}

// LeavesAt returns the leaf material of the biome at the given column.
func (bg *BiomeGenerator) LeavesAt(wx, wz int) uint8 {
	return bg.BiomeAt(wx, wz).Leaves()
}

// selectBiome splits the noise range into three bands.
//
//	v < -0.2        Sakura
//	-0.2 <= v < 0.2 Normal
//	v >= 0.2        Oak
func selectBiome(v float64) Biome {
	switch {
	case v < -0.2:
		return BiomeSakura
	case v < 0.2:
		return BiomeNormal
	default:
		return BiomeOak
	}
}

// Leaves returns the leaf material grown by trees in b.
func (b Biome) Leaves() uint8 {
	switch b {
	case BiomeSakura:
		return SakuraLeaves
	case BiomeOak:
		return OakLeaves
	default:
		return NormalLeaves
	}
}

func (b Biome) String() string {
	switch b {
	case BiomeSakura:
		return "sakura"
	case BiomeOak:
		return "oak"
	default:
		return "normal"
	}
}
