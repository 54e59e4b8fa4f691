package gen

// Tree shape and placement constants.
const (
	TreeProbability  = 0.02
	TreeHeight       = 8
	TreeHalfWidth    = 2
	leafOverrideRate = 0.1
	beehiveRate      = 0.05
	trunkTop         = TreeHeight - 2 // highest trunk offset above the base voxel
	canopyBase       = trunkTop - 3
)

// canopyRadius is the leaf radius of each canopy row, from canopyBase upward.
var canopyRadius = [...]int{1, 2, 2, 1}

// TreeGenerator grows trees on grass voxels inside a single chunk.
type TreeGenerator struct {
	size   int
	jitter jitter
	biomes *BiomeGenerator
}

// NewTreeGenerator creates a TreeGenerator for chunks of the given size.
func NewTreeGenerator(size int, j jitter, biomes *BiomeGenerator) *TreeGenerator {
	return &TreeGenerator{size: size, jitter: j, biomes: biomes}
}

// Place may grow a tree rooted at local (x, y, z), whose world coordinates are
// (wx, wy, wz). Nothing is written when the tree would reach outside the chunk.
func (tg *TreeGenerator) Place(voxels []uint8, x, y, z, wx, wy, wz int) bool {
	if tg.jitter.float(wx, wy, wz, saltTree) >= TreeProbability {
		return false
	}
	if !tg.fits(x, y, z) {
		return false
	}
	leaves := tg.biomes.LeavesAt(wx, wz)
	if tg.jitter.float(wx, wy, wz, saltLeaves) < leafOverrideRate {
		leaves = NormalLeaves
	}

	set := func(dx, dy, dz int, id uint8) {
		voxels[Index(tg.size, x+dx, y+dy, z+dz)] = id
	}

	// Dirt under the trunk.
	set(0, 0, 0, Dirt)

	for row, radius := range canopyRadius {
		dy := canopyBase + row
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				// Trim corners for a rounded footprint.
				if abs(dx) == radius && abs(dz) == radius {
					continue
				}
				set(dx, dy, dz, leaves)
			}
		}
	}

	for dy := 1; dy <= trunkTop; dy++ {
		set(0, dy, 0, Wood)
	}
	set(0, trunkTop+1, 0, leaves)

	// The hive takes a leaf of the top canopy row, beside the last trunk voxel.
	if tg.jitter.float(wx, wy, wz, saltHive) < beehiveRate {
		set(1, trunkTop, 0, Beehive)
	}
	return true
}

// fits reports whether a tree rooted at (x, y, z) stays inside the chunk.
func (tg *TreeGenerator) fits(x, y, z int) bool {
	if y+TreeHeight >= tg.size {
		return false
	}
	if x-TreeHalfWidth < 0 || x+TreeHalfWidth >= tg.size {
		return false
	}
	return z-TreeHalfWidth >= 0 && z+TreeHalfWidth < tg.size
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
