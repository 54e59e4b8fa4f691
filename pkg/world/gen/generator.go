package gen

// ChunkPos identifies a chunk by its X, Y and Z coordinates in chunk units.
type ChunkPos struct{ X, Y, Z int }

// Generator fills chunk voxel arrays deterministically from a seed.
//
// voxels has length size³ and is indexed by x + size*z + size²*y.
type Generator interface {
	Fill(voxels []uint8, pos ChunkPos)
	HeightAt(x, z int) int
}

// Params configures a terrain generator.
type Params struct {
	Seed        int64
	ChunkSize   int
	WorldWidth  int
	WorldHeight int
	WorldDepth  int
	Jitter      JitterMode
}

// CenterXZ returns the world-space voxel coordinate of the horizontal world center.
func (p Params) CenterXZ() int { return p.WorldWidth * p.ChunkSize / 2 }

// CenterY returns half the world height in voxels.
func (p Params) CenterY() int { return p.WorldHeight * p.ChunkSize / 2 }

// Index returns the local voxel index of (x, y, z) inside a chunk of the given size.
func Index(size, x, y, z int) int {
	return x + size*z + size*size*y
}
