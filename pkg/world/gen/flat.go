package gen

// FlatGenerator generates a flat world: stone up to height-2, dirt at
// height-2 and grass at height-1. Columns at or above height are air.
type FlatGenerator struct {
	size   int
	height int
}

// NewFlatGenerator creates a FlatGenerator for chunks of the given size.
func NewFlatGenerator(size, height int) *FlatGenerator {
	return &FlatGenerator{size: size, height: height}
}

func (g *FlatGenerator) Fill(voxels []uint8, pos ChunkPos) {
	cy := pos.Y * g.size
	for y := 0; y < g.size; y++ {
		wy := cy + y
		if wy >= g.height {
			return
		}
		id := Stone
		switch wy {
		case g.height - 1:
			id = Grass
		case g.height - 2:
			id = Dirt
		}
		for z := 0; z < g.size; z++ {
			for x := 0; x < g.size; x++ {
				voxels[Index(g.size, x, y, z)] = id
			}
		}
	}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.height
}
