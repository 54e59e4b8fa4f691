package gen

import (
	"slices"
	"testing"
)

func testParams(seed int64) Params {
	return Params{
		Seed:        seed,
		ChunkSize:   16,
		WorldWidth:  8,
		WorldHeight: 4,
		WorldDepth:  8,
		Jitter:      JitterSeeded,
	}
}

func TestHeightAtDeterministic(t *testing.T) {
	t1 := NewTerrain(testParams(16))
	t2 := NewTerrain(testParams(16))

	for x := 0; x < 128; x += 7 {
		for z := 0; z < 128; z += 5 {
			if h1, h2 := t1.HeightAt(x, z), t2.HeightAt(x, z); h1 != h2 {
				t.Fatalf("HeightAt(%d,%d) = %d then %d", x, z, h1, h2)
			}
		}
	}
}

func TestHeightAtCenterPositive(t *testing.T) {
	p := testParams(16)
	tr := NewTerrain(p)

	c := p.CenterXZ()
	if h := tr.HeightAt(c, c); h < 1 {
		t.Errorf("HeightAt(center) = %d, want >= 1", h)
	}
}

func TestHeightAtIslandFalloff(t *testing.T) {
	p := testParams(16)
	tr := NewTerrain(p)

	// Far beyond the island radius the mask drives height to zero.
	c := p.CenterXZ()
	if h := tr.HeightAt(c+5000, c); h != 0 {
		t.Errorf("HeightAt(far) = %d, want 0", h)
	}
}

func TestHeightAtBounded(t *testing.T) {
	p := testParams(3)
	tr := NewTerrain(p)

	// Four octaves sum to at most 2*centerY + small positive terms.
	limit := 3 * p.CenterY()
	for x := 0; x < 128; x += 3 {
		for z := 0; z < 128; z += 3 {
			h := tr.HeightAt(x, z)
			if h < 0 || h > limit {
				t.Fatalf("HeightAt(%d,%d) = %d, want 0..%d", x, z, h, limit)
			}
		}
	}
}

func TestSurfaceMaterial(t *testing.T) {
	tests := []struct {
		ry   int
		want uint8
	}{
		{0, Sand},
		{SandLevel, Sand},
		{GrassLevel, Grass},
		{DirtLevel - 1, Grass},
		{DirtLevel, Dirt},
		{StoneLevel - 1, Dirt},
		{StoneLevel, Stone},
		{SnowLevel - 1, Stone},
		{SnowLevel, Snow},
		{200, Snow},
	}

	for _, tt := range tests {
		if got := surfaceMaterial(tt.ry); got != tt.want {
			t.Errorf("surfaceMaterial(%d) = %s, want %s", tt.ry, MaterialName(got), MaterialName(tt.want))
		}
	}
}

func TestClassifyBuriedIsStoneOrAir(t *testing.T) {
	tr := NewTerrain(testParams(16))

	for wy := 0; wy < 59; wy++ {
		id := tr.Classify(40, wy, 40, 60)
		if id != Stone && id != Air {
			t.Fatalf("Classify(40,%d,40,60) = %s, want stone or air", wy, MaterialName(id))
		}
	}
}

func TestClassifyNoCaveNearSurface(t *testing.T) {
	tr := NewTerrain(testParams(16))

	// Caves stop ten voxels below the surface.
	for x := 0; x < 64; x++ {
		for wy := 50; wy < 59; wy++ {
			if id := tr.Classify(x, wy, 11, 60); id != Stone {
				t.Fatalf("Classify(%d,%d,11,60) = %s, want stone", x, wy, MaterialName(id))
			}
		}
	}
}

func TestClassifySurfaceBands(t *testing.T) {
	tr := NewTerrain(testParams(16))

	// Jitter lowers the elevation by 0..6, so each band admits two materials.
	tests := []struct {
		height int
		want   []uint8
	}{
		{100, []uint8{Snow}},
		{4, []uint8{Sand}},
		{30, []uint8{Grass}},
		{45, []uint8{Dirt, Grass}},
		{52, []uint8{Stone, Dirt}},
	}

	for _, tt := range tests {
		for x := 0; x < 20; x++ {
			got := tr.Classify(x, tt.height-1, 3, tt.height)
			if !slices.Contains(tt.want, got) {
				t.Errorf("Classify(%d,%d,3,%d) = %s, want one of %v", x, tt.height-1, tt.height, MaterialName(got), tt.want)
			}
		}
	}
}

func TestTerrainFillDeterministic(t *testing.T) {
	p := testParams(42)
	t1 := NewTerrain(p)
	t2 := NewTerrain(p)

	size := p.ChunkSize
	pos := ChunkPos{X: 3, Y: 0, Z: 4}
	v1 := make([]uint8, size*size*size)
	v2 := make([]uint8, size*size*size)
	t1.Fill(v1, pos)
	t2.Fill(v2, pos)

	if !slices.Equal(v1, v2) {
		t.Fatal("same seed produced different voxels")
	}
}

func TestTerrainFillDifferentSeeds(t *testing.T) {
	size := 16
	pos := ChunkPos{X: 3, Y: 0, Z: 3}
	v1 := make([]uint8, size*size*size)
	v2 := make([]uint8, size*size*size)
	NewTerrain(testParams(1)).Fill(v1, pos)
	NewTerrain(testParams(2)).Fill(v2, pos)

	if slices.Equal(v1, v2) {
		t.Error("different seeds should produce different terrain")
	}
}

func TestTerrainFillMatchesHeight(t *testing.T) {
	p := testParams(16)
	tr := NewTerrain(p)
	size := p.ChunkSize
	pos := ChunkPos{X: 4, Y: 0, Z: 4}

	voxels := make([]uint8, size*size*size)
	tr.Fill(voxels, pos)

	// Above a column's height only tree voxels may appear.
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			h := tr.HeightAt(pos.X*size+x, pos.Z*size+z)
			for y := max(h, 0); y < size; y++ {
				id := voxels[Index(size, x, y, z)]
				if id != Air && id != Wood && id != Beehive && !IsLeaves(id) {
					t.Fatalf("voxel (%d,%d,%d) above height %d = %s", x, y, z, h, MaterialName(id))
				}
			}
		}
	}
}

func TestMaterialName(t *testing.T) {
	if got := MaterialName(OakPlank); got != "oak_plank" {
		t.Errorf("MaterialName(OakPlank) = %q, want %q", got, "oak_plank")
	}
	if got := MaterialName(200); got != "unknown" {
		t.Errorf("MaterialName(200) = %q, want %q", got, "unknown")
	}
}

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator(8, 5)
	voxels := make([]uint8, 8*8*8)
	g.Fill(voxels, ChunkPos{})

	tests := []struct {
		y     int
		block uint8
		name  string
	}{
		{0, Stone, "stone"},
		{2, Stone, "stone"},
		{3, Dirt, "dirt"},
		{4, Grass, "grass"},
		{5, Air, "air"},
		{7, Air, "air"},
	}

	for _, tt := range tests {
		got := voxels[Index(8, 1, tt.y, 2)]
		if got != tt.block {
			t.Errorf("y=%d: got %d, want %d (%s)", tt.y, got, tt.block, tt.name)
		}
	}
}

func TestFlatGeneratorUpperChunkEmpty(t *testing.T) {
	g := NewFlatGenerator(8, 5)
	voxels := make([]uint8, 8*8*8)
	g.Fill(voxels, ChunkPos{Y: 1})

	for i, v := range voxels {
		if v != Air {
			t.Fatalf("voxel %d = %d, want air", i, v)
		}
	}
}
