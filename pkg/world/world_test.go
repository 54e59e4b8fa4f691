package world

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abdeljalil-salhi/ft-vox/pkg/frustum"
	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// pointGenerator places individual voxels at world coordinates.
type pointGenerator struct {
	size   int
	points map[[3]int]uint8
}

func (p pointGenerator) Fill(voxels []uint8, pos gen.ChunkPos) {
	for w, id := range p.points {
		if floorDiv(w[0], p.size) != pos.X || floorDiv(w[1], p.size) != pos.Y || floorDiv(w[2], p.size) != pos.Z {
			continue
		}
		voxels[gen.Index(p.size, floorMod(w[0], p.size), floorMod(w[1], p.size), floorMod(w[2], p.size))] = id
	}
}

func (p pointGenerator) HeightAt(_, _ int) int { return 0 }

func buildGrid(t *testing.T, opts Options) *Grid {
	t.Helper()
	g, err := Build(context.Background(), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func flatOptions() Options {
	return Options{
		ChunkSize: 4,
		Width:     2,
		Height:    2,
		Depth:     2,
		Generator: gen.NewFlatGenerator(4, 3),
		Workers:   2,
		Mesh:      mesh.DefaultOptions(),
	}
}

func totalFaces(g *Grid) int {
	n := 0
	g.ForEachChunk(func(c *Chunk) {
		n += c.Mesh().Faces()
	})
	return n
}

func TestChunkIndexBijective(t *testing.T) {
	g, err := New(Options{ChunkSize: 4, Width: 3, Height: 2, Depth: 5, Generator: gen.NewFlatGenerator(4, 1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	seen := make(map[int]bool)
	for cy := 0; cy < 2; cy++ {
		for cz := 0; cz < 5; cz++ {
			for cx := 0; cx < 3; cx++ {
				i := g.IndexOf(cx, cy, cz)
				if i < 0 || i >= g.Len() {
					t.Fatalf("IndexOf(%d,%d,%d) = %d, out of [0,%d)", cx, cy, cz, i, g.Len())
				}
				if seen[i] {
					t.Fatalf("IndexOf(%d,%d,%d) = %d, duplicate", cx, cy, cz, i)
				}
				seen[i] = true
			}
		}
	}
	if len(seen) != g.Len() {
		t.Errorf("%d distinct indices, want %d", len(seen), g.Len())
	}
}

func TestChunkIndexOutOfWorld(t *testing.T) {
	g, err := New(Options{ChunkSize: 4, Width: 3, Height: 2, Depth: 5, Generator: gen.NewFlatGenerator(4, 1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		wx, wy, wz int
		want       int
	}{
		{0, 0, 0, 0},
		{3, 3, 3, 0},
		{4, 0, 0, 1},
		{0, 0, 4, 3},
		{0, 4, 0, 15},
		{11, 7, 19, 29},
		{-1, 0, 0, OutOfWorld},
		{0, -1, 0, OutOfWorld},
		{0, 0, -1, OutOfWorld},
		{12, 0, 0, OutOfWorld},
		{0, 8, 0, OutOfWorld},
		{0, 0, 20, OutOfWorld},
		{-100, -100, -100, OutOfWorld},
	}

	for _, tt := range tests {
		if got := g.ChunkIndex(tt.wx, tt.wy, tt.wz); got != tt.want {
			t.Errorf("ChunkIndex(%d,%d,%d) = %d, want %d", tt.wx, tt.wy, tt.wz, got, tt.want)
		}
	}
}

func TestForEachChunkOrder(t *testing.T) {
	g, err := New(Options{ChunkSize: 2, Width: 2, Height: 2, Depth: 2, Generator: gen.NewFlatGenerator(2, 1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []gen.ChunkPos{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	i := 0
	g.ForEachChunk(func(c *Chunk) {
		if c.Position() != want[i] {
			t.Errorf("chunk %d position = %+v, want %+v", i, c.Position(), want[i])
		}
		if c.Index() != i {
			t.Errorf("chunk %d Index = %d", i, c.Index())
		}
		i++
	})
}

func TestVoxelAtBoundary(t *testing.T) {
	g := buildGrid(t, flatOptions())

	if got := g.VoxelAt(-1, 0, 0); got != Boundary {
		t.Errorf("VoxelAt(-1,0,0) = %d, want Boundary", got)
	}
	if got := g.VoxelAt(1, 2, 1); got != gen.Grass {
		t.Errorf("VoxelAt(1,2,1) = %d, want grass", got)
	}
	if got := g.VoxelAt(1, 3, 1); got != gen.Air {
		t.Errorf("VoxelAt(1,3,1) = %d, want air", got)
	}
	if g.IsVoid([3]int{-1, 0, 0}, [3]int{-1, 0, 0}) {
		t.Error("IsVoid outside the world = true, want false")
	}
	if !g.IsVoid([3]int{1, 4, 1}, [3]int{1, 4, 1}) {
		t.Error("IsVoid of air in the upper chunk = false, want true")
	}
	if g.Solid(-1, 0, 0) {
		t.Error("Solid outside the world = true, want false")
	}
}

func TestChunkGeometry(t *testing.T) {
	g := buildGrid(t, flatOptions())
	c := g.Chunk(g.IndexOf(1, 0, 1))

	if want := (mgl32.Vec3{6, 2, 6}); c.Center() != want {
		t.Errorf("Center = %v, want %v", c.Center(), want)
	}
	if want := float32(2 * 1.7320508); c.Radius() < want-1e-4 || c.Radius() > want+1e-4 {
		t.Errorf("Radius = %v, want %v", c.Radius(), want)
	}
	if x, y, z := c.ModelOffset(); x != 1 || y != 0 || z != 1 {
		t.Errorf("ModelOffset = (%d,%d,%d), want (1,0,1)", x, y, z)
	}
	if got := c.ModelMatrix().Col(3); got != (mgl32.Vec4{4, 0, 4, 1}) {
		t.Errorf("ModelMatrix translation = %v, want (4,0,4,1)", got)
	}
}

func TestBuildFlatWorld(t *testing.T) {
	g := buildGrid(t, flatOptions())

	g.ForEachChunk(func(c *Chunk) {
		if c.Position().Y == 0 && c.Empty() {
			t.Errorf("chunk %+v empty, want terrain", c.Position())
		}
		if c.Position().Y == 1 {
			if !c.Empty() {
				t.Errorf("chunk %+v not empty", c.Position())
			}
			if c.Mesh() != nil || len(c.VertexBuffer()) != 0 {
				t.Errorf("empty chunk %+v has a mesh", c.Position())
			}
		}
	})

	// Sides and bottom are closed by the boundary, so only the top layer shows.
	if got, want := totalFaces(g), 8*8; got != want {
		t.Errorf("total faces = %d, want %d", got, want)
	}
}

func TestBuildCrossChunkCulling(t *testing.T) {
	opts := Options{
		ChunkSize: 4,
		Width:     2,
		Height:    1,
		Depth:     1,
		Generator: pointGenerator{size: 4, points: map[[3]int]uint8{
			{3, 0, 0}: gen.Stone,
			{4, 0, 0}: gen.Dirt,
		}},
		Mesh: mesh.DefaultOptions(),
	}
	g := buildGrid(t, opts)

	// Each voxel loses the shared face plus bottom and back at the boundary.
	if got := totalFaces(g); got != 6 {
		t.Errorf("total faces = %d, want 6", got)
	}
	for _, w := range g.Chunk(0).Mesh().Words() {
		if v := mesh.Unpack(w); v.Face == mesh.FaceRight {
			t.Errorf("left chunk emitted a right face at %+v", v)
		}
	}
}

func TestBuildDeterministicTerrain(t *testing.T) {
	params := gen.Params{Seed: 16, ChunkSize: 16, WorldWidth: 4, WorldHeight: 2, WorldDepth: 4, Jitter: gen.JitterSeeded}
	opts := Options{
		ChunkSize: 16,
		Width:     4,
		Height:    2,
		Depth:     4,
		Generator: gen.NewTerrain(params),
		Workers:   4,
		Mesh:      mesh.DefaultOptions(),
	}

	g1 := buildGrid(t, opts)
	g2 := buildGrid(t, opts)
	for i := 0; i < g1.Len(); i++ {
		b1, b2 := g1.Chunk(i).VertexBuffer(), g2.Chunk(i).VertexBuffer()
		if string(b1) != string(b2) {
			t.Fatalf("chunk %d vertex buffers differ", i)
		}
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, flatOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build error = %v, want context.Canceled", err)
	}
}

func TestBuildInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Options)
	}{
		{"chunk size 64", func(o *Options) { o.ChunkSize = 64 }},
		{"chunk size 0", func(o *Options) { o.ChunkSize = 0 }},
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"nil generator", func(o *Options) { o.Generator = nil }},
		{"negative workers", func(o *Options) { o.Workers = -1 }},
	}

	for _, tt := range tests {
		opts := flatOptions()
		tt.mod(&opts)
		if _, err := Build(context.Background(), opts); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("%s: error = %v, want ErrInvalidOptions", tt.name, err)
		}
	}
}

func TestRemeshKeepsVoxels(t *testing.T) {
	g := buildGrid(t, flatOptions())
	before := g.VoxelAt(2, 1, 2)
	faces := totalFaces(g)

	if err := g.Remesh(context.Background(), mesh.Options{AmbientOcclusion: false}); err != nil {
		t.Fatalf("Remesh: %v", err)
	}
	if g.Shading().AmbientOcclusion {
		t.Error("Shading().AmbientOcclusion = true after flat remesh")
	}
	if got := g.VoxelAt(2, 1, 2); got != before {
		t.Errorf("VoxelAt after remesh = %d, want %d", got, before)
	}
	if got := totalFaces(g); got != faces {
		t.Errorf("faces after remesh = %d, want %d", got, faces)
	}
	g.ForEachChunk(func(c *Chunk) {
		for _, w := range c.Mesh().Words() {
			if v := mesh.Unpack(w); v.AO != 3 || v.Flip {
				t.Fatalf("flat remesh vertex %+v has occlusion", v)
			}
		}
	})
}

// hasOcclusion reports whether any vertex in the grid is darkened.
func hasOcclusion(g *Grid) bool {
	found := false
	g.ForEachChunk(func(c *Chunk) {
		for _, w := range c.Mesh().Words() {
			if mesh.Unpack(w).AO != 3 {
				found = true
			}
		}
	})
	return found
}

// bumpyGrid is a flat world with one voxel on top, so occlusion is visible.
func bumpyGrid(t *testing.T) *Grid {
	t.Helper()
	g := buildGrid(t, flatOptions())
	g.SetVoxel(1, 3, 1, gen.Stone)
	if !hasOcclusion(g) {
		t.Fatal("bump casts no occlusion")
	}
	return g
}

func TestRemeshCancelledKeepsShading(t *testing.T) {
	g := bumpyGrid(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Remesh(ctx, mesh.Options{AmbientOcclusion: false}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Remesh = %v, want context.Canceled", err)
	}
	if !g.Shading().AmbientOcclusion {
		t.Error("Shading().AmbientOcclusion = false after cancelled remesh, want true")
	}
	if !hasOcclusion(g) {
		t.Error("cancelled remesh replaced occluded meshes")
	}
}

func TestConcurrentRemeshConsistent(t *testing.T) {
	g := bumpyGrid(t)

	for i := 0; i < 20; i++ {
		var wg sync.WaitGroup
		for _, ao := range []bool{true, false} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := g.Remesh(context.Background(), mesh.Options{AmbientOcclusion: ao}); err != nil {
					t.Errorf("Remesh: %v", err)
				}
			}()
		}
		wg.Wait()

		if got, want := hasOcclusion(g), g.Shading().AmbientOcclusion; got != want {
			t.Fatalf("iteration %d: meshes occluded = %v, Shading().AmbientOcclusion = %v", i, got, want)
		}
	}
}

func TestVisibleSkipsEmptyAndHidden(t *testing.T) {
	g := buildGrid(t, flatOptions())
	f := frustum.New(mgl32.DegToRad(50), 16.0/9.0, 0.1, 100)

	// Looking along +x from the west side of the world at ground level.
	eye := frustum.Eye{
		Position: mgl32.Vec3{-20, 2, 4},
		Forward:  mgl32.Vec3{1, 0, 0},
		Right:    mgl32.Vec3{0, 0, 1},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	visible := g.Visible(f, eye)
	if len(visible) == 0 {
		t.Fatal("no chunks visible")
	}
	for _, c := range visible {
		if c.Empty() {
			t.Errorf("empty chunk %+v reported visible", c.Position())
		}
	}

	eye.Forward = mgl32.Vec3{-1, 0, 0}
	eye.Right = mgl32.Vec3{0, 0, -1}
	if got := g.Visible(f, eye); len(got) != 0 {
		t.Errorf("%d chunks visible looking away, want 0", len(got))
	}
}
