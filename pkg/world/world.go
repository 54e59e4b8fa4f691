// Package world stores the fixed chunk grid of a voxel world and builds it in
// two phases: terrain for every chunk, then meshes for every chunk.
package world

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/abdeljalil-salhi/ft-vox/pkg/frustum"
	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// OutOfWorld is the chunk index of positions outside the grid.
const OutOfWorld = -1

// Boundary is the voxel id reported for positions outside the grid. It is
// solid so that no face is ever emitted at the world edge.
const Boundary uint8 = 0xFF

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid world options")

// Options configures a Grid.
type Options struct {
	ChunkSize int
	Width     int // chunks along x
	Height    int // chunks along y
	Depth     int // chunks along z
	Generator gen.Generator
	Workers   int // 0 selects runtime.NumCPU
	Mesh      mesh.Options
}

// Validate checks the grid shape and generator.
func (o Options) Validate() error {
	if o.ChunkSize < 1 || o.ChunkSize > mesh.MaxChunkSize {
		return fmt.Errorf("%w: chunk size %d outside [1, %d]", ErrInvalidOptions, o.ChunkSize, mesh.MaxChunkSize)
	}
	if o.Width < 1 || o.Height < 1 || o.Depth < 1 {
		return fmt.Errorf("%w: extents %dx%dx%d must be positive", ErrInvalidOptions, o.Width, o.Height, o.Depth)
	}
	if o.Generator == nil {
		return fmt.Errorf("%w: generator is required", ErrInvalidOptions)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalidOptions, o.Workers)
	}
	return nil
}

// Grid is the fixed 3D array of chunks that makes up the world.
//
// Terrain generation and voxel edits hold the write lock. Meshing holds the
// read lock. Mesh passes and edits are serialized by meshMu, taken before mu.
// Chunk meshes are published atomically and can be read without either lock.
type Grid struct {
	meshMu sync.Mutex
	mu     sync.RWMutex

	size      int
	width     int
	height    int
	depth     int
	chunks    []*Chunk
	generator gen.Generator
	builder   *mesh.Builder
	workers   int
	shading   mesh.Options
}

// New allocates a grid of empty chunks. Voxels are not generated.
func New(opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	g := &Grid{
		size:      opts.ChunkSize,
		width:     opts.Width,
		height:    opts.Height,
		depth:     opts.Depth,
		generator: opts.Generator,
		builder:   mesh.NewBuilder(opts.ChunkSize),
		workers:   workers,
		shading:   opts.Mesh,
	}

	g.chunks = make([]*Chunk, opts.Width*opts.Height*opts.Depth)
	for cy := 0; cy < g.height; cy++ {
		for cz := 0; cz < g.depth; cz++ {
			for cx := 0; cx < g.width; cx++ {
				i := g.IndexOf(cx, cy, cz)
				g.chunks[i] = newChunk(i, gen.ChunkPos{X: cx, Y: cy, Z: cz}, g.size)
			}
		}
	}
	return g, nil
}

// ChunkSize returns the chunk edge length in voxels.
func (g *Grid) ChunkSize() int { return g.size }

// Extents returns the grid size in chunks.
func (g *Grid) Extents() (width, height, depth int) {
	return g.width, g.height, g.depth
}

// Len returns the number of chunks.
func (g *Grid) Len() int { return len(g.chunks) }

// Chunk returns the chunk at linear index i.
func (g *Grid) Chunk(i int) *Chunk { return g.chunks[i] }

// Shading returns the mesh options of the last completed mesh pass.
func (g *Grid) Shading() mesh.Options {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.shading
}

// IndexOf returns the linear index of chunk coordinates, or OutOfWorld.
func (g *Grid) IndexOf(cx, cy, cz int) int {
	if cx < 0 || cx >= g.width || cy < 0 || cy >= g.height || cz < 0 || cz >= g.depth {
		return OutOfWorld
	}
	return cx + g.width*cz + g.width*g.depth*cy
}

// ChunkIndex returns the index of the chunk containing a world voxel, or OutOfWorld.
func (g *Grid) ChunkIndex(wx, wy, wz int) int {
	return g.IndexOf(floorDiv(wx, g.size), floorDiv(wy, g.size), floorDiv(wz, g.size))
}

// ChunkAt returns the chunk containing a world voxel, or nil outside the world.
func (g *Grid) ChunkAt(wx, wy, wz int) *Chunk {
	i := g.ChunkIndex(wx, wy, wz)
	if i == OutOfWorld {
		return nil
	}
	return g.chunks[i]
}

// ForEachChunk calls fn for every chunk in index order: y outer, then z, then x.
func (g *Grid) ForEachChunk(fn func(c *Chunk)) {
	for _, c := range g.chunks {
		fn(c)
	}
}

// VoxelAt returns the voxel id at world coordinates, or Boundary outside the world.
func (g *Grid) VoxelAt(wx, wy, wz int) uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.voxelAt(wx, wy, wz)
}

func (g *Grid) voxelAt(wx, wy, wz int) uint8 {
	i := g.ChunkIndex(wx, wy, wz)
	if i == OutOfWorld {
		return Boundary
	}
	s := g.size
	return g.chunks[i].voxels[gen.Index(s, floorMod(wx, s), floorMod(wy, s), floorMod(wz, s))]
}

// IsVoid reports whether a neighbour voxel is air. local is relative to the
// chunk doing the lookup and world is the same position in world voxels.
// Positions outside the world are solid.
func (g *Grid) IsVoid(local, world [3]int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isVoid(local, world)
}

func (g *Grid) isVoid(local, world [3]int) bool {
	i := g.ChunkIndex(world[0], world[1], world[2])
	if i == OutOfWorld {
		return false
	}
	s := g.size
	return g.chunks[i].voxels[gen.Index(s, floorMod(local[0], s), floorMod(local[1], s), floorMod(local[2], s))] == 0
}

// Solid reports whether the voxel at world coordinates is inside the world and not air.
func (g *Grid) Solid(wx, wy, wz int) bool {
	id := g.VoxelAt(wx, wy, wz)
	return id != 0 && id != Boundary
}

// Visible returns the non-empty chunks whose bounding sphere intersects the frustum.
func (g *Grid) Visible(f *frustum.Frustum, eye frustum.Eye) []*Chunk {
	var out []*Chunk
	for _, c := range g.chunks {
		if c.Empty() {
			continue
		}
		if f.IsVisible(c.center, c.radius, eye) {
			out = append(out, c)
		}
	}
	return out
}

// lockedSource resolves mesh neighbour queries while the caller holds the lock.
type lockedSource struct{ g *Grid }

func (s lockedSource) IsVoid(local, world [3]int) bool { return s.g.isVoid(local, world) }

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
