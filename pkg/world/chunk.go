package world

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// Chunk is a dense cube of voxels and its derived mesh.
type Chunk struct {
	index  int
	pos    gen.ChunkPos
	size   int
	voxels []uint8 // x + size*z + size²*y

	empty atomic.Bool
	mesh  atomic.Pointer[mesh.Mesh]

	center mgl32.Vec3
	radius float32
}

func newChunk(index int, pos gen.ChunkPos, size int) *Chunk {
	s := float32(size)
	c := &Chunk{
		index:  index,
		pos:    pos,
		size:   size,
		voxels: make([]uint8, size*size*size),
		center: mgl32.Vec3{
			(float32(pos.X) + 0.5) * s,
			(float32(pos.Y) + 0.5) * s,
			(float32(pos.Z) + 0.5) * s,
		},
		radius: s / 2 * float32(math.Sqrt(3)),
	}
	c.empty.Store(true)
	return c
}

// Index returns the linear grid index of the chunk.
func (c *Chunk) Index() int { return c.index }

// Position returns the chunk coordinates in chunk units.
func (c *Chunk) Position() gen.ChunkPos { return c.pos }

// Empty reports whether every voxel is air.
func (c *Chunk) Empty() bool { return c.empty.Load() }

// Center returns the world-space center of the chunk.
func (c *Chunk) Center() mgl32.Vec3 { return c.center }

// Radius returns the radius of the bounding sphere, half the chunk diagonal.
func (c *Chunk) Radius() float32 { return c.radius }

// ModelOffset returns the chunk-space origin. Multiply by the chunk size for world units.
func (c *Chunk) ModelOffset() (x, y, z int) {
	return c.pos.X, c.pos.Y, c.pos.Z
}

// ModelMatrix returns the translation placing the chunk mesh in world space.
func (c *Chunk) ModelMatrix() mgl32.Mat4 {
	s := float32(c.size)
	return mgl32.Translate3D(float32(c.pos.X)*s, float32(c.pos.Y)*s, float32(c.pos.Z)*s)
}

// Voxel returns the voxel id at local coordinates. It does not lock the grid.
func (c *Chunk) Voxel(x, y, z int) uint8 {
	return c.voxels[gen.Index(c.size, x, y, z)]
}

// Mesh returns the current mesh, or nil if none has been built.
func (c *Chunk) Mesh() *mesh.Mesh { return c.mesh.Load() }

// VertexBuffer returns the current mesh as little-endian packed words.
func (c *Chunk) VertexBuffer() []byte { return c.Mesh().Bytes() }

// refreshEmpty recomputes the empty flag from the voxels.
func (c *Chunk) refreshEmpty() {
	for _, v := range c.voxels {
		if v != 0 {
			c.empty.Store(false)
			return
		}
	}
	c.empty.Store(true)
}
