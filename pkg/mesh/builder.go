package mesh

import (
	"fmt"
	"sync"
)

// Source answers neighbour queries that may cross into adjacent chunks.
//
// local is the neighbour position relative to the chunk being meshed and may lie
// one step outside [0, size). world is the same position in world voxels.
// Positions outside the world must report false.
type Source interface {
	IsVoid(local, world [3]int) bool
}

// Options controls per-build shading.
type Options struct {
	// AmbientOcclusion enables per-corner occlusion. When false every corner is
	// fully lit and quads are never flipped.
	AmbientOcclusion bool
}

// DefaultOptions returns the options used by a normal world build.
func DefaultOptions() Options {
	return Options{AmbientOcclusion: true}
}

// MaxVerticesPerVoxel is the worst case of six visible faces per voxel.
const MaxVerticesPerVoxel = FaceCount * VerticesPerFace

// Builder extracts meshes for chunks of one size. Safe for concurrent use.
type Builder struct {
	size    int
	scratch sync.Pool
}

// NewBuilder creates a Builder for chunks with the given edge length.
// It panics if size cannot be represented in a packed vertex.
func NewBuilder(size int) *Builder {
	if size < 1 || size > MaxChunkSize {
		panic(fmt.Sprintf("mesh: chunk size %d outside [1, %d]", size, MaxChunkSize))
	}
	capacity := size * size * size * MaxVerticesPerVoxel
	b := &Builder{size: size}
	b.scratch.New = func() any {
		buf := make([]uint32, capacity)
		return &buf
	}
	return b
}

// Size returns the chunk edge length.
func (b *Builder) Size() int { return b.size }

// Build extracts the surface of voxels, the chunk at chunk coordinates pos.
// Neighbours outside the chunk are resolved through src.
func (b *Builder) Build(voxels []uint8, pos [3]int, src Source, opts Options) *Mesh {
	size := b.size
	if len(voxels) != size*size*size {
		panic(fmt.Sprintf("mesh: voxel array has %d entries, want %d", len(voxels), size*size*size))
	}

	bufp := b.scratch.Get().(*[]uint32)
	defer b.scratch.Put(bufp)

	e := extractor{
		size:   size,
		voxels: voxels,
		origin: [3]int{pos[0] * size, pos[1] * size, pos[2] * size},
		src:    src,
		opts:   opts,
		buf:    *bufp,
	}

	for y := 0; y < size; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				id := voxels[x+size*z+size*size*y]
				if id == 0 {
					continue
				}
				e.voxel(x, y, z, id)
			}
		}
	}

	words := make([]uint32, e.n)
	copy(words, e.buf[:e.n])
	return &Mesh{words: words}
}

// extractor holds the state of one Build call.
type extractor struct {
	size   int
	voxels []uint8
	origin [3]int
	src    Source
	opts   Options
	buf    []uint32
	n      int
}

// isVoid reports whether the voxel at local position p is air. Positions
// inside the chunk are read directly; others go through the source.
func (e *extractor) isVoid(p [3]int) bool {
	s := e.size
	if p[0] >= 0 && p[0] < s && p[1] >= 0 && p[1] < s && p[2] >= 0 && p[2] < s {
		return e.voxels[p[0]+s*p[2]+s*s*p[1]] == 0
	}
	world := [3]int{e.origin[0] + p[0], e.origin[1] + p[1], e.origin[2] + p[2]}
	return e.src.IsVoid(p, world)
}

func (e *extractor) voxel(x, y, z int, id uint8) {
	for f := range Face(FaceCount) {
		n := faceNormals[f]
		if !e.isVoid([3]int{x + n[0], y + n[1], z + n[2]}) {
			continue
		}

		ao := [4]uint8{3, 3, 3, 3}
		flip := false
		if e.opts.AmbientOcclusion {
			var void [8]bool
			for i, off := range occlusionRing[f] {
				void[i] = e.isVoid([3]int{x + off[0], y + off[1], z + off[2]})
			}
			ao = cornerOcclusion(void)
			flip = shouldFlip(ao)
		}

		var corners [4]uint32
		for c, off := range faceCorners[f] {
			corners[c] = Pack(x+off[0], y+off[1], z+off[2], id, f, ao[c], flip)
		}
		e.emit(corners, faceWinding[f][boolIndex(flip)])
	}
}

func (e *extractor) emit(corners [4]uint32, order [6]int) {
	if e.n+VerticesPerFace > len(e.buf) {
		panic(fmt.Sprintf("mesh: vertex buffer overflow: %d words exceed capacity %d", e.n+VerticesPerFace, len(e.buf)))
	}
	for _, c := range order {
		e.buf[e.n] = corners[c]
		e.n++
	}
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
