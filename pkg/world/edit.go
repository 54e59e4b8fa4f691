package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// MaxRayDistance is the default reach of voxel picking, in voxels.
const MaxRayDistance = 6

// Hit is the result of a successful ray cast.
type Hit struct {
	Voxel  [3]int // world coordinates of the hit voxel
	Normal [3]int // face entered through; zero when the ray starts inside the voxel
	ID     uint8
}

// Adjacent returns the world position in front of the hit face.
func (h Hit) Adjacent() [3]int {
	return [3]int{h.Voxel[0] + h.Normal[0], h.Voxel[1] + h.Normal[1], h.Voxel[2] + h.Normal[2]}
}

// RayCast walks the voxels crossed by a ray and returns the first solid one
// within maxDist.
func (g *Grid) RayCast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	g.mu.RLock()
	defer g.mu.RUnlock()

	inf := float32(math.Inf(1))
	var cell, step [3]int
	var tMax, tDelta [3]float32
	for a := 0; a < 3; a++ {
		cell[a] = int(math.Floor(float64(origin[a])))
		switch {
		case dir[a] > 0:
			step[a] = 1
			tDelta[a] = 1 / dir[a]
			tMax[a] = (float32(cell[a]+1) - origin[a]) * tDelta[a]
		case dir[a] < 0:
			step[a] = -1
			tDelta[a] = -1 / dir[a]
			tMax[a] = (origin[a] - float32(cell[a])) * tDelta[a]
		default:
			tDelta[a] = inf
			tMax[a] = inf
		}
	}

	var normal [3]int
	for {
		if id := g.voxelAt(cell[0], cell[1], cell[2]); id != 0 && id != Boundary {
			return Hit{Voxel: cell, Normal: normal, ID: id}, true
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		if tMax[axis] > maxDist {
			return Hit{}, false
		}

		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		normal = [3]int{}
		normal[axis] = -step[axis]
	}
}

// SetVoxel writes id at world coordinates and rebuilds every mesh the voxel
// can affect: its own chunk and any neighbour sharing the voxel's boundary.
// It returns the rebuilt chunks, or nil if the position is outside the world.
func (g *Grid) SetVoxel(wx, wy, wz int, id uint8) []*Chunk {
	s := g.size
	local := [3]int{floorMod(wx, s), floorMod(wy, s), floorMod(wz, s)}

	g.meshMu.Lock()
	defer g.meshMu.Unlock()

	g.mu.Lock()
	c := g.ChunkAt(wx, wy, wz)
	if c == nil {
		g.mu.Unlock()
		return nil
	}
	c.voxels[gen.Index(s, local[0], local[1], local[2])] = id
	c.refreshEmpty()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()

	var offsets [3][]int
	for a := 0; a < 3; a++ {
		offsets[a] = []int{0}
		if local[a] == 0 {
			offsets[a] = append(offsets[a], -1)
		}
		if local[a] == s-1 {
			offsets[a] = append(offsets[a], 1)
		}
	}

	var rebuilt []*Chunk
	for _, dy := range offsets[1] {
		for _, dz := range offsets[2] {
			for _, dx := range offsets[0] {
				n := c
				if dx != 0 || dy != 0 || dz != 0 {
					i := g.IndexOf(c.pos.X+dx, c.pos.Y+dy, c.pos.Z+dz)
					if i == OutOfWorld {
						continue
					}
					n = g.chunks[i]
				}
				g.meshChunk(n, g.shading)
				rebuilt = append(rebuilt, n)
			}
		}
	}
	return rebuilt
}
