package engine

import (
	"github.com/abdeljalil-salhi/ft-vox/pkg/camera"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// Break removes the voxel cam points at within reach.
func (e *Engine) Break(cam *camera.Camera) (world.Hit, bool) {
	grid := e.Grid()
	if grid == nil {
		return world.Hit{}, false
	}
	hit, ok := grid.RayCast(cam.EyePosition(), cam.Forward, world.MaxRayDistance)
	if !ok {
		return world.Hit{}, false
	}

	rebuilt := grid.SetVoxel(hit.Voxel[0], hit.Voxel[1], hit.Voxel[2], gen.Air)
	e.log.Debug("voxel broken",
		"x", hit.Voxel[0], "y", hit.Voxel[1], "z", hit.Voxel[2],
		"material", gen.MaterialName(hit.ID),
		"rebuilt", len(rebuilt),
	)
	return hit, true
}

// Place puts id against the face cam points at. The target cell must be
// empty and outside the player box.
func (e *Engine) Place(cam *camera.Camera, id uint8) ([3]int, bool) {
	grid := e.Grid()
	if grid == nil || id == gen.Air {
		return [3]int{}, false
	}
	hit, ok := grid.RayCast(cam.EyePosition(), cam.Forward, world.MaxRayDistance)
	if !ok || hit.Normal == [3]int{} {
		return [3]int{}, false
	}

	p := hit.Adjacent()
	if grid.VoxelAt(p[0], p[1], p[2]) != gen.Air {
		return [3]int{}, false
	}
	occupied := func(x, y, z int) bool { return [3]int{x, y, z} == p }
	if !cam.GoThrough && !camera.Fits(cam.Position, occupied) {
		return [3]int{}, false
	}

	rebuilt := grid.SetVoxel(p[0], p[1], p[2], id)
	e.log.Debug("voxel placed",
		"x", p[0], "y", p[1], "z", p[2],
		"material", gen.MaterialName(id),
		"rebuilt", len(rebuilt),
	)
	return p, true
}

// Move walks cam along its own axes, colliding with solid voxels. Without a
// built world the move is unobstructed.
func (e *Engine) Move(cam *camera.Camera, forward, right, up float32) {
	var solid camera.SolidFunc
	if grid := e.Grid(); grid != nil {
		solid = grid.Solid
	}
	cam.Move(forward, right, up, solid)
}
