package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Fits reports whether the player box at position overlaps no solid voxel.
func Fits(position mgl32.Vec3, solid SolidFunc) bool {
	minX := floor(position.X() - PlayerWidth/2)
	maxX := floor(position.X() + PlayerWidth/2)
	minY := floor(position.Y() + CollisionOffset)
	maxY := floor(position.Y() + PlayerHeight)
	minZ := floor(position.Z() - PlayerDepth/2)
	maxZ := floor(position.Z() + PlayerDepth/2)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if solid(x, y, z) {
					return false
				}
			}
		}
	}
	return true
}

// Move translates the camera along its own axes. A blocked move slides along
// each world axis that is still free.
func (c *Camera) Move(forward, right, up float32, solid SolidFunc) {
	delta := c.Forward.Mul(forward).Add(c.Right.Mul(right)).Add(c.Up.Mul(up))
	next := c.Position.Add(delta)

	if c.GoThrough || solid == nil || Fits(next, solid) {
		c.Position = next
		return
	}

	var allowed mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if delta[axis] == 0 {
			continue
		}
		probe := c.Position
		probe[axis] += delta[axis]
		if Fits(probe, solid) {
			allowed[axis] = delta[axis]
		}
	}
	c.Position = c.Position.Add(allowed)
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}
