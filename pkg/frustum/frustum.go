// Package frustum implements bounding-sphere visibility tests against a view frustum.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Eye is the camera state consumed by the culler. The axes must be orthonormal.
type Eye struct {
	Position mgl32.Vec3
	Forward  mgl32.Vec3
	Right    mgl32.Vec3
	Up       mgl32.Vec3
}

// Frustum holds the per-camera factors of a symmetric perspective frustum.
type Frustum struct {
	near, far float32

	factorX, tanX float32
	factorY, tanY float32
}

// New creates a Frustum from a vertical field of view in radians, the
// viewport aspect ratio and the clip plane distances.
func New(verticalFOV, aspect, near, far float32) *Frustum {
	halfY := float64(verticalFOV) * 0.5
	halfX := float64(HorizontalFOV(verticalFOV, aspect)) * 0.5
	return &Frustum{
		near:    near,
		far:     far,
		factorX: float32(1 / math.Cos(halfX)),
		tanX:    float32(math.Tan(halfX)),
		factorY: float32(1 / math.Cos(halfY)),
		tanY:    float32(math.Tan(halfY)),
	}
}

// HorizontalFOV derives the horizontal field of view from the vertical one.
func HorizontalFOV(verticalFOV, aspect float32) float32 {
	return float32(2 * math.Atan(math.Tan(float64(verticalFOV)*0.5)*float64(aspect)))
}

// Near returns the near plane distance.
func (f *Frustum) Near() float32 { return f.near }

// Far returns the far plane distance.
func (f *Frustum) Far() float32 { return f.far }

// IsVisible reports whether a sphere intersects the frustum seen from eye.
func (f *Frustum) IsVisible(center mgl32.Vec3, radius float32, eye Eye) bool {
	v := center.Sub(eye.Position)

	sz := v.Dot(eye.Forward)
	if sz < f.near-radius || sz > f.far+radius {
		return false
	}

	sy := v.Dot(eye.Up)
	dist := f.factorY*radius + sz*f.tanY
	if sy < -dist || sy > dist {
		return false
	}

	sx := v.Dot(eye.Right)
	dist = f.factorX*radius + sz*f.tanX
	return sx >= -dist && sx <= dist
}
