// Package camera implements a first-person yaw/pitch camera with voxel collision.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abdeljalil-salhi/ft-vox/pkg/frustum"
)

// Player body and view constants, in voxels.
const (
	PlayerWidth     = 0.6
	PlayerHeight    = 1.8
	PlayerDepth     = 0.6
	EyeHeight       = 1.6
	CollisionOffset = 0.1
)

// PitchLimit is the largest absolute pitch in radians.
var PitchLimit = mgl32.DegToRad(89)

var worldUp = mgl32.Vec3{0, 1, 0}

// Lens describes the projection of a camera.
type Lens struct {
	VerticalFOV float32 // radians
	Aspect      float32
	Near        float32
	Far         float32
}

// SolidFunc reports whether the voxel at world coordinates blocks movement.
type SolidFunc func(x, y, z int) bool

// Camera is a first-person camera. Call Update after rotating it.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // radians
	Pitch    float32 // radians

	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3

	// GoThrough disables collision.
	GoThrough bool

	lens       Lens
	projection mgl32.Mat4
	frustum    *frustum.Frustum
}

// New creates a camera at position with yaw and pitch in degrees.
func New(position mgl32.Vec3, yawDeg, pitchDeg float32, lens Lens) *Camera {
	c := &Camera{
		Position:   position,
		Yaw:        mgl32.DegToRad(yawDeg),
		Pitch:      mgl32.DegToRad(pitchDeg),
		lens:       lens,
		projection: mgl32.Perspective(lens.VerticalFOV, lens.Aspect, lens.Near, lens.Far),
		frustum:    frustum.New(lens.VerticalFOV, lens.Aspect, lens.Near, lens.Far),
	}
	c.Update()
	return c
}

// Update recomputes the forward, right and up axes from yaw and pitch.
func (c *Camera) Update() {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	c.Forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.Right = c.Forward.Cross(worldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}

// RotateYaw turns the camera left or right by delta radians.
func (c *Camera) RotateYaw(delta float32) {
	c.Yaw += delta
}

// RotatePitch tilts the camera by delta radians. Positive delta looks down.
func (c *Camera) RotatePitch(delta float32) {
	c.Pitch = mgl32.Clamp(c.Pitch-delta, -PitchLimit, PitchLimit)
}

// EyePosition returns the point the player looks from, EyeHeight above the feet.
func (c *Camera) EyePosition() mgl32.Vec3 {
	return c.Position.Add(mgl32.Vec3{0, EyeHeight, 0})
}

// View returns the view matrix seen from the eye position.
func (c *Camera) View() mgl32.Mat4 {
	eye := c.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(c.Forward), c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// Lens returns the projection settings.
func (c *Camera) Lens() Lens {
	return c.lens
}

// Frustum returns the culling frustum matching the projection.
func (c *Camera) Frustum() *frustum.Frustum {
	return c.frustum
}

// Eye returns the state consumed by the frustum culler.
func (c *Camera) Eye() frustum.Eye {
	return frustum.Eye{
		Position: c.Position,
		Forward:  c.Forward,
		Right:    c.Right,
		Up:       c.Up,
	}
}

// IsVisible reports whether a bounding sphere is inside the camera frustum.
func (c *Camera) IsVisible(center mgl32.Vec3, radius float32) bool {
	return c.frustum.IsVisible(center, radius, c.Eye())
}
