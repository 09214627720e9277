// Package camera provides the first-person fly camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Direction selects the axis Move travels along.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// FlyCamera is a yaw/pitch camera that moves freely through the scene.
type FlyCamera struct {
	Position math.Vec3
	WorldUp  math.Vec3

	Yaw   float32 // degrees, -90 looks down -Z
	Pitch float32 // degrees
	FOV   float32 // vertical field of view, degrees

	Speed       float32 // world units per second
	Sensitivity float32 // degrees per pixel of mouse motion

	MinFOV, MaxFOV float32
	MaxPitch       float32

	Near, Far float32

	front, right, up math.Vec3
}

// NewFlyCamera creates a camera at (0, 2, 5) looking down -Z.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:    math.Vec3{X: 0, Y: 2, Z: 5},
		WorldUp:     math.Vec3{Y: 1},
		Yaw:         -90,
		Pitch:       0,
		FOV:         45,
		Speed:       2.5,
		Sensitivity: 0.1,
		MinFOV:      1,
		MaxFOV:      45,
		MaxPitch:    89,
		Near:        0.1,
		Far:         100,
	}
	c.updateVectors()
	return c
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 { return c.front }

// Right returns the unit right vector.
func (c *FlyCamera) Right() math.Vec3 { return c.right }

// Up returns the unit camera-up vector.
func (c *FlyCamera) Up() math.Vec3 { return c.up }

// PointAhead returns the point distance units in front of the camera.
func (c *FlyCamera) PointAhead(distance float32) math.Vec3 {
	return c.Position.Add(c.front.Scale(distance))
}

// ViewMatrix returns the world-to-view matrix.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *FlyCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// HandleMouse turns the camera by a mouse delta in pixels. Positive dy
// looks up.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch+dy*c.Sensitivity, -c.MaxPitch, c.MaxPitch)
	c.updateVectors()
}

// Orient sets yaw and pitch in degrees. Pitch is clamped like mouse look.
func (c *FlyCamera) Orient(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = math.Clamp(pitch, -c.MaxPitch, c.MaxPitch)
	c.updateVectors()
}

// HandleZoom narrows the field of view for positive scroll.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.FOV = math.Clamp(c.FOV-delta, c.MinFOV, c.MaxFOV)
}

// Move translates the camera along its own axes for dt seconds.
func (c *FlyCamera) Move(dir Direction, dt float32) {
	step := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Scale(step))
	case Backward:
		c.Position = c.Position.Sub(c.front.Scale(step))
	case Left:
		c.Position = c.Position.Sub(c.right.Scale(step))
	case Right:
		c.Position = c.Position.Add(c.right.Scale(step))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Scale(step))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Scale(step))
	}
}

// FitToBounds places the camera in front of a box so all of it is visible.
func (c *FlyCamera) FitToBounds(minB, maxB math.Vec3) {
	center := minB.Lerp(maxB, 0.5)
	radius := maxB.Sub(minB).Length() / 2
	if radius == 0 {
		radius = 1
	}
	dist := radius / math32.Tan(math.Radians(c.FOV)/2)

	c.Yaw = -90
	c.Pitch = 0
	c.updateVectors()
	c.Position = center.Sub(c.front.Scale(dist))
}

func (c *FlyCamera) updateVectors() {
	yaw := math.Radians(c.Yaw)
	pitch := math.Radians(c.Pitch)
	c.front = math.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
