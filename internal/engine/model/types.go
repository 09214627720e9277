// Package model holds loaded scene objects: geometry, material and
// placement, plus the loader that builds them from OBJ/MTL files.
package model

import (
	"image"

	"github.com/Faultbox/sceneview/internal/engine/trajectory"
	"github.com/Faultbox/sceneview/pkg/formats"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Vertex is an interleaved vertex ready for GPU upload.
// It shares its layout with formats.OBJVertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds is an axis-aligned bounding box in model space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Size returns the box extent on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Material is a Phong material with an optional diffuse texture.
type Material struct {
	Ambient     math.Vec3
	Diffuse     math.Vec3
	Specular    math.Vec3
	Shininess   float32
	TexturePath string // resolved path of map_Kd, empty when none
	HasTexture  bool   // true only when the texture decoded successfully
	Texture     *image.RGBA
}

// DefaultMaterial returns the material used when no MTL file is available.
func DefaultMaterial() Material {
	return materialFromMTL(formats.DefaultMTL())
}

func materialFromMTL(m formats.MTL) Material {
	return Material{
		Ambient:   vec3(m.Ambient),
		Diffuse:   vec3(m.Diffuse),
		Specular:  vec3(m.Specular),
		Shininess: m.Shininess,
	}
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Transform places a mesh in the world. Rotation holds Euler angles in
// radians.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Vec3
	Scale       float32
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() math.Mat4 {
	return math.Model(t.Translation, t.Rotation, t.Scale)
}

// Mesh is one loaded scene object.
type Mesh struct {
	Name   string
	Source string // resolved OBJ path

	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	Transform  Transform
	Material   Material
	Trajectory *trajectory.Trajectory
	Selected   bool

	// Warnings are the recoverable problems met while loading.
	Warnings []error
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// WorldPosition returns the translation of the mesh.
func (m *Mesh) WorldPosition() math.Vec3 {
	return m.Transform.Translation
}
