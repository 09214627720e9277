// Package lighting provides the point lights of a scene and their GPU
// upload layout.
package lighting

import (
	"github.com/Faultbox/sceneview/pkg/math"
)

// MaxLights is the maximum number of lights supported in shaders.
const MaxLights = 8

// Light is a Phong point light.
type Light struct {
	Position  math.Vec3
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Intensity float32
	Enabled   bool
}

// Default returns a white light at the origin, used as the starting
// value for lights read from a scene file.
func Default() Light {
	return Light{
		Ambient:   math.Splat(0.2),
		Diffuse:   math.Splat(0.8),
		Specular:  math.Splat(1),
		Intensity: 1,
		Enabled:   true,
	}
}

// DefaultRig returns the key, fill and back lights used when no scene
// file provides lights.
func DefaultRig() []Light {
	return []Light{
		{
			Position:  math.Vec3{X: 2, Y: 3, Z: 2},
			Ambient:   math.Splat(0.1),
			Diffuse:   math.Splat(1),
			Specular:  math.Splat(1),
			Intensity: 1,
			Enabled:   true,
		},
		{
			Position:  math.Vec3{X: -2, Y: 1, Z: 1},
			Ambient:   math.Splat(0.05),
			Diffuse:   math.Splat(0.4),
			Specular:  math.Splat(0.3),
			Intensity: 0.6,
			Enabled:   true,
		},
		{
			Position:  math.Vec3{X: 0, Y: 2, Z: -3},
			Ambient:   math.Splat(0.02),
			Diffuse:   math.Splat(0.6),
			Specular:  math.Splat(0.8),
			Intensity: 0.4,
			Enabled:   true,
		},
	}
}

// Buffer holds the lights packed for uniform upload. Disabled lights are
// kept so indices stay stable; the shader skips them.
type Buffer struct {
	Lights []Light
	Count  int
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{Lights: make([]Light, 0, MaxLights)}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// Set replaces all lights in the buffer, truncating to MaxLights.
func (b *Buffer) Set(lights []Light) {
	b.Clear()
	count := min(len(lights), MaxLights)
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// Positions returns positions as a flat slice: [x0, y0, z0, x1, ...].
func (b *Buffer) Positions() []float32 {
	return b.flatten(func(l Light) math.Vec3 { return l.Position })
}

// Ambients returns ambient colors scaled by intensity.
func (b *Buffer) Ambients() []float32 {
	return b.flatten(func(l Light) math.Vec3 { return l.Ambient.Scale(l.Intensity) })
}

// Diffuses returns diffuse colors scaled by intensity.
func (b *Buffer) Diffuses() []float32 {
	return b.flatten(func(l Light) math.Vec3 { return l.Diffuse.Scale(l.Intensity) })
}

// Speculars returns specular colors scaled by intensity.
func (b *Buffer) Speculars() []float32 {
	return b.flatten(func(l Light) math.Vec3 { return l.Specular.Scale(l.Intensity) })
}

// EnabledFlags returns 1 for each enabled light and 0 otherwise.
func (b *Buffer) EnabledFlags() []int32 {
	result := make([]int32, MaxLights)
	for i, l := range b.Lights {
		if l.Enabled {
			result[i] = 1
		}
	}
	return result
}

func (b *Buffer) flatten(field func(Light) math.Vec3) []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		v := field(l)
		result[i*3+0] = v.X
		result[i*3+1] = v.Y
		result[i*3+2] = v.Z
	}
	return result
}
