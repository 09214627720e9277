// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/sceneview/pkg/math"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes, in model units.
const DefaultBBoxPadding = 0.05

// boxEdges indexes corner pairs. Corner i has bit 0 = X, bit 1 = Y and
// bit 2 = Z set to max.
var boxEdges = [12][2]int{
	{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
	{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
	{0, 2}, {1, 3}, {5, 7}, {4, 6}, // vertical
}

// BoxCorners returns the 8 corners of the box lo..hi grown by padding.
func BoxCorners(lo, hi math.Vec3, padding float32) [8]math.Vec3 {
	lo = lo.Sub(math.Splat(padding))
	hi = hi.Add(math.Splat(padding))

	var c [8]math.Vec3
	for i := range c {
		c[i] = lo
		if i&1 != 0 {
			c[i].X = hi.X
		}
		if i&2 != 0 {
			c[i].Y = hi.Y
		}
		if i&4 != 0 {
			c[i].Z = hi.Z
		}
	}
	return c
}

// BBoxWireframe returns GL_LINES endpoints for the model-space box lo..hi
// transformed by model.
func BBoxWireframe(lo, hi math.Vec3, model math.Mat4, padding float32) []math.Vec3 {
	corners := BoxCorners(lo, hi, padding)
	for i := range corners {
		corners[i] = model.TransformVec3(corners[i])
	}

	out := make([]math.Vec3, 0, BBoxWireframeVertexCount)
	for _, e := range boxEdges {
		out = append(out, corners[e[0]], corners[e[1]])
	}
	return out
}
