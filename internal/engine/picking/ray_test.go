package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/sceneview/pkg/math"
)

func unitBox(center math.Vec3) AABB {
	return AABB{Min: center.Sub(math.Splat(1)), Max: center.Add(math.Splat(1))}
}

func TestIntersectAABB(t *testing.T) {
	box := unitBox(math.Vec3{})

	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		wantAt float32
	}{
		{"hit from front", NewRay(math.Vec3{Z: 5}, math.Vec3{Z: -1}), true, 4},
		{"miss beside", NewRay(math.Vec3{X: 3, Z: 5}, math.Vec3{Z: -1}), false, 0},
		{"pointing away", NewRay(math.Vec3{Z: 5}, math.Vec3{Z: 1}), false, 0},
		{"inside returns exit", NewRay(math.Vec3{}, math.Vec3{X: 1}), true, 1},
		{"parallel outside slab", NewRay(math.Vec3{Y: 2, Z: 5}, math.Vec3{Z: -1}), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.wantAt, d, 1e-5)
			}
		})
	}
}

func TestTransformAABB(t *testing.T) {
	lo := math.Vec3{X: -1, Y: -1, Z: -1}
	hi := math.Vec3{X: 1, Y: 1, Z: 1}

	box := TransformAABB(lo, hi, math.Model(math.Vec3{X: 5}, math.Vec3{}, 2))
	assert.InDelta(t, 3, box.Min.X, 1e-5)
	assert.InDelta(t, 7, box.Max.X, 1e-5)
	assert.InDelta(t, -2, box.Min.Y, 1e-5)
	assert.InDelta(t, 2, box.Max.Z, 1e-5)

	// A 45 degree turn about Y widens the box to the diagonal.
	box = TransformAABB(lo, hi, math.Model(math.Vec3{}, math.Vec3{Y: math.Radians(45)}, 1))
	assert.InDelta(t, 1.41421, box.Max.X, 1e-4)
	assert.InDelta(t, 1.41421, box.Max.Z, 1e-4)
	assert.InDelta(t, 1, box.Max.Y, 1e-5)
}

func TestNearest(t *testing.T) {
	boxes := []AABB{
		unitBox(math.Vec3{Z: -10}),
		unitBox(math.Vec3{X: 5}),
		unitBox(math.Vec3{Z: -4}),
	}
	r := NewRay(math.Vec3{Z: 5}, math.Vec3{Z: -1})
	i, d := r.Nearest(boxes)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 8, d, 1e-5)

	i, _ = NewRay(math.Vec3{Y: 10}, math.Vec3{Y: 1}).Nearest(boxes)
	assert.Equal(t, -1, i)
}

func TestIntersectPlaneY(t *testing.T) {
	p, ok := NewRay(math.Vec3{Y: 4}, math.Vec3{X: 1, Y: -1}).IntersectPlaneY(0)
	assert.True(t, ok)
	assert.InDelta(t, 4, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)

	_, ok = NewRay(math.Vec3{Y: 4}, math.Vec3{X: 1}).IntersectPlaneY(0)
	assert.False(t, ok)
}
