package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func TestIdentity(t *testing.T) {
	m := Identity()
	assert.Equal(t, float32(1), m[0])
	assert.Equal(t, float32(1), m[5])
	assert.Equal(t, float32(1), m[10])
	assert.Equal(t, float32(1), m[15])
	assert.Equal(t, float32(0), m[1])
	assert.Equal(t, float32(0), m[4])
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})
	assert.Equal(t, Vec3{6, 11, 16}, m.TransformVec3(Vec3{1, 1, 1}))
}

func TestRotateY(t *testing.T) {
	// +90 degrees about Y maps +X to -Z in a right-handed system.
	got := RotateY(Radians(90)).TransformVec3(Vec3{1, 0, 0})
	assert.InDelta(t, 0, got.X, eps)
	assert.InDelta(t, 0, got.Y, eps)
	assert.InDelta(t, -1, got.Z, eps)
}

func TestModelOrder(t *testing.T) {
	// Scale is applied first, then rotation, then translation.
	m := Model(Vec3{10, 0, 0}, Vec3{0, 0, Radians(90)}, 2)
	got := m.TransformVec3(Vec3{1, 0, 0})
	assert.InDelta(t, 10, got.X, eps)
	assert.InDelta(t, 2, got.Y, eps)
	assert.InDelta(t, 0, got.Z, eps)
}

func TestNormalMatrixUniformScale(t *testing.T) {
	n := UniformScale(2).NormalMatrix()
	assert.InDelta(t, 0.5, n[0], eps)
	assert.InDelta(t, 0.5, n[4], eps)
	assert.InDelta(t, 0.5, n[8], eps)
	assert.InDelta(t, 0, n[1], eps)
}

func TestNormalMatrixSingular(t *testing.T) {
	n := UniformScale(0).NormalMatrix()
	assert.Equal(t, [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, n)
}

func TestLookAtOrigin(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(Vec3{})
	assert.InDelta(t, -5, got.Z, eps)
}
