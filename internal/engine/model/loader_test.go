package model

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/pkg/formats"
	"github.com/Faultbox/sceneview/pkg/math"
)

type fakeTextures struct {
	requested []string
	fail      bool
}

func (f *fakeTextures) Load(path string) (*image.RGBA, error) {
	f.requested = append(f.requested, path)
	if f.fail {
		return nil, errors.New("decode failed")
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const triangleOBJ = `mtllib mats/tri.mtl
v 0 0 0
v 1 0 0
v 0 2 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`

func TestLoadMeshWithMaterial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", triangleOBJ)
	writeFile(t, dir, "mats/tri.mtl", "newmtl red\nKd 1 0 0\nNs 64\nmap_Kd tex/red.png\n")

	tex := &fakeTextures{}
	mesh, err := NewLoader(assets.NewManager(), tex).LoadMesh(path)
	require.NoError(t, err)

	assert.Equal(t, "tri", mesh.Name)
	assert.Equal(t, path, mesh.Source)
	assert.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 0}, mesh.Bounds.Max)
	assert.Equal(t, [3]float32{0, 0, 1}, mesh.Vertices[0].Normal)

	assert.Equal(t, math.Vec3{X: 1}, mesh.Material.Diffuse)
	assert.Equal(t, float32(64), mesh.Material.Shininess)
	assert.Equal(t, math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}, mesh.Material.Ambient)
	assert.True(t, mesh.Material.HasTexture)
	assert.NotNil(t, mesh.Material.Texture)
	wantTex := filepath.Join(dir, "mats", "tex", "red.png")
	assert.Equal(t, wantTex, mesh.Material.TexturePath)
	assert.Equal(t, []string{wantTex}, tex.requested)

	assert.Equal(t, float32(1), mesh.Transform.Scale)
	require.NotNil(t, mesh.Trajectory)
	assert.Equal(t, 0, mesh.Trajectory.Len())
	assert.Empty(t, mesh.Warnings)
}

func TestLoadMeshMissingFile(t *testing.T) {
	_, err := NewLoader(nil, nil).LoadMesh(filepath.Join(t.TempDir(), "nope.obj"))
	assert.ErrorIs(t, err, assets.ErrFileNotFound)
}

func TestLoadMeshMissingMaterial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", triangleOBJ)

	mesh, err := NewLoader(nil, nil).LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaterial(), mesh.Material)
}

func TestLoadMeshNoMaterialLib(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "plain.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	mesh, err := NewLoader(nil, nil).LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaterial(), mesh.Material)
	assert.Equal(t, formats.DefaultNormal, mesh.Vertices[0].Normal)
}

func TestLoadMeshWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n")

	mesh, err := NewLoader(nil, nil).LoadMesh(path)
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Warnings)
	assert.ErrorIs(t, mesh.Warnings[0], formats.ErrIndexOutOfRange)
	assert.Equal(t, 1, mesh.TriangleCount())
}

func TestLoadMaterialTextureFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.mtl", "Kd 0.5 0.5 0.5\nmap_Kd broken.png\n")

	mat := NewLoader(nil, &fakeTextures{fail: true}).LoadMaterial(path)
	assert.False(t, mat.HasTexture)
	assert.Nil(t, mat.Texture)
	assert.Equal(t, filepath.Join(dir, "broken.png"), mat.TexturePath)
	assert.Equal(t, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, mat.Diffuse)
}

func TestLoadMaterialWithoutTextureLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.mtl", "map_Kd any.png\n")

	mat := NewLoader(nil, nil).LoadMaterial(path)
	assert.False(t, mat.HasTexture)
}

func TestLoadMaterialAbsoluteTexture(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "t.png")
	path := writeFile(t, dir, "m.mtl", "map_Kd "+abs+"\n")

	tex := &fakeTextures{}
	mat := NewLoader(nil, tex).LoadMaterial(path)
	assert.Equal(t, abs, mat.TexturePath)
	assert.True(t, mat.HasTexture)
}

func TestLoadMeshFromAssetRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "models/tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	mesh, err := NewLoader(assets.NewManager(dir), nil).LoadMesh("models/tri.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "models", "tri.obj"), mesh.Source)
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{
		Translation: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation:    math.Vec3{Y: math.Radians(90)},
		Scale:       2,
	}
	p := tr.Matrix().TransformVec3(math.Vec3{X: 1})
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)

	assert.Equal(t, math.Identity(), IdentityTransform().Matrix())
}

func TestBounds(t *testing.T) {
	b := Bounds{Min: math.Vec3{X: -1, Y: 0, Z: -2}, Max: math.Vec3{X: 1, Y: 4, Z: 2}}
	assert.Equal(t, math.Vec3{X: 0, Y: 2, Z: 0}, b.Center())
	assert.Equal(t, math.Vec3{X: 2, Y: 4, Z: 4}, b.Size())
}
