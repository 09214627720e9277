package model

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/trajectory"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/formats"
)

// TextureLoader decodes an image file into RGBA pixels.
type TextureLoader interface {
	Load(path string) (*image.RGBA, error)
}

// Loader builds meshes from OBJ files and their material libraries.
type Loader struct {
	assets   *assets.Manager
	textures TextureLoader
}

// NewLoader creates a loader. A nil texture loader disables textures.
func NewLoader(m *assets.Manager, textures TextureLoader) *Loader {
	if m == nil {
		m = assets.NewManager()
	}
	return &Loader{assets: m, textures: textures}
}

// LoadMesh reads an OBJ file and its referenced material. A missing file
// yields an error wrapping assets.ErrFileNotFound. Malformed content is
// recovered from and reported through Mesh.Warnings.
func (l *Loader) LoadMesh(path string) (*Mesh, error) {
	log := logger.Named("model")

	data, resolved, err := l.assets.Load(path)
	if err != nil {
		return nil, err
	}

	obj, err := formats.ParseOBJ(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", resolved, err)
	}

	mesh := &Mesh{
		Name:       baseName(resolved),
		Source:     resolved,
		Vertices:   make([]Vertex, len(obj.Vertices)),
		Indices:    obj.Indices,
		Bounds:     Bounds{Min: vec3(obj.BoundsMin), Max: vec3(obj.BoundsMax)},
		Transform:  IdentityTransform(),
		Trajectory: trajectory.New(),
		Warnings:   formats.Warnings(obj.Warnings),
	}
	for i, v := range obj.Vertices {
		mesh.Vertices[i] = Vertex(v)
	}

	if obj.MaterialLib != "" {
		mesh.Material = l.LoadMaterial(relativeTo(resolved, obj.MaterialLib))
	} else {
		mesh.Material = DefaultMaterial()
	}

	for _, w := range mesh.Warnings {
		log.Warn("recovered from malformed geometry", zap.String("file", resolved), zap.Error(w))
	}
	log.Info("loaded mesh",
		zap.String("file", resolved),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("triangulated_faces", obj.TriangulatedFaces),
		zap.Bool("textured", mesh.Material.HasTexture))

	return mesh, nil
}

// LoadMaterial reads an MTL file. It never fails: a missing or unreadable
// file yields DefaultMaterial, and a texture that cannot be decoded leaves
// HasTexture false.
func (l *Loader) LoadMaterial(path string) Material {
	log := logger.Named("model")

	data, resolved, err := l.assets.Load(path)
	if err != nil {
		log.Warn("material unavailable, using defaults", zap.String("file", path), zap.Error(err))
		return DefaultMaterial()
	}

	mtl, err := formats.ParseMTL(bytes.NewReader(data))
	if err != nil {
		log.Warn("material unreadable, using defaults", zap.String("file", resolved), zap.Error(err))
		return DefaultMaterial()
	}
	for _, w := range formats.Warnings(mtl.Warnings) {
		log.Warn("recovered from malformed material", zap.String("file", resolved), zap.Error(w))
	}

	mat := materialFromMTL(*mtl)
	if mtl.DiffuseMap == "" {
		return mat
	}

	mat.TexturePath = relativeTo(resolved, mtl.DiffuseMap)
	if l.textures == nil {
		return mat
	}
	img, err := l.textures.Load(mat.TexturePath)
	if err != nil {
		log.Warn("texture failed to load", zap.String("texture", mat.TexturePath), zap.Error(err))
		return mat
	}
	mat.Texture = img
	mat.HasTexture = true
	return mat
}

// relativeTo resolves ref against the directory of file unless it is absolute.
func relativeTo(file, ref string) string {
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(file), ref)
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
