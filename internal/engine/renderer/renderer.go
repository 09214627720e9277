// Package renderer draws a scene with OpenGL: Phong-lit meshes, trajectory
// loops and an outline around the selected mesh.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

var (
	clearColor     = [3]float32{0.05, 0.05, 0.05}
	highlightColor = math.Vec3{X: 0.8, Y: 0.8, Z: 1.0}
	pathColor      = math.Vec3{X: 1.0, Y: 0.8, Z: 0.2}
	selectionColor = math.Vec3{X: 0.4, Y: 0.9, Z: 1.0}
)

// Config holds renderer settings.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL programs and the uploaded copies of scene meshes.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram *shader.Program
	lineProgram *shader.Program

	meshes map[*model.Mesh]*gpuMesh
	lights *lighting.Buffer

	lineVAO, lineVBO uint32
	lineCapacity     int
}

// New initialises GL and compiles the programs. It must be called after
// the GL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: make(map[*model.Mesh]*gpuMesh),
		lights: lighting.NewBuffer(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.meshProgram, err = shader.New("mesh", meshVertexShader, meshFragmentShader); err != nil {
		return nil, err
	}
	if r.lineProgram, err = shader.New("line", lineVertexShader, lineFragmentShader); err != nil {
		r.meshProgram.Delete()
		return nil, err
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close frees every GL object.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.Forget()
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	r.meshProgram.Delete()
	r.lineProgram.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Forget releases all uploaded meshes, for when the scene is replaced.
func (r *Renderer) Forget() {
	for m, g := range r.meshes {
		g.delete()
		delete(r.meshes, m)
	}
}

// sync uploads meshes seen for the first time.
func (r *Renderer) sync(s *scene.Scene) {
	for _, m := range s.Meshes {
		if _, ok := r.meshes[m]; ok {
			continue
		}
		r.meshes[m] = uploadMesh(m)
		r.log.Debug("mesh uploaded", zap.String("name", m.Name), zap.Int("indices", len(m.Indices)))
	}
}

// Draw renders one frame of the scene.
func (r *Renderer) Draw(s *scene.Scene) {
	r.sync(s)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	view := s.Camera.ViewMatrix()
	proj := s.Camera.ProjectionMatrix(aspect)

	r.drawMeshes(s, &view, &proj)
	r.drawPaths(s, &view, &proj)
	r.drawSelection(s, &view, &proj)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) drawMeshes(s *scene.Scene, view, proj *math.Mat4) {
	p := r.meshProgram
	p.Use()

	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, proj.Ptr())
	eye := s.Camera.Position
	gl.Uniform3f(p.Uniform("uViewPos"), eye.X, eye.Y, eye.Z)

	r.lights.Set(s.Lights)
	gl.Uniform1i(p.Uniform("uLightCount"), int32(r.lights.Count))
	gl.Uniform3fv(p.Uniform("uLightPos"), lighting.MaxLights, &r.lights.Positions()[0])
	gl.Uniform3fv(p.Uniform("uLightAmbient"), lighting.MaxLights, &r.lights.Ambients()[0])
	gl.Uniform3fv(p.Uniform("uLightDiffuse"), lighting.MaxLights, &r.lights.Diffuses()[0])
	gl.Uniform3fv(p.Uniform("uLightSpecular"), lighting.MaxLights, &r.lights.Speculars()[0])
	gl.Uniform1iv(p.Uniform("uLightEnabled"), lighting.MaxLights, &r.lights.EnabledFlags()[0])

	gl.Uniform3f(p.Uniform("uHighlightColor"), highlightColor.X, highlightColor.Y, highlightColor.Z)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(p.Uniform("uTexture"), 0)

	for _, m := range s.Meshes {
		g := r.meshes[m]
		if g == nil || g.vao == 0 {
			continue
		}

		modelMat := m.Transform.Matrix()
		normalMat := modelMat.NormalMatrix()
		gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, modelMat.Ptr())
		gl.UniformMatrix3fv(p.Uniform("uNormalMatrix"), 1, false, &normalMat[0])

		mat := m.Material
		gl.Uniform3f(p.Uniform("uKa"), mat.Ambient.X, mat.Ambient.Y, mat.Ambient.Z)
		gl.Uniform3f(p.Uniform("uKd"), mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z)
		gl.Uniform3f(p.Uniform("uKs"), mat.Specular.X, mat.Specular.Y, mat.Specular.Z)
		gl.Uniform1f(p.Uniform("uNs"), mat.Shininess)
		gl.Uniform1i(p.Uniform("uHasTexture"), boolInt(g.texture != 0))
		gl.Uniform1i(p.Uniform("uHighlight"), boolInt(m.Selected))
		gl.BindTexture(gl.TEXTURE_2D, g.texture)

		gl.BindVertexArray(g.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawPaths(s *scene.Scene, view, proj *math.Mat4) {
	lines := s.TrajectoryLines()
	if len(lines) == 0 {
		return
	}

	var verts []float32
	var strips []int32
	for _, line := range lines {
		verts = appendPoints(verts, line)
		strips = append(strips, int32(len(line)))
	}

	r.beginLines(view, proj, pathColor)
	r.uploadLines(verts)

	var first int32
	for _, n := range strips {
		gl.DrawArrays(gl.LINE_STRIP, first, n)
		first += n
	}
	gl.BindVertexArray(0)
}

// drawSelection outlines the selected mesh with its transformed bounds.
func (r *Renderer) drawSelection(s *scene.Scene, view, proj *math.Mat4) {
	m := s.Selected()
	if m == nil {
		return
	}

	edges := debug.BBoxWireframe(m.Bounds.Min, m.Bounds.Max, m.Transform.Matrix(), debug.DefaultBBoxPadding)
	r.beginLines(view, proj, selectionColor)
	r.uploadLines(appendPoints(nil, edges))
	gl.DrawArrays(gl.LINES, 0, int32(len(edges)))
	gl.BindVertexArray(0)
}

func (r *Renderer) beginLines(view, proj *math.Mat4, color math.Vec3) {
	p := r.lineProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, view.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, proj.Ptr())
	gl.Uniform3f(p.Uniform("uColor"), color.X, color.Y, color.Z)
	gl.BindVertexArray(r.lineVAO)
}

// uploadLines fills the shared line buffer, growing it when needed.
func (r *Renderer) uploadLines(verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(verts) * 4
	if size > r.lineCapacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		r.lineCapacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}
}

func appendPoints(dst []float32, pts []math.Vec3) []float32 {
	for _, v := range pts {
		dst = append(dst, v.X, v.Y, v.Z)
	}
	return dst
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
