package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/trajectory"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/formats"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Section names of the scene configuration format.
const (
	SectionCamera  = "camera"
	SectionLights  = "lights"
	SectionObjects = "objects"
)

// keyEnd terminates a light or object block.
const keyEnd = "end"

// MeshLoader loads the geometry named by an object's file key.
type MeshLoader interface {
	LoadMesh(path string) (*model.Mesh, error)
}

// LoadConfig reads a scene configuration file. A missing file yields an
// error wrapping assets.ErrFileNotFound; malformed content never fails
// and is reported through Scene.Warnings.
func LoadConfig(path string, loader MeshLoader) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", assets.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading scene config %s: %w", path, err)
	}

	s, err := ParseConfig(bytes.NewReader(data), filepath.Dir(path), loader)
	if err != nil {
		return nil, fmt.Errorf("parsing scene config %s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// ParseConfig builds a scene from configuration text. Object file paths
// that cannot be found as given are retried relative to baseDir.
func ParseConfig(r io.Reader, baseDir string, loader MeshLoader) (*Scene, error) {
	p := &configParser{
		scene:   New(),
		cam:     DefaultCamera(),
		loader:  loader,
		baseDir: baseDir,
	}
	p.resetLight()
	p.resetObject()

	scanner := formats.NewLineScanner(r)
	for scanner.Scan() {
		p.line++
		p.parseLine(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	p.closeSection()

	p.cam.Apply(p.scene.Camera)
	p.scene.Warnings = p.warnings
	p.scene.finish()
	return p.scene, nil
}

// configParser carries the section and the staging records between lines.
type configParser struct {
	scene   *Scene
	cam     CameraState
	loader  MeshLoader
	baseDir string

	line    int
	section string

	light    lighting.Light
	lightSet bool
	lightAt  int

	object objectRecord

	warnings error
}

// objectRecord is an object block being read.
type objectRecord struct {
	name      string
	transform model.Transform
	traj      *trajectory.Trajectory
	mesh      *model.Mesh
	file      string
	failed    bool
	touched   bool
	startLine int
}

func (p *configParser) warn(err error) {
	p.warnings = multierr.Append(p.warnings, fmt.Errorf("line %d: %w", p.line, err))
}

func (p *configParser) parseLine(line string) {
	if formats.IsSkippable(line) {
		return
	}
	if name, ok := formats.ParseSectionHeader(line); ok {
		p.closeSection()
		p.section = name
		return
	}

	key, value, ok := formats.SplitKeyValue(line)
	if !ok {
		// A bare "end" closes a block like "end =" does.
		if line != keyEnd {
			return
		}
		key = keyEnd
	}

	switch p.section {
	case SectionCamera:
		p.cameraField(key, value)
	case SectionLights:
		p.lightField(key, value)
	case SectionObjects:
		p.objectField(key, value)
	}
}

// closeSection discards a block left open when its section ends.
func (p *configParser) closeSection() {
	switch p.section {
	case SectionLights:
		if p.lightSet {
			p.warnings = multierr.Append(p.warnings,
				fmt.Errorf("line %d: %w: light block without end", p.lightAt, ErrInvalidRecord))
		}
		p.resetLight()
	case SectionObjects:
		if p.object.touched {
			p.warnings = multierr.Append(p.warnings,
				fmt.Errorf("line %d: %w: object block without end", p.object.startLine, ErrInvalidRecord))
		}
		p.resetObject()
	}
}

func (p *configParser) cameraField(key, value string) {
	switch key {
	case "position":
		if v, ok := p.vec3(key, value); ok {
			p.cam.Position = v
		}
	case "yaw":
		if f, ok := p.float(key, value); ok {
			p.cam.Yaw = f
		}
	case "pitch":
		if f, ok := p.float(key, value); ok {
			p.cam.Pitch = f
		}
	case "fov":
		if f, ok := p.float(key, value); ok {
			p.cam.FOV = f
		}
	}
}

func (p *configParser) resetLight() {
	p.light = lighting.Default()
	p.lightSet = false
}

func (p *configParser) lightField(key, value string) {
	if key == keyEnd {
		if p.lightSet {
			p.scene.Lights = append(p.scene.Lights, p.light)
		}
		p.resetLight()
		return
	}

	set := true
	switch key {
	case "position":
		p.light.Position, set = p.vec3Or(key, value, p.light.Position)
	case "ambient":
		p.light.Ambient, set = p.vec3Or(key, value, p.light.Ambient)
	case "diffuse":
		p.light.Diffuse, set = p.vec3Or(key, value, p.light.Diffuse)
	case "specular":
		p.light.Specular, set = p.vec3Or(key, value, p.light.Specular)
	case "intensity":
		p.light.Intensity, set = p.floatOr(key, value, p.light.Intensity)
	case "enabled":
		p.light.Enabled = formats.ParseBool(value)
	default:
		return
	}
	if set && !p.lightSet {
		p.lightSet = true
		p.lightAt = p.line
	}
}

func (p *configParser) resetObject() {
	p.object = objectRecord{
		transform: model.IdentityTransform(),
		traj:      trajectory.New(),
	}
}

func (p *configParser) objectField(key, value string) {
	o := &p.object
	if key == keyEnd {
		p.endObject()
		return
	}

	if !o.touched {
		o.touched = true
		o.startLine = p.line
	}

	switch key {
	case "name":
		o.name = value
	case "file":
		o.file = value
		mesh, err := p.loadMesh(value)
		if err != nil {
			o.mesh = nil
			o.failed = true
			p.warn(fmt.Errorf("%w: %w", ErrInvalidRecord, err))
			logger.Named("scene").Warn("object geometry failed to load", zap.String("file", value), zap.Error(err))
			return
		}
		o.mesh = mesh
		o.failed = false
	case "translation":
		if v, ok := p.vec3(key, value); ok {
			o.transform.Translation = v
		}
	case "rotation":
		if v, ok := p.vec3(key, value); ok {
			o.transform.Rotation = math.Vec3{
				X: math.Radians(v.X),
				Y: math.Radians(v.Y),
				Z: math.Radians(v.Z),
			}
		}
	case "scale":
		if f, ok := p.float(key, value); ok {
			o.transform.Scale = f
		}
	case "trajectory_points":
		points, err := formats.ParsePointList(value)
		if err != nil {
			p.warn(fmt.Errorf("%s: %w", key, err))
		}
		for _, pt := range points {
			o.traj.AddPoint(math.Vec3{X: pt[0], Y: pt[1], Z: pt[2]})
		}
	case "trajectory_speed":
		if f, ok := p.float(key, value); ok {
			o.traj.SetSpeed(f)
		}
	}
}

// endObject appends the staging object when its geometry loaded.
func (p *configParser) endObject() {
	o := &p.object
	defer p.resetObject()

	switch {
	case o.mesh != nil && !o.failed:
		m := o.mesh
		if o.name != "" {
			m.Name = o.name
		}
		m.Transform = o.transform
		m.Trajectory = o.traj
		p.scene.Meshes = append(p.scene.Meshes, m)
	case o.failed:
		// Already reported when the file failed to load.
	case o.touched:
		p.warn(fmt.Errorf("%w: object %q has no file", ErrInvalidRecord, o.name))
	}
}

func (p *configParser) loadMesh(path string) (*model.Mesh, error) {
	if p.loader == nil {
		return nil, fmt.Errorf("%w: %s", assets.ErrFileNotFound, path)
	}
	mesh, err := p.loader.LoadMesh(path)
	if err == nil || !errors.Is(err, assets.ErrFileNotFound) || p.baseDir == "" || filepath.IsAbs(path) {
		return mesh, err
	}
	if retry, rerr := p.loader.LoadMesh(filepath.Join(p.baseDir, path)); rerr == nil {
		return retry, nil
	}
	return nil, err
}

func (p *configParser) vec3(key, value string) (math.Vec3, bool) {
	v, err := formats.ParseVec3(value)
	if err != nil {
		p.warn(fmt.Errorf("%s: %w", key, err))
		return math.Vec3{}, false
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, true
}

func (p *configParser) vec3Or(key, value string, fallback math.Vec3) (math.Vec3, bool) {
	if v, ok := p.vec3(key, value); ok {
		return v, true
	}
	return fallback, false
}

func (p *configParser) float(key, value string) (float32, bool) {
	f, err := formats.ParseFloat(value)
	if err != nil {
		p.warn(fmt.Errorf("%s: %w", key, err))
		return 0, false
	}
	return f, true
}

func (p *configParser) floatOr(key, value string, fallback float32) (float32, bool) {
	if f, ok := p.float(key, value); ok {
		return f, true
	}
	return fallback, false
}
