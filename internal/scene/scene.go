// Package scene owns the runtime world of the viewer: loaded meshes,
// lights, camera and selection. It builds the world from a scene
// configuration file or a built-in default, advances trajectories each
// frame and applies user commands.
package scene

import (
	"errors"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/engine/lighting"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/picking"
	"github.com/Faultbox/sceneview/internal/engine/trajectory"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

var (
	// ErrInvalidRecord marks a light or object block that was discarded.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrNoUsableScene is returned when neither the configuration file nor
	// the default models produced a single mesh.
	ErrNoUsableScene = errors.New("no usable scene")
)

// CameraState is the camera placement stored in a scene.
type CameraState struct {
	Position math.Vec3
	Yaw      float32 // degrees
	Pitch    float32 // degrees
	FOV      float32 // degrees
}

// DefaultCamera returns the initial camera placement.
func DefaultCamera() CameraState {
	return CameraState{
		Position: math.Vec3{X: 0, Y: 2, Z: 5},
		Yaw:      -90,
		Pitch:    0,
		FOV:      45,
	}
}

// Apply moves a camera to this state.
func (c CameraState) Apply(cam *camera.FlyCamera) {
	cam.Position = c.Position
	cam.FOV = c.FOV
	cam.Orient(c.Yaw, c.Pitch)
}

// Capture reads the state of a camera.
func Capture(cam *camera.FlyCamera) CameraState {
	return CameraState{Position: cam.Position, Yaw: cam.Yaw, Pitch: cam.Pitch, FOV: cam.FOV}
}

// Scene is the set of meshes and lights plus the camera that views them.
// It is owned by the frame loop and is not safe for concurrent use.
type Scene struct {
	Meshes []*model.Mesh
	Lights []lighting.Light
	Camera *camera.FlyCamera

	// Source is the configuration file the scene came from, or empty for
	// the built-in default.
	Source string

	// Warnings aggregates the recoverable problems met while building.
	Warnings error

	selected int
	initial  *snapshot
}

// New returns an empty scene with the default camera.
func New() *Scene {
	s := &Scene{Camera: camera.NewFlyCamera()}
	DefaultCamera().Apply(s.Camera)
	return s
}

// Update advances every cycling trajectory by dt seconds and moves its
// mesh to the reported position.
func (s *Scene) Update(dt float32) {
	for _, m := range s.Meshes {
		if m.Trajectory != nil && m.Trajectory.Active() {
			m.Transform.Translation = m.Trajectory.Advance(dt)
		}
	}
}

// TrajectoryLines returns a closed line strip per mesh trajectory that has
// at least two points, for drawing the paths.
func (s *Scene) TrajectoryLines() [][]math.Vec3 {
	var lines [][]math.Vec3
	for _, m := range s.Meshes {
		if m.Trajectory == nil {
			continue
		}
		if loop := m.Trajectory.Loop(); loop != nil {
			lines = append(lines, loop)
		}
	}
	return lines
}

// Bounds returns the world-space box around every mesh's transformed
// model bounds. ok is false for an empty scene.
func (s *Scene) Bounds() (minB, maxB math.Vec3, ok bool) {
	for i, m := range s.Meshes {
		box := picking.TransformAABB(m.Bounds.Min, m.Bounds.Max, m.Transform.Matrix())
		if i == 0 {
			minB, maxB = box.Min, box.Max
			continue
		}
		minB = minB.Min(box.Min)
		maxB = maxB.Max(box.Max)
	}
	return minB, maxB, len(s.Meshes) > 0
}

// finish selects the first mesh and records the loaded state for Reset.
func (s *Scene) finish() {
	s.selected = 0
	for i, m := range s.Meshes {
		m.Selected = i == 0
	}
	s.initial = s.snapshot()
}

// snapshot is the mutable part of a scene at one point in time.
type snapshot struct {
	Transforms   []model.Transform
	Trajectories []*trajectory.Trajectory `copier:"-"`
	Lights       []lighting.Light
	Camera       CameraState
	Selected     int
}

func (s *Scene) snapshot() *snapshot {
	snap := &snapshot{
		Camera:   Capture(s.Camera),
		Selected: s.selected,
	}
	transforms := make([]model.Transform, len(s.Meshes))
	for i, m := range s.Meshes {
		transforms[i] = m.Transform
		snap.Trajectories = append(snap.Trajectories, cloneTrajectory(m.Trajectory))
	}
	if err := deepCopy(&snap.Transforms, &transforms); err != nil {
		logger.Named("scene").Error("snapshot transforms", zap.Error(err))
		snap.Transforms = transforms
	}
	if err := deepCopy(&snap.Lights, &s.Lights); err != nil {
		logger.Named("scene").Error("snapshot lights", zap.Error(err))
		snap.Lights = append([]lighting.Light(nil), s.Lights...)
	}
	return snap
}

func (s *Scene) restore(snap *snapshot) {
	for i, m := range s.Meshes {
		if i >= len(snap.Transforms) {
			break
		}
		m.Transform = snap.Transforms[i]
		m.Trajectory = cloneTrajectory(snap.Trajectories[i])
	}
	s.Lights = s.Lights[:0]
	if err := deepCopy(&s.Lights, &snap.Lights); err != nil {
		logger.Named("scene").Error("restore lights", zap.Error(err))
		s.Lights = append(s.Lights[:0], snap.Lights...)
	}
	snap.Camera.Apply(s.Camera)
	s.selectIndex(snap.Selected)
}

func deepCopy(to, from any) error {
	return copier.CopyWithOption(to, from, copier.Option{DeepCopy: true})
}

func cloneTrajectory(tr *trajectory.Trajectory) *trajectory.Trajectory {
	if tr == nil {
		return trajectory.New()
	}
	return tr.Clone()
}
