package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/picking"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Controls are the rates and steps applied by user commands.
type Controls struct {
	MoveSpeed     float32 // units per second
	ScaleSpeed    float32 // scale units per second
	MinScale      float32
	RotateStep    float32 // degrees per command
	SpeedStep     float32 // trajectory speed change per command
	MinSpeed      float32 // trajectory speed floor
	PointDistance float32 // distance in front of the camera for new points
}

// DefaultControls returns the rates used by the viewer key map.
func DefaultControls() Controls {
	return Controls{
		MoveSpeed:     2,
		ScaleSpeed:    1,
		MinScale:      0.1,
		RotateStep:    15,
		SpeedStep:     0.5,
		MinSpeed:      0.5,
		PointDistance: 2,
	}
}

// Selected returns the selected mesh, or nil when the scene is empty.
func (s *Scene) Selected() *model.Mesh {
	if s.selected < 0 || s.selected >= len(s.Meshes) {
		return nil
	}
	return s.Meshes[s.selected]
}

// SelectedIndex returns the index of the selected mesh.
func (s *Scene) SelectedIndex() int {
	return s.selected
}

// SelectNext moves the selection to the next mesh, wrapping around.
func (s *Scene) SelectNext() *model.Mesh {
	if len(s.Meshes) == 0 {
		return nil
	}
	s.selectIndex((s.selected + 1) % len(s.Meshes))
	m := s.Selected()
	logger.Named("scene").Info("object selected", zap.String("name", m.Name))
	return m
}

// PickAhead selects the nearest mesh whose world bounds the camera's view
// ray hits. The selection is unchanged when nothing is hit.
func (s *Scene) PickAhead() (*model.Mesh, bool) {
	boxes := make([]picking.AABB, len(s.Meshes))
	for i, m := range s.Meshes {
		boxes[i] = picking.TransformAABB(m.Bounds.Min, m.Bounds.Max, m.Transform.Matrix())
	}

	ray := picking.NewRay(s.Camera.Position, s.Camera.Front())
	i, dist := ray.Nearest(boxes)
	if i < 0 {
		return nil, false
	}
	s.selectIndex(i)
	m := s.Selected()
	logger.Named("scene").Info("object picked", zap.String("name", m.Name), zap.Float32("distance", dist))
	return m, true
}

func (s *Scene) selectIndex(i int) {
	if i < 0 || i >= len(s.Meshes) {
		i = 0
	}
	s.selected = i
	for j, m := range s.Meshes {
		m.Selected = j == i
	}
}

// Translate moves the selected mesh by dir scaled by MoveSpeed and dt.
func (s *Scene) Translate(c Controls, dir math.Vec3, dt float32) {
	if m := s.Selected(); m != nil {
		m.Transform.Translation = m.Transform.Translation.Add(dir.Scale(c.MoveSpeed * dt))
	}
}

// Rotate turns the selected mesh by RotateStep degrees around each axis
// whose component in axes is non-zero.
func (s *Scene) Rotate(c Controls, axes math.Vec3) {
	m := s.Selected()
	if m == nil {
		return
	}
	step := math.Radians(c.RotateStep)
	m.Transform.Rotation = m.Transform.Rotation.Add(math.Vec3{
		X: sign(axes.X) * step,
		Y: sign(axes.Y) * step,
		Z: sign(axes.Z) * step,
	})
}

// Scale grows (dir > 0) or shrinks (dir < 0) the selected mesh, never
// below MinScale.
func (s *Scene) Scale(c Controls, dir, dt float32) {
	if m := s.Selected(); m != nil {
		m.Transform.Scale = max(c.MinScale, m.Transform.Scale+sign(dir)*c.ScaleSpeed*dt)
	}
}

// AddTrajectoryPoint appends the point PointDistance in front of the
// camera to the selected mesh's trajectory.
func (s *Scene) AddTrajectoryPoint(c Controls) (math.Vec3, bool) {
	m := s.Selected()
	if m == nil {
		return math.Vec3{}, false
	}
	p := s.Camera.PointAhead(c.PointDistance)
	m.Trajectory.AddPoint(p)
	logger.Named("scene").Info("trajectory point added",
		zap.String("name", m.Name),
		zap.Int("points", m.Trajectory.Len()),
		zap.Float32s("point", []float32{p.X, p.Y, p.Z}))
	return p, true
}

// ClearTrajectory removes every point of the selected mesh's trajectory.
func (s *Scene) ClearTrajectory() {
	if m := s.Selected(); m != nil {
		m.Trajectory.Clear()
		logger.Named("scene").Info("trajectory cleared", zap.String("name", m.Name))
	}
}

// ToggleTrajectory pauses or resumes the selected mesh's trajectory and
// reports whether it is now moving.
func (s *Scene) ToggleTrajectory() bool {
	m := s.Selected()
	if m == nil {
		return false
	}
	active := m.Trajectory.Toggle()
	logger.Named("scene").Info("trajectory toggled",
		zap.String("name", m.Name),
		zap.Stringer("state", m.Trajectory.State()))
	return active
}

// AdjustTrajectorySpeed changes the selected trajectory's speed by
// steps*SpeedStep, never below MinSpeed, and returns the new speed.
func (s *Scene) AdjustTrajectorySpeed(c Controls, steps int) float32 {
	m := s.Selected()
	if m == nil {
		return 0
	}
	speed := m.Trajectory.AdjustSpeed(float32(steps)*c.SpeedStep, c.MinSpeed)
	logger.Named("scene").Info("trajectory speed", zap.String("name", m.Name), zap.Float32("speed", speed))
	return speed
}

// ToggleLight flips the enabled flag of light i. ok is false when there is
// no such light.
func (s *Scene) ToggleLight(i int) (enabled, ok bool) {
	if i < 0 || i >= len(s.Lights) {
		return false, false
	}
	s.Lights[i].Enabled = !s.Lights[i].Enabled
	logger.Named("scene").Info("light toggled", zap.Int("light", i+1), zap.Bool("enabled", s.Lights[i].Enabled))
	return s.Lights[i].Enabled, true
}

// Reset restores transforms, trajectories, lights, camera and selection
// to their state right after loading.
func (s *Scene) Reset() {
	if s.initial == nil {
		return
	}
	s.restore(s.initial)
	logger.Named("scene").Info("scene reset")
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
