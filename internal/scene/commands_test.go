package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/internal/engine/trajectory"
	"github.com/Faultbox/sceneview/pkg/math"
)

func twoObjectScene(t *testing.T) *Scene {
	t.Helper()
	s := Default(newFakeLoader("a.obj", "b.obj"), []string{"a.obj", "b.obj"})
	require.Len(t, s.Meshes, 2)
	return s
}

func TestSelectNextWraps(t *testing.T) {
	s := twoObjectScene(t)
	assert.Equal(t, 0, s.SelectedIndex())

	m := s.SelectNext()
	assert.Same(t, s.Meshes[1], m)
	assert.True(t, s.Meshes[1].Selected)
	assert.False(t, s.Meshes[0].Selected)

	s.SelectNext()
	assert.Equal(t, 0, s.SelectedIndex())
	assert.True(t, s.Meshes[0].Selected)
}

func TestPickAhead(t *testing.T) {
	s := twoObjectScene(t)

	// Default layout puts the meshes at x=-3 and x=-1.
	s.Camera.Position = math.Vec3{X: -1, Z: 5}
	s.Camera.Orient(-90, 0)
	m, ok := s.PickAhead()
	require.True(t, ok)
	assert.Same(t, s.Meshes[1], m)
	assert.True(t, m.Selected)
	assert.False(t, s.Meshes[0].Selected)

	s.Camera.Orient(90, 0)
	_, ok = s.PickAhead()
	assert.False(t, ok)
	assert.Equal(t, 1, s.SelectedIndex())

	// Moving the mesh moves its pick volume.
	s.Meshes[0].Transform.Translation = math.Vec3{X: -1, Z: 2}
	s.Camera.Orient(-90, 0)
	m, ok = s.PickAhead()
	require.True(t, ok)
	assert.Same(t, s.Meshes[0], m)
}

func TestCommandsOnEmptyScene(t *testing.T) {
	s := New()
	c := DefaultControls()
	assert.Nil(t, s.SelectNext())
	assert.Nil(t, s.Selected())
	_, ok := s.PickAhead()
	assert.False(t, ok)
	s.Translate(c, math.Vec3{X: 1}, 1)
	s.Rotate(c, math.Vec3{X: 1})
	s.Scale(c, 1, 1)
	_, ok = s.AddTrajectoryPoint(c)
	assert.False(t, ok)
	s.ClearTrajectory()
	assert.False(t, s.ToggleTrajectory())
	assert.Equal(t, float32(0), s.AdjustTrajectorySpeed(c, 1))
	s.Reset()
}

func TestTranslateRotateScale(t *testing.T) {
	s := twoObjectScene(t)
	c := DefaultControls()
	m := s.Selected()

	s.Translate(c, math.Vec3{Z: -1}, 0.5)
	assert.Equal(t, math.Vec3{X: -3, Y: 0, Z: -1}, m.Transform.Translation)

	s.Rotate(c, math.Vec3{Y: 1})
	s.Rotate(c, math.Vec3{Y: 1})
	assert.InDelta(t, math.Radians(30), m.Transform.Rotation.Y, 1e-6)
	assert.Equal(t, float32(0), m.Transform.Rotation.X)

	s.Scale(c, 1, 0.5)
	assert.Equal(t, float32(1.5), m.Transform.Scale)
	s.Scale(c, -1, 10)
	assert.Equal(t, float32(0.1), m.Transform.Scale)
}

func TestTrajectoryCommands(t *testing.T) {
	s := twoObjectScene(t)
	c := DefaultControls()
	m := s.Selected()

	p, ok := s.AddTrajectoryPoint(c)
	require.True(t, ok)
	assert.InDelta(t, 3, p.Z, 1e-5, "camera at z=5 looking down -Z")
	assert.Equal(t, trajectory.Idle, m.Trajectory.State())

	s.Camera.Position = math.Vec3{X: 4, Y: 2, Z: 5}
	s.AddTrajectoryPoint(c)
	assert.Equal(t, trajectory.Cycling, m.Trajectory.State())

	assert.False(t, s.ToggleTrajectory())
	assert.True(t, s.ToggleTrajectory())

	assert.Equal(t, float32(2.5), s.AdjustTrajectorySpeed(c, 1))
	assert.Equal(t, float32(0.5), s.AdjustTrajectorySpeed(c, -10))

	s.ClearTrajectory()
	assert.Equal(t, 0, m.Trajectory.Len())
	assert.False(t, m.Trajectory.Active())
}

func TestToggleLight(t *testing.T) {
	s := twoObjectScene(t)

	enabled, ok := s.ToggleLight(0)
	assert.True(t, ok)
	assert.False(t, enabled)
	assert.False(t, s.Lights[0].Enabled)

	enabled, _ = s.ToggleLight(0)
	assert.True(t, enabled)

	_, ok = s.ToggleLight(7)
	assert.False(t, ok)
	_, ok = s.ToggleLight(-1)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s := twoObjectScene(t)
	c := DefaultControls()

	s.SelectNext()
	m := s.Selected()
	s.Translate(c, math.Vec3{Y: 1}, 1)
	s.Scale(c, 1, 1)
	s.AddTrajectoryPoint(c)
	s.ToggleLight(2)
	s.Camera.HandleMouse(100, 50)
	s.Camera.Move(0, 1)

	s.Reset()

	assert.Equal(t, 0, s.SelectedIndex())
	assert.True(t, s.Meshes[0].Selected)
	assert.Equal(t, math.Vec3{X: -1}, m.Transform.Translation)
	assert.Equal(t, float32(1), m.Transform.Scale)
	assert.Equal(t, 0, m.Trajectory.Len())
	assert.True(t, s.Lights[2].Enabled)
	assert.Len(t, s.Lights, 3)
	assert.Equal(t, DefaultCamera().Position, s.Camera.Position)
	assert.Equal(t, float32(-90), s.Camera.Yaw)

	// A second reset works from the same snapshot.
	s.ToggleLight(0)
	s.Reset()
	assert.True(t, s.Lights[0].Enabled)
}

func TestResetRestoresConfiguredTrajectory(t *testing.T) {
	s := parse(t, `
[objects]
file = a.obj
trajectory_points = 0,0,0; 10,0,0
end
`, newFakeLoader("a.obj"))

	s.Update(3)
	s.ClearTrajectory()
	s.Reset()

	tr := s.Meshes[0].Trajectory
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Active())
	i, tt := tr.Segment()
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), tt)
}
