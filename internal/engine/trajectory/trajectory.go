// Package trajectory moves objects around a closed polyline at constant
// linear speed.
package trajectory

import (
	"fmt"

	"github.com/Faultbox/sceneview/pkg/math"
)

// DefaultSpeed is the travel speed in world units per second.
const DefaultSpeed = 2.0

// State is the motion state of a trajectory.
type State int

const (
	// Idle has fewer than two points, or was cleared. No motion.
	Idle State = iota
	// Cycling advances every frame.
	Cycling
	// Paused has enough points but was stopped by the user.
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Cycling:
		return "Cycling"
	case Paused:
		return "Paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Trajectory is an ordered, closed loop of points with an interpolation
// cursor. After the last point the next point is the first.
type Trajectory struct {
	points  []math.Vec3
	current int     // index of the segment start
	t       float32 // position within the segment, [0,1)
	speed   float32
	state   State
}

// New returns an empty trajectory moving at DefaultSpeed.
func New() *Trajectory {
	return &Trajectory{speed: DefaultSpeed}
}

// AddPoint appends a point. Reaching two points promotes Idle to Cycling;
// a Paused trajectory stays paused.
func (tr *Trajectory) AddPoint(p math.Vec3) {
	tr.points = append(tr.points, p)
	if tr.state == Idle && len(tr.points) >= 2 {
		tr.state = Cycling
	}
}

// Clear removes all points and returns to Idle.
func (tr *Trajectory) Clear() {
	tr.points = nil
	tr.current = 0
	tr.t = 0
	tr.state = Idle
}

// Toggle switches between Cycling and Paused. It does nothing while Idle
// and reports whether the trajectory is now active.
func (tr *Trajectory) Toggle() bool {
	switch tr.state {
	case Cycling:
		tr.state = Paused
	case Paused:
		tr.state = Cycling
	}
	return tr.Active()
}

// Rewind moves the cursor back to the first segment without touching the
// points or the state.
func (tr *Trajectory) Rewind() {
	tr.current = 0
	tr.t = 0
}

// Active reports whether the trajectory is Cycling.
func (tr *Trajectory) Active() bool {
	return tr.state == Cycling
}

// State returns the current motion state.
func (tr *Trajectory) State() State {
	return tr.state
}

// Speed returns the travel speed in units per second.
func (tr *Trajectory) Speed() float32 {
	return tr.speed
}

// SetSpeed sets the travel speed. Negative values are clamped to zero.
func (tr *Trajectory) SetSpeed(speed float32) {
	tr.speed = max(speed, 0)
}

// AdjustSpeed adds delta to the speed, never dropping below minSpeed.
func (tr *Trajectory) AdjustSpeed(delta, minSpeed float32) float32 {
	tr.speed = max(tr.speed+delta, minSpeed)
	return tr.speed
}

// Len returns the number of points.
func (tr *Trajectory) Len() int {
	return len(tr.points)
}

// Points returns a copy of the points in insertion order.
func (tr *Trajectory) Points() []math.Vec3 {
	return append([]math.Vec3(nil), tr.points...)
}

// Segment returns the current segment start index and parameter t.
func (tr *Trajectory) Segment() (index int, t float32) {
	return tr.current, tr.t
}

// next returns the index following i with wraparound.
func (tr *Trajectory) next(i int) int {
	return (i + 1) % len(tr.points)
}

// Position returns the interpolated position without advancing. With no
// points it is the origin; with one it is that point.
func (tr *Trajectory) Position() math.Vec3 {
	switch len(tr.points) {
	case 0:
		return math.Vec3{}
	case 1:
		return tr.points[0]
	}
	return tr.points[tr.current].Lerp(tr.points[tr.next(tr.current)], tr.t)
}

// Advance moves the cursor by dt seconds and returns the new position.
// A zero-length segment is crossed in a single step so coincident points
// never stall the loop. Overshoot past the segment end is discarded.
// Advance moves regardless of State; callers check Active.
func (tr *Trajectory) Advance(dt float32) math.Vec3 {
	if len(tr.points) < 2 {
		return tr.Position()
	}

	a := tr.points[tr.current]
	b := tr.points[tr.next(tr.current)]

	var increment float32 = 1
	if length := a.Distance(b); length > 0 {
		increment = tr.speed * dt / length
	}

	tr.t += increment
	if tr.t >= 1 {
		tr.t = 0
		tr.current = tr.next(tr.current)
	}
	return tr.Position()
}

// Loop returns the points followed by the first point again, as a closed
// line strip for drawing. Fewer than two points yields nil.
func (tr *Trajectory) Loop() []math.Vec3 {
	if len(tr.points) < 2 {
		return nil
	}
	out := make([]math.Vec3, 0, len(tr.points)+1)
	out = append(out, tr.points...)
	return append(out, tr.points[0])
}

// Clone returns an independent copy.
func (tr *Trajectory) Clone() *Trajectory {
	c := *tr
	c.points = tr.Points()
	return &c
}
