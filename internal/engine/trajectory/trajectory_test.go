package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/sceneview/pkg/math"
)

var (
	pA = math.Vec3{X: 0, Y: 0, Z: 0}
	pB = math.Vec3{X: 10, Y: 0, Z: 0}
	pC = math.Vec3{X: 10, Y: 0, Z: 10}
)

func TestNewIsIdle(t *testing.T) {
	tr := New()
	assert.Equal(t, Idle, tr.State())
	assert.False(t, tr.Active())
	assert.Equal(t, float32(DefaultSpeed), tr.Speed())
	assert.Equal(t, math.Vec3{}, tr.Position())
	assert.Nil(t, tr.Loop())
}

func TestAddPointActivation(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	assert.Equal(t, Idle, tr.State(), "one point is not enough to move")
	assert.Equal(t, pA, tr.Position())

	tr.AddPoint(pB)
	assert.Equal(t, Cycling, tr.State())
	assert.True(t, tr.Active())
	assert.Equal(t, []math.Vec3{pA, pB}, tr.Points())
}

func TestAddPointKeepsPause(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)
	assert.False(t, tr.Toggle())
	tr.AddPoint(pC)
	assert.Equal(t, Paused, tr.State())
	assert.Equal(t, 3, tr.Len())
}

func TestToggle(t *testing.T) {
	tr := New()
	assert.False(t, tr.Toggle(), "toggle on empty trajectory is a no-op")
	assert.Equal(t, Idle, tr.State())

	tr.AddPoint(pA)
	tr.AddPoint(pB)
	assert.False(t, tr.Toggle())
	assert.Equal(t, Paused, tr.State())
	assert.True(t, tr.Toggle())
	assert.Equal(t, Cycling, tr.State())
}

func TestClear(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)
	tr.Advance(1)
	tr.Clear()

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, Idle, tr.State())
	assert.False(t, tr.Active())
	i, tt := tr.Segment()
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), tt)
}

func TestAdvanceConstantSpeed(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)

	// 2 units/s over a 10 unit segment: one second covers a fifth.
	pos := tr.Advance(1)
	assert.InDelta(t, 2, pos.X, 1e-5)
	i, tt := tr.Segment()
	assert.Equal(t, 0, i)
	assert.InDelta(t, 0.2, tt, 1e-6)
}

func TestAdvanceWrapsAround(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)

	pos := tr.Advance(5)
	assert.Equal(t, pB, pos)
	i, tt := tr.Segment()
	assert.Equal(t, 1, i)
	assert.Equal(t, float32(0), tt)

	pos = tr.Advance(5)
	assert.Equal(t, pA, pos)
	i, _ = tr.Segment()
	assert.Equal(t, 0, i, "segment after the last point returns to the first")
}

func TestAdvanceDiscardsOvershoot(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)
	tr.AddPoint(pC)

	pos := tr.Advance(100)
	assert.Equal(t, pB, pos)
	i, tt := tr.Segment()
	assert.Equal(t, 1, i)
	assert.Equal(t, float32(0), tt)
}

func TestAdvanceDegenerateSegment(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pA)
	tr.AddPoint(pB)

	// The zero-length A->A segment is crossed in a single tiny step.
	tr.Advance(0.001)
	i, _ := tr.Segment()
	assert.Equal(t, 1, i)

	tr.Advance(1)
	i, tt := tr.Segment()
	assert.Equal(t, 1, i)
	assert.InDelta(t, 0.2, tt, 1e-6)
}

func TestAdvanceTooFewPoints(t *testing.T) {
	tr := New()
	assert.Equal(t, math.Vec3{}, tr.Advance(1))
	tr.AddPoint(pC)
	assert.Equal(t, pC, tr.Advance(1))
}

func TestAdjustSpeed(t *testing.T) {
	tr := New()
	assert.Equal(t, float32(2.5), tr.AdjustSpeed(0.5, 0.5))
	for i := 0; i < 10; i++ {
		tr.AdjustSpeed(-0.5, 0.5)
	}
	assert.Equal(t, float32(0.5), tr.Speed())

	tr.SetSpeed(-3)
	assert.Equal(t, float32(0), tr.Speed())
}

func TestLoopAndClone(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)
	tr.AddPoint(pC)
	assert.Equal(t, []math.Vec3{pA, pB, pC, pA}, tr.Loop())

	c := tr.Clone()
	c.AddPoint(pA)
	c.Advance(1)
	assert.Equal(t, 3, tr.Len())
	i, tt := tr.Segment()
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), tt)
}

func TestRewind(t *testing.T) {
	tr := New()
	tr.AddPoint(pA)
	tr.AddPoint(pB)
	tr.Advance(6)
	tr.Rewind()
	i, tt := tr.Segment()
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), tt)
	assert.True(t, tr.Active())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Cycling", Cycling.String())
	assert.Equal(t, "State(7)", State(7).String())
}
