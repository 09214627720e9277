package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sceneview/pkg/math"
)

func TestBoxCorners(t *testing.T) {
	c := BoxCorners(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3}, 0.5)
	assert.Equal(t, math.Vec3{X: -1.5, Y: -2.5, Z: -3.5}, c[0])
	assert.Equal(t, math.Vec3{X: 1.5, Y: 2.5, Z: 3.5}, c[7])
	assert.Equal(t, math.Vec3{X: 1.5, Y: -2.5, Z: -3.5}, c[1])
	assert.Equal(t, math.Vec3{X: -1.5, Y: 2.5, Z: -3.5}, c[2])
	assert.Equal(t, math.Vec3{X: -1.5, Y: -2.5, Z: 3.5}, c[4])
}

func TestBBoxWireframe(t *testing.T) {
	lo := math.Vec3{X: -1, Y: -1, Z: -1}
	hi := math.Vec3{X: 1, Y: 1, Z: 1}

	t.Run("identity", func(t *testing.T) {
		lines := BBoxWireframe(lo, hi, math.Identity(), 0)
		require.Len(t, lines, BBoxWireframeVertexCount)
		for i := 0; i < len(lines); i += 2 {
			// Every edge spans exactly one axis of the cube.
			d := lines[i+1].Sub(lines[i])
			assert.InDelta(t, 2, d.Length(), 1e-6, "edge %d", i/2)
		}
	})

	t.Run("translated and scaled", func(t *testing.T) {
		m := math.Model(math.Vec3{X: 10}, math.Vec3{}, 2)
		lines := BBoxWireframe(lo, hi, m, 0)
		require.Len(t, lines, BBoxWireframeVertexCount)
		for _, p := range lines {
			assert.InDelta(t, 2, absf(p.X-10), 1e-5)
			assert.InDelta(t, 2, absf(p.Y), 1e-5)
			assert.InDelta(t, 2, absf(p.Z), 1e-5)
		}
	})
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (GL order is bottom-up).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot_2024-03-01_12-30-00.000.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)
	r, _, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), b)
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
	_, err = sc.CaptureFromPixels(nil, 0, 0)
	assert.Error(t, err)
}

func TestDefaultPrefix(t *testing.T) {
	sc := NewScreenshotCapture("", "")
	assert.True(t, strings.HasPrefix(sc.GenerateFilename(), "screenshot_"))
}
