// Package viewer runs the interactive frame loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/assets"
	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/controls"
	"github.com/Faultbox/sceneview/internal/engine/debug"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/texture"
	"github.com/Faultbox/sceneview/internal/engine/window"
	"github.com/Faultbox/sceneview/internal/logger"
	"github.com/Faultbox/sceneview/internal/scene"
)

// maxFrameTime caps dt so a stall does not teleport moving objects.
const maxFrameTime = 0.25

// Viewer owns the window, renderer and scene.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	assets   *assets.Manager
	loader   *model.Loader
	scene    *scene.Scene
	watcher  *scene.Watcher
	controls scene.Controls
	shots    *debug.ScreenshotCapture
	wantShot bool
}

// New loads the scene and opens the window. It fails with an error
// wrapping scene.ErrNoUsableScene when nothing could be loaded.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		assets:   assets.NewManager(cfg.Scene.AssetRoots...),
		controls: sceneControls(cfg.Controls),
		shots:    debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "sceneview"),
	}
	v.loader = model.NewLoader(v.assets, texture.NewLoader(v.assets))

	bindings := controls.DefaultBindings()
	if err := bindings.Override(cfg.Controls.KeyBindings); err != nil {
		v.log.Warn("ignoring key bindings", zap.Error(err))
	}
	v.input = input.New(bindings)

	// Assets load before any window exists.
	var err error
	v.scene, err = scene.Load(cfg.Scene.ConfigPath, cfg.Scene.DefaultModels, v.loader)
	if err != nil {
		return nil, err
	}
	v.applyCameraControls()

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if cfg.Scene.Watch {
		v.watcher, err = scene.Watch(cfg.Scene.ConfigPath)
		if err != nil {
			v.log.Warn("scene hot reload disabled", zap.Error(err))
		}
	}

	v.window.CaptureMouse(true)
	v.log.Info("viewer initialized",
		zap.Int("objects", len(v.scene.Meshes)),
		zap.Int("lights", len(v.scene.Lights)))
	return v, nil
}

// Run drives the loop until quit: input, commands, trajectory update, draw.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting frame loop")
	for v.running {
		now := time.Now()
		dt := float32(min(now.Sub(lastTime).Seconds(), maxFrameTime))
		lastTime = now

		v.handleInput(dt)
		v.pollReload()

		v.scene.Update(dt)
		v.renderer.Draw(v.scene)
		if v.wantShot {
			v.screenshot()
			v.wantShot = false
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleInput(dt float32) {
	f := v.input.Poll()
	if f.Quit {
		v.running = false
		return
	}
	if f.Resized {
		width, height := v.window.Size()
		v.renderer.Resize(width, height)
	}

	if f.MouseDX != 0 || f.MouseDY != 0 {
		v.scene.Camera.HandleMouse(f.MouseDX, f.MouseDY)
	}
	if f.Scroll != 0 {
		v.scene.Camera.HandleZoom(f.Scroll)
	}

	for _, a := range f.Pressed {
		if a == controls.Screenshot {
			v.wantShot = true
			continue
		}
		if controls.Apply(v.scene, v.controls, a, dt) {
			v.running = false
		}
	}
	for _, a := range f.Held {
		controls.Apply(v.scene, v.controls, a, dt)
	}
}

// pollReload swaps in a rebuilt scene after its file changed. A file that
// no longer yields any mesh keeps the current scene.
func (v *Viewer) pollReload() {
	if v.watcher == nil || !v.watcher.Poll() {
		return
	}

	v.assets.Invalidate()
	next, err := scene.LoadConfig(v.cfg.Scene.ConfigPath, v.loader)
	if err != nil {
		v.log.Warn("scene reload failed", zap.Error(err))
		return
	}
	for _, w := range multierr.Errors(next.Warnings) {
		v.log.Warn("scene configuration problem", zap.Error(w))
	}
	if len(next.Meshes) == 0 {
		v.log.Warn("reloaded scene has no objects, keeping current scene")
		return
	}

	v.renderer.Forget()
	v.scene = next
	v.applyCameraControls()
	v.log.Info("scene reloaded", zap.Int("objects", len(next.Meshes)))
}

// screenshot saves the frame just drawn, before it is swapped out.
func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

func (v *Viewer) applyCameraControls() {
	v.scene.Camera.Speed = v.cfg.Controls.CameraSpeed
	v.scene.Camera.Sensitivity = v.cfg.Controls.MouseSensitivity
}

// Close releases resources in reverse order of creation.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func sceneControls(c config.ControlsConfig) scene.Controls {
	return scene.Controls{
		MoveSpeed:     c.MoveSpeed,
		ScaleSpeed:    c.ScaleSpeed,
		MinScale:      c.MinScale,
		RotateStep:    c.RotateStep,
		SpeedStep:     c.SpeedStep,
		MinSpeed:      c.MinSpeed,
		PointDistance: c.PointDistance,
	}
}
