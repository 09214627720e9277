// Package controls maps key names to viewer actions and applies actions to
// a scene. It has no windowing dependency; the input package feeds it SDL
// key names.
package controls

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/sceneview/internal/engine/camera"
	"github.com/Faultbox/sceneview/internal/scene"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Action is a user command.
type Action int

const (
	None Action = iota
	Quit

	// Held actions repeat every frame while the key is down.
	CameraForward
	CameraBackward
	CameraLeft
	CameraRight
	CameraUp
	CameraDown
	MoveForward
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ScaleUp
	ScaleDown

	// Pressed actions fire once per key press.
	SelectNext
	AddPoint
	ClearTrajectory
	ToggleTrajectory
	SpeedUp
	SpeedDown
	RotateX
	RotateY
	RotateZ
	Reset
	FrameScene
	Pick
	ToggleLight1
	ToggleLight2
	ToggleLight3
	ToggleLight4
	ToggleLight5
	ToggleLight6
	ToggleLight7
	ToggleLight8

	// Screenshot is handled by the viewer, which owns the framebuffer.
	Screenshot
)

// Key names for mouse buttons, so clicks can be bound like keys.
const (
	MouseLeft   = "Mouse Left"
	MouseMiddle = "Mouse Middle"
	MouseRight  = "Mouse Right"
)

var actionNames = map[Action]string{
	None:             "none",
	Quit:             "quit",
	CameraForward:    "camera_forward",
	CameraBackward:   "camera_backward",
	CameraLeft:       "camera_left",
	CameraRight:      "camera_right",
	CameraUp:         "camera_up",
	CameraDown:       "camera_down",
	MoveForward:      "move_forward",
	MoveBackward:     "move_backward",
	MoveLeft:         "move_left",
	MoveRight:        "move_right",
	MoveUp:           "move_up",
	MoveDown:         "move_down",
	ScaleUp:          "scale_up",
	ScaleDown:        "scale_down",
	SelectNext:       "select_next",
	AddPoint:         "add_point",
	ClearTrajectory:  "clear_trajectory",
	ToggleTrajectory: "toggle_trajectory",
	SpeedUp:          "speed_up",
	SpeedDown:        "speed_down",
	RotateX:          "rotate_x",
	RotateY:          "rotate_y",
	RotateZ:          "rotate_z",
	Reset:            "reset",
	FrameScene:       "frame_scene",
	Pick:             "pick",
	Screenshot:       "screenshot",
}

func init() {
	for i := 0; i < 8; i++ {
		actionNames[ToggleLight1+Action(i)] = fmt.Sprintf("toggle_light_%d", i+1)
	}
}

// String returns the action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction looks an action up by name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return None, false
}

// Held reports whether the action repeats while its key is held.
func (a Action) Held() bool {
	return a >= CameraForward && a <= ScaleDown
}

// Bindings maps normalized key names to actions.
type Bindings map[string]Action

// DefaultBindings returns the viewer key map. Names follow SDL_GetKeyName.
func DefaultBindings() Bindings {
	b := Bindings{
		"Escape":     Quit,
		"W":          CameraForward,
		"S":          CameraBackward,
		"A":          CameraLeft,
		"D":          CameraRight,
		"Space":      CameraUp,
		"Left Shift": CameraDown,
		"Up":         MoveForward,
		"Down":       MoveBackward,
		"Left":       MoveLeft,
		"Right":      MoveRight,
		"PageUp":     MoveUp,
		"PageDown":   MoveDown,
		"E":          ScaleUp,
		"Q":          ScaleDown,
		"Tab":        SelectNext,
		"P":          AddPoint,
		"C":          ClearTrajectory,
		"G":          ToggleTrajectory,
		"=":          SpeedUp,
		"Keypad +":   SpeedUp,
		"-":          SpeedDown,
		"Keypad -":   SpeedDown,
		"X":          RotateX,
		"Y":          RotateY,
		"Z":          RotateZ,
		"R":          Reset,
		"F":          FrameScene,
		"V":          Pick,
		MouseLeft:    Pick,
		"F12":        Screenshot,
	}
	for i := 0; i < 8; i++ {
		b[fmt.Sprint(i+1)] = ToggleLight1 + Action(i)
	}
	return b.normalized()
}

// Lookup returns the action bound to a key name.
func (b Bindings) Lookup(key string) Action {
	return b[normalizeKey(key)]
}

// Override rebinds keys from a key-name to action-name map, as read from
// configuration. Unknown action names are reported and skipped.
func (b Bindings) Override(overrides map[string]string) error {
	var unknown []string
	for key, name := range overrides {
		a, ok := ParseAction(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		b[normalizeKey(key)] = a
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown actions: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (b Bindings) normalized() Bindings {
	out := make(Bindings, len(b))
	for k, a := range b {
		out[normalizeKey(k)] = a
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, " ", ""))
}

// Apply runs one action against the scene. dt is the frame time used by
// held actions. It reports whether the viewer should quit.
func Apply(s *scene.Scene, c scene.Controls, a Action, dt float32) (quit bool) {
	switch a {
	case Quit:
		return true

	case CameraForward:
		s.Camera.Move(camera.Forward, dt)
	case CameraBackward:
		s.Camera.Move(camera.Backward, dt)
	case CameraLeft:
		s.Camera.Move(camera.Left, dt)
	case CameraRight:
		s.Camera.Move(camera.Right, dt)
	case CameraUp:
		s.Camera.Move(camera.Up, dt)
	case CameraDown:
		s.Camera.Move(camera.Down, dt)

	case MoveForward:
		s.Translate(c, math.Vec3{Z: -1}, dt)
	case MoveBackward:
		s.Translate(c, math.Vec3{Z: 1}, dt)
	case MoveLeft:
		s.Translate(c, math.Vec3{X: -1}, dt)
	case MoveRight:
		s.Translate(c, math.Vec3{X: 1}, dt)
	case MoveUp:
		s.Translate(c, math.Vec3{Y: 1}, dt)
	case MoveDown:
		s.Translate(c, math.Vec3{Y: -1}, dt)
	case ScaleUp:
		s.Scale(c, 1, dt)
	case ScaleDown:
		s.Scale(c, -1, dt)

	case SelectNext:
		s.SelectNext()
	case AddPoint:
		s.AddTrajectoryPoint(c)
	case ClearTrajectory:
		s.ClearTrajectory()
	case ToggleTrajectory:
		s.ToggleTrajectory()
	case SpeedUp:
		s.AdjustTrajectorySpeed(c, 1)
	case SpeedDown:
		s.AdjustTrajectorySpeed(c, -1)
	case RotateX:
		s.Rotate(c, math.Vec3{X: 1})
	case RotateY:
		s.Rotate(c, math.Vec3{Y: 1})
	case RotateZ:
		s.Rotate(c, math.Vec3{Z: 1})
	case Reset:
		s.Reset()
	case Pick:
		s.PickAhead()
	case FrameScene:
		if minB, maxB, ok := s.Bounds(); ok {
			s.Camera.FitToBounds(minB, maxB)
		}

	default:
		if a >= ToggleLight1 && a <= ToggleLight8 {
			s.ToggleLight(int(a - ToggleLight1))
		}
	}
	return false
}
