// Package input polls SDL2 events and turns them into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/controls"
)

// Frame is the input gathered during one frame.
type Frame struct {
	Quit    bool
	Pressed []controls.Action // one entry per key press, in order
	Held    []controls.Action // actions whose keys are currently down

	MouseDX, MouseDY float32 // relative motion, positive DY looks up
	Scroll           float32

	Resized       bool
	Width, Height int
}

// Input tracks key state across frames.
type Input struct {
	bindings controls.Bindings
	down     map[sdl.Keycode]controls.Action
	frame    Frame
}

// New creates an input handler for the given bindings.
func New(bindings controls.Bindings) *Input {
	return &Input{
		bindings: bindings,
		down:     make(map[sdl.Keycode]controls.Action),
	}
}

// Poll drains the SDL event queue and returns this frame's input.
func (i *Input) Poll() *Frame {
	f := &i.frame
	f.Quit = false
	f.Pressed = f.Pressed[:0]
	f.Held = f.Held[:0]
	f.MouseDX, f.MouseDY, f.Scroll = 0, 0, 0
	f.Resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				f.Resized = true
				f.Width, f.Height = int(e.Data1), int(e.Data2)
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.Release()
			}

		case *sdl.KeyboardEvent:
			action := i.bindings.Lookup(sdl.GetKeyName(e.Keysym.Sym))
			switch e.Type {
			case sdl.KEYDOWN:
				if action.Held() {
					i.down[e.Keysym.Sym] = action
				} else if action != controls.None && e.Repeat == 0 {
					f.Pressed = append(f.Pressed, action)
				}
			case sdl.KEYUP:
				delete(i.down, e.Keysym.Sym)
			}

		case *sdl.MouseButtonEvent:
			if e.Type != sdl.MOUSEBUTTONDOWN {
				continue
			}
			action := i.bindings.Lookup(buttonName(e.Button))
			if action != controls.None && !action.Held() {
				f.Pressed = append(f.Pressed, action)
			}

		case *sdl.MouseMotionEvent:
			f.MouseDX += float32(e.XRel)
			f.MouseDY -= float32(e.YRel)

		case *sdl.MouseWheelEvent:
			f.Scroll += float32(e.Y)
		}
	}

	for _, a := range i.down {
		f.Held = append(f.Held, a)
	}
	return f
}

func buttonName(button uint8) string {
	switch button {
	case sdl.BUTTON_LEFT:
		return controls.MouseLeft
	case sdl.BUTTON_MIDDLE:
		return controls.MouseMiddle
	case sdl.BUTTON_RIGHT:
		return controls.MouseRight
	}
	return ""
}

// Release forgets held keys, for when the window loses focus.
func (i *Input) Release() {
	clear(i.down)
}
